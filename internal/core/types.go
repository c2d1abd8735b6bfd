// Package core provides the business logic for the menu manager.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"fmt"
	"strings"
	"time"
)

// Category is a menu section. Only the values in Categories are valid.
type Category string

const (
	CategoryStarters     Category = "Starters"
	CategorySalads       Category = "Salads"
	CategoryCheesesteaks Category = "Cheesesteaks"
	CategoryPasta        Category = "Pasta"
	CategoryWings        Category = "Wings"
	CategoryDips         Category = "Dips"
	CategoryDesserts     Category = "Desserts"
	CategoryBeverages    Category = "Beverages"
)

// Categories lists every valid category in menu order.
var Categories = []Category{
	CategoryStarters,
	CategorySalads,
	CategoryCheesesteaks,
	CategoryPasta,
	CategoryWings,
	CategoryDips,
	CategoryDesserts,
	CategoryBeverages,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", s)
}

// StockStatus mirrors the WooCommerce _stock_status meta value.
type StockStatus string

const (
	StockInStock     StockStatus = "instock"
	StockOutOfStock  StockStatus = "outofstock"
	StockOnBackorder StockStatus = "onbackorder"
)

// StockStatuses lists every valid stock status.
var StockStatuses = []StockStatus{StockInStock, StockOutOfStock, StockOnBackorder}

// Valid reports whether s is a known stock status.
func (s StockStatus) Valid() bool {
	switch s {
	case StockInStock, StockOutOfStock, StockOnBackorder:
		return true
	}
	return false
}

// ParseStockStatus parses a stock status. Empty input means in stock.
func ParseStockStatus(s string) (StockStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StockInStock, nil
	}
	st := StockStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid stock status %q", s)
	}
	return st, nil
}

// AddonSet selects which add-on option groups are attached to an item.
type AddonSet int

const (
	AddonsNone AddonSet = iota
	AddonsProtein
	AddonsCheesesteak
)

// AddonSets lists every add-on set in form order.
var AddonSets = []AddonSet{AddonsNone, AddonsProtein, AddonsCheesesteak}

func (a AddonSet) String() string {
	switch a {
	case AddonsProtein:
		return "protein"
	case AddonsCheesesteak:
		return "cheesesteak"
	default:
		return "none"
	}
}

// ParseAddonSet parses the add-on tag. Empty input means none.
func ParseAddonSet(s string) (AddonSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AddonsNone, nil
	case "protein":
		return AddonsProtein, nil
	case "cheesesteak":
		return AddonsCheesesteak, nil
	default:
		return AddonsNone, fmt.Errorf("invalid addons %q", s)
	}
}

// MarshalText encodes the add-on set as its tag.
func (a AddonSet) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an add-on tag.
func (a *AddonSet) UnmarshalText(b []byte) error {
	v, err := ParseAddonSet(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MenuItem is one sellable catalog entry.
type MenuItem struct {
	Name        string      `json:"name" validate:"notblank"`
	Category    Category    `json:"category" validate:"required,category"`
	Price       float64     `json:"price" validate:"gte=0"`
	Description string      `json:"description" validate:"notblank"`
	SKU         string      `json:"sku" validate:"notblank"`
	Stock       StockStatus `json:"stock" validate:"required,stock"`
	Addons      AddonSet    `json:"addons" validate:"addons"`
	AddedAt     time.Time   `json:"added_at"`
}

// FieldType represents the expected data type for an input field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldNumeric
)

// FieldSpec defines validation rules for a single form field or CSV column.
type FieldSpec struct {
	Name       string   // Column header / form label (matched case-insensitively)
	Key        string   // Form field name
	Type       FieldType
	Required   bool
	EnumValues []string // Valid values for FieldEnum type
}

// HeaderIndex maps column names (lowercase) to their position in a CSV row.
type HeaderIndex map[string]int

// FailedRow describes an import row that could not be added.
type FailedRow struct {
	LineNumber int      `json:"line"`
	Reason     string   `json:"reason"`
	Data       []string `json:"data"`
}

// ImportResult contains the final result of a CSV import.
type ImportResult struct {
	ImportID   string        `json:"import_id"`
	FileName   string        `json:"file_name"`
	TotalRows  int           `json:"total_rows"`
	Added      int           `json:"added"`
	FailedRows []FailedRow   `json:"failed_rows,omitempty"`
	Duration   time.Duration `json:"duration"`
}
