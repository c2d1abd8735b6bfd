package core

// export.go maps menu items onto the WooCommerce product import schema,
// with WP Cafe add-on metadata in the "Meta: reserv_extra_fields" column.
//
// Mapping never fails: a missing value becomes an empty cell so one bad
// record cannot abort a whole export.

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Export column names, in file order.
const (
	ColID                  = "ID"
	ColType                = "Type"
	ColSKU                 = "SKU"
	ColName                = "Name"
	ColPublished           = "Published"
	ColFeatured            = "Is featured?"
	ColVisibility          = "Visibility in catalog"
	ColShortDescription    = "Short description"
	ColDescription         = "Description"
	ColSaleStart           = "Date sale price starts"
	ColSaleEnd             = "Date sale price ends"
	ColTaxStatus           = "Tax status"
	ColTaxClass            = "Tax class"
	ColInStock             = "In stock?"
	ColStock               = "Stock"
	ColLowStock            = "Low stock amount"
	ColBackorders          = "Backorders allowed?"
	ColSoldIndividually    = "Sold individually?"
	ColWeight              = "Weight (lbs)"
	ColLength              = "Length (in)"
	ColWidth               = "Width (in)"
	ColHeight              = "Height (in)"
	ColReviews             = "Allow customer reviews?"
	ColPurchaseNote        = "Purchase note"
	ColSalePrice           = "Sale price"
	ColRegularPrice        = "Regular price"
	ColCategories          = "Categories"
	ColTags                = "Tags"
	ColShippingClass       = "Shipping class"
	ColImages              = "Images"
	ColDownloadLimit       = "Download limit"
	ColDownloadExpiry      = "Download expiry days"
	ColParent              = "Parent"
	ColGroupedProducts     = "Grouped products"
	ColUpsells             = "Upsells"
	ColCrossSells          = "Cross-sells"
	ColExternalURL         = "External URL"
	ColButtonText          = "Button text"
	ColPosition            = "Position"
	ColMetaExtraFields     = "Meta: reserv_extra_fields"
	ColMetaPreparationTime = "Meta: preparation_time"
	ColMetaStockStatus     = "Meta: _stock_status"
)

// ExportColumns is the fixed header of the export file.
var ExportColumns = []string{
	ColID, ColType, ColSKU, ColName, ColPublished, ColFeatured, ColVisibility,
	ColShortDescription, ColDescription, ColSaleStart, ColSaleEnd, ColTaxStatus,
	ColTaxClass, ColInStock, ColStock, ColLowStock, ColBackorders,
	ColSoldIndividually, ColWeight, ColLength, ColWidth, ColHeight, ColReviews,
	ColPurchaseNote, ColSalePrice, ColRegularPrice, ColCategories, ColTags,
	ColShippingClass, ColImages, ColDownloadLimit, ColDownloadExpiry, ColParent,
	ColGroupedProducts, ColUpsells, ColCrossSells, ColExternalURL, ColButtonText,
	ColPosition, ColMetaExtraFields, ColMetaPreparationTime, ColMetaStockStatus,
}

const (
	// ShortDescriptionLen is the number of characters kept for the short description.
	ShortDescriptionLen = 100

	// PreparationTime is written to every row.
	PreparationTime = "15-20 minutes"

	// DefaultExportFilePrefix names export files when no prefix is configured.
	DefaultExportFilePrefix = "philly-me-up-menu"
)

// FixedTags follow the category in the Tags column.
var FixedTags = []string{"Philly Food", "Restaurant"}

// featuredCategories are flagged "Is featured?" in the catalog.
var featuredCategories = map[Category]bool{
	CategoryCheesesteaks: true,
	CategoryPasta:        true,
}

// IsFeatured reports whether items in c are promoted in the catalog.
func IsFeatured(c Category) bool {
	return featuredCategories[c]
}

// ExportRow is one item flattened onto ExportColumns.
type ExportRow []string

// Get returns the value of a named column, or "" if the column is unknown.
func (r ExportRow) Get(col string) string {
	for i, c := range ExportColumns {
		if c == col && i < len(r) {
			return r[i]
		}
	}
	return ""
}

// Map returns the row keyed by column name.
func (r ExportRow) Map() map[string]string {
	m := make(map[string]string, len(ExportColumns))
	for i, c := range ExportColumns {
		if i < len(r) {
			m[c] = r[i]
		}
	}
	return m
}

// MapItem flattens one menu item into an export row.
func MapItem(item MenuItem) ExportRow {
	values := map[string]string{
		ColType:                "simple",
		ColSKU:                 item.SKU,
		ColName:                item.Name,
		ColPublished:           "1",
		ColFeatured:            boolFlag(IsFeatured(item.Category)),
		ColVisibility:          "visible",
		ColShortDescription:    truncateRunes(item.Description, ShortDescriptionLen),
		ColDescription:         item.Description,
		ColTaxStatus:           "taxable",
		ColInStock:             "1",
		ColBackorders:          "0",
		ColSoldIndividually:    "0",
		ColReviews:             "1",
		ColRegularPrice:        FormatPrice(item.Price),
		ColCategories:          categoriesCell(item.Category),
		ColTags:                tagsCell(item.Category),
		ColPosition:            "0",
		ColMetaExtraFields:     EncodeGroups(item.Addons.Groups()),
		ColMetaPreparationTime: PreparationTime,
		ColMetaStockStatus:     string(item.Stock),
	}

	row := make(ExportRow, len(ExportColumns))
	for i, col := range ExportColumns {
		row[i] = values[col]
	}
	return row
}

// ExportRows maps every item, preserving order.
func ExportRows(items []MenuItem) []ExportRow {
	rows := make([]ExportRow, len(items))
	for i, item := range items {
		rows[i] = MapItem(item)
	}
	return rows
}

// WriteCSV writes the export header and one row per item to w.
func WriteCSV(w io.Writer, items []MenuItem) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for i, item := range items {
		if err := cw.Write(MapItem(item)); err != nil {
			return fmt.Errorf("write export row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFileName returns the download name for an export made at t.
// An empty prefix means DefaultExportFilePrefix.
func ExportFileName(prefix string, t time.Time) string {
	if prefix == "" {
		prefix = DefaultExportFilePrefix
	}
	return fmt.Sprintf("%s-%s.csv", prefix, t.Format("20060102"))
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func categoriesCell(c Category) string {
	if c == "" {
		return ""
	}
	return "Menu, " + string(c)
}

func tagsCell(c Category) string {
	if c == "" {
		return ""
	}
	tags := string(c)
	for _, t := range FixedTags {
		tags += ", " + t
	}
	return tags
}
