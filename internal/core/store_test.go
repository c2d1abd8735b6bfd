package core

import (
	"reflect"
	"testing"
	"time"
)

var seedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewStore_Seed(t *testing.T) {
	seed := SeedItems(seedTime)
	s := NewStore(seed)

	if s.Len() != 29 {
		t.Fatalf("Len() = %d, want 29", s.Len())
	}

	// Mutating the seed slice must not affect the store.
	seed[0].Name = "changed"
	if got := s.List()[0].Name; got != "Egg Rolls (2pcs)" {
		t.Errorf("first item = %q, want Egg Rolls (2pcs)", got)
	}
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := NewStore(SeedItems(seedTime))
	list := s.List()
	list[0].Name = "changed"

	if s.List()[0].Name == "changed" {
		t.Error("List() exposed internal slice")
	}
}

func TestStore_Add(t *testing.T) {
	s := NewStore(nil)

	item := MenuItem{
		Name:        "Cheesecake",
		Category:    CategoryDesserts,
		Price:       6,
		Description: "New York style",
		SKU:         "PHI-DES-001",
	}
	if err := s.Add(item); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got := s.List()
	if len(got) != 1 {
		t.Fatalf("Len() = %d, want 1", len(got))
	}
	if got[0].Stock != StockInStock {
		t.Errorf("Stock = %q, want default instock", got[0].Stock)
	}

	// Duplicate SKUs are accepted.
	if err := s.Add(item); err != nil {
		t.Errorf("Add(duplicate sku) error = %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStore_AddRejectedLeavesStoreUnchanged(t *testing.T) {
	s := NewStore(SeedItems(seedTime))
	before := s.List()

	err := s.Add(MenuItem{Name: "Nameless", Category: "Tacos", Price: -1})
	if _, ok := AsValidationErrors(err); !ok {
		t.Fatalf("Add() error = %v, want ValidationErrors", err)
	}
	if !reflect.DeepEqual(s.List(), before) {
		t.Error("store changed after rejected add")
	}
}

func TestStore_AddRejectsBlankText(t *testing.T) {
	s := NewStore(nil)

	err := s.Add(MenuItem{
		Name:        "   ",
		Category:    CategoryDips,
		Price:       1,
		Description: "\t",
		SKU:         " ",
	})
	ve, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("Add() error = %v, want ValidationErrors", err)
	}
	if want := []string{"Name", "Description", "SKU"}; !reflect.DeepEqual(ve.Fields(), want) {
		t.Errorf("fields = %v, want %v", ve.Fields(), want)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStore_Filter(t *testing.T) {
	s := NewStore(SeedItems(seedTime))

	tests := []struct {
		name      string
		filter    Filter
		wantCount int
		wantFirst string
	}{
		{name: "zero filter", filter: Filter{}, wantCount: 29, wantFirst: "Egg Rolls (2pcs)"},
		{name: "all category", filter: Filter{Category: AllCategories}, wantCount: 29},
		{name: "category", filter: Filter{Category: "Wings"}, wantCount: 4, wantFirst: "Classic Buffalo Wings (6pc)"},
		{name: "category is exact", filter: Filter{Category: "wings"}, wantCount: 0},
		{name: "search name case insensitive", filter: Filter{Search: "CHEESESTEAK"}, wantCount: 5},
		{name: "search sku", filter: Filter{Search: "phi-dip"}, wantCount: 2, wantFirst: "Ranch Dip"},
		{name: "search and category", filter: Filter{Search: "chicken", Category: "Cheesesteaks"}, wantCount: 2},
		{name: "category with no items", filter: Filter{Category: "Desserts"}, wantCount: 0},
		{name: "search matches nothing", filter: Filter{Search: "zzz-no-match"}, wantCount: 0},
		{name: "search matches nothing in all categories", filter: Filter{Search: "zzz-no-match", Category: AllCategories}, wantCount: 0},
		{name: "search matches outside category", filter: Filter{Search: "caesar", Category: "Wings"}, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.filter)
			if got == nil {
				t.Fatal("Filter returned nil, want an empty slice")
			}
			if len(got) != tt.wantCount {
				t.Fatalf("Filter(%+v) returned %d items, want %d", tt.filter, len(got), tt.wantCount)
			}
			if tt.wantFirst != "" && got[0].Name != tt.wantFirst {
				t.Errorf("first = %q, want %q", got[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestStore_Categories(t *testing.T) {
	s := NewStore(SeedItems(seedTime))

	want := []string{"Cheesesteaks", "Dips", "Pasta", "Salads", "Starters", "Wings"}
	if got := s.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}

	if got := NewStore(nil).Categories(); len(got) != 0 {
		t.Errorf("empty store Categories() = %v, want none", got)
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory(" pasta "); err != nil || c != CategoryPasta {
		t.Errorf("ParseCategory(pasta) = %q, %v", c, err)
	}
	if _, err := ParseCategory("Tacos"); err == nil {
		t.Error("ParseCategory(Tacos) expected error")
	}
}

func TestAddonSetText(t *testing.T) {
	for _, a := range AddonSets {
		b, err := a.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var got AddonSet
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", b, err)
		}
		if got != a {
			t.Errorf("round trip %v = %v", a, got)
		}
	}

	var a AddonSet
	if err := a.UnmarshalText([]byte("bacon")); err == nil {
		t.Error("UnmarshalText(bacon) expected error")
	}
}
