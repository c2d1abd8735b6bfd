package core

import (
	"sort"
	"strings"
)

// AllCategories is the category filter value that matches every item.
const AllCategories = "All"

// Store is an ordered, append-only collection of menu items.
//
// Store is not safe for concurrent use. Callers that share one Store across
// goroutines (the web server) must serialize access; Service does this.
type Store struct {
	items []MenuItem
}

// NewStore creates a store holding a copy of the given items in order.
// Seed items are trusted and not validated.
func NewStore(seed []MenuItem) *Store {
	items := make([]MenuItem, len(seed))
	copy(items, seed)
	return &Store{items: items}
}

// List returns every item in insertion order.
func (s *Store) List() []MenuItem {
	out := make([]MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Add validates item and appends it to the end of the store.
// On failure the store is unchanged and the error is ValidationErrors.
// SKU uniqueness is not checked.
func (s *Store) Add(item MenuItem) error {
	if item.Stock == "" {
		item.Stock = StockInStock
	}
	if err := ValidateItem(item); err != nil {
		return err
	}
	s.items = append(s.items, item)
	return nil
}

// Filter selects items for the Menu Items view.
type Filter struct {
	// Search is matched case-insensitively against name or SKU.
	Search string
	// Category must match exactly. Empty or "All" disables it.
	Category string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Search == "" && (f.Category == "" || f.Category == AllCategories)
}

// Match reports whether item passes both filter conditions.
func (f Filter) Match(item MenuItem) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.SKU), q) {
			return false
		}
	}
	if f.Category != "" && f.Category != AllCategories && string(item.Category) != f.Category {
		return false
	}
	return true
}

// Filter returns the items matching f in insertion order.
func (s *Store) Filter(f Filter) []MenuItem {
	if f.IsZero() {
		return s.List()
	}
	out := make([]MenuItem, 0, len(s.items))
	for _, item := range s.items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the distinct categories present, sorted.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	for _, item := range s.items {
		seen[string(item.Category)] = true
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
