package core

// RecentLimit is the number of items shown under "Recent Menu Items".
const RecentLimit = 5

// HeadlineCategories get their own count cards on the dashboard.
var HeadlineCategories = []Category{
	CategoryStarters,
	CategorySalads,
	CategoryCheesesteaks,
	CategoryPasta,
}

// CategoryStats aggregates prices for one category.
type CategoryStats struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Mean     float64  `json:"mean"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
}

// HeadlineCount is a category count shown as a dashboard card.
type HeadlineCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// MenuStats is everything the dashboard and sidebar display.
type MenuStats struct {
	TotalItems    int             `json:"total_items"`
	CategoryCount int             `json:"category_count"`
	AveragePrice  float64         `json:"average_price"`
	Headlines     []HeadlineCount `json:"headlines"`
	ByCategory    []CategoryStats `json:"by_category"`
	Recent        []MenuItem      `json:"recent"`
}

// ComputeStats aggregates a snapshot of items.
// ByCategory follows the order categories first appear in items.
// Recent holds the last RecentLimit items, newest first.
func ComputeStats(items []MenuItem) MenuStats {
	stats := MenuStats{TotalItems: len(items)}

	byCat := make(map[Category]*CategoryStats)
	var order []Category
	var total float64

	for _, item := range items {
		total += item.Price

		cs, ok := byCat[item.Category]
		if !ok {
			cs = &CategoryStats{Category: item.Category, Min: item.Price, Max: item.Price}
			byCat[item.Category] = cs
			order = append(order, item.Category)
		}
		cs.Count++
		cs.Mean += item.Price
		if item.Price < cs.Min {
			cs.Min = item.Price
		}
		if item.Price > cs.Max {
			cs.Max = item.Price
		}
	}

	if len(items) > 0 {
		stats.AveragePrice = total / float64(len(items))
	}

	stats.CategoryCount = len(order)
	stats.ByCategory = make([]CategoryStats, 0, len(order))
	for _, c := range order {
		cs := byCat[c]
		cs.Mean /= float64(cs.Count)
		stats.ByCategory = append(stats.ByCategory, *cs)
	}

	stats.Headlines = make([]HeadlineCount, len(HeadlineCategories))
	for i, c := range HeadlineCategories {
		hc := HeadlineCount{Category: c}
		if cs, ok := byCat[c]; ok {
			hc.Count = cs.Count
		}
		stats.Headlines[i] = hc
	}

	n := min(RecentLimit, len(items))
	stats.Recent = make([]MenuItem, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		stats.Recent = append(stats.Recent, items[i])
	}

	return stats
}

// MaxMean returns the highest category mean, for scaling the price chart.
func (s MenuStats) MaxMean() float64 {
	var m float64
	for _, cs := range s.ByCategory {
		if cs.Mean > m {
			m = cs.Mean
		}
	}
	return m
}
