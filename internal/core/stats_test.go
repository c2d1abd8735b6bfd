package core

import (
	"math"
	"testing"
)

func TestComputeStats_Seed(t *testing.T) {
	stats := ComputeStats(SeedItems(seedTime))

	if stats.TotalItems != 29 {
		t.Errorf("TotalItems = %d, want 29", stats.TotalItems)
	}
	if stats.CategoryCount != 6 {
		t.Errorf("CategoryCount = %d, want 6", stats.CategoryCount)
	}

	wantHeadlines := map[Category]int{
		CategoryStarters:     11,
		CategorySalads:       3,
		CategoryCheesesteaks: 5,
		CategoryPasta:        4,
	}
	if len(stats.Headlines) != len(HeadlineCategories) {
		t.Fatalf("got %d headlines, want %d", len(stats.Headlines), len(HeadlineCategories))
	}
	for _, h := range stats.Headlines {
		if h.Count != wantHeadlines[h.Category] {
			t.Errorf("%s count = %d, want %d", h.Category, h.Count, wantHeadlines[h.Category])
		}
	}

	if stats.ByCategory[0].Category != CategoryStarters {
		t.Errorf("first category = %s, want Starters", stats.ByCategory[0].Category)
	}

	wings := stats.ByCategory[4]
	if wings.Category != CategoryWings || wings.Mean != 10 || wings.Min != 10 || wings.Max != 10 {
		t.Errorf("wings stats = %+v", wings)
	}

	dips := stats.ByCategory[5]
	if dips.Min != 1.5 || dips.Max != 2 || math.Abs(dips.Mean-1.75) > 1e-9 {
		t.Errorf("dips stats = %+v", dips)
	}

	if stats.MaxMean() != 14.875 {
		t.Errorf("MaxMean() = %v, want 14.875 (pasta)", stats.MaxMean())
	}
}

func TestComputeStats_Recent(t *testing.T) {
	stats := ComputeStats(SeedItems(seedTime))

	if len(stats.Recent) != RecentLimit {
		t.Fatalf("got %d recent, want %d", len(stats.Recent), RecentLimit)
	}
	want := []string{
		"Cheese Sauce",
		"Ranch Dip",
		"Lemon Pepper Wings (6pc)",
		"Honey Garlic Wings (6pc)",
		"BBQ Wings (6pc)",
	}
	for i, name := range want {
		if stats.Recent[i].Name != name {
			t.Errorf("recent[%d] = %q, want %q", i, stats.Recent[i].Name, name)
		}
	}

	short := ComputeStats(SeedItems(seedTime)[:2])
	if len(short.Recent) != 2 || short.Recent[0].Name != "Loaded Fries" {
		t.Errorf("short recent = %+v", short.Recent)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.TotalItems != 0 || stats.AveragePrice != 0 || stats.CategoryCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.Recent) != 0 || len(stats.ByCategory) != 0 {
		t.Errorf("expected no recent or category rows")
	}
	for _, h := range stats.Headlines {
		if h.Count != 0 {
			t.Errorf("%s count = %d, want 0", h.Category, h.Count)
		}
	}
	if stats.MaxMean() != 0 {
		t.Errorf("MaxMean() = %v", stats.MaxMean())
	}
}
