package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/menumanager/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func seedItems() []core.MenuItem {
	return core.SeedItems(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestLayout_MarksActivePage(t *testing.T) {
	stats := core.ComputeStats(seedItems())
	out := render(t, Layout(LayoutParams{Title: "Menu Items", Active: PageItems, Stats: stats}, templ.NopComponent))

	if !strings.Contains(out, `<a href="/items" class="active"`) {
		t.Errorf("active link not marked:\n%s", out)
	}
	if !strings.Contains(out, "<title>Menu Items | Philly Me Up</title>") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "29") {
		t.Error("sidebar should show the item count")
	}
}

func TestLayout_ImportPageHasNoActiveLink(t *testing.T) {
	out := render(t, Layout(LayoutParams{Title: "Import Result", Active: PageImport}, templ.NopComponent))

	if strings.Contains(out, `class="active"`) {
		t.Errorf("no navigation entry should be active:\n%s", out)
	}
	if !strings.HasPrefix(out, "<!doctype html>") {
		t.Errorf("missing doctype, got %.40q", out)
	}
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage("Too many files", "Wait and retry.", "RATE001"))

	for _, want := range []string{"<strong>Too many files</strong>", "<p>Wait and retry.</p>", "Code: RATE001", `<a href="/">Back to dashboard</a>`} {
		if !strings.Contains(out, want) {
			t.Errorf("error page missing %q", want)
		}
	}
}

func TestErrorAlert_OmitsEmptyParts(t *testing.T) {
	out := render(t, ErrorAlert("Something went wrong", "", ""))

	if strings.Contains(out, "<p>") || strings.Contains(out, "Code:") {
		t.Errorf("empty action and code should be omitted:\n%s", out)
	}
}

func TestDashboard(t *testing.T) {
	out := render(t, Dashboard(core.ComputeStats(seedItems())))

	for _, want := range []string{"Starters", "Cheesesteaks", "Price Distribution by Category", "Cheese Sauce - $2.00", `style="width: 100.0%;"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if n := strings.Count(out, `<details class="recent">`); n != core.RecentLimit {
		t.Errorf("recent items = %d, want %d", n, core.RecentLimit)
	}
}

func TestDashboard_Empty(t *testing.T) {
	out := render(t, Dashboard(core.ComputeStats(nil)))
	if !strings.Contains(out, "No items on the menu yet.") {
		t.Error("expected empty chart message")
	}
}

func TestItemsTable_EscapesText(t *testing.T) {
	items := []core.MenuItem{{
		Name:        `<script>alert("x")</script>`,
		Category:    core.CategoryStarters,
		Price:       5,
		Description: "Fries & dip",
		SKU:         "PHI-XSS-001",
		Stock:       core.StockInStock,
	}}
	out := render(t, ItemsTable(items, 1))

	if strings.Contains(out, "<script>") {
		t.Error("item name was not escaped")
	}
	if !strings.Contains(out, "Fries &amp; dip") {
		t.Error("description was not escaped")
	}
	if !strings.Contains(out, "$5.00") {
		t.Error("price not formatted")
	}
}

func TestItemsPage_SelectsCategory(t *testing.T) {
	out := render(t, ItemsPage(ItemsParams{
		Filter:     core.Filter{Category: "Wings"},
		Categories: []string{"Dips", "Wings"},
		Flash:      "Successfully added Test to the menu!",
	}))

	if !strings.Contains(out, `<option value="Wings" selected>`) {
		t.Error("Wings should be selected")
	}
	if strings.Contains(out, `<option value="All" selected>`) {
		t.Error("All should not be selected")
	}
	if !strings.Contains(out, "Successfully added Test") {
		t.Error("missing flash message")
	}
	if !strings.Contains(out, "No items match your filters.") {
		t.Error("expected empty state")
	}
}

func TestNewItemPage_ShowsErrors(t *testing.T) {
	ve := core.ValidationErrors{
		{Field: "Price", Message: "required field is empty"},
		{Field: "SKU", Message: "required field is empty"},
	}
	out := render(t, NewItemPage(NewItemParams{
		Values:  map[string]string{"name": "Hoagie", "category": "Pasta"},
		Errors:  ve,
		Message: core.MapError(ve),
	}))

	if n := strings.Count(out, `class="field-error"`); n != 2 {
		t.Errorf("field errors = %d, want 2", n)
	}
	if !strings.Contains(out, `<option value="Pasta" selected>`) {
		t.Error("submitted category should stay selected")
	}
	if !strings.Contains(out, "Code: VAL001") {
		t.Error("missing alert code")
	}
}

func TestExportPage_LimitsPreview(t *testing.T) {
	items := seedItems()
	out := render(t, ExportPage(ExportParams{
		Items:    items,
		Rows:     core.ExportRows(items),
		FileName: "philly-me-up-menu-20240101.csv",
	}))

	// One header row plus PreviewRows body rows.
	if n := strings.Count(out, "<tr>"); n != PreviewRows+1 {
		t.Errorf("table rows = %d, want %d", n, PreviewRows+1)
	}
	if !strings.Contains(out, "Total items to export: <strong>29</strong>") {
		t.Error("missing item count")
	}
}

func TestImportResultPage(t *testing.T) {
	out := render(t, ImportResultPage(&core.ImportResult{
		FileName:  "menu.csv",
		TotalRows: 3,
		Added:     2,
		FailedRows: []core.FailedRow{
			{LineNumber: 4, Reason: "Price: invalid price \"abc\""},
		},
	}))

	if !strings.Contains(out, "menu.csv: 2 of 3 rows added.") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "<td>4</td>") {
		t.Error("missing failed line number")
	}
}
