// Package templates holds the HTML views of the menu manager. The views are
// written as .templ files; run `templ generate` after editing them.
package templates

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/menumanager/internal/core"
)

type navEntry struct {
	page  Page
	href  templ.SafeURL
	label string
}

var navigation = []navEntry{
	{PageDashboard, "/", "Dashboard"},
	{PageItems, "/items", "Menu Items"},
	{PageNewItem, "/items/new", "Add New Item"},
	{PageExport, "/export", "Export CSV"},
}

func money(p float64) string {
	return "$" + core.FormatPrice(p)
}

func percent(v, top float64) string {
	if top <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", v/top*100)
}

// barWidth sizes a chart bar relative to the largest mean.
func barWidth(v, top float64) templ.SafeCSS {
	return templ.SafeCSS("width: " + percent(v, top))
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func filterOptions(categories []string) []string {
	return append([]string{core.AllCategories}, categories...)
}

func filterSelected(option, current string) bool {
	return option == current || (option == core.AllCategories && current == "")
}

func previewRows(rows []core.ExportRow) []core.ExportRow {
	if len(rows) > PreviewRows {
		return rows[:PreviewRows]
	}
	return rows
}

func (p NewItemParams) fieldError(name string) string {
	for _, e := range p.Errors {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

// fieldName maps a form key to the field name used in validation errors.
func fieldName(key string) string {
	for _, spec := range core.MenuFieldSpecs {
		if spec.Key == key {
			return spec.Name
		}
	}
	return key
}

func categoryOptions() []string {
	out := make([]string, len(core.Categories))
	for i, c := range core.Categories {
		out[i] = string(c)
	}
	return out
}

func stockOptions() []string {
	out := make([]string, len(core.StockStatuses))
	for i, s := range core.StockStatuses {
		out[i] = string(s)
	}
	return out
}

func addonOptions() []string {
	out := make([]string, len(core.AddonSets))
	for i, a := range core.AddonSets {
		out[i] = a.String()
	}
	return out
}
