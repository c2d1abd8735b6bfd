package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/menumanager/internal/core"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

// Entry is one selectable line of a Menu. Exactly one of Submenu or Action
// is normally set; "Back" entries are linked to the parent menu.
type Entry struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

// Menu is a titled list of entries.
type Menu struct {
	Title   string
	Entries []Entry
	Parent  *Menu
}

const backLabel = "Back"

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Entries {
		e := &menu.Entries[i]

		if e.Label == backLabel {
			e.Submenu = parent
			continue
		}

		if e.Submenu != nil {
			linkParents(e.Submenu, menu)
		}
	}
}

func buildMenuTree(m *Model) *Menu {
	root := &Menu{
		Title: "Philly Me Up - Menu Manager",
		Entries: []Entry{
			{Label: "Dashboard", Action: m.showDashboard},
			{Label: "Browse ->", Submenu: loadBrowse(m)},
			{Label: "Export ->", Submenu: loadExport(m)},
			{Label: "Import ->", Submenu: loadImport(m)},
			{Label: "Audit Log", Action: m.showAudit},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD MENUS
---------------------------------------- */

func loadBrowse(m *Model) *Menu {
	entries := []Entry{
		{Label: "All Items", Action: m.browse(core.Filter{})},
	}
	for _, c := range core.Categories {
		entries = append(entries, Entry{
			Label:  string(c),
			Action: m.browse(core.Filter{Category: string(c)}),
		})
	}
	entries = append(entries, Entry{Label: backLabel})

	return &Menu{Title: "Browse", Entries: entries}
}

func loadExport(m *Model) *Menu {
	return &Menu{
		Title: "Export",
		Entries: []Entry{
			{Label: "Preview Export", Action: m.previewExport},
			{Label: "Write WooCommerce CSV", Action: m.exportCSV},
			{Label: backLabel},
		},
	}
}

func loadImport(m *Model) *Menu {
	return &Menu{
		Title: "Import",
		Entries: []Entry{
			{Label: "Import CSV files from " + m.importDir(), Action: m.importCSV},
			{Label: "Show CSV columns", Action: m.showColumns},
			{Label: backLabel},
		},
	}
}
