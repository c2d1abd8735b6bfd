package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/menumanager/internal/core"
)

// OperationTimeout bounds import and export actions.
var OperationTimeout = 2 * time.Minute

// browseLimit caps the rows listed in the output pane.
const browseLimit = 40

func (m *Model) importDir() string {
	return m.service.ImportDir()
}

// showDashboard renders the dashboard figures as text.
func (m *Model) showDashboard() tea.Cmd {
	return func() tea.Msg {
		stats := m.service.Stats()

		var b strings.Builder
		fmt.Fprintf(&b, "Total items: %d   Categories: %d   Avg price: $%s\n\n",
			stats.TotalItems, stats.CategoryCount, core.FormatPrice(stats.AveragePrice))

		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tITEMS\tAVG\tMIN\tMAX")
		for _, cs := range stats.ByCategory {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", cs.Category, cs.Count,
				core.FormatPrice(cs.Mean), core.FormatPrice(cs.Min), core.FormatPrice(cs.Max))
		}
		_ = tw.Flush()

		b.WriteString("\nRecent items:\n")
		for _, item := range stats.Recent {
			fmt.Fprintf(&b, "  %s - $%s (%s)\n", item.Name, core.FormatPrice(item.Price), item.Category)
		}
		return ViewMsg(b.String())
	}
}

// browse lists the items matching f.
func (m *Model) browse(f core.Filter) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return ViewMsg(formatItems(m.service.Filter(f), m.service.Len()))
		}
	}
}

func formatItems(items []core.MenuItem, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d items\n\n", len(items), total)
	if len(items) == 0 {
		b.WriteString("No items match.\n")
		return b.String()
	}

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tNAME\tPRICE\tCATEGORY\tSTOCK")
	for i, item := range items {
		if i == browseLimit {
			fmt.Fprintf(tw, "...\t%d more\t\t\t\n", len(items)-browseLimit)
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", item.SKU, item.Name,
			core.FormatPrice(item.Price), item.Category, item.Stock)
	}
	_ = tw.Flush()
	return b.String()
}

// previewExport shows the first export rows without writing a file.
func (m *Model) previewExport() tea.Cmd {
	return func() tea.Msg {
		rows := m.service.ExportRows()

		var b strings.Builder
		fmt.Fprintf(&b, "%d rows x %d columns -> %s\n\n", len(rows), len(core.ExportColumns), m.service.ExportFileName())
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SKU\tNAME\tFEATURED\tPRICE\tCATEGORIES")
		for i, row := range rows {
			if i == 10 {
				break
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Get(core.ColSKU), row.Get(core.ColName),
				row.Get(core.ColFeatured), row.Get(core.ColRegularPrice), row.Get(core.ColCategories))
		}
		_ = tw.Flush()
		return ViewMsg(b.String())
	}
}

// exportCSV writes the export file into the export directory.
func (m *Model) exportCSV() tea.Cmd {
	return tea.Sequence(working("Writing export..."), m.runExport)
}

func (m *Model) runExport() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), OperationTimeout)
	defer cancel()

	path, err := m.service.ExportToDir(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return DoneMsg(fmt.Sprintf("Exported %d items to %s", m.service.Len(), path))
}

// importCSV imports every CSV file in the import directory.
func (m *Model) importCSV() tea.Cmd {
	return tea.Sequence(working("Importing from "+m.importDir()+"..."), m.runImport)
}

func (m *Model) runImport() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), OperationTimeout)
	defer cancel()

	results, err := m.service.ImportDirFiles(ctx)
	if len(results) > 0 {
		out := formatImportResults(results)
		if err != nil {
			out += "\nStopped: " + core.FormatUserError(err) + "\n"
		}
		return ViewMsg(out)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("import timed out after %v: %w", OperationTimeout, err)
		}
		return ErrMsg{Err: err}
	}
	return DoneMsg("No files imported, see the log for details")
}

func formatImportResults(results []*core.ImportResult) string {
	var b strings.Builder
	added := 0
	for _, r := range results {
		added += r.Added
		fmt.Fprintf(&b, "%s: %d of %d rows added\n", filepath.Base(r.FileName), r.Added, r.TotalRows)
		for _, fr := range r.FailedRows {
			fmt.Fprintf(&b, "  line %d: %s\n", fr.LineNumber, fr.Reason)
		}
	}
	fmt.Fprintf(&b, "\n%d items added from %d files\n", added, len(results))
	return b.String()
}

// showColumns lists the accepted import columns.
func (m *Model) showColumns() tea.Cmd {
	return func() tea.Msg {
		var b strings.Builder
		b.WriteString("Import files need a header row with these columns:\n\n")
		for _, spec := range core.MenuFieldSpecs {
			req := "optional"
			if spec.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "  %-12s %s", spec.Name, req)
			if len(spec.EnumValues) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(spec.EnumValues, ", "))
			}
			b.WriteString("\n")
		}
		return ViewMsg(b.String())
	}
}

// showAudit lists the latest audit entries.
func (m *Model) showAudit() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.service.AuditLog(context.Background(), core.AuditLogFilter{Limit: 20})
		if err != nil {
			return ErrMsg{Err: err}
		}
		if len(entries) == 0 {
			return ViewMsg("No audit entries yet.\n")
		}

		var b strings.Builder
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tACTION\tSEVERITY\tDETAIL")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format(time.DateTime), e.Action, e.Severity, e.Reason)
		}
		_ = tw.Flush()
		return ViewMsg(b.String())
	}
}

func working(status string) tea.Cmd {
	return func() tea.Msg { return WorkingMsg(status) }
}
