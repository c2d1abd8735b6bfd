package web

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/menumanager/internal/core"
	"github.com/JonMunkholm/menumanager/internal/web/templates"
)

// render writes a full page wrapped in the layout.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, title string, active templates.Page, body templ.Component) {
	page := templates.Layout(templates.LayoutParams{
		Title:  title,
		Active: active,
		Stats:  s.service.Stats(),
	}, body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		slog.Error("render page", "title", title, "error", err)
	}
}

// renderPartial writes a fragment without the layout.
func renderPartial(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render partial", "error", err)
	}
}

// handleHealthz reports liveness and the current menu size.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"items":  s.service.Len(),
	})
}

// handleDashboard renders the dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "Dashboard", templates.PageDashboard,
		templates.Dashboard(s.service.Stats()))
}

// parseFilter reads the search and category query parameters.
func parseFilter(r *http.Request) core.Filter {
	q := r.URL.Query()
	return core.Filter{
		Search:   q.Get("q"),
		Category: q.Get("category"),
	}
}

// handleItems renders the filtered item list. HTMX requests receive only
// the table.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	items := s.service.Filter(filter)
	total := s.service.Len()

	if isHTMX(r) {
		renderPartial(w, r, templates.ItemsTable(items, total))
		return
	}

	var flash string
	if added := r.URL.Query().Get("added"); added != "" {
		flash = fmt.Sprintf("Successfully added %s to the menu!", added)
	}

	s.render(w, r, http.StatusOK, "Menu Items", templates.PageItems, templates.ItemsPage(templates.ItemsParams{
		Items:      items,
		Filter:     filter,
		Categories: s.service.Categories(),
		Total:      total,
		Flash:      flash,
	}))
}

// handleNewItem renders an empty add form.
func (s *Server) handleNewItem(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "Add New Item", templates.PageNewItem,
		templates.NewItemPage(templates.NewItemParams{Values: map[string]string{}}))
}

// formValues collects the submitted menu fields keyed by field key.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(core.MenuFieldSpecs))
	for _, spec := range core.MenuFieldSpecs {
		values[spec.Key] = r.PostFormValue(spec.Key)
	}
	return values
}

// handleAddItem validates the add form. A rejected submission re-renders
// the form with every problem listed and the store unchanged.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	values := formValues(r)

	ctx := WithRequestMetadata(r.Context(), r)
	item, err := s.service.AddFields(ctx, values)
	if err != nil {
		ve, ok := core.AsValidationErrors(err)
		if !ok {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		slog.Info("add item rejected", "fields", ve.Fields())
		s.render(w, r, http.StatusUnprocessableEntity, "Add New Item", templates.PageNewItem,
			templates.NewItemPage(templates.NewItemParams{
				Values:  values,
				Errors:  ve,
				Message: core.MapError(err),
			}))
		return
	}

	http.Redirect(w, r, "/items?added="+url.QueryEscape(item.Name), http.StatusSeeOther)
}

// handleExportPage renders the export summary and preview.
func (s *Server) handleExportPage(w http.ResponseWriter, r *http.Request) {
	items := s.service.List()
	s.render(w, r, http.StatusOK, "Export CSV", templates.PageExport, templates.ExportPage(templates.ExportParams{
		Items:    items,
		Rows:     core.ExportRows(items),
		FileName: s.service.ExportFileName(),
	}))
}

// handleExportDownload streams the export CSV as an attachment.
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)

	// Buffer so a failed export can still produce an error status.
	var buf bytes.Buffer
	if _, err := s.service.WriteExport(ctx, &buf); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, s.service.ExportFileName()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("export download interrupted", "error", err)
	}
}
