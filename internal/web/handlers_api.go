package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/menumanager/internal/core"
)

// maxJSONBody bounds API request bodies.
const maxJSONBody = 64 << 10

// itemRequest is the JSON body accepted by POST /api/items. Values go
// through the same field validation as the web form.
type itemRequest struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	SKU         string      `json:"sku"`
	Stock       string      `json:"stock"`
	Addons      string      `json:"addons"`
}

func (req itemRequest) fields() map[string]string {
	return map[string]string{
		"name":        req.Name,
		"category":    req.Category,
		"price":       req.Price.String(),
		"description": req.Description,
		"sku":         req.SKU,
		"stock":       req.Stock,
		"addons":      req.Addons,
	}
}

type itemsResponse struct {
	Items []core.MenuItem `json:"items"`
	Count int             `json:"count"`
	Total int             `json:"total"`
}

// handleAPIListItems returns the filtered items.
func (s *Server) handleAPIListItems(w http.ResponseWriter, r *http.Request) {
	items := s.service.Filter(parseFilter(r))
	writeJSON(w, http.StatusOK, itemsResponse{
		Items: items,
		Count: len(items),
		Total: s.service.Len(),
	})
}

// handleAPIAddItem validates and adds one item.
func (s *Server) handleAPIAddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var req itemRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	item, err := s.service.AddFields(ctx, req.fields())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// handleAPICategories returns the allowed categories and those in use.
func (s *Server) handleAPICategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"allowed": core.Categories,
		"in_use":  s.service.Categories(),
	})
}

// handleAPIExport returns the export rows as JSON objects keyed by column.
// With ?format=csv it returns the export file instead.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "csv" {
		s.handleExportDownload(w, r)
		return
	}

	rows := s.service.ExportRows()
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		out[i] = row.Map()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"columns":   core.ExportColumns,
		"rows":      out,
		"file_name": s.service.ExportFileName(),
	})
}

// handleAPIStats returns the dashboard figures.
func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Stats())
}

// handleAPIAudit returns recent audit entries, newest first.
func (s *Server) handleAPIAudit(w http.ResponseWriter, r *http.Request) {
	filter := core.AuditLogFilter{
		Action: core.AuditAction(r.URL.Query().Get("action")),
		Limit:  core.DefaultAuditLimit,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, r, errors.New("invalid request body: limit must be a positive integer"), http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}

	entries, err := s.service.AuditLog(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
