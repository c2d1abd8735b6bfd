package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/menumanager/internal/core"
	"github.com/JonMunkholm/menumanager/internal/logging"
	"github.com/JonMunkholm/menumanager/internal/web/templates"
)

// multipartOverhead allows for form boundaries and headers on top of the
// file itself.
const multipartOverhead = 1 << 20

// handleImport accepts a multipart CSV upload in the "file" field and adds
// every valid row to the menu.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.respondError(w, r, fmt.Errorf("%w: limit is %d bytes", core.ErrFileTooLarge, maxSize), http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("no file provided: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Import(ctx, header.Filename, file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.WithFields(r.Context(), "import_id", result.ImportID, "file", result.FileName).Info("import complete",
		"added", result.Added,
		"failed", len(result.FailedRows),
	)

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	s.render(w, r, http.StatusOK, "Import Result", templates.PageImport, templates.ImportResultPage(result))
}
