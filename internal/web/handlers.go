package web

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/propfolio/streetfarm/internal/importer"
)

type importFunc func(ctx context.Context, suburb, fileName string, file io.Reader) (*importer.Outcome, error)

// handleImport accepts a multipart spreadsheet upload and imports it into
// the suburb's contact ledger.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.runPipeline(w, r, s.service.Import)
}

// handlePreview runs the same pipeline as handleImport without writing to
// the ledger.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.runPipeline(w, r, s.service.Preview)
}

func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request, run importFunc) {
	suburb := chi.URLParam(r, "suburb")
	if suburb == "" {
		writeError(w, http.StatusBadRequest, "missing suburb")
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	out, err := run(ctx, suburb, header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// handleHealth reports readiness, including backend connectivity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.health.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
