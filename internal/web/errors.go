package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propfolio/streetfarm/internal/importer"
	"github.com/propfolio/streetfarm/internal/logging"
	"github.com/propfolio/streetfarm/internal/sheet"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`

	// Counts is present for none-qualifying imports so the UI can tell the
	// user what happened to their rows.
	Counts map[string]int `json:"counts,omitempty"`
}

// respondError maps engine errors to HTTP responses and logs the technical
// detail server-side.
//
// Client-side input problems (empty file, nothing qualifying, unparseable
// upload) are 400s; a ledger write failure is a 502 since the engine was
// fine and the backend was not.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error(), Code: "INTERNAL"}
	status := http.StatusInternalServerError

	var nq *importer.NoneQualifyingError
	switch {
	case errors.Is(err, importer.ErrNoData):
		status = http.StatusBadRequest
		resp.Code = "NO_DATA"
		// The sentence users have always seen for an empty upload.
		resp.Error = "No data found in the file"
	case errors.As(err, &nq):
		status = http.StatusBadRequest
		resp.Code = "NONE_QUALIFYING"
		resp.Counts = map[string]int{
			"duplicates": nq.Duplicates,
			"unmatched":  nq.Unmatched,
			"dropped":    nq.Dropped,
		}
	case errors.As(err, new(*sheet.FormatError)):
		status = http.StatusBadRequest
		resp.Code = "BAD_FILE"
	default:
		// Snapshot loads and the bulk insert are the only other failure
		// sources; both mean the backing store misbehaved.
		status = http.StatusBadGateway
		resp.Code = "STORE_FAILURE"
	}

	logging.FromContext(r.Context()).Error("import request failed",
		"path", r.URL.Path,
		"status", status,
		"code", resp.Code,
		"error", err.Error(),
	)

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: "BAD_REQUEST"})
}
