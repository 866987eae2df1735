package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/codalotl/redline/internal/diff"
	"github.com/codalotl/redline/internal/document"
)

type diffRequest struct {
	Original  string          `json:"original"`
	Corrected string          `json:"corrected"`
	Patches   json.RawMessage `json:"patches"`
}

type diffResponse struct {
	Operations []diff.Operation `json:"operations"`
	Views      diff.Views       `json:"views"`
	Stats      diff.Stats       `json:"stats"`
}

type documentDiffRequest struct {
	Original  json.RawMessage `json:"original"`
	Corrected json.RawMessage `json:"corrected"`
	Patches   json.RawMessage `json:"patches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if !s.decode(w, r, &req) {
		return
	}
	patches, err := diff.UnmarshalPatches(req.Patches)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := diff.CheckPatches(s.cfg.Limits.MaxPatches, patches); err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	if err := diff.CheckLimit(s.cfg.Limits.MaxTokens, req.Original, req.Corrected); err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	ops := diff.Reconcile(req.Original, req.Corrected, patches)
	stats := diff.CountStats(ops)
	s.logger.Debug("diff served", "ops", len(ops), "patches", len(patches), "inserted", stats.Inserted, "deleted", stats.Deleted)
	s.writeJSON(w, http.StatusOK, diffResponse{
		Operations: ops,
		Views:      diff.NewViews(ops),
		Stats:      stats,
	})
}

func (s *Server) handleDocumentDiff(w http.ResponseWriter, r *http.Request) {
	var req documentDiffRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Original) == 0 || len(req.Corrected) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("original and corrected are required"))
		return
	}
	patches, err := diff.UnmarshalPatches(req.Patches)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := diff.CheckPatches(s.cfg.Limits.MaxPatches, patches); err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	res, err := document.Diff(r.Context(), req.Original, req.Corrected, patches,
		document.WithWorkers(s.cfg.Document.Workers),
		document.WithMaxTokens(s.cfg.Limits.MaxTokens),
	)
	switch {
	case errors.Is(err, diff.ErrTooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	case err != nil:
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// decode reads a JSON body into v, answering 413 or 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
