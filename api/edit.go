package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kazisaheb/Gemini-Lens/session"
)

// submitEdit runs the edit workflow for the session. Workflow outcomes —
// success, a response with no image, a service failure — all settle as 200
// with the resulting state; the page reads them from the error field. Only
// trigger rejections map to HTTP errors.
func (h *handler) submitEdit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if err := h.workflow.Run(r.Context(), s); err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			http.Error(w, "an edit is already in flight", http.StatusConflict)
		case errors.Is(err, session.ErrNotAuthenticated):
			http.Error(w, "select an API key first", http.StatusUnauthorized)
		default:
			http.Error(w, "edit failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Snapshot(h.gate.Authenticated()))
}
