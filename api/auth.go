package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kazisaheb/Gemini-Lens/auth"
)

type authState struct {
	Authenticated bool `json:"authenticated"`
}

func (h *handler) getAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(authState{Authenticated: h.gate.Authenticated()})
}

// selectKey triggers the host's key-selection dialog and reports the
// confirmed gate state afterwards.
func (h *handler) selectKey(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Select(r.Context()); err != nil {
		if errors.Is(err, auth.ErrNoBridge) {
			http.Error(w, "no credential bridge available", http.StatusNotImplemented)
			return
		}
		h.log.Warnw("key selection failed", "err", err)
		http.Error(w, "key selection failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(authState{Authenticated: h.gate.Authenticated()})
}
