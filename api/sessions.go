package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kazisaheb/Gemini-Lens/session"
)

// maxImageBytes bounds uploaded source images (the remote model rejects
// larger payloads anyway).
const maxImageBytes = 10 << 20 // 10MB

func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s.Snapshot(h.gate.Authenticated()))
}

func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Snapshot(h.gate.Authenticated()))
}

func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Remove(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to remove session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadImage stores the request body as the session's source image. The
// media type comes from the Content-Type header and must be an image type.
func (h *handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	mimeType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		http.Error(w, "content-type must be an image type", http.StatusUnsupportedMediaType)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
		return
	}
	if len(data) == 0 {
		http.Error(w, "empty image body", http.StatusBadRequest)
		return
	}

	s.SetSource(data, mimeType)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Snapshot(h.gate.Authenticated()))
}

func (h *handler) selectPreset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if _, err := h.presets.Lookup(req.ID); err != nil {
		http.Error(w, "preset not found", http.StatusNotFound)
		return
	}

	s.SelectPreset(req.ID)
	h.presets.MarkUsed(req.ID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Snapshot(h.gate.Authenticated()))
}

func (h *handler) setInstruction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.SetInstruction(req.Text)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Snapshot(h.gate.Authenticated()))
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	items := s.History()
	if items == nil {
		items = []session.HistoryItem{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}
