package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *handler) getPresets(w http.ResponseWriter, r *http.Request) {
	cat := h.presets.Catalog()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(cat)
}

func (h *handler) usePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// MarkUsed silently ignores non-existent IDs.
	h.presets.MarkUsed(id)

	cat := h.presets.Catalog()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"recentlyUsed": cat.RecentlyUsed})
}
