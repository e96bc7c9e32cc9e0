package api

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kazisaheb/Gemini-Lens/auth"
	"github.com/kazisaheb/Gemini-Lens/preset"
	"github.com/kazisaheb/Gemini-Lens/session"
)

func RegisterRoutes(sessions *session.Manager, presets *preset.Manager, wf *session.Workflow, gate *auth.Gate, log *zap.SugaredLogger, staticFS fs.FS) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	h := &handler{
		sessions: sessions,
		presets:  presets,
		workflow: wf,
		gate:     gate,
		log:      log,
	}

	// Auth gate
	r.Get("/api/auth", h.getAuth)
	r.Post("/api/auth/select", h.selectKey)

	// Presets API
	r.Get("/api/presets", h.getPresets)
	r.Post("/api/presets/{id}/use", h.usePreset)

	// Sessions API
	r.Post("/api/sessions", h.createSession)
	r.Get("/api/sessions/{id}", h.getSession)
	r.Delete("/api/sessions/{id}", h.deleteSession)
	r.Put("/api/sessions/{id}/image", h.uploadImage)
	r.Post("/api/sessions/{id}/select-preset", h.selectPreset)
	r.Post("/api/sessions/{id}/instruction", h.setInstruction)
	r.Post("/api/sessions/{id}/edits", h.submitEdit)
	r.Get("/api/sessions/{id}/history", h.getHistory)

	// WebSocket
	r.Get("/api/sessions/{id}/ws", h.handleWS)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// In dev mode staticFS is already rooted at static/, so Sub returns a
	// wrapper unconditionally (no error) but the sub-FS would look for
	// static/static/* which doesn't exist. Probe index.html to detect this.
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		staticSub = staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = staticFS
	}

	// Serve the page by reading from the FS directly. Using http.FileServer
	// with r.URL.Path ending in "index.html" triggers Go's built-in redirect
	// to "./" — avoid that by reading the file manually.
	r.Get("/", serveFile(staticSub, "index.html"))

	// Static assets — use standard file server
	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// requestLogger is chi's Logger middleware shape with zap underneath.
func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debugw("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"dur", time.Since(start))
		})
	}
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type handler struct {
	sessions *session.Manager
	presets  *preset.Manager
	workflow *session.Workflow
	gate     *auth.Gate
	log      *zap.SugaredLogger
}
