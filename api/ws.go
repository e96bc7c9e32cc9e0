package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/kazisaheb/Gemini-Lens/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type  string         `json:"type"` // "state" or "closed"
	State *session.State `json:"state,omitempty"`
}

// handleWS pushes session state snapshots to the page: one on connect, then
// one each time the edit workflow settles. The page never writes anything
// meaningful back; the read loop only detects disconnects.
func (h *handler) handleWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Serialise all WebSocket writes — gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg wsMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	outChan := make(chan session.State, 8)
	kick := s.SetClient(outChan) // also sets s.Connected = true; kicks any prior client
	defer s.ClearClient(outChan) // closes outChan + clears session state if still owner

	// Initial snapshot so the page renders without a separate GET.
	st := s.Snapshot(h.gate.Authenticated())
	if err := writeMsg(wsMessage{Type: "state", State: &st}); err != nil {
		h.log.Warnw("ws initial snapshot failed", "err", err)
		return
	}

	// Goroutine: pump workflow snapshots to the client.
	// Exits when ClearClient closes outChan.
	go func() {
		for st := range outChan {
			st := st
			if err := writeMsg(wsMessage{Type: "state", State: &st}); err != nil {
				return
			}
		}
	}()

	// Goroutine: watch for session removal or displacement and close the
	// connection so the read loop below unblocks immediately.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-s.Done():
			writeMsg(wsMessage{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection — close without a "closed"
			// message so the page shows the disconnected overlay rather
			// than session-ended.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	// Read loop: only here to notice the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			// Client disconnected, or conn was closed by the watcher above.
			// Either way the session keeps its state.
			return
		}
	}
}
