package session

import (
	"encoding/base64"
	"sync"
	"time"
)

const maxHistory = 20

// DefaultInstruction is sent when neither a sub-preset nor a free-text
// override is active.
const DefaultInstruction = "Enhance this image."

// HistoryItem records one completed edit. Items are immutable once created
// and are discarded with the session. The ID is the creation time in Unix
// milliseconds; the image fields are data URLs, the edited one always PNG.
type HistoryItem struct {
	ID          int64     `json:"id"`
	Original    string    `json:"original"`
	Edited      string    `json:"edited"`
	Instruction string    `json:"instruction"`
	CreatedAt   time.Time `json:"createdAt"`
}

// State is the JSON snapshot of a session served to the page and pushed over
// the WebSocket. Image fields are data URLs; raw key material never appears.
type State struct {
	ID            string `json:"id"`
	Source        string `json:"source,omitempty"`
	SourceMIME    string `json:"sourceMime,omitempty"`
	Result        string `json:"result,omitempty"`
	PresetID      string `json:"presetId,omitempty"`
	Instruction   string `json:"instruction,omitempty"`
	InFlight      bool   `json:"inFlight"`
	Error         string `json:"error,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`

	mu          sync.Mutex
	source      []byte
	sourceMIME  string
	result      []byte // always PNG once set
	presetID    string
	instruction string // free-text override
	inFlight    bool
	lastError   string

	history *historyBuf
	done    chan struct{}

	outMu    sync.Mutex
	outChan  chan State
	kickChan chan struct{}
}

// Done returns a channel that is closed when the session is removed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// SetSource stores a new source image, clearing any previous result and
// error. A new source starts a fresh edit, not a continuation.
func (s *Session) SetSource(data []byte, mimeType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(data))
	copy(cp, data)
	s.source = cp
	s.sourceMIME = mimeType
	s.result = nil
	s.lastError = ""
	s.LastActive = time.Now()
}

// SelectPreset makes the sub-preset the active instruction source, clearing
// any free-text override. At most one of the two is active.
func (s *Session) SelectPreset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presetID = id
	s.instruction = ""
	s.LastActive = time.Now()
}

// SetInstruction stores a free-text override. A non-empty override clears the
// selected sub-preset; an empty one only clears the override itself.
func (s *Session) SetInstruction(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruction = text
	if text != "" {
		s.presetID = ""
	}
	s.LastActive = time.Now()
}

// Snapshot returns the session state as served to the page. The gate's
// authenticated flag is process-level, so the caller supplies it.
func (s *Session) Snapshot(authenticated bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		ID:            s.ID,
		Source:        dataURL(s.sourceMIME, s.source),
		SourceMIME:    s.sourceMIME,
		Result:        dataURL("image/png", s.result),
		PresetID:      s.presetID,
		Instruction:   s.instruction,
		InFlight:      s.inFlight,
		Error:         s.lastError,
		Authenticated: authenticated,
	}
}

// History returns a copy of the edit history, newest first.
func (s *Session) History() []HistoryItem {
	return s.history.Snapshot()
}

// SetClient registers a channel to receive state snapshots. If a previous
// client is connected it is kicked: its kick channel is closed so ws.go can
// detect the displacement and close that WebSocket connection. Returns a kick
// channel that will be closed if this client is itself later displaced.
func (s *Session) SetClient(ch chan State) <-chan struct{} {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	// Displace any existing client.
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.outChan = ch
	s.Connected = true
	return kick
}

// ClearClient is called when a connection ends. It only updates session state
// if ch is still the current owner (guards against a displaced connection
// clearing a newer one). It always closes ch so the pump goroutine exits.
func (s *Session) ClearClient(ch chan State) {
	s.outMu.Lock()
	owned := s.outChan == ch
	if owned {
		s.outChan = nil
		s.Connected = false
		s.kickChan = nil
	}
	s.outMu.Unlock()
	close(ch)
}

// pushState delivers st to the connected client, if any. A slow client drops
// the snapshot rather than blocking the workflow.
func (s *Session) pushState(st State) {
	s.outMu.Lock()
	if s.outChan != nil {
		select {
		case s.outChan <- st:
		default:
		}
	}
	s.outMu.Unlock()
}

func dataURL(mimeType string, data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
