package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kazisaheb/Gemini-Lens/gemini"
	"github.com/kazisaheb/Gemini-Lens/preset"
)

var ErrBusy = errors.New("an edit is already in flight")
var ErrNotAuthenticated = errors.New("not authenticated")

// Messages surfaced to the page. Exactly one is shown at a time; a later
// error replaces an earlier one.
const (
	msgNoImage    = "The model finished without returning an image. Try a different instruction."
	msgCredential = "Your API key is invalid or no longer works. Select a key to continue editing."
	msgQuota      = "This model requires a billed API plan. See https://ai.google.dev/gemini-api/docs/billing for details."
	msgTransient  = "Something went wrong while editing the image. Please try again."
)

// Editor performs one remote image edit and returns PNG bytes.
type Editor interface {
	EditImage(ctx context.Context, image []byte, mimeType, instruction string) ([]byte, error)
}

// Gate is the authentication state the workflow consults and may revoke.
type Gate interface {
	Authenticated() bool
	Revoke()
}

// Instructions resolves a sub-preset ID to its canned instruction.
type Instructions interface {
	Lookup(id string) (preset.SubPreset, error)
}

// Workflow turns (session source image, active instruction) into one request
// to the remote model and applies the response to the session.
type Workflow struct {
	editor  Editor
	presets Instructions
	gate    Gate
	log     *zap.SugaredLogger
}

func NewWorkflow(editor Editor, presets Instructions, gate Gate, log *zap.SugaredLogger) *Workflow {
	return &Workflow{editor: editor, presets: presets, gate: gate, log: log}
}

// Run executes one edit against s. With no source image it is a no-op: no
// state changes, nil error. ErrBusy and ErrNotAuthenticated reject the
// trigger before any state changes. Every other outcome — success, a
// response with no image, or a service failure — settles in-band: the
// in-flight flag is cleared, the session's error message and the gate are
// updated, and the connected client gets a fresh snapshot.
func (w *Workflow) Run(ctx context.Context, s *Session) error {
	s.mu.Lock()
	if len(s.source) == 0 {
		s.mu.Unlock()
		return nil
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	if !w.gate.Authenticated() {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.inFlight = true
	s.lastError = ""
	s.LastActive = time.Now()

	source := make([]byte, len(s.source))
	copy(source, s.source)
	mimeType := s.sourceMIME
	presetID := s.presetID
	override := s.instruction
	s.mu.Unlock()

	instruction := DefaultInstruction
	if override != "" {
		instruction = override
	} else if presetID != "" {
		if sp, err := w.presets.Lookup(presetID); err == nil {
			instruction = sp.Instruction
		}
	}

	// Single outstanding request; the caller suspends until it settles.
	out, err := w.editor.EditImage(ctx, source, mimeType, instruction)

	s.mu.Lock()
	s.inFlight = false
	switch {
	case err == nil:
		now := time.Now()
		s.result = out
		s.history.Add(HistoryItem{
			ID:          now.UnixMilli(),
			Original:    dataURL(mimeType, source),
			Edited:      dataURL("image/png", out),
			Instruction: instruction,
			CreatedAt:   now,
		})
		w.log.Infow("edit completed", "session", s.ID, "bytes", len(out))
	case errors.Is(err, gemini.ErrNoImage):
		// The model answered, just without an image. The result and the
		// credential are both left alone.
		s.lastError = msgNoImage
		w.log.Infow("edit produced no image", "session", s.ID)
	default:
		switch gemini.ClassifyError(err) {
		case gemini.KindCredential:
			s.lastError = msgCredential
			w.gate.Revoke()
		case gemini.KindQuota:
			s.lastError = msgQuota
		default:
			s.lastError = msgTransient
		}
		w.log.Warnw("edit failed", "session", s.ID, "err", err)
	}
	s.mu.Unlock()

	s.pushState(s.Snapshot(w.gate.Authenticated()))
	return nil
}
