// Package auth holds the session authentication gate: no edit may be
// submitted until the gate has confirmed a usable credential.
package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrNoBridge is returned when key selection is requested but the host
// provides no credential bridge.
var ErrNoBridge = errors.New("no credential bridge available")

// Bridge is the host-provided mechanism for obtaining or confirming an API
// credential. It is an optional capability; deployments without one get
// NullBridge.
type Bridge interface {
	// HasSelectedKey reports whether the host already holds a selected key.
	HasSelectedKey(ctx context.Context) (bool, error)
	// OpenSelectKey triggers the host's key-selection UI and returns when
	// the dialog is dismissed.
	OpenSelectKey(ctx context.Context) error
}

// NullBridge is the fallback when no bridge is configured.
type NullBridge struct{}

func (NullBridge) HasSelectedKey(ctx context.Context) (bool, error) { return false, nil }
func (NullBridge) OpenSelectKey(ctx context.Context) error          { return ErrNoBridge }

// Gate tracks whether the process holds a usable credential.
type Gate struct {
	mu     sync.Mutex
	bridge Bridge
	authed bool
}

// NewGate wraps bridge; nil falls back to NullBridge.
func NewGate(bridge Bridge) *Gate {
	if bridge == nil {
		bridge = NullBridge{}
	}
	return &Gate{bridge: bridge}
}

// Probe runs the startup check: an environment-supplied credential wins
// outright; otherwise the bridge is asked whether a key is already selected.
// Bridge errors leave the gate closed rather than failing startup.
func (g *Gate) Probe(ctx context.Context, envKey string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if envKey != "" {
		g.authed = true
		return
	}
	if ok, err := g.bridge.HasSelectedKey(ctx); err == nil && ok {
		g.authed = true
	}
}

// Select triggers the bridge's key-selection UI, then re-probes. The gate
// opens only on a confirmed key: merely dismissing the dialog is not enough.
func (g *Gate) Select(ctx context.Context) error {
	if err := g.bridge.OpenSelectKey(ctx); err != nil {
		return err
	}

	ok, err := g.bridge.HasSelectedKey(ctx)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.authed = ok
	g.mu.Unlock()
	return nil
}

// Authenticated reports whether the gate currently holds a usable credential.
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authed
}

// Revoke closes the gate. Called when an edit fails with a credential-class
// error; the user must select a key again.
func (g *Gate) Revoke() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authed = false
}
