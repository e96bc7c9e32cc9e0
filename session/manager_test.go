package session

import (
	"testing"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager()
	s := m.Create()
	if s.ID == "" {
		t.Fatal("expected non-empty session ID")
	}
	got, ok := m.Get(s.ID)
	if !ok {
		t.Fatal("Get returned ok=false for existing session")
	}
	if got.ID != s.ID {
		t.Fatal("Get returned wrong session")
	}
}

func TestList(t *testing.T) {
	m := NewManager()
	m.Create()
	m.Create()
	if list := m.List(); len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
}

func TestRemove(t *testing.T) {
	m := NewManager()
	s := m.Create()
	if err := m.Remove(s.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := m.Get(s.ID); ok {
		t.Fatal("session still exists after Remove")
	}
}

func TestRemoveClosesDone(t *testing.T) {
	m := NewManager()
	s := m.Create()
	m.Remove(s.ID)

	select {
	case <-s.Done():
		// ok — done channel closed on removal
	default:
		t.Fatal("Done channel was not closed on Remove")
	}
}

func TestRemoveNotFound(t *testing.T) {
	m := NewManager()
	if err := m.Remove("nonexistent"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	m := NewManager()
	if _, ok := m.Get("nonexistent"); ok {
		t.Fatal("expected ok=false for nonexistent session")
	}
}
