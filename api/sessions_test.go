package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"github.com/kazisaheb/Gemini-Lens/api"
	"github.com/kazisaheb/Gemini-Lens/auth"
	"github.com/kazisaheb/Gemini-Lens/preset"
	"github.com/kazisaheb/Gemini-Lens/session"
)

// stubEditor is a no-network Editor for handler tests.
type stubEditor struct {
	mu  sync.Mutex
	out []byte
	err error
}

func (e *stubEditor) EditImage(ctx context.Context, image []byte, mimeType, instruction string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.out, e.err
}

func newTestServer(t *testing.T, editor session.Editor) (*httptest.Server, *auth.Gate) {
	t.Helper()
	if editor == nil {
		editor = &stubEditor{out: []byte("edited")}
	}

	mgr := session.NewManager()
	pm, err := preset.NewManager("")
	if err != nil {
		t.Fatalf("preset.NewManager: %v", err)
	}

	gate := auth.NewGate(nil)
	gate.Probe(context.Background(), "test-key")

	log := zap.NewNop().Sugar()
	wf := session.NewWorkflow(editor, pm, gate, log)

	staticFS := fstest.MapFS{
		"index.html": {Data: []byte("<html></html>")},
	}
	srv := httptest.NewServer(api.RegisterRoutes(mgr, pm, wf, gate, log, staticFS))
	return srv, gate
}

func createTestSession(t *testing.T, srv *httptest.Server) session.State {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/sessions: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var st session.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func uploadTestImage(t *testing.T, srv *httptest.Server, id, mimeType string, data []byte) session.State {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/sessions/"+id+"/image", bytes.NewReader(data))
	req.Header.Set("Content-Type", mimeType)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var st session.State
	json.NewDecoder(resp.Body).Decode(&st)
	return st
}

func postJSON(t *testing.T, url string, body string) (*http.Response, session.State) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	var st session.State
	if resp.StatusCode == http.StatusOK {
		json.NewDecoder(resp.Body).Decode(&st)
	}
	resp.Body.Close()
	return resp, st
}

func TestCreateSession(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)
	if st.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	if !st.Authenticated {
		t.Fatal("expected authenticated state with env key probed")
	}
	if st.InFlight || st.Error != "" || st.Source != "" {
		t.Fatalf("fresh session should be idle and empty: %+v", st)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/sessions/nonexistent")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteSession(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+st.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	getResp, _ := http.Get(srv.URL + "/api/sessions/" + st.ID)
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getResp.StatusCode)
	}
}

func TestUploadImage(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)
	st = uploadTestImage(t, srv, st.ID, "image/png", []byte("png-bytes"))

	if !strings.HasPrefix(st.Source, "data:image/png;base64,") {
		t.Fatalf("expected data URL source, got %q", st.Source)
	}
	if st.SourceMIME != "image/png" {
		t.Fatalf("expected mime image/png, got %q", st.SourceMIME)
	}
}

func TestUploadImageWrongContentType(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/sessions/"+st.ID+"/image", strings.NewReader("zzz"))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.StatusCode)
	}
}

func TestUploadImageEmptyBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/sessions/"+st.ID+"/image", nil)
	req.Header.Set("Content-Type", "image/png")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSelectPresetAndInstructionExclusion(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)

	_, st = postJSON(t, srv.URL+"/api/sessions/"+st.ID+"/select-preset", `{"id":"remove-noise"}`)
	if st.PresetID != "remove-noise" {
		t.Fatalf("expected preset selected, got %q", st.PresetID)
	}

	_, st = postJSON(t, srv.URL+"/api/sessions/"+st.ID+"/instruction", `{"text":"make it blue"}`)
	if st.Instruction != "make it blue" {
		t.Fatalf("expected instruction set, got %q", st.Instruction)
	}
	if st.PresetID != "" {
		t.Fatalf("free-text must clear the preset, got %q", st.PresetID)
	}

	_, st = postJSON(t, srv.URL+"/api/sessions/"+st.ID+"/select-preset", `{"id":"sharpen"}`)
	if st.PresetID != "sharpen" || st.Instruction != "" {
		t.Fatalf("preset must clear free-text: %+v", st)
	}
}

func TestSelectPresetUnknown(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)
	resp, _ := postJSON(t, srv.URL+"/api/sessions/"+st.ID+"/select-preset", `{"id":"ghost"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown preset, got %d", resp.StatusCode)
	}
}

func TestGetHistoryEmpty(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	st := createTestSession(t, srv)
	resp, err := http.Get(srv.URL + "/api/sessions/" + st.ID + "/history")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var items []session.HistoryItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("history should decode as a JSON array: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty history, got %d items", len(items))
	}
}
