package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestGetAuth(t *testing.T) {
	srv, gate := newTestServer(t, nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/auth")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var state struct {
		Authenticated bool `json:"authenticated"`
	}
	json.NewDecoder(resp.Body).Decode(&state)
	if !state.Authenticated {
		t.Fatal("expected authenticated gate in test server")
	}

	gate.Revoke()
	resp2, err := http.Get(srv.URL + "/api/auth")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	json.NewDecoder(resp2.Body).Decode(&state)
	if state.Authenticated {
		t.Fatal("expected unauthenticated gate after Revoke")
	}
}

func TestSelectKeyNoBridge(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	defer srv.Close()

	// The test server runs with the null bridge.
	resp, err := http.Post(srv.URL+"/api/auth/select", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("expected 501 without a bridge, got %d", resp.StatusCode)
	}
}
