package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

func postJSON(t *testing.T, url string, body map[string]any) map[string]any {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestServerQueuesResponsesPerMethod(t *testing.T) {
	t.Parallel()

	s := NewServer(t)
	s.Respond("auth.test", map[string]any{"user_id": "U1"})
	s.RespondError("auth.test", "invalid_auth")

	first := postJSON(t, s.URL()+"/api/auth.test", nil)
	if first["ok"] != true || first["user_id"] != "U1" {
		t.Errorf("first response = %v", first)
	}

	second := postJSON(t, s.URL()+"/api/auth.test", nil)
	if second["ok"] != false || second["error"] != "invalid_auth" {
		t.Errorf("second response = %v", second)
	}

	// An empty queue falls back to a plain ok.
	third := postJSON(t, s.URL()+"/api/auth.test", nil)
	if third["ok"] != true {
		t.Errorf("third response = %v", third)
	}

	if got := s.CallCount("auth.test"); got != 3 {
		t.Errorf("CallCount = %d, want 3", got)
	}
}

func TestServerPaginateChainsCursors(t *testing.T) {
	t.Parallel()

	s := NewServer(t)
	s.Paginate("users.list",
		map[string]any{"members": []any{}},
		map[string]any{"members": []any{}},
	)

	first := postJSON(t, s.URL()+"/api/users.list", nil)
	meta, _ := first["response_metadata"].(map[string]any)
	if meta == nil || meta["next_cursor"] == "" {
		t.Fatalf("first page missing next_cursor: %v", first)
	}

	second := postJSON(t, s.URL()+"/api/users.list", map[string]any{"cursor": meta["next_cursor"]})
	if m, _ := second["response_metadata"].(map[string]any); m != nil && m["next_cursor"] != "" {
		t.Errorf("last page must not carry a cursor: %v", second)
	}
}

func TestServerRecordsCallParams(t *testing.T) {
	t.Parallel()

	s := NewServer(t)
	postJSON(t, s.URL()+"/api/chat.postMessage", map[string]any{"channel": "C1", "text": "hi"})

	calls := s.Calls("chat.postMessage")
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Params()["channel"] != "C1" {
		t.Errorf("params = %v", calls[0].Params())
	}
}
