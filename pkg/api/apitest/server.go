// Package apitest provides a scriptable fake Chatter API server for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Call records one request received by the fake server.
type Call struct {
	// Method is the API method name, e.g. "chat.postMessage".
	Method string

	// Body is the raw request body.
	Body json.RawMessage
}

// Params decodes the recorded request body into a parameter map.
func (c Call) Params() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(c.Body, &m)
	return m
}

// response is one scripted reply.
type response struct {
	status     int
	retryAfter int
	body       []byte
}

// Server is a fake Chatter API server. Responses are scripted per method
// as a FIFO queue; an unscripted method answers {"ok":true}. All methods
// are safe for concurrent use.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	calls     []Call
	responses map[string][]response
}

// NewServer starts a fake server. It is shut down automatically when the
// test finishes.
func NewServer(t testing.TB) *Server {
	s := &Server{responses: make(map[string][]response)}

	r := chi.NewRouter()
	r.Post("/api/{method}", s.handle)

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the base URL of the fake server, suitable for
// api.WithBaseURL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Respond enqueues a successful response body for a method. body is
// marshaled and must include neither "ok" nor envelope metadata; they are
// added automatically.
func (s *Server) Respond(method string, body map[string]any) {
	s.RespondPage(method, body, "")
}

// RespondPage enqueues a successful response carrying a pagination
// cursor. An empty cursor marks the final page.
func (s *Server) RespondPage(method string, body map[string]any, nextCursor string) {
	payload := map[string]any{"ok": true}
	for k, v := range body {
		payload[k] = v
	}
	if nextCursor != "" {
		payload["response_metadata"] = map[string]any{"next_cursor": nextCursor}
	}
	s.enqueue(method, response{status: http.StatusOK, body: mustMarshal(payload)})
}

// RespondError enqueues an ok:false response with the given error code.
func (s *Server) RespondError(method, code string) {
	s.enqueue(method, response{
		status: http.StatusOK,
		body:   mustMarshal(map[string]any{"ok": false, "error": code}),
	})
}

// RespondRateLimited enqueues a 429 response with a Retry-After hint
// given in whole seconds.
func (s *Server) RespondRateLimited(method string, retryAfter int) {
	s.enqueue(method, response{
		status:     http.StatusTooManyRequests,
		retryAfter: retryAfter,
		body: mustMarshal(map[string]any{
			"ok":          false,
			"error":       "rate_limited",
			"retry_after": retryAfter,
		}),
	})
}

// RespondStatus enqueues a bare HTTP status with an empty JSON envelope,
// e.g. to simulate a 503 from a proxy.
func (s *Server) RespondStatus(method string, status int) {
	s.enqueue(method, response{
		status: status,
		body:   mustMarshal(map[string]any{"ok": false, "error": "service_unavailable"}),
	})
}

// Paginate scripts a full paginated traversal: each page is enqueued with
// an opaque cursor pointing at the next, the last page with none.
func (s *Server) Paginate(method string, pages ...map[string]any) {
	for i, page := range pages {
		cursor := ""
		if i < len(pages)-1 {
			cursor = fmt.Sprintf("cursor-%d", i+1)
		}
		s.RespondPage(method, page, cursor)
	}
}

// Calls returns the recorded requests for a method, in arrival order.
func (s *Server) Calls(method string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// CallCount returns the number of requests recorded for a method.
func (s *Server) CallCount(method string) int {
	return len(s.Calls(method))
}

func (s *Server) enqueue(method string, resp response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[method] = append(s.responses[method], resp)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")

	body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Body: json.RawMessage(body)})
	queue := s.responses[method]
	var resp response
	if len(queue) > 0 {
		resp = queue[0]
		s.responses[method] = queue[1:]
	} else {
		resp = response{status: http.StatusOK, body: []byte(`{"ok":true}`)}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if resp.retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(resp.retryAfter))
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write(resp.body)
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
