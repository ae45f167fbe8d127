package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// ErrNoMorePages is returned by Pager.Next once the result set is
// exhausted.
var ErrNoMorePages = errors.New("chatter: no more pages")

// pagerState tracks the continuation state machine:
// start -> hasCursor -> {hasCursor, exhausted}.
type pagerState int

const (
	pagerStart pagerState = iota
	pagerCursor
	pagerExhausted
)

// Pager walks a cursor-paginated method lazily, one remote call per Next.
// Every page reuses the original parameters with only the cursor replaced,
// so a Pager is a resumable, strictly ordered, forward-only traversal:
// page N+1 is never requested before page N's response has been observed.
//
// A Pager is not safe for concurrent use; pages are inherently sequential.
type Pager struct {
	client *Client
	method string
	params map[string]any
	cursor string
	state  pagerState
}

// Paginate creates a Pager for a cursor-paginated method. params may be
// nil, a struct with JSON tags, or a map; a "cursor" key in the initial
// params resumes a previous traversal from that cursor.
func (c *Client) Paginate(method string, params any) (*Pager, error) {
	m, err := toParams(params)
	if err != nil {
		return nil, fmt.Errorf("chatter: paginate %s: %w", method, err)
	}
	return &Pager{client: c, method: method, params: m}, nil
}

// Next issues the call for the next page and returns its envelope. After
// the final page it returns ErrNoMorePages. A call failure leaves the
// pager state unchanged, so the same page may be retried by calling Next
// again.
func (p *Pager) Next(ctx context.Context) (*Envelope, error) {
	if p.state == pagerExhausted {
		return nil, ErrNoMorePages
	}

	req := make(map[string]any, len(p.params)+1)
	maps.Copy(req, p.params)
	if p.state == pagerCursor {
		req["cursor"] = p.cursor
	}

	env, err := p.client.Call(ctx, p.method, req)
	if err != nil {
		return nil, err
	}

	if env.HasNextCursor() {
		p.cursor = env.NextCursor()
		p.state = pagerCursor
	} else {
		p.state = pagerExhausted
	}
	return env, nil
}

// Done reports whether the traversal is exhausted.
func (p *Pager) Done() bool {
	return p.state == pagerExhausted
}

// toParams normalizes arbitrary request parameters into a map so the
// cursor can be substituted without disturbing the rest.
func toParams(params any) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	if m, ok := params.(map[string]any); ok {
		out := make(map[string]any, len(m))
		maps.Copy(out, m)
		return out, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
