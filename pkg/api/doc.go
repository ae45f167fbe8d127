// Package api implements the Chatter Web API protocol layer: an
// authenticated JSON-over-POST client with rate-limit aware retries,
// response envelopes, and cursor-based pagination.
//
// # Calls
//
//	c := api.New(token, api.WithLogger(logger))
//	resp, err := c.ChatPostMessage(ctx, api.ChatPostMessageRequest{
//	    Channel: "C123",
//	    Blocks:  blocks,
//	})
//
// Every method wrapper delegates to Call, which wraps one logical request
// with the retry policy and returns an *Envelope. Remote failures
// (ok:false) become *APIError values; transient failures are retried with
// exponential backoff, honoring explicit retry-after hints, and a used-up
// attempt budget surfaces a *RetryExhaustedError wrapping the last
// failure. Classification is by errors.Is against ErrRateLimited and
// ErrServiceUnavailable.
//
// # Pagination
//
// Paginated methods return a *Pager. Each Next issues exactly one call,
// re-sending the original parameters with only the cursor replaced, and
// stops with ErrNoMorePages once the platform omits the next cursor:
//
//	pager, _ := c.ConversationsList(api.ConversationsListRequest{Limit: 200})
//	for !pager.Done() {
//	    env, err := pager.Next(ctx)
//	    ...
//	}
package api
