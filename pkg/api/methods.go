package api

import (
	"context"
	"fmt"

	"github.com/chatterhq/chatter-go/pkg/block"
)

// call issues a method call and decodes the successful envelope into T.
func call[T any](ctx context.Context, c *Client, method string, payload any) (*T, error) {
	env, err := c.Call(ctx, method, payload)
	if err != nil {
		return nil, err
	}
	var out T
	if !env.Decode(&out) {
		return nil, fmt.Errorf("chatter: %s: unexpected response shape", method)
	}
	return &out, nil
}

// Message is a posted message as returned by the platform.
type Message struct {
	TS       string       `json:"ts"`
	User     string       `json:"user,omitempty"`
	Text     string       `json:"text,omitempty"`
	ThreadTS string       `json:"thread_ts,omitempty"`
	Blocks   block.Blocks `json:"blocks,omitempty"`
}

// Channel is a conversation as returned by conversations.* methods.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPrivate  bool   `json:"is_private,omitempty"`
	IsArchived bool   `json:"is_archived,omitempty"`
	Topic      string `json:"topic,omitempty"`
	NumMembers int    `json:"num_members,omitempty"`
}

// User is a workspace member as returned by users.list.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name,omitempty"`
	IsBot    bool   `json:"is_bot,omitempty"`
	Deleted  bool   `json:"deleted,omitempty"`
}

// AuthTestResponse is the payload of auth.test.
type AuthTestResponse struct {
	URL    string `json:"url"`
	Team   string `json:"team"`
	TeamID string `json:"team_id"`
	User   string `json:"user"`
	UserID string `json:"user_id"`
}

// AuthTest checks the token and reports the authenticated identity.
func (c *Client) AuthTest(ctx context.Context) (*AuthTestResponse, error) {
	return call[AuthTestResponse](ctx, c, "auth.test", nil)
}

// ChatPostMessageRequest is the request body for chat.postMessage.
type ChatPostMessageRequest struct {
	Channel     string       `json:"channel"`
	Text        string       `json:"text,omitempty"`
	Blocks      block.Blocks `json:"blocks,omitempty"`
	ThreadTS    string       `json:"thread_ts,omitempty"`
	UnfurlLinks bool         `json:"unfurl_links,omitempty"`
}

// ChatPostMessageResponse is the payload of chat.postMessage.
type ChatPostMessageResponse struct {
	Channel string   `json:"channel"`
	TS      string   `json:"ts"`
	Message *Message `json:"message,omitempty"`
}

// ChatPostMessage posts a message to a channel.
func (c *Client) ChatPostMessage(ctx context.Context, req ChatPostMessageRequest) (*ChatPostMessageResponse, error) {
	return call[ChatPostMessageResponse](ctx, c, "chat.postMessage", req)
}

// ChatUpdateRequest is the request body for chat.update.
type ChatUpdateRequest struct {
	Channel string       `json:"channel"`
	TS      string       `json:"ts"`
	Text    string       `json:"text,omitempty"`
	Blocks  block.Blocks `json:"blocks,omitempty"`
}

// ChatUpdate edits a previously posted message.
func (c *Client) ChatUpdate(ctx context.Context, req ChatUpdateRequest) (*ChatPostMessageResponse, error) {
	return call[ChatPostMessageResponse](ctx, c, "chat.update", req)
}

// ConversationsListRequest is the request body for conversations.list.
type ConversationsListRequest struct {
	Types           string `json:"types,omitempty"`
	ExcludeArchived bool   `json:"exclude_archived,omitempty"`
	Limit           int    `json:"limit,omitempty"`
}

// ConversationsListPage is the per-page payload of conversations.list.
type ConversationsListPage struct {
	Channels []Channel `json:"channels"`
}

// ConversationsList starts a paginated traversal of the workspace's
// conversations. Decode each page into a ConversationsListPage.
func (c *Client) ConversationsList(req ConversationsListRequest) (*Pager, error) {
	return c.Paginate("conversations.list", req)
}

// ConversationsHistoryRequest is the request body for conversations.history.
type ConversationsHistoryRequest struct {
	Channel string `json:"channel"`
	Oldest  string `json:"oldest,omitempty"`
	Latest  string `json:"latest,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// ConversationsHistoryPage is the per-page payload of conversations.history.
type ConversationsHistoryPage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more,omitempty"`
}

// ConversationsHistory starts a paginated traversal of a channel's
// message history. Decode each page into a ConversationsHistoryPage.
func (c *Client) ConversationsHistory(req ConversationsHistoryRequest) (*Pager, error) {
	return c.Paginate("conversations.history", req)
}

// UsersListRequest is the request body for users.list.
type UsersListRequest struct {
	Limit int `json:"limit,omitempty"`
}

// UsersListPage is the per-page payload of users.list.
type UsersListPage struct {
	Members []User `json:"members"`
}

// UsersList starts a paginated traversal of the workspace's members.
// Decode each page into a UsersListPage.
func (c *Client) UsersList(req UsersListRequest) (*Pager, error) {
	return c.Paginate("users.list", req)
}

// ViewRef identifies a view instance created by the platform.
type ViewRef struct {
	ID         string `json:"id"`
	TeamID     string `json:"team_id,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

// ViewsOpenRequest is the request body for views.open.
type ViewsOpenRequest struct {
	TriggerID string     `json:"trigger_id"`
	View      block.View `json:"view"`
}

// ViewsOpenResponse is the payload of views.open.
type ViewsOpenResponse struct {
	View ViewRef `json:"view"`
}

// ViewsOpen opens a modal in response to a user interaction.
func (c *Client) ViewsOpen(ctx context.Context, req ViewsOpenRequest) (*ViewsOpenResponse, error) {
	return call[ViewsOpenResponse](ctx, c, "views.open", req)
}

// ViewsPublishRequest is the request body for views.publish.
type ViewsPublishRequest struct {
	UserID string     `json:"user_id"`
	View   block.View `json:"view"`
}

// ViewsPublish publishes a home tab view for a user.
func (c *Client) ViewsPublish(ctx context.Context, req ViewsPublishRequest) (*ViewsOpenResponse, error) {
	return call[ViewsOpenResponse](ctx, c, "views.publish", req)
}

// appsConnectionsOpenResponse is the payload of apps.connections.open.
type appsConnectionsOpenResponse struct {
	URL string `json:"url"`
}

// AppsConnectionsOpen requests a fresh socket-mode WebSocket URL.
func (c *Client) AppsConnectionsOpen(ctx context.Context) (string, error) {
	resp, err := call[appsConnectionsOpenResponse](ctx, c, "apps.connections.open", nil)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}
