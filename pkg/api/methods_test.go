package api_test

import (
	"context"
	"testing"

	"github.com/chatterhq/chatter-go/pkg/api"
	"github.com/chatterhq/chatter-go/pkg/api/apitest"
	"github.com/chatterhq/chatter-go/pkg/block"
)

func newClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	s := apitest.NewServer(t)
	return api.New("xoxb-test", api.WithBaseURL(s.URL())), s
}

func TestAuthTest(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("auth.test", map[string]any{
		"url":     "https://acme.chatter.dev/",
		"team":    "Acme",
		"team_id": "T1",
		"user":    "deploybot",
		"user_id": "U1",
	})

	resp, err := c.AuthTest(context.Background())
	if err != nil {
		t.Fatalf("AuthTest() error: %v", err)
	}
	if resp.Team != "Acme" || resp.UserID != "U1" {
		t.Errorf("unexpected identity: %+v", resp)
	}
}

func TestChatPostMessageWithBlocks(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("chat.postMessage", map[string]any{
		"channel": "C1",
		"ts":      "1724980000.000100",
	})

	section, err := block.Section().Text(block.Markdown("*deploy finished*")).Build()
	if err != nil {
		t.Fatalf("build section: %v", err)
	}

	resp, err := c.ChatPostMessage(context.Background(), api.ChatPostMessageRequest{
		Channel: "C1",
		Text:    "deploy finished",
		Blocks:  block.Blocks{section},
	})
	if err != nil {
		t.Fatalf("ChatPostMessage() error: %v", err)
	}
	if resp.TS != "1724980000.000100" {
		t.Errorf("TS = %q", resp.TS)
	}

	calls := s.Calls("chat.postMessage")
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	params := calls[0].Params()
	if params["channel"] != "C1" {
		t.Errorf("channel = %v", params["channel"])
	}
	blocks, ok := params["blocks"].([]any)
	if !ok || len(blocks) != 1 {
		t.Fatalf("blocks = %v, want a single-element list", params["blocks"])
	}
	first, _ := blocks[0].(map[string]any)
	if first["type"] != "section" {
		t.Errorf("block type = %v, want section", first["type"])
	}
}

func TestChatUpdate(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("chat.update", map[string]any{
		"channel": "C1",
		"ts":      "1724980000.000100",
	})

	resp, err := c.ChatUpdate(context.Background(), api.ChatUpdateRequest{
		Channel: "C1",
		TS:      "1724980000.000100",
		Text:    "edited",
	})
	if err != nil {
		t.Fatalf("ChatUpdate() error: %v", err)
	}
	if resp.Channel != "C1" {
		t.Errorf("Channel = %q", resp.Channel)
	}
}

func TestConversationsListDecodesPages(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Paginate("conversations.list",
		map[string]any{"channels": []any{
			map[string]any{"id": "C1", "name": "general"},
			map[string]any{"id": "C2", "name": "random"},
		}},
		map[string]any{"channels": []any{
			map[string]any{"id": "C3", "name": "ops", "is_private": true},
		}},
	)

	pager, err := c.ConversationsList(api.ConversationsListRequest{Limit: 2})
	if err != nil {
		t.Fatalf("ConversationsList() error: %v", err)
	}

	var all []api.Channel
	for !pager.Done() {
		env, err := pager.Next(context.Background())
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		var page api.ConversationsListPage
		if !env.Decode(&page) {
			t.Fatal("page did not decode")
		}
		all = append(all, page.Channels...)
	}

	if len(all) != 3 {
		t.Fatalf("channels = %d, want 3", len(all))
	}
	if all[2].ID != "C3" || !all[2].IsPrivate {
		t.Errorf("last channel = %+v", all[2])
	}
}

func TestConversationsHistoryRoundTripsBlocks(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("conversations.history", map[string]any{
		"messages": []any{
			map[string]any{
				"ts":   "1.0",
				"text": "hello",
				"blocks": []any{
					map[string]any{"type": "header", "text": map[string]any{"type": "plain_text", "text": "Hi"}},
				},
			},
		},
	})

	pager, err := c.ConversationsHistory(api.ConversationsHistoryRequest{Channel: "C1"})
	if err != nil {
		t.Fatalf("ConversationsHistory() error: %v", err)
	}
	env, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}

	var page api.ConversationsHistoryPage
	if !env.Decode(&page) {
		t.Fatal("page did not decode")
	}
	if len(page.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(page.Messages))
	}
	hdr, ok := page.Messages[0].Blocks[0].(block.HeaderBlock)
	if !ok {
		t.Fatalf("block = %T, want block.HeaderBlock", page.Messages[0].Blocks[0])
	}
	if hdr.Text.Text != "Hi" {
		t.Errorf("header text = %q", hdr.Text.Text)
	}
}

func TestUsersList(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("users.list", map[string]any{
		"members": []any{
			map[string]any{"id": "U1", "name": "ana"},
			map[string]any{"id": "U2", "name": "deploybot", "is_bot": true},
		},
	})

	pager, err := c.UsersList(api.UsersListRequest{})
	if err != nil {
		t.Fatalf("UsersList() error: %v", err)
	}
	env, err := pager.Next(context.Background())
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	var page api.UsersListPage
	if !env.Decode(&page) {
		t.Fatal("page did not decode")
	}
	if len(page.Members) != 2 || !page.Members[1].IsBot {
		t.Errorf("members = %+v", page.Members)
	}
}

func TestViewsOpen(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("views.open", map[string]any{
		"view": map[string]any{"id": "V1", "team_id": "T1"},
	})

	view, err := block.Modal("Settings").
		Close("Cancel").
		Blocks(mustSection(t, "pick your options")).
		Build()
	if err != nil {
		t.Fatalf("build view: %v", err)
	}

	resp, err := c.ViewsOpen(context.Background(), api.ViewsOpenRequest{
		TriggerID: "trig-1",
		View:      view,
	})
	if err != nil {
		t.Fatalf("ViewsOpen() error: %v", err)
	}
	if resp.View.ID != "V1" {
		t.Errorf("view id = %q, want V1", resp.View.ID)
	}

	params := s.Calls("views.open")[0].Params()
	if params["trigger_id"] != "trig-1" {
		t.Errorf("trigger_id = %v", params["trigger_id"])
	}
}

func TestViewsPublish(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("views.publish", map[string]any{
		"view": map[string]any{"id": "V2"},
	})

	view, err := block.HomeTab().
		Blocks(mustSection(t, "welcome home")).
		Build()
	if err != nil {
		t.Fatalf("build view: %v", err)
	}

	resp, err := c.ViewsPublish(context.Background(), api.ViewsPublishRequest{
		UserID: "U1",
		View:   view,
	})
	if err != nil {
		t.Fatalf("ViewsPublish() error: %v", err)
	}
	if resp.View.ID != "V2" {
		t.Errorf("view id = %q, want V2", resp.View.ID)
	}
}

func TestAppsConnectionsOpen(t *testing.T) {
	t.Parallel()

	c, s := newClient(t)
	s.Respond("apps.connections.open", map[string]any{
		"url": "wss://gateway.chatter.dev/link/abc",
	})

	url, err := c.AppsConnectionsOpen(context.Background())
	if err != nil {
		t.Fatalf("AppsConnectionsOpen() error: %v", err)
	}
	if url != "wss://gateway.chatter.dev/link/abc" {
		t.Errorf("url = %q", url)
	}
}

func mustSection(t *testing.T, text string) block.Block {
	t.Helper()
	b, err := block.Section().Text(block.Markdown(text)).Build()
	if err != nil {
		t.Fatalf("build section: %v", err)
	}
	return b
}
