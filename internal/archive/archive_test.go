package archive

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chatterhq/chatter-go/pkg/api"
	"github.com/chatterhq/chatter-go/pkg/block"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndReadBack(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()

	msgs := []api.Message{
		{TS: "1.000100", User: "U1", Text: "first"},
		{TS: "2.000100", User: "U2", Text: "second", ThreadTS: "1.000100"},
	}
	n, err := s.InsertMessages(ctx, "C1", msgs)
	if err != nil {
		t.Fatalf("InsertMessages() error: %v", err)
	}
	if n != 2 {
		t.Errorf("inserted = %d, want 2", n)
	}

	got, err := s.Messages(ctx, "C1", 0)
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("messages = %d, want 2", len(got))
	}
	if got[0].TS != "1.000100" || got[1].ThreadTS != "1.000100" {
		t.Errorf("unexpected order or content: %+v", got)
	}

	count, err := s.Count(ctx, "C1")
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestInsertSkipsDuplicates(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()

	batch := []api.Message{{TS: "1.0", Text: "hello"}}
	if _, err := s.InsertMessages(ctx, "C1", batch); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	n, err := s.InsertMessages(ctx, "C1", []api.Message{
		{TS: "1.0", Text: "hello"},
		{TS: "2.0", Text: "new"},
	})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if n != 1 {
		t.Errorf("inserted = %d, want only the new row", n)
	}
}

func TestMessagesKeepChannelsApart(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()

	if _, err := s.InsertMessages(ctx, "C1", []api.Message{{TS: "1.0"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertMessages(ctx, "C2", []api.Message{{TS: "1.0"}, {TS: "2.0"}}); err != nil {
		t.Fatal(err)
	}

	n, err := s.Count(ctx, "C2")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count(C2) = %d, want 2", n)
	}
}

func TestBlocksSurviveTheRoundTrip(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()

	section, err := block.Section().Text(block.Markdown("*archived*")).Build()
	if err != nil {
		t.Fatalf("build section: %v", err)
	}
	in := api.Message{TS: "1.0", Text: "with blocks", Blocks: block.Blocks{section}}
	if _, err := s.InsertMessages(ctx, "C1", []api.Message{in}); err != nil {
		t.Fatalf("InsertMessages() error: %v", err)
	}

	got, err := s.Messages(ctx, "C1", 0)
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(got) != 1 || len(got[0].Blocks) != 1 {
		t.Fatalf("blocks did not survive: %+v", got)
	}
	sec, ok := got[0].Blocks[0].(block.SectionBlock)
	if !ok {
		t.Fatalf("block = %T, want block.SectionBlock", got[0].Blocks[0])
	}
	if sec.Text.Text != "*archived*" {
		t.Errorf("section text = %q", sec.Text.Text)
	}
}

func TestLatestTS(t *testing.T) {
	t.Parallel()

	s := openStore(t)
	ctx := context.Background()

	ts, err := s.LatestTS(ctx, "C1")
	if err != nil {
		t.Fatalf("LatestTS() error: %v", err)
	}
	if ts != "" {
		t.Errorf("LatestTS on empty channel = %q, want empty", ts)
	}

	if _, err := s.InsertMessages(ctx, "C1", []api.Message{{TS: "1.0"}, {TS: "3.0"}, {TS: "2.0"}}); err != nil {
		t.Fatal(err)
	}
	ts, err = s.LatestTS(ctx, "C1")
	if err != nil {
		t.Fatalf("LatestTS() error: %v", err)
	}
	if ts != "3.0" {
		t.Errorf("LatestTS = %q, want 3.0", ts)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "archive.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	if _, err := s1.InsertMessages(context.Background(), "C1", []api.Message{{TS: "1.0"}}); err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer s2.Close()

	n, err := s2.Count(context.Background(), "C1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count after reopen = %d, want 1", n)
	}
}
