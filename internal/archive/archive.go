// Package archive stores exported channel messages in a local SQLite
// database, letting repeated exports resume where the previous one
// stopped.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chatterhq/chatter-go/pkg/api"

	_ "modernc.org/sqlite" // SQLite driver registration
)

const defaultBusyTimeout = 5000 // ms

// Store is a local message archive. It is safe for concurrent use; the
// underlying database is limited to a single connection because SQLite
// serialises writes.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at the given path. The
// database uses WAL mode and a 5 s busy timeout; the schema is migrated
// automatically.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("archive: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	ctx := context.TODO()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d", defaultBusyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: set busy_timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertMessages stores a batch of messages for a channel, skipping any
// already archived. It reports the number of newly inserted rows.
func (s *Store) InsertMessages(ctx context.Context, channelID string, msgs []api.Message) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("archive: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO messages (channel_id, ts, user, text, thread_ts, blocks)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("archive: prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var inserted int
	for _, msg := range msgs {
		blocksJSON := []byte("[]")
		if len(msg.Blocks) > 0 {
			if blocksJSON, err = json.Marshal(msg.Blocks); err != nil {
				return 0, fmt.Errorf("archive: marshal blocks for %s: %w", msg.TS, err)
			}
		}
		res, err := stmt.ExecContext(ctx, channelID, msg.TS, msg.User, msg.Text, msg.ThreadTS, string(blocksJSON))
		if err != nil {
			return 0, fmt.Errorf("archive: insert message %s: %w", msg.TS, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("archive: commit: %w", err)
	}
	return inserted, nil
}

// Messages returns a channel's archived messages in chronological order.
// limit <= 0 means no limit.
func (s *Store) Messages(ctx context.Context, channelID string, limit int) ([]api.Message, error) {
	query := `
		SELECT ts, user, text, thread_ts, blocks
		FROM messages
		WHERE channel_id = ?
		ORDER BY ts ASC`
	args := []any{channelID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("archive: query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []api.Message
	for rows.Next() {
		var msg api.Message
		var blocksJSON string
		if err := rows.Scan(&msg.TS, &msg.User, &msg.Text, &msg.ThreadTS, &blocksJSON); err != nil {
			return nil, fmt.Errorf("archive: scan message: %w", err)
		}
		if blocksJSON != "" && blocksJSON != "[]" {
			if err := json.Unmarshal([]byte(blocksJSON), &msg.Blocks); err != nil {
				return nil, fmt.Errorf("archive: decode blocks for %s: %w", msg.TS, err)
			}
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: message rows: %w", err)
	}
	return msgs, nil
}

// Count reports the number of archived messages for a channel.
func (s *Store) Count(ctx context.Context, channelID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages WHERE channel_id = ?", channelID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("archive: count: %w", err)
	}
	return n, nil
}

// LatestTS returns the newest archived timestamp for a channel, or ""
// when the channel has no archived messages. Exports pass it as the
// oldest bound to fetch only what is missing.
func (s *Store) LatestTS(ctx context.Context, channelID string) (string, error) {
	var ts sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(ts) FROM messages WHERE channel_id = ?", channelID,
	).Scan(&ts)
	if err != nil {
		return "", fmt.Errorf("archive: latest ts: %w", err)
	}
	return ts.String, nil
}
