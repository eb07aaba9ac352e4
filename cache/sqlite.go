// Package cache mirrors server data in a local SQLite file so the sidebar
// and chat history can render between fetches. The backend is always the
// source of truth; every write here replaces rows with what the server sent.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Cache wraps the SQLite mirror connection
type Cache struct {
	conn *sql.DB
}

// Open opens (or creates) the mirror database at the given path
func Open(path string) (*Cache, error) {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// SQLite works best with a single connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	c := &Cache{conn: conn}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return c, nil
}

// Close closes the cache connection
func (c *Cache) Close() error {
	return c.conn.Close()
}

// migrate creates the mirror tables
func (c *Cache) migrate() error {
	migrations := []string{
		// Server conversation ids are primary keys; no autoincrement, the
		// backend mints ids.
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT NOT NULL,
			conversation_id INTEGER NOT NULL,
			sender TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp TEXT DEFAULT '',
			PRIMARY KEY (id, conversation_id),
			FOREIGN KEY(conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id)`,
	}

	for _, migration := range migrations {
		if _, err := c.conn.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}

	return nil
}

// Stats holds row counts for the status view
type Stats struct {
	ConversationCount int64
	MessageCount      int64
}

// GetStats returns mirror row counts
func (c *Cache) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := c.conn.QueryRow("SELECT COUNT(*) FROM conversations").Scan(&stats.ConversationCount); err != nil {
		return nil, fmt.Errorf("failed to count conversations: %w", err)
	}
	if err := c.conn.QueryRow("SELECT COUNT(*) FROM messages").Scan(&stats.MessageCount); err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	return stats, nil
}
