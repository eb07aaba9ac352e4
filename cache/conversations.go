package cache

import (
	"database/sql"
	"fmt"

	"magnecruit-client/models"
)

// ReplaceConversations overwrites the mirrored sidebar list with the server's.
func (c *Cache) ReplaceConversations(conversations []models.ConversationSummary) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conversations"); err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO conversations (id, title, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, conv := range conversations {
		title := ""
		if conv.Title != nil {
			title = *conv.Title
		}
		if _, err := stmt.Exec(conv.ID, title, conv.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert conversation %d: %w", conv.ID, err)
		}
	}

	return tx.Commit()
}

// UpsertConversation records a single conversation, typically one announced
// over the event channel before the next directory fetch.
func (c *Cache) UpsertConversation(id int64, title string) error {
	_, err := c.conn.Exec(
		"INSERT INTO conversations (id, title) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET title = excluded.title",
		id, title,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert conversation %d: %w", id, err)
	}
	return nil
}

// ListConversations returns the mirrored sidebar list, newest first.
func (c *Cache) ListConversations() ([]models.ConversationSummary, error) {
	rows, err := c.conn.Query("SELECT id, title, created_at FROM conversations ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []models.ConversationSummary
	for rows.Next() {
		var conv models.ConversationSummary
		var title sql.NullString
		if err := rows.Scan(&conv.ID, &title, &conv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		if title.Valid && title.String != "" {
			value := title.String
			conv.Title = &value
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}

// Clear removes all mirrored data, used on logout.
func (c *Cache) Clear() error {
	if _, err := c.conn.Exec("DELETE FROM messages"); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	if _, err := c.conn.Exec("DELETE FROM conversations"); err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}
	return nil
}
