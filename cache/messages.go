package cache

import (
	"fmt"

	"magnecruit-client/models"
)

// ReplaceMessages overwrites one conversation's mirrored history with the
// server's. Optimistic placeholders are never mirrored.
func (c *Cache) ReplaceMessages(conversationID int64, messages []models.Message) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE conversation_id = ?", conversationID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO messages (id, conversation_id, sender, content, timestamp) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, msg := range messages {
		if msg.ID.IsTemp() {
			continue
		}
		if _, err := stmt.Exec(string(msg.ID), conversationID, msg.Sender, msg.Content, msg.Timestamp); err != nil {
			return fmt.Errorf("failed to insert message %s: %w", msg.ID, err)
		}
	}

	return tx.Commit()
}

// AppendMessage mirrors one server-confirmed message.
func (c *Cache) AppendMessage(msg models.Message) error {
	if msg.ID.IsTemp() || msg.ConversationID == 0 {
		return nil
	}
	_, err := c.conn.Exec(
		`INSERT INTO messages (id, conversation_id, sender, content, timestamp) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id, conversation_id) DO UPDATE SET content = excluded.content`,
		string(msg.ID), msg.ConversationID, msg.Sender, msg.Content, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append message %s: %w", msg.ID, err)
	}
	return nil
}

// ListMessages returns one conversation's mirrored history in insert order.
func (c *Cache) ListMessages(conversationID int64) ([]models.Message, error) {
	rows, err := c.conn.Query(
		"SELECT id, conversation_id, sender, content, timestamp FROM messages WHERE conversation_id = ? ORDER BY rowid ASC",
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		var id string
		if err := rows.Scan(&id, &msg.ConversationID, &msg.Sender, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.ID = models.MessageID(id)
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
