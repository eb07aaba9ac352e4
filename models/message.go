package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MessageID holds a message identifier. Persisted messages carry numeric IDs
// assigned by the backend; optimistic messages carry a client-generated
// "temp-" string until the authoritative copy arrives.
type MessageID string

// TempMessagePrefix marks client-generated optimistic message IDs.
const TempMessagePrefix = "temp-"

// NewTempMessageID builds an optimistic message ID from a unique suffix.
func NewTempMessageID(suffix string) MessageID {
	return MessageID(TempMessagePrefix + suffix)
}

// IsTemp reports whether the ID was generated client-side.
func (id MessageID) IsTemp() bool {
	return strings.HasPrefix(string(id), TempMessagePrefix)
}

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *MessageID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty message id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to parse message id: %w", err)
		}
		*id = MessageID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to parse message id: %w", err)
	}
	*id = MessageID(strconv.FormatInt(n, 10))
	return nil
}

// MarshalJSON writes numeric IDs back as numbers so the wire format matches
// what the backend emits; temp IDs stay strings.
func (id MessageID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(id))
}
