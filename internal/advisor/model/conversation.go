package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type ConversationRepository interface {
	// AddMessage appends a message to the transcript for the given session.
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error

	// LoadHistory retrieves the transcript for a session. A session that has
	// never spoken yields an empty history, not an error.
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)

	// ClearHistory removes the entire transcript for a session.
	ClearHistory(ctx context.Context, sessionID string) error

	// GetMessageCount returns the number of turns stored for the session.
	GetMessageCount(ctx context.Context, sessionID string) (int, error)
}

// ConversationHistory represents loaded transcript data with metadata.
type ConversationHistory struct {
	SessionID string
	Messages  []*schema.Message
}
