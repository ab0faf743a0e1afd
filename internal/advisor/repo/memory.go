package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/model"
)

// MemoryConversationRepository keeps transcripts in process memory. It is
// meant for tests and local development where no Redis is available;
// transcripts do not survive a restart.
type MemoryConversationRepository struct {
	mu       sync.Mutex
	sessions map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{sessions: make(map[string][]*schema.Message)}
}

func (r *MemoryConversationRepository) AddMessage(ctx context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = append(r.sessions[sessionID], message)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(ctx context.Context, sessionID string) (*model.ConversationHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.sessions[sessionID]
	msgs := make([]*schema.Message, len(stored))
	copy(msgs, stored)
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(ctx context.Context, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions[sessionID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
