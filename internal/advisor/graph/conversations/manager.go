package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/model"
)

type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// BuildResponseContext assembles the generation messages for one turn:
// system prompt, the recent transcript, then the enriched form of the current
// query. The raw query (not the enriched one) is persisted as the user turn,
// so market-data blocks never accumulate inside the transcript.
func (cm *MessagesManager) BuildResponseContext(ctx context.Context, sessionID, systemPrompt, rawQuery, enrichedQuery string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := make([]*schema.Message, 0, len(history.Messages)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, trimTail(history.Messages, cm.maxTurns)...)
	messages = append(messages, schema.UserMessage(enrichedQuery))

	if err := cm.conversationRepo.AddMessage(ctx, sessionID, schema.UserMessage(rawQuery)); err != nil {
		return nil, err
	}

	return messages, nil
}

// SaveResponse persists the assistant reply for the session.
func (cm *MessagesManager) SaveResponse(ctx context.Context, sessionID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.AddMessage(ctx, sessionID, assistantMsg)
}

// trimTail keeps only the most recent maxTurns messages to bound prompt size.
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
