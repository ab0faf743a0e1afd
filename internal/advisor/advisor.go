package advisor

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/graph"
	"github.com/crypgene/advisor/internal/advisor/model"
	errx "github.com/crypgene/advisor/internal/core/error"
	logx "github.com/crypgene/advisor/pkg/logger"
)

// FallbackReply is returned whenever generation fails. The session stays
// usable afterwards; raw error detail goes to the log, never to the user.
const FallbackReply = "I'm sorry, but I ran into a problem while answering that. Please try asking again in a moment."

// Advisor is the conversation session facade: one Respond per turn, Reset to
// start over. Generation is delegated to the compiled graph.
type Advisor struct {
	runner graph.Runner
	repo   model.ConversationRepository
}

func New(runner graph.Runner, repo model.ConversationRepository) *Advisor {
	return &Advisor{runner: runner, repo: repo}
}

// Respond processes one user query to completion and returns the reply text.
// Any generation failure (timeout, quota, malformed response) degrades to the
// fixed fallback reply, which is also persisted as the assistant turn so the
// transcript stays coherent.
func (a *Advisor) Respond(ctx context.Context, sessionID, query string) string {
	reply, err := a.runner.Invoke(ctx, model.QueryInput{
		SessionID: sessionID,
		Query:     query,
	})
	if err == nil && strings.TrimSpace(reply) != "" {
		return reply
	}

	if err != nil {
		logx.Error().Err(errx.WrapGeneration(err)).Str("session_id", sessionID).Msg("generation failed, returning fallback reply")
	} else {
		logx.Warn().Str("session_id", sessionID).Msg("model returned empty reply, returning fallback reply")
	}

	if saveErr := a.repo.AddMessage(ctx, sessionID, schema.AssistantMessage(FallbackReply, nil)); saveErr != nil {
		logx.Warn().Err(saveErr).Str("session_id", sessionID).Msg("failed to persist fallback reply")
	}
	return FallbackReply
}

// Reset discards the session transcript. The market-data cache is untouched.
func (a *Advisor) Reset(ctx context.Context, sessionID string) error {
	return a.repo.ClearHistory(ctx, sessionID)
}
