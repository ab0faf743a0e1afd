package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/graph/conversations"
	"github.com/crypgene/advisor/internal/advisor/graph/prompts"
	"github.com/crypgene/advisor/internal/advisor/model"
	logx "github.com/crypgene/advisor/pkg/logger"
)

// Node names within the advisor graph.
const (
	NodeEnricher         = "enricher"
	NodeAdvisorChatModel = "advisor_chat_model"
)

// QueryEnricher decides whether a query needs market data and returns the
// text to forward to the LLM. Implementations must not fail: the contract is
// "enriched or unchanged", never an error.
type QueryEnricher interface {
	Enrich(ctx context.Context, query string) string
}

// NewEnricherPreHandler creates the pre-handler for the Enricher node.
func NewEnricherPreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		if s.SessionID == "" {
			s.SessionID = in.SessionID
		}
		// Reset accumulated cost for each new query
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewEnricherNode creates the Enricher node: it classifies the query, splices
// in market data when warranted, and assembles the full generation context.
func NewEnricherNode(
	mm *conversations.MessagesManager,
	enricher QueryEnricher,
	promptCfg *model.AdvisorPromptConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) ([]*schema.Message, error) {
		systemPrompt, err := prompts.RenderAdvisorSystem(ctx, *promptCfg)
		if err != nil {
			return nil, fmt.Errorf("render advisor system prompt: %w", err)
		}

		enriched := enricher.Enrich(ctx, input.Query)
		if enriched != input.Query {
			logx.Debug().Str("session_id", input.SessionID).Msg("query enriched with market data")
		}

		messages, err := mm.BuildResponseContext(ctx, input.SessionID, systemPrompt, input.Query, enriched)
		if err != nil {
			return nil, fmt.Errorf("build response context: %w", err)
		}

		return messages, nil
	})
}

// NewAdvisorChatModelPostHandler logs token usage plus USD cost and persists
// the assistant turn.
func NewAdvisorChatModelPostHandler(
	mm *conversations.MessagesManager,
	modelName string,
) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			pricing := model.ResolvePricing(modelName)
			inC, outC, totalC := model.ComputeCost(out.ResponseMeta.Usage, pricing)
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			out.Extra["usage_cost"] = map[string]any{
				"currency":          "USD",
				"model":             modelName,
				"prompt_tokens":     out.ResponseMeta.Usage.PromptTokens,
				"completion_tokens": out.ResponseMeta.Usage.CompletionTokens,
				"total_tokens":      out.ResponseMeta.Usage.TotalTokens,
				"input_cost":        inC,
				"output_cost":       outC,
				"total_cost":        totalC,
			}
			logx.Debug().
				Str("session_id", state.SessionID).
				Str("node", NodeAdvisorChatModel).
				Str("model", modelName).
				Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
				Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
				Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
				Float64("input_cost_usd", inC).
				Float64("output_cost_usd", outC).
				Float64("total_cost_usd", totalC).
				Msg("LLM usage")

			state.TotalCostUSD += totalC
			out.Extra["usage_cost_total_usd"] = state.TotalCostUSD
		}

		if out != nil && out.Role == schema.Assistant && strings.TrimSpace(out.Content) != "" {
			if err := mm.SaveResponse(ctx, state.SessionID, out.Content); err != nil {
				logx.Error().
					Str("session_id", state.SessionID).
					Err(err).
					Msg("Error saving assistant response")
			}
		}

		return out, nil
	}
}
