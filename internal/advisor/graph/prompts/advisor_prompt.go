package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/model"
)

//go:embed template/advisor_prompt.txt
var advisorSystemPrompt string

// RenderAdvisorSystem renders the fixed advisor system prompt via the Eino
// prompt component (which also emits prompt callbacks). The result is
// prepended to every generation call and never stored in the transcript.
func RenderAdvisorSystem(ctx context.Context, config model.AdvisorPromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(advisorSystemPrompt),
	)
	vars := map[string]any{
		"AssistantName": config.AssistantName,
		"MaxReplyWords": config.MaxReplyWords,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("advisor prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("advisor prompt render: empty result")
	}
	return msgs[0].Content, nil
}
