package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/crypgene/advisor/pkg/logger"
)

// newPromptHandler builds a typed PromptCallbackHandler to log prompt
// rendering around template formatting.
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *prompt.CallbackInput) context.Context {
			logx.Debug().Str("component", string(info.Type)).Str("node", info.Name).Msg("prompt render start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			ev := logx.Debug().Str("component", string(info.Type)).Str("node", info.Name)
			if output != nil && len(output.Result) > 0 && output.Result[0] != nil {
				ev = ev.Int("rendered_chars", len(output.Result[0].Content))
			}
			ev.Msg("prompt render end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Str("component", string(info.Type)).Str("node", info.Name).Err(err).Msg("prompt render failed")
			return ctx
		},
	}
}
