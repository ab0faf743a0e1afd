package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/crypgene/advisor/internal/advisor/model"
	logx "github.com/crypgene/advisor/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey  string
	BaseURL string
	Advisor *model.AdvisorModelConfig
}

// NewAdvisorChatModel creates the Gemini chat model that generates advisor
// replies, bounded by the configured MaxTokens and Temperature.
func NewAdvisorChatModel(ctx context.Context, config ChatModelConfig) (*gemini.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Advisor.Model,
		Temperature: &config.Advisor.Temperature,
		MaxTokens:   &config.Advisor.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating advisor model")
		return nil, fmt.Errorf("error creating advisor model: %w", err)
	}

	return chatModel, nil
}
