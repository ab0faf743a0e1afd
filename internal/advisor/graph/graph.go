package graph

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/crypgene/advisor/internal/advisor/graph/conversations"
	"github.com/crypgene/advisor/internal/advisor/graph/nodes"
	"github.com/crypgene/advisor/internal/advisor/graph/observers"
	"github.com/crypgene/advisor/internal/advisor/model"
	logx "github.com/crypgene/advisor/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the advisor graph end-to-end.
// It is a convenience layer over GraphConfig that also constructs the chat
// model and MessagesManager.
type Config struct {
	APIKey           string
	BaseURL          string
	AdvisorModel     model.AdvisorModelConfig
	AdvisorPrompt    model.AdvisorPromptConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	Enricher         nodes.QueryEnricher
}

// GraphConfig holds all configuration needed to build the graph.
type GraphConfig struct {
	ChatModel       einomodel.BaseChatModel
	ModelName       string
	MessagesManager *conversations.MessagesManager
	PromptConfig    *model.AdvisorPromptConfig
	Enricher        nodes.QueryEnricher
}

// GraphBuilder handles the construction of the advisor graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

// NewRunner wraps an already-compiled graph. Useful when the chat model is
// constructed by the caller (for example a stub in tests).
func NewRunner(runnable compose.Runnable[model.QueryInput, *schema.Message]) Runner {
	return &graphRunner{runnable: runnable}
}

// BuildAdvisorGraph composes the chat model and MessagesManager, builds the
// graph, and returns a Runner.
func BuildAdvisorGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Enricher == nil {
		return nil, fmt.Errorf("enricher is nil")
	}

	chatModel, err := nodes.NewAdvisorChatModel(ctx, nodes.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Advisor: &cfg.AdvisorModel,
	})
	if err != nil {
		return nil, err
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModel:       chatModel,
		ModelName:       cfg.AdvisorModel.Model,
		MessagesManager: mm,
		PromptConfig:    &cfg.AdvisorPrompt,
		Enricher:        cfg.Enricher,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Advisor graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled advisor graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModel == nil {
		return nil, fmt.Errorf("chat model is not initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.PromptConfig == nil {
		return nil, fmt.Errorf("prompt config is nil")
	}
	if config.Enricher == nil {
		return nil, fmt.Errorf("enricher is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeEnricher,
		nodes.NewEnricherNode(b.config.MessagesManager, b.config.Enricher, b.config.PromptConfig),
		compose.WithStatePreHandler(nodes.NewEnricherPreHandler()),
	)

	b.graph.AddChatModelNode(nodes.NodeAdvisorChatModel,
		b.config.ChatModel,
		compose.WithStatePostHandler(nodes.NewAdvisorChatModelPostHandler(b.config.MessagesManager, b.config.ModelName)),
	)
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeEnricher},
		{nodes.NodeEnricher, nodes.NodeAdvisorChatModel},
		{nodes.NodeAdvisorChatModel, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
