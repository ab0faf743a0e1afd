package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/crypgene/advisor/internal/advisor"
	"github.com/crypgene/advisor/internal/advisor/graph"
	"github.com/crypgene/advisor/internal/advisor/model"
	"github.com/crypgene/advisor/internal/advisor/repo"
	"github.com/crypgene/advisor/internal/core"
	"github.com/crypgene/advisor/internal/market"
	"github.com/crypgene/advisor/internal/market/coingecko"
	logx "github.com/crypgene/advisor/pkg/logger"
	pkgredis "github.com/crypgene/advisor/pkg/redis"
)

// AppConfig defines all configurable parameters for the advisor, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Market data provider
	CoinGecko coingecko.Config
	Freshness string `envconfig:"MARKET_CACHE_FRESHNESS" default:"5m"`

	// Advisor configs
	Model        model.AdvisorModelConfig
	Prompt       model.AdvisorPromptConfig
	Conversation model.ConversationConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env; missing credentials fail fast here
	// instead of surfacing mid-conversation.
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb := cfg.Redis.MustNew()
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", cfg.Conversation.TTL, err)
	}
	freshness, err := time.ParseDuration(cfg.Freshness)
	if err != nil {
		log.Fatalf("Invalid MARKET_CACHE_FRESHNESS '%s': %v", cfg.Freshness, err)
	}

	snapshots := market.NewService(coingecko.New(cfg.CoinGecko), freshness)
	conversationRepo := repo.NewRedisConversationRepository(rdb, ttl)

	runner, err := graph.BuildAdvisorGraph(ctx, graph.Config{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		AdvisorModel:     cfg.Model,
		AdvisorPrompt:    cfg.Prompt,
		Conversation:     cfg.Conversation,
		ConversationRepo: conversationRepo,
		Enricher:         market.NewEnricher(snapshots),
	})
	if err != nil {
		log.Fatalf("Failed to build advisor graph: %v", err)
	}

	adv := advisor.New(runner, conversationRepo)
	sessionID := fmt.Sprintf("cli-%d", time.Now().Unix())

	fmt.Printf("%s is ready. Ask about any coin or the market. Commands: /reset, /exit\n", cfg.Prompt.AssistantName)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/exit":
			return
		case line == "/reset":
			if err := adv.Reset(ctx, sessionID); err != nil {
				fmt.Println("Could not reset the conversation, please try again.")
				continue
			}
			fmt.Println("Conversation cleared. Fresh start!")
		default:
			fmt.Println(adv.Respond(ctx, sessionID, line))
		}
	}
}
