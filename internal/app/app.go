// Package app wires configuration into providers, tools and agents. It is
// shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/scoutai/scout/internal/agent"
	"github.com/scoutai/scout/internal/archive"
	"github.com/scoutai/scout/internal/config"
	"github.com/scoutai/scout/internal/llm"
	"github.com/scoutai/scout/internal/store"
	"github.com/scoutai/scout/internal/tools"
)

// App holds all wired components for one configured instance.
type App struct {
	Provider     llm.Provider
	Registry     *tools.Registry
	Search       *agent.SearchAgent
	Reasoning    *agent.ReasoningAgent
	Solo         *agent.SoloAgent
	Orchestrator *agent.Orchestrator
	Router       *agent.TaskRouter
	Store        *store.Store   // nil when DATABASE_URL is unset
	Archive      *archive.Archive // nil when Elasticsearch is disabled
}

// New builds an App from config. Optional backends that fail to connect are
// logged and skipped rather than failing startup.
func New(ctx context.Context, cfg *config.Config, obs agent.Observer) (*App, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	var arch *archive.Archive
	if cfg.ElasticsearchEnabled {
		arch, err = archive.New(
			cfg.ElasticsearchScheme,
			cfg.ElasticsearchHost,
			cfg.ElasticsearchPort,
			cfg.ElasticsearchUser,
			cfg.ElasticsearchPassword,
			cfg.ElasticsearchVerifyCerts,
			cfg.ElasticsearchMaxRetries,
			cfg.ElasticsearchTimeout,
			cfg.ArchiveIndex,
		)
		if err != nil {
			log.Warn().Err(err).Msg("research archive unavailable")
			arch = nil
		}
	}

	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("run history store unavailable")
			st = nil
		}
	}

	registry, regErr := newRegistry(ctx, cfg, arch)
	if regErr != nil {
		return nil, regErr
	}

	search := agent.NewSearchAgent(provider, registry, obs)
	reasoning := agent.NewReasoningAgent(provider, registry, obs)
	solo := agent.NewSoloAgent(provider, registry, obs)
	orchestrator := agent.NewOrchestrator(provider, search, reasoning, obs)

	return &App{
		Provider:     provider,
		Registry:     registry,
		Search:       search,
		Reasoning:    reasoning,
		Solo:         solo,
		Orchestrator: orchestrator,
		Router:       agent.NewTaskRouter(),
		Store:        st,
		Archive:      arch,
	}, nil
}

// Close releases backend connections.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}

func newProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBaseURL), nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return llm.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.Model, ""), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected openai or anthropic)", cfg.Provider)
	}
}

func newRegistry(ctx context.Context, cfg *config.Config, arch *archive.Archive) (*tools.Registry, error) {
	pages := tools.NewPageReader(30 * time.Second)

	var available []tools.Tool
	available = append(available, tools.Calculate(), tools.OpenWebpage(pages))

	if cfg.GoogleAPIKey != "" && cfg.GoogleSearchEngineID != "" {
		search, err := tools.NewSearchClient(ctx, cfg.GoogleAPIKey, cfg.GoogleSearchEngineID)
		if err != nil {
			return nil, fmt.Errorf("google search client: %w", err)
		}
		available = append(available, tools.GoogleSearch(search), tools.SearchAndRead(search, pages))
	} else {
		// The tools stay registered so the model hears about the missing
		// credentials instead of silently losing web search.
		log.Warn().Msg("GOOGLE_API_KEY or GOOGLE_SEARCH_ENGINE_ID not set - web search tools will report a configuration error")
		available = append(available, tools.GoogleSearchUnavailable(), tools.SearchAndReadUnavailable())
	}

	if arch != nil {
		available = append(available, tools.ArchiveSearch(arch))
	}

	return tools.NewRegistry(available...), nil
}
