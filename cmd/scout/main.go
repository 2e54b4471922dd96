// Package main provides the scout CLI entrypoint.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scoutai/scout/internal/agent"
	"github.com/scoutai/scout/internal/app"
	"github.com/scoutai/scout/internal/batch"
	"github.com/scoutai/scout/internal/config"
	"github.com/scoutai/scout/internal/server"
	"github.com/scoutai/scout/internal/trace"
)

var (
	flagSingleAgent bool
	flagQuiet       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scout [question]",
		Short: "scout - multi-agent research assistant",
		Long: `scout answers research questions with a team of LLM agents: an
orchestrator delegates web research to a search agent and calculations
to a reasoning agent, then synthesizes a final answer.

Usage modes:
  scout                  Start an interactive research session
  scout "<question>"     Answer a single question and exit
  scout batch <file>     Answer one question per line from a file
  scout serve            Run the HTTP API server`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runInteractive(cmd.Context())
			}
			return runSingle(cmd.Context(), strings.Join(args, " "))
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Only print final answers")
	rootCmd.Flags().BoolVar(&flagSingleAgent, "single-agent", false, "Use one agent with all tools instead of the orchestrator")

	rootCmd.AddCommand(batchCmd(), historyCmd(), serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// setup loads config, configures logging and tracing, and wires the app.
// The returned cleanup flushes traces and closes backends.
func setup(ctx context.Context, obs agent.Observer) (*app.App, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	shutdownTrace, err := trace.Setup(ctx, cfg.AtlaInsightsToken, cfg.TraceEndpoint, cfg.Environment)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup tracing: %w", err)
	}

	a, err := app.New(ctx, cfg, obs)
	if err != nil {
		shutdownTrace(ctx)
		return nil, nil, nil, err
	}

	cleanup := func() {
		a.Close()
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTrace(flushCtx); err != nil {
			log.Warn().Err(err).Msg("trace flush failed")
		}
	}
	return a, cfg, cleanup, nil
}

func pickAgent(a *app.App) agent.Agent {
	if flagSingleAgent {
		return a.Solo
	}
	return a.Orchestrator
}

func runSingle(ctx context.Context, question string) error {
	obs := &consoleObserver{quiet: flagQuiet}
	a, cfg, cleanup, err := setup(ctx, obs)
	if err != nil {
		return err
	}
	defer cleanup()

	return answer(ctx, pickAgent(a), cfg, question)
}

func runInteractive(ctx context.Context) error {
	obs := &consoleObserver{quiet: flagQuiet}
	a, cfg, cleanup, err := setup(ctx, obs)
	if err != nil {
		return err
	}
	defer cleanup()

	target := pickAgent(a)

	headerColor.Println("scout interactive session")
	dimColor.Println("type a question, or 'exit' to quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if isExitWord(question) {
			break
		}
		if err := answer(ctx, target, cfg, question); err != nil {
			printError(err.Error())
		}
		if ctx.Err() != nil {
			break
		}
	}
	return scanner.Err()
}

func answer(ctx context.Context, target agent.Agent, cfg *config.Config, question string) error {
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.AgentTimeout)*time.Second)
	defer cancel()

	start := time.Now()
	resp := target.Execute(runCtx, agent.Request{Task: question})
	elapsed := time.Since(start)

	if !resp.Success {
		return fmt.Errorf("%s failed: %s", resp.Agent, resp.Err)
	}

	printAnswer(resp.Result)
	if !flagQuiet {
		dimColor.Printf("\n%s · %s\n", resp.Agent, elapsed.Round(100*time.Millisecond))
	}
	return nil
}

func isExitWord(s string) bool {
	switch s {
	case "exit", "quit", "q":
		return true
	}
	return false
}

func batchCmd() *cobra.Command {
	var (
		outPath     string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Answer one question per line from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			obs := &consoleObserver{quiet: flagQuiet}
			a, cfg, cleanup, err := setup(ctx, obs)
			if err != nil {
				return err
			}
			defer cleanup()

			questions, err := batch.LoadQuestions(args[0])
			if err != nil {
				return err
			}
			if len(questions) == 0 {
				return fmt.Errorf("no questions found in %s", args[0])
			}

			// Flag wins over config when set explicitly.
			workers := cfg.BatchConcurrency
			if cmd.Flags().Changed("concurrency") {
				workers = concurrency
			}
			runner := batch.NewRunner(pickAgent(a), workers)
			results := runner.Run(ctx, questions)

			if outPath != "" {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return fmt.Errorf("write results: %w", err)
				}
				fmt.Printf("wrote %d results to %s\n", len(results), outPath)
				return nil
			}

			failures := 0
			for _, res := range results {
				fmt.Println()
				headerColor.Printf("Q%d: %s\n", res.Index+1, res.Question)
				if res.Err != "" {
					failures++
					printError(res.Err)
					continue
				}
				resultColor.Println(res.Answer)
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d questions failed", failures, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write results as JSON to this file")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", config.DefaultBatchConcurrency, "Number of questions answered in parallel")
	return cmd
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent research runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, _, cleanup, err := setup(ctx, agent.NopObserver{})
			if err != nil {
				return err
			}
			defer cleanup()

			if a.Store == nil {
				return fmt.Errorf("run history requires DATABASE_URL")
			}

			runs, err := a.Store.RecentRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				dimColor.Println("no runs recorded yet")
				return nil
			}
			for _, run := range runs {
				status := resultColor
				if !run.Success {
					status = errColor
				}
				fmt.Printf("%s  ", run.CreatedAt.Local().Format("2006-01-02 15:04"))
				status.Printf("%-10s", run.Agent)
				fmt.Printf("  %s\n", truncate(run.Query, 80))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cfg, cleanup, err := setup(ctx, agent.NopObserver{})
			if err != nil {
				return err
			}
			defer cleanup()

			srv, err := server.New(ctx, cfg, a)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}
