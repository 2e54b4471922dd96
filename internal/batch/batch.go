// Package batch runs a list of research questions concurrently and collects
// answers in input order.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scoutai/scout/internal/agent"
)

// Result holds the outcome for one question.
type Result struct {
	Index      int                    `json:"index"`
	Question   string                 `json:"question"`
	Answer     string                 `json:"answer,omitempty"`
	Agent      string                 `json:"agent,omitempty"`
	Err        string                 `json:"error,omitempty"`
	DurationMs int64                  `json:"duration_ms"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// LoadQuestions reads one question per line, skipping blanks and # comments.
func LoadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()
	return readQuestions(f)
}

func readQuestions(r io.Reader) ([]string, error) {
	var questions []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return questions, nil
}

// Runner executes questions against an agent with bounded concurrency.
type Runner struct {
	agent       agent.Agent
	concurrency int
}

func NewRunner(a agent.Agent, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{agent: a, concurrency: concurrency}
}

// Run answers every question. Individual failures are recorded per result
// and never abort the batch.
func (r *Runner) Run(ctx context.Context, questions []string) []Result {
	results := make([]Result, len(questions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, q := range questions {
		g.Go(func() error {
			start := time.Now()
			resp := r.agent.Execute(ctx, agent.Request{Task: q})
			res := Result{
				Index:      i,
				Question:   q,
				Agent:      resp.Agent,
				DurationMs: time.Since(start).Milliseconds(),
				Metadata:   resp.Metadata,
			}
			if resp.Success {
				res.Answer = resp.Result
			} else {
				res.Err = resp.Err
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()

	return results
}
