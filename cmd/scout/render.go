package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const maxObservation = 800

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	agentColor    = color.New(color.FgMagenta)
	toolColor     = color.New(color.FgYellow)
	resultColor   = color.New(color.FgGreen)
	dimColor      = color.New(color.Faint)
	errColor      = color.New(color.FgRed, color.Bold)
	delegateColor = color.New(color.FgBlue, color.Bold)
)

// consoleObserver renders agent progress to the terminal. With quiet set it
// only prints final answers.
type consoleObserver struct {
	quiet bool
}

func (o *consoleObserver) Thought(agent, text string) {
	if o.quiet {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	agentColor.Printf("[%s] ", agent)
	fmt.Println(truncate(text, maxObservation))
}

func (o *consoleObserver) ToolCall(agent, tool string, args map[string]interface{}) {
	if o.quiet {
		return
	}
	rendered, _ := json.Marshal(args)
	agentColor.Printf("[%s] ", agent)
	toolColor.Printf("→ %s", tool)
	dimColor.Printf(" %s\n", truncate(string(rendered), 200))
}

func (o *consoleObserver) ToolResult(agent, tool, result string) {
	if o.quiet {
		return
	}
	dimColor.Printf("    %s\n", truncate(strings.ReplaceAll(result, "\n", " "), maxObservation))
}

func (o *consoleObserver) Delegation(from, to, task string) {
	if o.quiet {
		return
	}
	delegateColor.Printf("[%s ⇒ %s] ", from, to)
	fmt.Println(truncate(task, 200))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func printAnswer(answer string) {
	fmt.Println()
	headerColor.Println("Answer")
	headerColor.Println(strings.Repeat("─", 40))
	resultColor.Println(answer)
}

func printError(msg string) {
	errColor.Fprintf(color.Error, "error: %s\n", msg)
}
