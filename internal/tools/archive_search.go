package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scoutai/scout/internal/archive"
)

// ArchiveSearch lets agents recall answers from past research runs.
// Registered only when the archive is configured.
func ArchiveSearch(a *archive.Archive) Tool {
	return Tool{
		Name: "archive_search",
		Description: "Search past research runs for questions already answered. " +
			"Use this before searching the web when the question may have come up before.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text to match against past questions and answers",
				},
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Number of past runs to return (default 5)",
				},
			},
			"required": []string{"query"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			query, _ := input["query"].(string)
			if query == "" {
				return "", fmt.Errorf("query is required")
			}
			size := 5
			if s, ok := input["size"].(float64); ok && s > 0 {
				size = int(s)
			}

			records, err := a.Search(ctx, query, size)
			if err != nil {
				return "", fmt.Errorf("archive search: %w", err)
			}
			if len(records) == 0 {
				return fmt.Sprintf("No archived research found for %q", query), nil
			}

			b, err := json.Marshal(records)
			if err != nil {
				return "", fmt.Errorf("marshal archive results: %w", err)
			}
			return string(b), nil
		},
	}
}
