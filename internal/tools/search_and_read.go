package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultArticleCount = 2
	maxArticleCount     = 5
)

var resultURLPattern = regexp.MustCompile(`URL:\s*(https?://\S+)`)

// extractResultURLs pulls the URLs out of formatted search results.
func extractResultURLs(results string) []string {
	matches := resultURLPattern.FindAllStringSubmatch(results, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, m[1])
	}
	return urls
}

// SearchAndRead combines search and page reading: it searches the query and
// reads the top articles in one call.
func SearchAndRead(search *SearchClient, pages *PageReader) Tool {
	return Tool{
		Name: "search_and_read",
		Description: "Search for information and read the top articles in one step. " +
			"Returns comprehensive content from multiple sources for the given query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query",
				},
				"num_articles": map[string]interface{}{
					"type":        "integer",
					"description": "Number of top articles to read (default 2, max 5)",
				},
			},
			"required": []string{"query"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			query, _ := input["query"].(string)
			if query == "" {
				return "", fmt.Errorf("query is required")
			}
			count := defaultArticleCount
			if n, ok := input["num_articles"].(float64); ok && n > 0 {
				count = int(n)
			}
			if count > maxArticleCount {
				count = maxArticleCount
			}

			results, err := search.Search(ctx, query)
			if err != nil {
				return "", err
			}
			urls := extractResultURLs(results)
			if len(urls) == 0 {
				return fmt.Sprintf("No articles found for query: %q", query), nil
			}
			if count > len(urls) {
				count = len(urls)
			}

			// A page that fails to load shouldn't sink the whole call; its
			// error text still tells the model what happened.
			contents := make([]string, 0, count)
			for _, u := range urls[:count] {
				content, err := pages.Read(ctx, u)
				if err != nil {
					content = fmt.Sprintf("Error reading %s: %v", u, err)
				}
				contents = append(contents, content)
			}

			return fmt.Sprintf("Comprehensive information from %d articles:\n\n%s",
				count, strings.Join(contents, "\n\n")), nil
		},
	}
}
