package tools

import (
	"context"
	"fmt"
	"strings"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

const searchResultCount = 10 // free tier maximum

// SearchClient wraps the Google Custom Search API.
type SearchClient struct {
	svc      *customsearch.Service
	engineID string
}

// NewSearchClient builds a client for the given API key and search engine ID.
// Extra options allow tests to point the service at a local endpoint.
func NewSearchClient(ctx context.Context, apiKey, engineID string, extra ...option.ClientOption) (*SearchClient, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("customsearch.NewService: %w", err)
	}
	return &SearchClient{svc: svc, engineID: engineID}, nil
}

// Search runs the query and returns formatted results for model consumption.
func (c *SearchClient) Search(ctx context.Context, query string) (string, error) {
	resp, err := c.svc.Cse.List().
		Cx(c.engineID).
		Q(query).
		Num(searchResultCount).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("custom search: %w", err)
	}
	return FormatSearchResults(query, resp.Items), nil
}

// FormatSearchResults renders results as a numbered title/URL/snippet list.
func FormatSearchResults(query string, items []*customsearch.Result) string {
	if len(items) == 0 {
		return fmt.Sprintf("No results found for query: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Google search results for %q:\n\n", len(items), query)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n   URL: %s\n   %s\n\n", i+1, item.Title, item.Link, item.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}

// GoogleSearch is the web search tool backed by Google Custom Search.
func GoogleSearch(c *SearchClient) Tool {
	return Tool{
		Name: "google_search",
		Description: "Search Google and return the top results with titles, URLs and snippets. " +
			"Use this to find current information, news, or any web content.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query string",
				},
			},
			"required": []string{"query"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			query, _ := input["query"].(string)
			if query == "" {
				return "", fmt.Errorf("query is required")
			}
			return c.Search(ctx, query)
		},
	}
}

const searchUnavailableMsg = "Error: Google API key or Search Engine ID not configured. " +
	"Set GOOGLE_API_KEY and GOOGLE_SEARCH_ENGINE_ID to enable web search."

// Unavailable replaces a tool's execution with a fixed configuration-error
// message so the model learns the tool cannot help instead of the tool
// disappearing from its options.
func Unavailable(t Tool, msg string) Tool {
	t.Execute = func(context.Context, map[string]interface{}) (string, error) {
		return msg, nil
	}
	return t
}

// GoogleSearchUnavailable stands in for google_search when credentials are
// missing.
func GoogleSearchUnavailable() Tool {
	return Unavailable(GoogleSearch(nil), searchUnavailableMsg)
}

// SearchAndReadUnavailable stands in for search_and_read when credentials
// are missing.
func SearchAndReadUnavailable() Tool {
	return Unavailable(SearchAndRead(nil, nil), searchUnavailableMsg)
}
