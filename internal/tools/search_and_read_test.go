package tools

import "testing"

func TestExtractResultURLs(t *testing.T) {
	results := `Top 2 Google search results for "test":

1. First
   URL: https://example.com/first
   Snippet one.

2. Second
   URL: http://example.org/second?x=1
   Snippet two.`

	urls := extractResultURLs(results)
	if len(urls) != 2 {
		t.Fatalf("got %d urls, want 2", len(urls))
	}
	if urls[0] != "https://example.com/first" {
		t.Errorf("urls[0] = %q", urls[0])
	}
	if urls[1] != "http://example.org/second?x=1" {
		t.Errorf("urls[1] = %q", urls[1])
	}
}

func TestExtractResultURLsNone(t *testing.T) {
	if urls := extractResultURLs("No results found"); len(urls) != 0 {
		t.Errorf("expected no urls, got %v", urls)
	}
}
