package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// maxPageContent caps extracted text so a single page cannot flood the
	// model's context.
	maxPageContent = 8000
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// PageReader fetches webpages and extracts readable content as markdown.
type PageReader struct {
	client    *http.Client
	userAgent string
}

func NewPageReader(timeout time.Duration) *PageReader {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &PageReader{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Read fetches the URL and returns its readable content, capped at
// maxPageContent characters.
func (p *PageReader) Read(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q: must be a complete http(s) URL", pageURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch webpage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch webpage: status %s", resp.Status)
	}
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		return "", fmt.Errorf("URL does not return HTML content (content type: %s)", contentType)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, iframe, nav, header, footer, aside").Remove()

	body, err := doc.Find("body").Html()
	if err != nil || strings.TrimSpace(body) == "" {
		body, _ = doc.Html()
	}

	markdown, err := htmltomarkdown.ConvertString(
		body,
		converter.WithDomain(fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)),
	)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}

	markdown = blankLines.ReplaceAllString(strings.TrimSpace(markdown), "\n\n")
	if len(markdown) > maxPageContent {
		markdown = markdown[:maxPageContent] + "... [content truncated]"
	}

	return fmt.Sprintf("Content from %s:\n\n%s", pageURL, markdown), nil
}

// OpenWebpage is the page reading tool.
func OpenWebpage(p *PageReader) Tool {
	return Tool{
		Name: "open_webpage",
		Description: "Open a webpage and extract its readable content as markdown. " +
			"Use this to read articles, documentation, or any web content in full.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Complete URL of the webpage to open, including http:// or https://",
				},
			},
			"required": []string{"url"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			pageURL, _ := input["url"].(string)
			if pageURL == "" {
				return "", fmt.Errorf("url is required")
			}
			return p.Read(ctx, pageURL)
		},
	}
}
