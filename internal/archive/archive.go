// Package archive persists completed research runs in Elasticsearch so
// later queries can recall past findings.
package archive

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Record is one completed research run.
type Record struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Answer     string    `json:"answer"`
	Agent      string    `json:"agent"`
	ToolsUsed  []string  `json:"tools_used,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Archive wraps the go-elasticsearch client around a single research index.
type Archive struct {
	client *elasticsearch.Client
	index  string
}

// New creates an archive client. The index is created lazily by the first
// indexing call. timeout bounds how long a single request may wait for
// response headers, in seconds.
func New(scheme, host string, port int, user, password string, verifyCerts bool, maxRetries, timeout int, index string) (*Archive, error) {
	addr := fmt.Sprintf("%s://%s:%d", scheme, host, port)

	transport := &http.Transport{}
	if timeout > 0 {
		transport.ResponseHeaderTimeout = time.Duration(timeout) * time.Second
	}
	if !verifyCerts {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 - user explicitly disabled cert verification
		}
	}

	cfg := elasticsearch.Config{
		Addresses:  []string{addr},
		MaxRetries: maxRetries,
		Transport:  transport,
	}
	if user != "" {
		cfg.Username = user
		cfg.Password = password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch.NewClient: %w", err)
	}
	return &Archive{client: client, index: index}, nil
}

// TestConnection pings the cluster
func (a *Archive) TestConnection(ctx context.Context) error {
	res, err := a.client.Ping(a.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping error: %s", res.Status())
	}
	return nil
}

// Save indexes a completed run.
func (a *Archive) Save(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	res, err := a.client.Index(
		a.index,
		bytes.NewReader(body),
		a.client.Index.WithDocumentID(rec.ID),
		a.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index record: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index record: %s", res.Status())
	}
	return nil
}

// Search finds past runs whose query or answer matches the given text,
// query text weighted double.
func (a *Archive) Search(ctx context.Context, query string, size int) ([]Record, error) {
	if size <= 0 {
		size = 5
	}

	esQuery := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"query^2", "answer"},
			},
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
		},
	}
	body, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.index),
		a.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search archive: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search archive: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Record `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	records := make([]Record, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		records = append(records, h.Source)
	}
	return records, nil
}
