package archive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func testArchive(t *testing.T, srv *httptest.Server) *Archive {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(u.Port())
	a, err := New("http", u.Hostname(), port, "", "", true, 0, 30, "scout-research")
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func esHandler(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// go-elasticsearch requires a product check header
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		fn(w, r)
	}
}

func TestNewValidatesConstruction(t *testing.T) {
	a, err := New("http", "localhost", 9200, "user", "pass", false, 3, 30, "runs")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.index != "runs" {
		t.Errorf("index = %q", a.index)
	}
}

func TestSaveIndexesRecord(t *testing.T) {
	var gotPath string
	var gotRecord Record
	srv := httptest.NewServer(esHandler(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotRecord)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":"created"}`))
	}))
	defer srv.Close()

	a := testArchive(t, srv)
	rec := Record{ID: "run-1", Query: "population of Tokyo", Answer: "about 14 million", Agent: "SearchAgent"}
	if err := a.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/scout-research/") || !strings.HasSuffix(gotPath, "/run-1") {
		t.Errorf("index path = %q", gotPath)
	}
	if gotRecord.Query != "population of Tokyo" {
		t.Errorf("indexed record = %+v", gotRecord)
	}
	if gotRecord.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped on save")
	}
}

func TestSearchDecodesHits(t *testing.T) {
	srv := httptest.NewServer(esHandler(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"id":"run-1","query":"gdp of japan","answer":"4.2T USD","agent":"SearchAgent"}},
			{"_source":{"id":"run-2","query":"gdp of germany","answer":"4.5T USD","agent":"SearchAgent"}}
		]}}`))
	}))
	defer srv.Close()

	a := testArchive(t, srv)
	records, err := a.Search(context.Background(), "gdp", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "run-1" || records[1].Answer != "4.5T USD" {
		t.Errorf("records = %+v", records)
	}
}

func TestSearchReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(esHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	a := testArchive(t, srv)
	if _, err := a.Search(context.Background(), "anything", 5); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestNewAppliesHeaderTimeout(t *testing.T) {
	// A server that never writes headers must trip the configured timeout.
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	u, _ := url.Parse(srv.URL)
	port, _ := strconv.Atoi(u.Port())
	a, err := New("http", u.Hostname(), port, "", "", true, 0, 1, "scout-research")
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	err = a.TestConnection(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %s, expected ~1s", elapsed)
	}
}
