package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Google News</title>
    <item>
      <title>Acme Corp posts record quarterly revenue</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Acme Corp posts record quarterly revenue</title>
      <link>https://example.com/a-dup</link>
      <pubDate>Mon, 24 Aug 2026 11:00:00 GMT</pubDate>
    </item>
    <item>
      <title>https://example.com/not-a-title</title>
      <link>https://example.com/b</link>
    </item>
    <item>
      <title>Acme shares slump after regulator opens probe ...</title>
      <link>https://example.com/c</link>
    </item>
    <item>
      <title>ok</title>
      <link>https://example.com/d</link>
    </item>
    <item>
      <title>Analysts turn cautious on semiconductor demand</title>
      <link>https://example.com/e</link>
      <pubDate>Mon, 24 Aug 2026 09:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestHeadlinesCleanup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Acme" {
			t.Errorf("query topic = %q, want Acme", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	cli := New(srv.URL, 2*time.Second)
	got, err := cli.Headlines(context.Background(), "Acme", 20)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d headlines, want 2: %+v", len(got), got)
	}
	if got[0].Text != "Acme Corp posts record quarterly revenue" {
		t.Errorf("first headline = %q", got[0].Text)
	}
	if got[0].PublishedAt.IsZero() {
		t.Errorf("expected pubDate parsed for first headline")
	}
	if got[1].Text != "Analysts turn cautious on semiconductor demand" {
		t.Errorf("second headline = %q", got[1].Text)
	}
}

func TestHeadlinesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	cli := New(srv.URL, 2*time.Second)
	got, err := cli.Headlines(context.Background(), "Acme", 1)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d headlines, want 1", len(got))
	}
}

func TestHeadlinesEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<rss version="2.0"><channel></channel></rss>`))
	}))
	defer srv.Close()

	cli := New(srv.URL, 2*time.Second)
	got, err := cli.Headlines(context.Background(), "Acme", 20)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d headlines, want 0", len(got))
	}
}

func TestHeadlinesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cli := New(srv.URL, 2*time.Second)
	if _, err := cli.Headlines(context.Background(), "Acme", 20); err == nil {
		t.Fatal("expected error on 503 feed")
	}
}
