package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"FinSight/internal/domain/models"
	domsvc "FinSight/internal/domain/service"
	xhttp "FinSight/pkg/http"
)

// Client fetches headlines from the Google News RSS search feed.
type Client struct {
	feedURL string
	client  *xhttp.Client
}

// New creates a Google News client. feedURL defaults to the public search feed.
func New(feedURL string, timeout time.Duration) *Client {
	if feedURL == "" {
		feedURL = "https://news.google.com/rss/search"
	}
	return &Client{
		feedURL: feedURL,
		client: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithDefaultHeader("Accept", "application/rss+xml, application/xml, text/xml"),
		),
	}
}

type rssFeed struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Headlines returns up to limit cleaned, de-duplicated headlines for topic.
// An empty feed is not an error; callers decide how to surface it.
func (c *Client) Headlines(ctx context.Context, topic string, limit int) ([]models.Headline, error) {
	if limit <= 0 {
		return nil, nil
	}
	if topic == "" {
		topic = "Business"
	}

	var raw []byte
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.feedURL,
		QueryParams: map[string][]string{
			"q": {topic},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("news feed: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("news feed: parse rss: %w", err)
	}

	seen := make(map[string]struct{})
	var out []models.Headline
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if !validTitle(title) {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		h := models.Headline{Text: title, Link: strings.TrimSpace(item.Link)}
		if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			h.PublishedAt = t
		} else if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			h.PublishedAt = t
		}
		out = append(out, h)

		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// validTitle drops empty, URL-looking, truncated, and too-short titles.
func validTitle(title string) bool {
	if len(title) < 5 {
		return false
	}
	lower := strings.ToLower(title)
	if strings.HasPrefix(lower, "http") {
		return false
	}
	if strings.Contains(title, "...") {
		return false
	}
	return true
}

var _ domsvc.NewsProvider = (*Client)(nil)
