package videos

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/metrics"
	"github.com/Ayush27641/ClarityVault-Ai/internal/shared/telemetry"
)

const (
	maxResults    = 2
	searchTimeout = 30 * time.Second
	watchURL      = "https://www.youtube.com/watch?v="
	resultsURL    = "https://www.youtube.com/results?search_query="
)

// Searcher finds tutorial videos for a topic.
type Searcher interface {
	Search(ctx context.Context, title, language string) []string
}

// Client searches YouTube. Without an API key, or when the API call fails,
// it returns search-results page links instead.
type Client struct {
	svc *youtube.Service
}

// NewClient builds a YouTube client. An empty apiKey yields a client that
// always returns fallback links. endpoint overrides the API host when set.
func NewClient(ctx context.Context, apiKey, endpoint string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		telemetry.Warn("videos.no_api_key", map[string]any{"fallback": true})
		return &Client{}, nil
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(endpoint) != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Search returns up to two watch URLs. It never fails.
func (c *Client) Search(ctx context.Context, title, language string) []string {
	if c == nil || c.svc == nil {
		return fallbackLinks(title, language)
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(title).
		Type("video").
		MaxResults(maxResults).
		RelevanceLanguage(LanguageCode(language)).
		Order("relevance").
		Context(ctx).
		Do()
	if err != nil {
		telemetry.Warn("videos.search_failed", map[string]any{"error": err, "title": title})
		return fallbackLinks(title, language)
	}

	links := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		links = append(links, watchURL+item.Id.VideoId)
	}
	return links
}

func fallbackLinks(title, language string) []string {
	metrics.IncVideoFallback()
	return []string{
		resultsURL + queryComponent(title+" "+language),
		resultsURL + queryComponent(title+" tutorial "+language),
	}
}

// componentUnescaper turns query escaping into encodeURIComponent output:
// spaces become %20 and the marks !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// queryComponent escapes s the way a browser's encodeURIComponent does.
func queryComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
