package youtube

import (
	"context"
	"log"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"podigest/article"
)

// APIEnricher resolves metadata through the YouTube Data API. It needs an
// API key but is immune to page-markup changes; when the API call fails the
// configured fallback enricher takes over.
type APIEnricher struct {
	service  *youtube.Service
	fallback Enricher
}

// NewAPIEnricher creates a Data API enricher. fallback may be nil, in which
// case API failures degrade straight to null fields.
func NewAPIEnricher(ctx context.Context, apiKey string, fallback Enricher) (*APIEnricher, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &APIEnricher{service: service, fallback: fallback}, nil
}

// Enrich resolves a metadata bundle with one Videos.List call.
func (e *APIEnricher) Enrich(ctx context.Context, videoID string) article.VideoMeta {
	var meta article.VideoMeta
	if videoID == "" {
		return meta
	}

	resp, err := e.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).Context(ctx).Do()
	if err != nil || len(resp.Items) == 0 {
		if err != nil {
			log.Printf("[youtube] data api failed for %s: %v", videoID, err)
		}
		if e.fallback != nil {
			return e.fallback.Enrich(ctx, videoID)
		}
		return meta
	}

	item := resp.Items[0]
	if item.Snippet != nil {
		if item.Snippet.Title != "" {
			meta.Title = strPtr(item.Snippet.Title)
		}
		if item.Snippet.ChannelTitle != "" {
			meta.Channel = strPtr(item.Snippet.ChannelTitle)
		}
		if item.Snippet.ChannelId != "" {
			meta.ChannelURL = strPtr("https://www.youtube.com/channel/" + item.Snippet.ChannelId)
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			meta.Published = strPtr(t.Format("2006-01-02"))
		}
	}
	if item.Statistics != nil {
		views := int64(item.Statistics.ViewCount)
		meta.Views = &views
	}

	return meta
}
