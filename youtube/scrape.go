package youtube

import (
	"bytes"
	"context"
	"log"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"podigest/article"
	"podigest/httpx"
)

// DefaultWatchURL is the public watch-page endpoint.
const DefaultWatchURL = "https://www.youtube.com/watch"

// browserUserAgent makes the watch page serve its full player payload.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

var (
	viewCountPattern   = regexp.MustCompile(`"viewCount":"(\d+)"`)
	publishDatePattern = regexp.MustCompile(`"publishDate":"([^"]+)"`)
)

// ScrapeEnricher resolves metadata without credentials, combining the
// oEmbed endpoint with a watch-page scrape. The two lookups are
// independent: either may fail without affecting the other.
type ScrapeEnricher struct {
	// Client is the HTTP client used for both lookups.
	Client *httpx.Client
	// OEmbedURL and WatchURL override the endpoints (tests point these at
	// a local server).
	OEmbedURL string
	WatchURL  string
}

// NewScrapeEnricher creates an enricher over the public endpoints.
func NewScrapeEnricher(client *httpx.Client) *ScrapeEnricher {
	return &ScrapeEnricher{
		Client:    client,
		OEmbedURL: DefaultOEmbedURL,
		WatchURL:  DefaultWatchURL,
	}
}

// Enrich resolves a best-effort metadata bundle for videoID.
func (e *ScrapeEnricher) Enrich(ctx context.Context, videoID string) article.VideoMeta {
	var meta article.VideoMeta
	if videoID == "" {
		return meta
	}

	fetchOEmbed(ctx, e.Client, e.OEmbedURL, videoID, &meta)
	e.scrapeWatchPage(ctx, videoID, &meta)
	return meta
}

// scrapeWatchPage fills view count and publish date from the watch page.
// The player JSON embedded in the page is searched first; the microdata
// meta tags are a fallback for pages served without it.
func (e *ScrapeEnricher) scrapeWatchPage(ctx context.Context, videoID string, meta *article.VideoMeta) {
	resp, err := e.Client.Get(ctx, e.WatchURL+"?v="+videoID, map[string]string{
		"User-Agent":      browserUserAgent,
		"Accept-Language": "en-US,en;q=0.9",
	})
	if err != nil {
		log.Printf("[youtube] page scrape failed for %s: %v", videoID, err)
		return
	}

	if m := viewCountPattern.FindSubmatch(resp.Body); m != nil {
		if views, err := strconv.ParseInt(string(m[1]), 10, 64); err == nil {
			meta.Views = &views
		}
	}
	if m := publishDatePattern.FindSubmatch(resp.Body); m != nil {
		date := string(m[1])
		if len(date) > 10 {
			date = date[:10]
		}
		meta.Published = strPtr(date)
	}

	if meta.Views == nil || meta.Published == nil {
		scrapeMetaTags(resp.Body, meta)
	}
}

// scrapeMetaTags extracts view count and publish date from the page's
// itemprop meta tags.
func scrapeMetaTags(body []byte, meta *article.VideoMeta) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return
	}

	if meta.Views == nil {
		if content, ok := doc.Find(`meta[itemprop="interactionCount"]`).Attr("content"); ok {
			if views, err := strconv.ParseInt(content, 10, 64); err == nil {
				meta.Views = &views
			}
		}
	}
	if meta.Published == nil {
		if content, ok := doc.Find(`meta[itemprop="datePublished"]`).Attr("content"); ok {
			if len(content) > 10 {
				content = content[:10]
			}
			if content != "" {
				meta.Published = strPtr(content)
			}
		}
	}
}
