// Package article defines the canonical article model produced by the
// ingestion pipeline and the read contract consumed by the presentation layer.
package article

import "sort"

// Article is one normalized, publishable unit derived from one source
// document. It is immutable once constructed.
type Article struct {
	// ID is the stable source node token; it does not change across
	// refreshes for the same underlying document.
	ID string `json:"id"`
	// Title is the display title with the leading date code stripped.
	Title string `json:"title"`
	// RawTitle is the original document title, unmodified.
	RawTitle string `json:"rawTitle"`
	// DateCode is the 4-character sortable code from the raw title,
	// or "" when the title carries none.
	DateCode string `json:"dateCode"`
	// VideoID is the referenced video identifier, or "" when absent.
	VideoID string `json:"videoId,omitempty"`
	// SourceURL points back to the source document.
	SourceURL string `json:"sourceUrl"`
	// Intro holds the leading paragraphs (first 15).
	Intro []string `json:"intro"`
	// Highlights holds the highlight-section paragraphs (first 20); may be empty.
	Highlights []string `json:"highlights"`
	// FullText is all extracted text, newline-joined, capped at 5000 characters.
	FullText string `json:"fullText"`
	// Video holds best-effort video metadata; fields are independently nullable.
	Video VideoMeta `json:"video"`
}

// VideoMeta is the enrichment bundle for an article's referenced video.
// Every field is optional: a nil pointer means the lookup did not produce
// the value, which is never an error condition.
type VideoMeta struct {
	Title      *string `json:"title"`
	Channel    *string `json:"channel"`
	ChannelURL *string `json:"channelUrl"`
	// Views is the view count at enrichment time.
	Views *int64 `json:"views"`
	// Published is the ISO publish date (YYYY-MM-DD).
	Published *string `json:"published"`
}

// Sort orders articles by DateCode descending. Articles without a date code
// sort last; ties keep their original listing order.
func Sort(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].DateCode > articles[j].DateCode
	})
}
