// Package youtube resolves best-effort metadata for videos referenced by
// articles. Enrichment never fails an article: every lookup error degrades
// to null fields.
package youtube

import (
	"context"

	"podigest/article"
)

// Enricher resolves metadata for a video ID. Implementations return partial
// or empty bundles instead of errors; an empty videoID short-circuits to an
// all-null bundle without any network call.
type Enricher interface {
	Enrich(ctx context.Context, videoID string) article.VideoMeta
}

func strPtr(s string) *string { return &s }
