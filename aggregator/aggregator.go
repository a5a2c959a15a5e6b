// Package aggregator orchestrates the ingestion pipeline: list documents,
// fetch and normalize blocks, enrich video metadata, and assemble the
// sorted article collection.
package aggregator

import (
	"context"
	"log"

	"github.com/google/uuid"

	"podigest/article"
	"podigest/content"
	"podigest/feishu"
	"podigest/youtube"
)

// SourceURLBase prefixes article IDs to form the source document URL.
const SourceURLBase = "https://my.feishu.cn/wiki/"

// Collection caps: first 15 intro paragraphs, first 20 highlight
// paragraphs, first 5000 characters of full text.
const (
	maxIntroParagraphs     = 15
	maxHighlightParagraphs = 20
	maxFullTextChars       = 5000
)

type refreshIDKey struct{}

// NewRefreshID returns a short identifier correlating the log lines of one
// refresh cycle.
func NewRefreshID() string {
	return uuid.NewString()[:8]
}

// WithRefreshID stamps ctx with the identifier for the refresh cycle it
// drives, so a caller that triggers a refresh can report the same ID its
// log lines carry.
func WithRefreshID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, refreshIDKey{}, id)
}

// refreshIDFrom returns the stamped identifier, minting one for cycles
// nobody labeled.
func refreshIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(refreshIDKey{}).(string); ok && id != "" {
		return id
	}
	return NewRefreshID()
}

// Aggregator builds the article collection from the content workspace.
type Aggregator struct {
	source   *feishu.Client
	enricher youtube.Enricher
}

// New creates an aggregator over the given document source and enricher.
func New(source *feishu.Client, enricher youtube.Enricher) *Aggregator {
	return &Aggregator{source: source, enricher: enricher}
}

// Refresh produces a complete, sorted article collection. It either fully
// succeeds or returns an error; it never returns a partially-built
// collection. A failed listing degrades to an empty collection rather than
// an error; only the credential exchange is fatal.
func (a *Aggregator) Refresh(ctx context.Context) ([]article.Article, error) {
	refreshID := refreshIDFrom(ctx)
	log.Printf("[aggregator] %s: refreshing article collection", refreshID)

	token, err := a.source.TenantToken(ctx)
	if err != nil {
		return nil, err
	}

	nodes, err := a.source.ListChildNodes(ctx, token)
	if err != nil {
		// Non-fatal: no articles this cycle.
		log.Printf("[aggregator] %s: listing failed, serving empty collection: %v", refreshID, err)
		nodes = nil
	}
	log.Printf("[aggregator] %s: found %d documents", refreshID, len(nodes))

	articles := make([]article.Article, 0, len(nodes))
	for i, node := range nodes {
		log.Printf("[aggregator] %s: [%d/%d] %s", refreshID, i+1, len(nodes), node.Title)
		articles = append(articles, a.buildArticle(ctx, token, node))
	}

	article.Sort(articles)
	log.Printf("[aggregator] %s: done, %d articles", refreshID, len(articles))
	return articles, nil
}

// buildArticle assembles one article. Block fetch failures yield a partial
// document; enrichment failures yield null metadata. Neither fails the
// article.
func (a *Aggregator) buildArticle(ctx context.Context, token string, node feishu.Node) article.Article {
	blocks, err := a.source.DocumentBlocks(ctx, token, node.ObjToken)
	if err != nil {
		log.Printf("[aggregator] partial document %s: %v", node.NodeToken, err)
	}

	doc := content.Normalize(blocks)
	intro, highlights := content.SplitSections(doc.Sections)
	dateCode, title := content.ParseTitle(node.Title)
	meta := a.enricher.Enrich(ctx, doc.VideoID)

	return article.Article{
		ID:         node.NodeToken,
		Title:      title,
		RawTitle:   node.Title,
		DateCode:   dateCode,
		VideoID:    doc.VideoID,
		SourceURL:  SourceURLBase + node.NodeToken,
		Intro:      capParagraphs(intro, maxIntroParagraphs),
		Highlights: capParagraphs(highlights, maxHighlightParagraphs),
		FullText:   capChars(doc.FullText, maxFullTextChars),
		Video:      meta,
	}
}

func capParagraphs(paragraphs []string, n int) []string {
	if paragraphs == nil {
		return []string{}
	}
	if len(paragraphs) > n {
		return paragraphs[:n]
	}
	return paragraphs
}

func capChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
