// Package podigest renders a daily-updated podcast digest from documents
// authored in a Feishu wiki space.
//
// # Overview
//
// Episodes are written as wiki documents under a fixed parent node. The
// pipeline pulls them, normalizes their blocks into sectioned plain text,
// enriches each episode with metadata about its referenced video, and
// serves the resulting article collection through a TTL cache that degrades
// to stale or snapshot data when the upstream misbehaves.
//
// Data flows strictly downward:
//
//	credentials -> listing -> per-document blocks -> normalization
//	            -> enrichment -> aggregation -> cache -> presentation
//
// # Packages
//
//   - feishu: token exchange, child-node listing, paginated block fetching
//   - content: block normalization, title parsing, section classification
//   - youtube: best-effort video metadata (Data API or oEmbed + scrape)
//   - aggregator: per-document orchestration and collection assembly
//   - cache: single-slot TTL cache with stale and snapshot fallback
//   - article: the canonical model and the read contract
//   - server: the JSON API consumed by the presentation layer
//   - config: environment, file, and default configuration
//   - httpx: the shared HTTP client with retry and rate limiting
//   - retry: the backoff policy used by httpx
//
// # Quick start
//
// Build the pipeline and read through the cache:
//
//	client := httpx.New(nil)
//	source := feishu.NewClient(client, feishu.Options{
//		AppID:      os.Getenv("FEISHU_APP_ID"),
//		AppSecret:  os.Getenv("FEISHU_APP_SECRET"),
//		SpaceID:    spaceID,
//		ParentNode: parentNode,
//	})
//	agg := aggregator.New(source, youtube.NewScrapeEnricher(client))
//	c := cache.New(agg, 5*time.Minute, nil)
//
//	collection, err := c.Get(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, a := range collection.All() {
//		fmt.Println(a.DateCode, a.Title)
//	}
//
// # Error handling
//
// Errors are absorbed at the lowest level with a sensible degraded result:
// a failed listing yields an empty collection, a failed block page yields a
// partial document, and failed enrichment yields null metadata fields. Only
// a total refresh failure surfaces, and the cache absorbs even that
// whenever previously successful data exists:
//
//	var refreshErr *cache.RefreshError
//	if errors.As(err, &refreshErr) {
//		// nothing cached and no snapshot; retry on the next read
//	}
package podigest
