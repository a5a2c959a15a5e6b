package aggregator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"podigest/article"
	"podigest/feishu"
	"podigest/httpx"
)

// nullEnricher mimics total enrichment failure: every lookup degrades to an
// all-null bundle.
type nullEnricher struct {
	seen []string
}

func (e *nullEnricher) Enrich(ctx context.Context, videoID string) article.VideoMeta {
	e.seen = append(e.seen, videoID)
	return article.VideoMeta{}
}

func newTestSource(t *testing.T, handler http.Handler) *feishu.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := httpx.DefaultConfig()
	cfg.Retry.MaxRetries = 0
	cfg.RateLimiter = httpx.RateLimiterConfig{}

	return feishu.NewClient(httpx.New(cfg), feishu.Options{
		BaseURL:    server.URL,
		AppID:      "id",
		AppSecret:  "secret",
		SpaceID:    "space",
		ParentNode: "parent",
	})
}

func routeFeishu(t *testing.T, docs map[string]string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"tenant_access_token":"tok"}`)
	})

	mux.HandleFunc("/wiki/v2/spaces/space/nodes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"items":[
			{"title":"0310: Older Episode","obj_token":"obj-older","node_token":"node-older"},
			{"title":"0312: Newer Episode","obj_token":"obj-newer","node_token":"node-newer"},
			{"title":"Undated Notes","obj_token":"obj-undated","node_token":"node-undated"}
		]}}`)
	})

	mux.HandleFunc("/docx/v1/documents/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		objToken := parts[len(parts)-2]
		body, ok := docs[objToken]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, body)
	})

	return mux
}

func blockJSON(texts ...string) string {
	items := make([]string, len(texts))
	for i, text := range texts {
		items[i] = fmt.Sprintf(`{"block_type":2,"text":{"elements":[{"text_run":{"content":%q}}]}}`, text)
	}
	return fmt.Sprintf(`{"code":0,"data":{"items":[%s],"has_more":false}}`, strings.Join(items, ","))
}

func TestRefreshBuildsSortedCollection(t *testing.T) {
	docs := map[string]string{
		"obj-older":   blockJSON("intro older", "---", "highlight older"),
		"obj-newer":   blockJSON("see https://youtu.be/dQw4w9WgXcQ", "---", "highlight newer"),
		"obj-undated": blockJSON("just notes"),
	}
	enricher := &nullEnricher{}
	agg := New(newTestSource(t, routeFeishu(t, docs)), enricher)

	articles, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("Refresh() returned %d articles, want 3", len(articles))
	}

	// Sorted by date code descending, undated last.
	wantOrder := []string{"node-newer", "node-older", "node-undated"}
	for i, want := range wantOrder {
		if articles[i].ID != want {
			t.Fatalf("order[%d] = %s, want %s", i, articles[i].ID, want)
		}
	}

	newer := articles[0]
	if newer.Title != "Newer Episode" || newer.DateCode != "0312" {
		t.Errorf("title parse = (%q, %q)", newer.Title, newer.DateCode)
	}
	if newer.RawTitle != "0312: Newer Episode" {
		t.Errorf("rawTitle = %q", newer.RawTitle)
	}
	if newer.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("videoID = %q", newer.VideoID)
	}
	if newer.SourceURL != SourceURLBase+"node-newer" {
		t.Errorf("sourceURL = %q", newer.SourceURL)
	}
	if len(newer.Highlights) != 1 || newer.Highlights[0] != "highlight newer" {
		t.Errorf("highlights = %v", newer.Highlights)
	}
}

func TestRefreshEnrichmentIsolation(t *testing.T) {
	docs := map[string]string{
		"obj-older":   blockJSON("intro", "---", "more"),
		"obj-newer":   blockJSON("watch https://youtu.be/dQw4w9WgXcQ"),
		"obj-undated": blockJSON("notes"),
	}
	enricher := &nullEnricher{}
	agg := New(newTestSource(t, routeFeishu(t, docs)), enricher)

	articles, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	var withVideo *article.Article
	for i := range articles {
		if articles[i].VideoID != "" {
			withVideo = &articles[i]
		}
	}
	if withVideo == nil {
		t.Fatal("no article with video id")
	}

	// Failed enrichment must not fail the article.
	if withVideo.Title == "" || len(withVideo.Intro) == 0 {
		t.Errorf("article with failed enrichment missing core fields: %+v", withVideo)
	}
	if withVideo.Video.Title != nil || withVideo.Video.Views != nil {
		t.Errorf("video meta = %+v, want all-null", withVideo.Video)
	}
}

func TestRefreshCapsParagraphsAndText(t *testing.T) {
	var intro []string
	for i := 0; i < 30; i++ {
		intro = append(intro, fmt.Sprintf("intro paragraph %02d", i))
	}
	texts := append(intro, "---")
	for i := 0; i < 30; i++ {
		texts = append(texts, fmt.Sprintf("highlight %02d", i))
	}

	docs := map[string]string{
		"obj-older":   blockJSON(texts...),
		"obj-newer":   blockJSON(strings.Repeat("长", 6000)),
		"obj-undated": blockJSON("x"),
	}
	agg := New(newTestSource(t, routeFeishu(t, docs)), &nullEnricher{})

	articles, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	byID := make(map[string]article.Article)
	for _, a := range articles {
		byID[a.ID] = a
	}

	capped := byID["node-older"]
	if len(capped.Intro) != 15 {
		t.Errorf("intro capped to %d, want 15", len(capped.Intro))
	}
	if len(capped.Highlights) != 20 {
		t.Errorf("highlights capped to %d, want 20", len(capped.Highlights))
	}

	long := byID["node-newer"]
	if got := len([]rune(long.FullText)); got != 5000 {
		t.Errorf("fullText capped to %d runes, want 5000", got)
	}
}

func TestRefreshListingFailureDegradesToEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"tenant_access_token":"tok"}`)
	})
	mux.HandleFunc("/wiki/v2/spaces/space/nodes", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":1254001,"msg":"space not found"}`)
	})

	agg := New(newTestSource(t, mux), &nullEnricher{})

	articles, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v, want listing failure degraded", err)
	}
	if len(articles) != 0 {
		t.Errorf("Refresh() returned %d articles, want 0", len(articles))
	}
}

func TestRefreshAuthFailureFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":99991663,"msg":"bad app"}`)
	})

	agg := New(newTestSource(t, mux), &nullEnricher{})

	_, err := agg.Refresh(context.Background())

	var authErr *feishu.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Refresh() error = %v, want *feishu.AuthError", err)
	}
}

func TestRefreshPartialDocumentTolerated(t *testing.T) {
	// Block fetch fails for one document: it still yields an (empty) article.
	docs := map[string]string{
		"obj-older":   blockJSON("fine"),
		"obj-undated": blockJSON("fine too"),
		// obj-newer missing: its block fetch 404s.
	}
	agg := New(newTestSource(t, routeFeishu(t, docs)), &nullEnricher{})

	articles, err := agg.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v, want per-document tolerance", err)
	}
	if len(articles) != 3 {
		t.Fatalf("Refresh() returned %d articles, want 3", len(articles))
	}

	for _, a := range articles {
		if a.ID == "node-newer" {
			if a.RawTitle != "0312: Newer Episode" {
				t.Errorf("partial article rawTitle = %q", a.RawTitle)
			}
			if a.FullText != "" || len(a.Intro) != 0 {
				t.Errorf("partial article content = %+v, want empty", a)
			}
		}
	}
}

func TestRefreshIDContext(t *testing.T) {
	ctx := WithRefreshID(context.Background(), "abc12345")
	if got := refreshIDFrom(ctx); got != "abc12345" {
		t.Errorf("refreshIDFrom(stamped ctx) = %q, want abc12345", got)
	}

	// Unlabeled cycles mint their own short identifier.
	minted := refreshIDFrom(context.Background())
	if len(minted) != 8 {
		t.Errorf("minted refresh ID = %q, want 8 characters", minted)
	}
	if again := refreshIDFrom(context.Background()); again == minted {
		t.Error("minted refresh IDs collide across cycles")
	}
}
