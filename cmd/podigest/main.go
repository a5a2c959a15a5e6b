package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podigest/aggregator"
	"podigest/cache"
	"podigest/config"
	"podigest/feishu"
	"podigest/httpx"
	"podigest/server"
	"podigest/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	httpCfg := httpx.DefaultConfig()
	httpCfg.Timeout = cfg.RequestTimeout
	httpCfg.Retry.MaxRetries = cfg.MaxRetries
	client := httpx.New(httpCfg)
	defer client.Close()

	source := feishu.NewClient(client, feishu.Options{
		AppID:         cfg.AppID,
		AppSecret:     cfg.AppSecret,
		SpaceID:       cfg.SpaceID,
		ParentNode:    cfg.ParentNode,
		ListPageSize:  cfg.ListPageSize,
		BlockPageSize: cfg.BlockPageSize,
	})

	var enricher youtube.Enricher = youtube.NewScrapeEnricher(client)
	if cfg.YouTubeAPIKey != "" {
		apiEnricher, err := youtube.NewAPIEnricher(context.Background(), cfg.YouTubeAPIKey, enricher)
		if err != nil {
			log.Printf("data api unavailable, using scrape enricher: %v", err)
		} else {
			enricher = apiEnricher
		}
	}

	var snapshots *cache.SnapshotStore
	if cfg.SnapshotPath != "" {
		snapshots = cache.NewSnapshotStore(cfg.SnapshotPath)
	}

	articleCache := cache.New(aggregator.New(source, enricher), cfg.CacheTTL, snapshots)
	srv := server.New(cfg.ListenAddr, articleCache)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
