// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all application configuration for the podcast digest pipeline.
type Config struct {
	// AppID is the content workspace app identifier.
	AppID string `json:"app_id"`
	// AppSecret is the content workspace app secret.
	AppSecret string `json:"app_secret"`
	// SpaceID is the wiki space holding the episode documents.
	SpaceID string `json:"space_id"`
	// ParentNode is the wiki node whose children are the episode documents.
	ParentNode string `json:"parent_node"`

	// CacheTTL is how long a fetched collection stays fresh.
	CacheTTL time.Duration `json:"cache_ttl"`
	// SnapshotPath is the fallback snapshot file. Empty disables snapshots.
	SnapshotPath string `json:"snapshot_path"`

	// YouTubeAPIKey enables Data API enrichment when set; the keyless
	// oEmbed + page-scrape path is used otherwise.
	YouTubeAPIKey string `json:"youtube_api_key"`

	// ListenAddr is the address the JSON API server binds to.
	ListenAddr string `json:"listen_addr"`

	// ListPageSize is the page size for the child-node listing call.
	ListPageSize int `json:"list_page_size"`
	// BlockPageSize is the page size for the block listing call.
	BlockPageSize int `json:"block_page_size"`

	// MaxRetries is the maximum number of retries for failed HTTP calls.
	MaxRetries int `json:"max_retries"`
	// RequestTimeout is the per-request HTTP timeout.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		SpaceID:        "7591325128043121630",
		ParentNode:     "TOSJwKzxTiFdiRk0aducHNBFntg",
		CacheTTL:       5 * time.Minute,
		SnapshotPath:   defaultSnapshotPath(),
		ListenAddr:     ":8080",
		ListPageSize:   50,
		BlockPageSize:  100,
		MaxRetries:     3,
		RequestTimeout: 30 * time.Second,
	}
}

func defaultSnapshotPath() string {
	path, err := xdg.DataFile(filepath.Join("podigest", "articles.json"))
	if err != nil {
		return "articles.json"
	}
	return path
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from podigest.json in the current
// directory or the XDG config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"podigest.json",
		filepath.Join(xdg.ConfigHome, "podigest", "podigest.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("FEISHU_APP_ID"); v != "" {
		c.AppID = v
	}
	if v := os.Getenv("FEISHU_APP_SECRET"); v != "" {
		c.AppSecret = v
	}
	if v := os.Getenv("PODIGEST_SPACE_ID"); v != "" {
		c.SpaceID = v
	}
	if v := os.Getenv("PODIGEST_PARENT_NODE"); v != "" {
		c.ParentNode = v
	}
	if v := os.Getenv("PODIGEST_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
	if v := os.Getenv("PODIGEST_SNAPSHOT_PATH"); v != "" {
		c.SnapshotPath = v
	}
	if v := os.Getenv("PODIGEST_YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
	if v := os.Getenv("PODIGEST_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PODIGEST_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("PODIGEST_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.SpaceID == "" {
		return fmt.Errorf("space_id must be set")
	}
	if c.ParentNode == "" {
		return fmt.Errorf("parent_node must be set")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}
	if c.ListPageSize <= 0 {
		return fmt.Errorf("list_page_size must be positive")
	}
	if c.BlockPageSize <= 0 {
		return fmt.Errorf("block_page_size must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
