// Package cache wraps the aggregator with a time-boxed single-slot cache
// that degrades to stale or snapshot data when a refresh fails.
//
// The slot moves between three states: empty (nothing ever fetched), fresh
// (data younger than the TTL), and stale (data older than the TTL). Reads
// in the fresh state never trigger a refresh. Reads in the empty or stale
// state refresh synchronously; concurrent reads share a single in-flight
// refresh that, once started, runs to completion regardless of the caller
// that started it. A failed refresh returns stale data when any exists, falls back
// to the persisted snapshot when the slot is empty, and only errors when
// there is nothing at all to serve.
package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"podigest/article"
)

// Refresher produces a complete, sorted article collection.
type Refresher interface {
	Refresh(ctx context.Context) ([]article.Article, error)
}

// RefreshError wraps a refresh failure that could not be absorbed by a
// stale or snapshot fallback.
type RefreshError struct {
	Err error
}

// Error returns a string representation of the refresh error.
func (e *RefreshError) Error() string { return fmt.Sprintf("cache: refresh failed: %v", e.Err) }

// Unwrap returns the underlying error.
func (e *RefreshError) Unwrap() error { return e.Err }

// Cache is the single shared cache slot. All methods are safe for
// concurrent use.
type Cache struct {
	refresher Refresher
	ttl       time.Duration
	snapshots *SnapshotStore // nil disables snapshot fallback and capture

	mu         sync.RWMutex
	data       *article.Collection
	capturedAt time.Time

	group singleflight.Group
	// now is swapped in tests to control the clock.
	now func() time.Time
}

// New creates a cache over the given refresher. snapshots may be nil.
func New(refresher Refresher, ttl time.Duration, snapshots *SnapshotStore) *Cache {
	return &Cache{
		refresher: refresher,
		ttl:       ttl,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// Get returns the current collection, refreshing first when the slot is
// empty or stale. A read within the TTL is served from memory without any
// upstream call.
func (c *Cache) Get(ctx context.Context) (*article.Collection, error) {
	if data := c.freshData(); data != nil {
		return data, nil
	}
	return c.refresh(ctx, false)
}

// ForceRefresh refreshes regardless of TTL, serving the rebuild trigger.
// The stale-fallback policy still applies on failure.
func (c *Cache) ForceRefresh(ctx context.Context) (*article.Collection, error) {
	return c.refresh(ctx, true)
}

// CapturedAt returns when the current collection was fetched, or the zero
// time when the slot is empty.
func (c *Cache) CapturedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.capturedAt
}

// freshData returns the cached collection only while it is within the TTL.
func (c *Cache) freshData() *article.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data != nil && c.now().Sub(c.capturedAt) < c.ttl {
		return c.data
	}
	return nil
}

// refresh runs at most one aggregation at a time; concurrent callers share
// the in-flight result.
func (c *Cache) refresh(ctx context.Context, force bool) (*article.Collection, error) {
	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		// A waiter that queued behind a completed refresh is served the
		// just-installed data instead of launching another one.
		if !force {
			if data := c.freshData(); data != nil {
				return data, nil
			}
		}

		// The flight is shared by every queued waiter, so it must not die
		// with the caller that happened to start it. Values (deadlines
		// aside) still flow through for logging.
		articles, err := c.refresher.Refresh(context.WithoutCancel(ctx))
		if err != nil {
			return c.fallback(err)
		}

		collection := article.NewCollection(articles)
		capturedAt := c.now()

		c.mu.Lock()
		c.data = collection
		c.capturedAt = capturedAt
		c.mu.Unlock()

		c.persistSnapshot(articles, capturedAt)
		return collection, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*article.Collection), nil
}

// fallback resolves a failed refresh: stale data if any exists, then the
// persisted snapshot, then the error itself.
func (c *Cache) fallback(refreshErr error) (interface{}, error) {
	c.mu.RLock()
	stale := c.data
	c.mu.RUnlock()

	if stale != nil {
		log.Printf("[cache] refresh failed, serving stale data: %v", refreshErr)
		return stale, nil
	}

	if c.snapshots != nil {
		if snap, err := c.snapshots.Load(); err == nil {
			log.Printf("[cache] refresh failed, seeding from snapshot of %s: %v",
				snap.CapturedAt.Format(time.RFC3339), refreshErr)
			collection := article.NewCollection(snap.Articles)

			c.mu.Lock()
			c.data = collection
			c.capturedAt = snap.CapturedAt
			c.mu.Unlock()

			return collection, nil
		} else if !os.IsNotExist(err) {
			log.Printf("[cache] snapshot unavailable: %v", err)
		}
	}

	return nil, &RefreshError{Err: refreshErr}
}

// persistSnapshot captures a successful refresh for the next process start.
func (c *Cache) persistSnapshot(articles []article.Article, capturedAt time.Time) {
	if c.snapshots == nil {
		return
	}
	snap := &Snapshot{CapturedAt: capturedAt, Articles: articles}
	if err := c.snapshots.Save(snap); err != nil {
		log.Printf("[cache] snapshot save failed: %v", err)
	}
}
