package httpx

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter applies per-domain token-bucket rate limiting so that one
// flaky upstream cannot consume another's budget.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   RateLimiterConfig
}

// RateLimiterConfig defines per-domain request rates.
type RateLimiterConfig struct {
	// DefaultRPS is the requests-per-second budget for domains without a
	// custom rate. Zero means unlimited.
	DefaultRPS float64
	// Burst is the token bucket size (default 1).
	Burst int
	// DomainRPS maps a host suffix to a dedicated RPS budget.
	DomainRPS map[string]float64
}

// DefaultRateLimiterConfig returns conservative defaults for the two
// upstreams this pipeline talks to.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		DefaultRPS: 10,
		Burst:      2,
		DomainRPS: map[string]float64{
			"open.feishu.cn": 5,
			"youtube.com":    2.5,
		},
	}
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the domain of urlStr has budget for one request, or the
// context is canceled.
func (r *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	lim := r.limiterFor(extractDomain(urlStr))
	if lim == nil {
		return nil
	}
	return lim.Wait(ctx)
}

func (r *RateLimiter) limiterFor(domain string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lim, ok := r.limiters[domain]; ok {
		return lim
	}

	rps := r.config.DefaultRPS
	for suffix, custom := range r.config.DomainRPS {
		if domain == suffix || hasDotSuffix(domain, suffix) {
			rps = custom
			break
		}
	}
	if rps <= 0 {
		r.limiters[domain] = nil
		return nil
	}

	lim := rate.NewLimiter(rate.Limit(rps), r.config.Burst)
	r.limiters[domain] = lim
	return lim
}

func hasDotSuffix(host, suffix string) bool {
	return len(host) > len(suffix)+1 &&
		host[len(host)-len(suffix)-1] == '.' &&
		host[len(host)-len(suffix):] == suffix
}

func extractDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	return u.Hostname()
}
