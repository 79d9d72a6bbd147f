// Package fetch retrieves source pages politely: cache-first, rate limited
// per host, robots.txt aware, with retry on transient failures and
// best-effort character-encoding resolution.
package fetch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/giinscan/giinscan/internal/cache"
	"github.com/giinscan/giinscan/internal/model"
	"github.com/giinscan/giinscan/internal/util"
	"github.com/giinscan/giinscan/internal/worker"
)

// ErrRobotsDisallowed marks a URL the site's robots.txt excludes. The
// pipeline records it as a fetch error for that page and moves on.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// retryWaitTime is the base backoff between retries (injectable for tests).
var retryWaitTime = time.Second

// Result is a fetched page, decoded to UTF-8.
type Result struct {
	Text       string
	StatusCode int
	FinalURL   string
	FromCache  bool
}

// cacheEntry is the envelope stored in the response cache.
type cacheEntry struct {
	Text       string `json:"text"`
	StatusCode int    `json:"status_code"`
	FinalURL   string `json:"final_url"`
}

// Fetcher retrieves page bodies for URLs.
type Fetcher struct {
	client  *resty.Client
	store   cache.Cache // nil when caching is disabled
	ttl     time.Duration
	limiter *worker.Limiter
	robots  *util.RobotsChecker // nil when robots compliance is off
	maxSize int64
}

// New creates a Fetcher from the HTTP configuration. store may be nil to
// disable caching.
func New(cfg model.HTTPConfig, store cache.Cache, ttl time.Duration) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(30 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeaders(map[string]string{
			"User-Agent":      cfg.UserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "ja,en-US;q=0.7,en;q=0.3",
		})

	// Retry transport errors, rate-limit responses and server errors.
	// Client errors like 404 fail immediately.
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		code := r.StatusCode()
		return code == http.StatusTooManyRequests || code >= 500
	})

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Fetcher{
		client:  client,
		store:   store,
		ttl:     ttl,
		limiter: worker.NewLimiter(cfg.DefaultDelay),
		robots:  robots,
		maxSize: cfg.MaxBodyBytes,
	}
}

// Fetch returns the page text for a URL. Cache hits bypass the network,
// the politeness delay and the retry budget entirely.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	key := cache.CacheKey(rawURL)

	if f.store != nil {
		if data, found := f.store.Get(key); found {
			var entry cacheEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				return &Result{
					Text:       entry.Text,
					StatusCode: entry.StatusCode,
					FinalURL:   entry.FinalURL,
					FromCache:  true,
				}, nil
			}
			// Corrupt entry: drop it and refetch.
			_ = f.store.Delete(key)
		}
	}

	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
		}
		crawlDelay = delay
	}

	if err := f.limiter.Wait(ctx, rawURL, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode())
	}

	body := resp.Body()
	if f.maxSize > 0 && int64(len(body)) > f.maxSize {
		return nil, fmt.Errorf("fetch %s: response exceeds %d bytes", rawURL, f.maxSize)
	}

	result := &Result{
		Text:       DecodeBody(body, resp.Header().Get("Content-Type")),
		StatusCode: resp.StatusCode(),
		FinalURL:   rawURL,
	}
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		result.FinalURL = resp.RawResponse.Request.URL.String()
	}

	if f.store != nil {
		if data, err := json.Marshal(cacheEntry{
			Text:       result.Text,
			StatusCode: result.StatusCode,
			FinalURL:   result.FinalURL,
		}); err == nil {
			_ = f.store.Set(key, data, f.ttl)
		}
	}

	return result, nil
}
