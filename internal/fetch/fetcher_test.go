package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giinscan/giinscan/internal/cache"
	"github.com/giinscan/giinscan/internal/model"
)

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{
		DefaultDelay: time.Millisecond,
		MaxRetries:   2,
		Timeout:      5 * time.Second,
		UserAgent:    "giinscan-test/1.0",
		MaxBodyBytes: 1 << 20,
	}
}

func fastRetries(t *testing.T) {
	t.Helper()
	orig := retryWaitTime
	retryWaitTime = time.Millisecond
	t.Cleanup(func() { retryWaitTime = orig })
}

func TestFetch(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if ua := r.Header.Get("User-Agent"); ua != "giinscan-test/1.0" {
			t.Errorf("Unexpected User-Agent: %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>山田太郎</body></html>"))
	}))
	defer server.Close()

	f := New(testConfig(), nil, 0)
	res, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(res.Text, "山田太郎") {
		t.Errorf("Unexpected body: %q", res.Text)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", res.StatusCode)
	}
	if res.FromCache {
		t.Error("Expected a network fetch, got a cache hit")
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 request, got %d", hits.Load())
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	fastRetries(t)

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	f := New(testConfig(), nil, 0)
	res, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected fetch to succeed after retries, got %v", err)
	}
	if res.Text != "recovered" {
		t.Errorf("Unexpected body: %q", res.Text)
	}
	if hits.Load() != 3 {
		t.Errorf("Expected 3 requests, got %d", hits.Load())
	}
}

func TestFetchNoRetryOnClientError(t *testing.T) {
	fastRetries(t)

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(testConfig(), nil, 0)
	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 404, got nil")
	}
	if hits.Load() != 1 {
		t.Errorf("Expected exactly 1 request for a 404, got %d", hits.Load())
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("cached page"))
	}))
	defer server.Close()

	store := cache.NewMemoryCache(time.Minute, time.Minute)
	f := New(testConfig(), store, time.Minute)

	first, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}
	if first.FromCache {
		t.Error("Expected first fetch to hit the network")
	}

	second, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}
	if !second.FromCache {
		t.Error("Expected second fetch to come from cache")
	}
	if second.Text != first.Text {
		t.Errorf("Cache returned different text: %q != %q", second.Text, first.Text)
	}
	if hits.Load() != 1 {
		t.Errorf("Expected 1 network request, got %d", hits.Load())
	}
}

func TestFetchRespectsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		w.Write([]byte("page"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RespectRobots = true
	f := New(cfg, nil, 0)

	if _, err := f.Fetch(context.Background(), server.URL+"/public/page"); err != nil {
		t.Fatalf("Expected allowed path to fetch, got %v", err)
	}

	_, err := f.Fetch(context.Background(), server.URL+"/private/page")
	if !errors.Is(err, ErrRobotsDisallowed) {
		t.Fatalf("Expected ErrRobotsDisallowed, got %v", err)
	}
}

func TestFetchBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 1024
	f := New(cfg, nil, 0)

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for oversized body, got nil")
	}
}

func TestFetchContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(testConfig(), nil, 0)
	if _, err := f.Fetch(ctx, server.URL); err == nil {
		t.Fatal("Expected error for canceled context, got nil")
	}
}
