package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSpacesSameHost(t *testing.T) {
	l := NewLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "https://example.jp/page", 0); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	// First request is immediate, the next two wait ~50ms each.
	if elapsed < 90*time.Millisecond {
		t.Errorf("Expected at least ~100ms of spacing, got %v", elapsed)
	}
}

func TestLimiterIndependentHosts(t *testing.T) {
	l := NewLimiter(time.Second)
	ctx := context.Background()

	start := time.Now()
	if err := l.Wait(ctx, "https://a.example.jp/", 0); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if err := l.Wait(ctx, "https://b.example.jp/", 0); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Expected different hosts not to block each other, took %v", elapsed)
	}
}

func TestLimiterZeroDelay(t *testing.T) {
	l := NewLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := l.Wait(ctx, "https://example.jp/", 0); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Expected no spacing with zero delay, took %v", elapsed)
	}
}

func TestLimiterOverride(t *testing.T) {
	l := NewLimiter(time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := l.Wait(ctx, "https://example.jp/", 60*time.Millisecond); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if err := l.Wait(ctx, "https://example.jp/", 60*time.Millisecond); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Expected the longer override delay to apply, got %v", elapsed)
	}
}

func TestLimiterCanceledContext(t *testing.T) {
	l := NewLimiter(10 * time.Second)

	// Exhaust the burst so the next Wait actually blocks.
	if err := l.Wait(context.Background(), "https://example.jp/", 0); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx, "https://example.jp/", 0); err == nil {
		t.Fatal("Expected error for canceled context, got nil")
	}
}

func TestLimiterBadURL(t *testing.T) {
	l := NewLimiter(time.Millisecond)
	if err := l.Wait(context.Background(), "://not a url", 0); err == nil {
		t.Fatal("Expected error for unparseable URL, got nil")
	}
}
