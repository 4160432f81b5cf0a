package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// fastConfig keeps test backoff delays negligible.
var fastConfig = Config{
	MaxAttempts: 3,
	BaseDelay:   time.Millisecond,
	MaxDelay:    5 * time.Millisecond,
	Jitter:      false,
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := New(fastConfig).Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := New(fastConfig).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return clierr.New(clierr.Server, "HTTP 503")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "validation", err: clierr.New(clierr.Validation, "bad input")},
		{name: "auth", err: clierr.New(clierr.Auth, "rejected")},
		{name: "not found", err: clierr.New(clierr.NotFound, "gone")},
		{name: "unclassified", err: errors.New("plain")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := New(fastConfig).Do(context.Background(), func() error {
				calls++
				return tc.err
			})
			if !errors.Is(err, tc.err) {
				t.Errorf("err = %v, want the original error", err)
			}
			if calls != 1 {
				t.Errorf("calls = %d, want 1 (no retry)", calls)
			}
		})
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	cause := clierr.New(clierr.Network, "connection refused")
	err := New(fastConfig).Do(context.Background(), func() error {
		calls++
		return cause
	})
	if calls != fastConfig.MaxAttempts {
		t.Errorf("calls = %d, want %d", calls, fastConfig.MaxAttempts)
	}
	if !errors.Is(err, cause) {
		t.Errorf("exhaustion error must wrap the last failure, got %v", err)
	}
	// The wrapped error keeps its classification for exit codes.
	if clierr.KindOf(err) != clierr.Network {
		t.Errorf("kind = %v, want Network", clierr.KindOf(err))
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := New(fastConfig).Do(ctx, func() error {
		calls++
		return nil
	})
	if calls != 0 {
		t.Errorf("calls = %d, want 0 after cancellation", calls)
	}
	if clierr.KindOf(err) != clierr.Network {
		t.Errorf("kind = %v, want Network for canceled context", clierr.KindOf(err))
	}
}

func TestDoSingleAttemptConfig(t *testing.T) {
	cfg := fastConfig
	cfg.MaxAttempts = 1
	calls := 0
	err := New(cfg).Do(context.Background(), func() error {
		calls++
		return clierr.New(clierr.Server, "HTTP 500")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err == nil {
		t.Error("expected error after single failed attempt")
	}
}

func TestCalculateDelayCapsAtMax(t *testing.T) {
	eb := &exponentialBackoff{config: Config{
		MaxAttempts: 10,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Jitter:      false,
	}}

	testCases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 500 * time.Millisecond},
		{attempt: 2, want: time.Second},
		{attempt: 3, want: 2 * time.Second},
		{attempt: 4, want: 4 * time.Second},
		{attempt: 5, want: 5 * time.Second}, // capped
		{attempt: 8, want: 5 * time.Second},
	}
	for _, tc := range testCases {
		if got := eb.calculateDelay(tc.attempt); got != tc.want {
			t.Errorf("calculateDelay(%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestCalculateDelayJitterBounds(t *testing.T) {
	eb := &exponentialBackoff{config: Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Jitter:      true,
	}}
	for i := 0; i < 50; i++ {
		d := eb.calculateDelay(1)
		if d < 100*time.Millisecond || d > 125*time.Millisecond {
			t.Fatalf("jittered delay %v outside [100ms, 125ms]", d)
		}
	}
}
