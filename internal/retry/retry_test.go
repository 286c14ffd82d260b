package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{MaxRetries: 2, Delay: time.Millisecond}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesServerErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("search request failed with status 503")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoExhaustsBudget(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(ctx context.Context) error {
		calls++
		return errors.New("search request failed with status 500")
	})

	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", calls)
	}
}

func TestDoAbortsOnClientError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), testConfig(), func(ctx context.Context) error {
		calls++
		return errors.New("search request failed with status 403")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("client error should not be retried, got %d calls", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Do(ctx, Config{MaxRetries: 5, Delay: 50 * time.Millisecond}, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("connection refused")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err       error
		retryable bool
	}{
		{errors.New("search request failed with status 500"), true},
		{errors.New("search request failed with status 429"), true},
		{errors.New("search request failed with status 404"), false},
		{errors.New("context deadline exceeded (Client.Timeout)"), true},
		{errors.New("dial tcp: connection refused"), true},
		{nil, false},
	}

	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.retryable {
			t.Errorf("IsRetryable(%v) = %v, want %v", c.err, got, c.retryable)
		}
	}
}

func TestHTTPStatusRetryable(t *testing.T) {
	if !HTTPStatusRetryable(500) || !HTTPStatusRetryable(429) {
		t.Error("5xx and 429 should be retryable")
	}
	if HTTPStatusRetryable(404) || HTTPStatusRetryable(200) {
		t.Error("4xx (except 429) and success should not be retryable")
	}
}
