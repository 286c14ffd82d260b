package retry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxRetries int           // Additional attempts after the first failure
	Delay      time.Duration // Fixed delay between attempts
}

// DefaultConfig returns the retry configuration used for search page requests.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 2,
		Delay:      1 * time.Second,
	}
}

// Do executes a function with fixed-delay retry logic. Only retryable errors
// (server errors, network failures) trigger another attempt; client errors
// abort immediately.
func Do(ctx context.Context, config Config, operation func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		err = operation(ctx)
		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt == config.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.Delay):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxRetries+1, err)
}

// IsRetryable determines if an error is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Network-level errors are generally retryable
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "no such host") {
		return true
	}

	// Only 5xx server errors and 429 rate limiting should be retried
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "status 429") {
		return true
	}

	// Don't retry remaining 4xx client errors
	if strings.Contains(errStr, "status 4") {
		return false
	}

	return true
}

// HTTPStatusRetryable checks if an HTTP status code is retryable.
func HTTPStatusRetryable(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
