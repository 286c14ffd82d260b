// Package notify delivers finished digests to external channels.
package notify

import (
	"context"

	"newsdigest/internal/logger"
)

// Notifier delivers a digest to a recipient.
type Notifier interface {
	// Send delivers the digest text. It returns a short human-readable status.
	Send(ctx context.Context, recipient, message string) (string, error)

	// GetName returns the name of this notifier.
	GetName() string
}

// NoopSMS is a placeholder SMS notifier. It logs the request and reports that
// delivery is not configured.
type NoopSMS struct{}

// NewNoopSMS creates the placeholder SMS notifier.
func NewNoopSMS() *NoopSMS {
	return &NoopSMS{}
}

// GetName returns the name of this notifier.
func (n *NoopSMS) GetName() string {
	return "SMS (noop)"
}

// Send logs the delivery request without sending anything.
func (n *NoopSMS) Send(ctx context.Context, recipient, message string) (string, error) {
	if recipient == "" {
		return "not requested", nil
	}

	logger.Info("SMS delivery requested but not configured",
		"recipient", recipient,
		"length", len(message))
	return "SMS sending not configured", nil
}
