package noop

import (
	"context"
	"log"

	"saralgst/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs review alerts to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewAlert(_ context.Context, toEmail string, alert port.ReviewAlert) error {
	log.Printf("[NOOP EMAIL] Review alert for %s: invoice %s (%s) has %d open issue(s)",
		toEmail, alert.InvoiceNumber, alert.InvoiceID, alert.IssueCount)
	return nil
}
