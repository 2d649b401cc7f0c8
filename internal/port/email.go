package port

import "context"

// ReviewAlert describes an invoice that landed in needs_review.
type ReviewAlert struct {
	InvoiceID     string
	InvoiceNumber string
	SupplierName  string
	IssueCount    int
}

// EmailSender defines the contract for sending reviewer notifications.
type EmailSender interface {
	SendReviewAlert(ctx context.Context, toEmail string, alert ReviewAlert) error
}
