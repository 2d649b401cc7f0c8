package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"saralgst/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReviewAlert(ctx context.Context, toEmail string, alert port.ReviewAlert) error {
	subject := fmt.Sprintf("Invoice %s needs review", alert.InvoiceNumber)
	if alert.InvoiceNumber == "" {
		subject = "An invoice needs review"
	}

	htmlBody := buildReviewAlertHTML(alert)
	textBody := fmt.Sprintf(
		"Invoice %s from %s landed in the review queue with %d open issue(s).\n\nInvoice ID: %s\n\nSaralGST",
		alert.InvoiceNumber, alert.SupplierName, alert.IssueCount, alert.InvoiceID)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewAlertHTML(alert port.ReviewAlert) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice needs review</h2>
  <p>Invoice <strong>%s</strong> from <strong>%s</strong> landed in the review queue with %d open issue(s).</p>
  <p style="color: #666;">Invoice ID: %s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">SaralGST - GST Invoice Processing</p>
</body>
</html>`, alert.InvoiceNumber, alert.SupplierName, alert.IssueCount, alert.InvoiceID)
}
