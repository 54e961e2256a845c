// Package notify delivers FSSAI violation notices.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/model"

	"go.uber.org/zap"
)

// Notice is a rendered e-mail
type Notice struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends notices and returns the provider's message id
type Mailer interface {
	Send(ctx context.Context, n Notice) (string, error)
}

// NewReportNotice renders the e-mail sent to FSSAI for a submitted report
func NewReportNotice(to string, r model.FSSAIReport) Notice {
	vendor := r.VendorName
	if vendor == "" {
		vendor = "Unknown Vendor"
	}
	supplier := r.SupplierName
	if supplier == "" {
		supplier = "Unknown Supplier"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Report Number: %s\n", r.ReportNumber)
	fmt.Fprintf(&b, "Vendor: %s\n", vendor)
	fmt.Fprintf(&b, "Supplier: %s\n", supplier)
	fmt.Fprintf(&b, "Product: %s\n", r.ProductName)
	fmt.Fprintf(&b, "Issue Type: %s\n", r.IssueType)
	fmt.Fprintf(&b, "Severity: %s\n", r.Severity)
	fmt.Fprintf(&b, "Description: %s\n", r.Description)
	fmt.Fprintf(&b, "Date: %s\n", r.CreatedAt.UTC().Format(time.RFC3339))

	return Notice{
		To:      to,
		Subject: "Food Safety Violation Report - " + r.ReportNumber,
		Body:    b.String(),
	}
}

// LogMailer writes notices to the log instead of an SMTP relay. Delay
// simulates provider latency.
type LogMailer struct {
	log   *zap.Logger
	delay time.Duration
	now   func() time.Time
}

// NewLogMailer creates a LogMailer
func NewLogMailer(log *zap.Logger, delay time.Duration) *LogMailer {
	return &LogMailer{log: log, delay: delay, now: time.Now}
}

// Send logs the notice once the delay has passed. A cancelled context
// aborts the send.
func (m *LogMailer) Send(ctx context.Context, n Notice) (string, error) {
	if n.To == "" {
		return "", fmt.Errorf("notice %q has no recipient", n.Subject)
	}

	m.log.Info("Sending FSSAI report email",
		zap.String("to", n.To),
		zap.String("subject", n.Subject),
		zap.String("body", n.Body),
	)

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("mail to %s not sent: %w", n.To, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Sprintf("msg_%d", m.now().UnixMilli()), nil
}
