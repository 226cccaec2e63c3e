// Package worker drains the notification queues and hands messages to the mailer.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conferencehall/internal/domain"
	"conferencehall/internal/metrics"
)

// Deliverer sends queued messages through a Mailer and records the outcome.
type Deliverer struct {
	mailer  domain.Mailer
	source  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewDeliverer returns a Deliverer. source labels the delivery metrics ("outbox", "kafka").
func NewDeliverer(mailer domain.Mailer, source string, timeout time.Duration, logger *slog.Logger) *Deliverer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Deliverer{
		mailer:  mailer,
		source:  source,
		timeout: timeout,
		logger:  logger.With("source", source),
	}
}

// Deliver sends msg once.
func (d *Deliverer) Deliver(ctx context.Context, msg *domain.EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	started := time.Now()
	err := d.mailer.Send(ctx, msg)
	metrics.ObserveDelivery(d.source, started, err)
	if err != nil {
		d.logger.ErrorContext(ctx, "email delivery failed",
			"email_id", msg.ID, "proposal_id", msg.ProposalID, "template", msg.Template,
			"attempt", msg.Attempts, "error", err)
		return fmt.Errorf("deliver email %s: %w", msg.ID, err)
	}
	d.logger.DebugContext(ctx, "email delivered", "email_id", msg.ID, "proposal_id", msg.ProposalID)
	return nil
}
