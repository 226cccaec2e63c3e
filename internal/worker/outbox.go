package worker

import (
	"context"
	"log/slog"
	"time"

	"conferencehall/internal/domain"
)

// OutboxConfig tunes the outbox dispatcher.
type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// Lease is how long a claimed message stays locked before another dispatcher may reclaim it.
	Lease time.Duration
}

func (c OutboxConfig) withDefaults() OutboxConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 20
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.Lease <= 0 {
		c.Lease = 5 * time.Minute
	}
	return c
}

// OutboxDispatcher polls the email outbox and delivers pending messages.
type OutboxDispatcher struct {
	outbox    domain.EmailOutbox
	deliverer *Deliverer
	cfg       OutboxConfig
	logger    *slog.Logger
}

// NewOutboxDispatcher returns a dispatcher draining outbox through deliverer.
func NewOutboxDispatcher(outbox domain.EmailOutbox, deliverer *Deliverer, cfg OutboxConfig, logger *slog.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{
		outbox:    outbox,
		deliverer: deliverer,
		cfg:       cfg.withDefaults(),
		logger:    logger.With("component", "outbox_dispatcher"),
	}
}

// Run dispatches until ctx is cancelled. A full batch is followed by another claim
// without waiting for the next tick.
func (d *OutboxDispatcher) Run(ctx context.Context) error {
	d.logger.Info("outbox dispatcher started",
		"poll_interval", d.cfg.PollInterval.String(), "batch_size", d.cfg.BatchSize, "max_attempts", d.cfg.MaxAttempts)
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	for {
		for {
			n, err := d.DispatchOnce(ctx)
			if err != nil {
				if ctx.Err() == nil {
					d.logger.ErrorContext(ctx, "outbox dispatch failed", "error", err)
				}
				break
			}
			if n < d.cfg.BatchSize {
				break
			}
		}
		select {
		case <-ctx.Done():
			d.logger.Info("outbox dispatcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// DispatchOnce claims one batch and delivers it. It returns the number of claimed messages.
func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) (int, error) {
	batch, err := d.outbox.ClaimBatch(ctx, d.cfg.BatchSize, d.cfg.Lease)
	if err != nil {
		return 0, err
	}
	for _, msg := range batch {
		if err := d.deliverer.Deliver(ctx, msg); err != nil {
			retry := msg.Attempts < d.cfg.MaxAttempts
			if !retry {
				d.logger.WarnContext(ctx, "email gave up after max attempts",
					"email_id", msg.ID, "attempts", msg.Attempts)
			}
			if markErr := d.outbox.MarkFailed(ctx, msg.ID, err.Error(), retry); markErr != nil {
				d.logger.ErrorContext(ctx, "failed to mark email as failed", "email_id", msg.ID, "error", markErr)
			}
			continue
		}
		if err := d.outbox.MarkSent(ctx, msg.ID); err != nil {
			d.logger.ErrorContext(ctx, "failed to mark email as sent", "email_id", msg.ID, "error", err)
		}
	}
	return len(batch), nil
}
