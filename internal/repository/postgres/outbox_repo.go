package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"conferencehall/internal/domain"
)

// Outbox statuses.
const (
	outboxPending    = "pending"
	outboxProcessing = "processing"
	outboxSent       = "sent"
	outboxFailed     = "failed"
)

type emailOutboxRepository struct {
	DB *sql.DB
}

// NewEmailOutboxRepository returns an EmailOutbox stored in the email_outbox table.
func NewEmailOutboxRepository(db *sql.DB) domain.EmailOutbox {
	return &emailOutboxRepository{
		DB: db,
	}
}

func (r *emailOutboxRepository) Enqueue(ctx context.Context, msg *domain.EmailMessage) error {
	query := `
		INSERT INTO email_outbox (id, proposal_id, template, from_address, to_addresses, subject, html_body, text_body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.DB.ExecContext(ctx, query,
		msg.ID, msg.ProposalID, msg.Template, msg.From, pq.Array(msg.To),
		msg.Subject, msg.HTMLBody, msg.TextBody, outboxPending, createdAt,
	)
	return err
}

func (r *emailOutboxRepository) ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]*domain.EmailMessage, error) {
	query := `
		UPDATE email_outbox
		SET status = $3, locked_at = NOW(), attempts = attempts + 1
		WHERE id IN (
			SELECT id FROM email_outbox
			WHERE status = $4
				OR (status = $3 AND locked_at < NOW() - make_interval(secs => $2))
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, proposal_id, template, from_address, to_addresses, subject, html_body, text_body, attempts, created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, lease.Seconds(), outboxProcessing, outboxPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	messages := make([]*domain.EmailMessage, 0)
	for rows.Next() {
		m := &domain.EmailMessage{}
		var proposalID sql.NullString
		if err := rows.Scan(&m.ID, &proposalID, &m.Template, &m.From, pq.Array(&m.To),
			&m.Subject, &m.HTMLBody, &m.TextBody, &m.Attempts, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ProposalID = proposalID.String
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *emailOutboxRepository) MarkSent(ctx context.Context, id string) error {
	query := `UPDATE email_outbox SET status = $2, sent_at = NOW(), locked_at = NULL, last_error = NULL WHERE id = $1`
	return r.exec(ctx, query, id, outboxSent)
}

func (r *emailOutboxRepository) MarkFailed(ctx context.Context, id, reason string, retry bool) error {
	status := outboxFailed
	if retry {
		status = outboxPending
	}
	query := `UPDATE email_outbox SET status = $2, last_error = $3, locked_at = NULL WHERE id = $1`
	return r.exec(ctx, query, id, status, reason)
}

func (r *emailOutboxRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
