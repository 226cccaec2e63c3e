package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"conferencehall/internal/domain"
)

type proposalRepository struct {
	DB *sql.DB
}

func NewProposalRepository(db *sql.DB) domain.ProposalRepository {
	return &proposalRepository{
		DB: db,
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *proposalRepository) CountByStatus(ctx context.Context, eventID string) ([]domain.ProposalStatusCount, error) {
	query := `
		SELECT deliberation_status, publication_status, confirmation_status, COUNT(*)
		FROM proposals
		WHERE event_id = $1 AND is_draft = false
		GROUP BY deliberation_status, publication_status, confirmation_status
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make([]domain.ProposalStatusCount, 0)
	for rows.Next() {
		var c domain.ProposalStatusCount
		var deliberation, publication string
		var confirmation sql.NullString
		if err := rows.Scan(&deliberation, &publication, &confirmation, &c.Count); err != nil {
			return nil, err
		}
		c.Deliberation = domain.DeliberationStatus(deliberation)
		c.Publication = domain.PublicationStatus(publication)
		c.Confirmation = domain.ConfirmationStatus(confirmation.String)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// The publish statements claim rows through the publication_status filter, so a proposal
// is published at most once even under concurrent calls.
const publishByDeliberationQuery = `
	UPDATE proposals
	SET publication_status = 'PUBLISHED',
		confirmation_status = CASE WHEN deliberation_status = 'ACCEPTED' THEN 'PENDING' ELSE confirmation_status END,
		updated_at = NOW()
	WHERE event_id = $1
		AND deliberation_status = $2
		AND publication_status = 'NOT_PUBLISHED'
		AND is_draft = false
	RETURNING id, event_id, title, deliberation_status, publication_status, confirmation_status
`

const publishOneQuery = `
	UPDATE proposals
	SET publication_status = 'PUBLISHED',
		confirmation_status = CASE WHEN deliberation_status = 'ACCEPTED' THEN 'PENDING' ELSE confirmation_status END,
		updated_at = NOW()
	WHERE id = $1
		AND event_id = $2
		AND deliberation_status IN ('ACCEPTED', 'REJECTED')
		AND publication_status = 'NOT_PUBLISHED'
		AND is_draft = false
	RETURNING id, event_id, title, deliberation_status, publication_status, confirmation_status
`

func (r *proposalRepository) PublishByDeliberation(ctx context.Context, eventID string, status domain.DeliberationStatus) ([]*domain.Proposal, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	proposals, err := scanPublished(tx.QueryContext(ctx, publishByDeliberationQuery, eventID, string(status)))
	if err != nil {
		return nil, err
	}
	if err := loadDetails(ctx, tx, proposals); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return proposals, nil
}

func (r *proposalRepository) Publish(ctx context.Context, eventID, proposalID string) (*domain.Proposal, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	proposals, err := scanPublished(tx.QueryContext(ctx, publishOneQuery, proposalID, eventID))
	if err != nil {
		if isInvalidText(err) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, err
	}
	if len(proposals) == 0 {
		return nil, domain.ErrProposalNotFound
	}
	if err := loadDetails(ctx, tx, proposals); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return proposals[0], nil
}

func (r *proposalRepository) ResetPublication(ctx context.Context, eventID string) (int, error) {
	query := `
		UPDATE proposals
		SET publication_status = 'NOT_PUBLISHED', confirmation_status = NULL, updated_at = NOW()
		WHERE event_id = $1 AND publication_status = 'PUBLISHED'
	`
	result, err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanPublished(rows *sql.Rows, err error) ([]*domain.Proposal, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	proposals := make([]*domain.Proposal, 0)
	for rows.Next() {
		p := &domain.Proposal{}
		var deliberation, publication string
		var confirmation sql.NullString
		if err := rows.Scan(&p.ID, &p.EventID, &p.Title, &deliberation, &publication, &confirmation); err != nil {
			return nil, err
		}
		p.DeliberationStatus = domain.DeliberationStatus(deliberation)
		p.PublicationStatus = domain.PublicationStatus(publication)
		p.ConfirmationStatus = domain.ConfirmationStatus(confirmation.String)
		p.Formats = []string{}
		p.Speakers = []*domain.Speaker{}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// loadDetails fills speakers and formats of the given proposals.
func loadDetails(ctx context.Context, q queryer, proposals []*domain.Proposal) error {
	if len(proposals) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Proposal, len(proposals))
	ids := make([]string, 0, len(proposals))
	for _, p := range proposals {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	speakersQuery := `
		SELECT ps.proposal_id, u.id, u.name, u.email
		FROM proposals_speakers ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.proposal_id = ANY($1)
		ORDER BY ps.proposal_id, u.name
	`
	rows, err := q.QueryContext(ctx, speakersQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list speakers: %w", err)
	}
	for rows.Next() {
		var proposalID string
		var name, email sql.NullString
		s := &domain.Speaker{}
		if err := rows.Scan(&proposalID, &s.ID, &name, &email); err != nil {
			rows.Close()
			return err
		}
		s.Name = name.String
		s.Email = email.String
		if p, ok := byID[proposalID]; ok {
			p.Speakers = append(p.Speakers, s)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	formatsQuery := `
		SELECT pf.proposal_id, f.name
		FROM proposals_formats pf
		JOIN event_formats f ON f.id = pf.format_id
		WHERE pf.proposal_id = ANY($1)
		ORDER BY pf.proposal_id, f.name
	`
	rows, err = q.QueryContext(ctx, formatsQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list formats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var proposalID, format string
		if err := rows.Scan(&proposalID, &format); err != nil {
			return err
		}
		if p, ok := byID[proposalID]; ok {
			p.Formats = append(p.Formats, format)
		}
	}
	return rows.Err()
}
