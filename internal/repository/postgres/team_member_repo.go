package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencehall/internal/domain"
)

type teamMemberRepository struct {
	DB *sql.DB
}

func NewTeamMemberRepository(db *sql.DB) domain.TeamMemberRepository {
	return &teamMemberRepository{
		DB: db,
	}
}

func (r *teamMemberRepository) GetByTeamAndUser(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT team_id, user_id, role
		FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`
	m := &domain.TeamMember{}
	var role string
	err := r.DB.QueryRowContext(ctx, query, teamID, userID).Scan(&m.TeamID, &m.UserID, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	m.Role = domain.TeamRole(role)
	return m, nil
}
