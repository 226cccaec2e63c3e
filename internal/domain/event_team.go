package domain

import "context"

// TeamRole is the role of a user inside the team organizing an event.
type TeamRole string

const (
	TeamRoleOwner    TeamRole = "OWNER"
	TeamRoleMember   TeamRole = "MEMBER"
	TeamRoleReviewer TeamRole = "REVIEWER"
)

// TeamMember represents the membership of a user in a team.
type TeamMember struct {
	TeamID string   `json:"team_id"`
	UserID string   `json:"user_id"`
	Role   TeamRole `json:"role"`
}

// TeamMemberRepository defines the interface for team membership storage.
type TeamMemberRepository interface {
	// GetByTeamAndUser returns ErrNotFound when the user is not a member of the team.
	GetByTeamAndUser(ctx context.Context, teamID, userID string) (*TeamMember, error)
}

// EventAuthorizer resolves an event for a caller and checks the caller's team role.
type EventAuthorizer interface {
	// Resolve returns ErrForbidden when the event does not resolve, the caller is not a
	// member of the organizing team, or the caller's role is not one of allowed.
	Resolve(ctx context.Context, userID, teamSlug, eventSlug string, allowed ...TeamRole) (*Event, error)
}
