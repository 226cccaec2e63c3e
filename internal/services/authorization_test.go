package services

import (
	"context"
	"errors"
	"testing"

	"conferencehall/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAuthorizer_Resolve(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo()
	events.add("gdg", &domain.Event{ID: "ev-1", TeamID: "team-1", Name: "DevFest", Slug: "devfest", Type: domain.EventTypeConference})
	members := newFakeTeamMemberRepo()
	members.add("team-1", "owner-1", domain.TeamRoleOwner)
	members.add("team-1", "member-1", domain.TeamRoleMember)
	members.add("team-1", "reviewer-1", domain.TeamRoleReviewer)

	ownerOrMember := []domain.TeamRole{domain.TeamRoleOwner, domain.TeamRoleMember}

	tests := []struct {
		name      string
		userID    string
		teamSlug  string
		eventSlug string
		allowed   []domain.TeamRole
		wantErr   error
	}{
		{name: "owner allowed", userID: "owner-1", teamSlug: "gdg", eventSlug: "devfest", allowed: ownerOrMember},
		{name: "member allowed", userID: "member-1", teamSlug: "gdg", eventSlug: "devfest", allowed: ownerOrMember},
		{name: "reviewer forbidden", userID: "reviewer-1", teamSlug: "gdg", eventSlug: "devfest", allowed: ownerOrMember, wantErr: domain.ErrForbidden},
		{name: "member forbidden for owner only", userID: "member-1", teamSlug: "gdg", eventSlug: "devfest", allowed: []domain.TeamRole{domain.TeamRoleOwner}, wantErr: domain.ErrForbidden},
		{name: "not a team member", userID: "stranger", teamSlug: "gdg", eventSlug: "devfest", allowed: ownerOrMember, wantErr: domain.ErrForbidden},
		{name: "unknown event", userID: "owner-1", teamSlug: "gdg", eventSlug: "nope", allowed: ownerOrMember, wantErr: domain.ErrForbidden},
		{name: "event of another team", userID: "owner-1", teamSlug: "other", eventSlug: "devfest", allowed: ownerOrMember, wantErr: domain.ErrForbidden},
		{name: "empty user", userID: "", teamSlug: "gdg", eventSlug: "devfest", allowed: ownerOrMember, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authz := NewEventAuthorizer(events, members)
			event, err := authz.Resolve(ctx, tt.userID, tt.teamSlug, tt.eventSlug, tt.allowed...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, event)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ev-1", event.ID)
		})
	}
}

func TestEventAuthorizer_Resolve_RepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("event repository error is not forbidden", func(t *testing.T) {
		events := newFakeEventRepo()
		events.err = errors.New("db down")
		authz := NewEventAuthorizer(events, newFakeTeamMemberRepo())
		_, err := authz.Resolve(ctx, "owner-1", "gdg", "devfest", domain.TeamRoleOwner)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("team member repository error is not forbidden", func(t *testing.T) {
		events := newFakeEventRepo()
		events.add("gdg", &domain.Event{ID: "ev-1", TeamID: "team-1", Slug: "devfest"})
		members := newFakeTeamMemberRepo()
		members.err = errors.New("timeout")
		authz := NewEventAuthorizer(events, members)
		_, err := authz.Resolve(ctx, "owner-1", "gdg", "devfest", domain.TeamRoleOwner)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
	})
}
