package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"conferencehall/internal/domain"
)

type eventAuthorizer struct {
	eventRepo      domain.EventRepository
	teamMemberRepo domain.TeamMemberRepository
}

// NewEventAuthorizer returns an EventAuthorizer backed by the event and team member repositories.
func NewEventAuthorizer(eventRepo domain.EventRepository, teamMemberRepo domain.TeamMemberRepository) domain.EventAuthorizer {
	return &eventAuthorizer{
		eventRepo:      eventRepo,
		teamMemberRepo: teamMemberRepo,
	}
}

func (a *eventAuthorizer) Resolve(ctx context.Context, userID, teamSlug, eventSlug string, allowed ...domain.TeamRole) (*domain.Event, error) {
	if userID == "" {
		return nil, domain.ErrForbidden
	}
	event, err := a.eventRepo.GetBySlugs(ctx, teamSlug, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	member, err := a.teamMemberRepo.GetByTeamAndUser(ctx, event.TeamID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	if !slices.Contains(allowed, member.Role) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}
