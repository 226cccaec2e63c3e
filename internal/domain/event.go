package domain

import (
	"context"
	"time"
)

// EventType distinguishes conferences from meetups.
type EventType string

const (
	EventTypeConference EventType = "CONFERENCE"
	EventTypeMeetup     EventType = "MEETUP"
)

// Event represents a conference or meetup with an open call for papers.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Type      EventType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupportsDeliberation reports whether proposals of the event go through
// deliberation and results publication. Meetups accept talks directly.
func (e *Event) SupportsDeliberation() bool {
	return e.Type != EventTypeMeetup
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	GetBySlugs(ctx context.Context, teamSlug, eventSlug string) (*Event, error)
}
