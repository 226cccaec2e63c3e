package domain

import "context"

// DeliberationStatus is the outcome of the committee deliberation on a proposal.
type DeliberationStatus string

const (
	DeliberationPending  DeliberationStatus = "PENDING"
	DeliberationAccepted DeliberationStatus = "ACCEPTED"
	DeliberationRejected DeliberationStatus = "REJECTED"
)

// IsFinal reports whether the deliberation produced an outcome that can be announced.
func (s DeliberationStatus) IsFinal() bool {
	return s == DeliberationAccepted || s == DeliberationRejected
}

// PublicationStatus tells whether the deliberation outcome was announced to the speakers.
type PublicationStatus string

const (
	PublicationNotPublished PublicationStatus = "NOT_PUBLISHED"
	PublicationPublished    PublicationStatus = "PUBLISHED"
)

// ConfirmationStatus tracks the speaker answer to an acceptance. Empty means no confirmation requested.
type ConfirmationStatus string

const (
	ConfirmationNone      ConfirmationStatus = ""
	ConfirmationPending   ConfirmationStatus = "PENDING"
	ConfirmationConfirmed ConfirmationStatus = "CONFIRMED"
	ConfirmationDeclined  ConfirmationStatus = "DECLINED"
)

// Proposal is a talk submitted to an event.
// swagger:model Proposal
type Proposal struct {
	ID                 string             `json:"id"`
	EventID            string             `json:"event_id"`
	Title              string             `json:"title"`
	IsDraft            bool               `json:"is_draft"`
	DeliberationStatus DeliberationStatus `json:"deliberation_status"`
	PublicationStatus  PublicationStatus  `json:"publication_status"`
	ConfirmationStatus ConfirmationStatus `json:"confirmation_status,omitempty"`
	Formats            []string           `json:"formats"`
	Speakers           []*Speaker         `json:"speakers"`
}

// ProposalStatusCount is one row of the grouped count used by results statistics.
type ProposalStatusCount struct {
	Deliberation DeliberationStatus
	Publication  PublicationStatus
	Confirmation ConfirmationStatus
	Count        int
}

// ProposalRepository defines the proposal storage operations used by results publication.
// Draft proposals are never counted nor published.
type ProposalRepository interface {
	CountByStatus(ctx context.Context, eventID string) ([]ProposalStatusCount, error)
	// PublishByDeliberation publishes every unpublished proposal of the event with the given
	// deliberation status and returns the published proposals with their speakers and formats.
	PublishByDeliberation(ctx context.Context, eventID string, status DeliberationStatus) ([]*Proposal, error)
	// Publish publishes a single eligible proposal. Returns ErrProposalNotFound when no
	// unpublished, deliberated proposal with that id exists in the event.
	Publish(ctx context.Context, eventID, proposalID string) (*Proposal, error)
	// ResetPublication moves every published proposal of the event back to NOT_PUBLISHED
	// and clears confirmations. Returns the number of proposals reset.
	ResetPublication(ctx context.Context, eventID string) (int, error)
}
