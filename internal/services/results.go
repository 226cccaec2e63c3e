package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"conferencehall/internal/domain"
	"conferencehall/internal/metrics"
)

const defaultContextTimeout = 10 * time.Second

type resultsService struct {
	authorizer     domain.EventAuthorizer
	proposalRepo   domain.ProposalRepository
	notifier       domain.ProposalNotifier
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewResultsService returns the results publication service.
func NewResultsService(authorizer domain.EventAuthorizer,
	proposalRepo domain.ProposalRepository,
	notifier domain.ProposalNotifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ResultsService {
	if timeout <= 0 {
		timeout = defaultContextTimeout
	}
	return &resultsService{
		authorizer:     authorizer,
		proposalRepo:   proposalRepo,
		notifier:       notifier,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *resultsService) For(userID, teamSlug, eventSlug string) domain.EventResults {
	return &eventResults{
		service:   s,
		userID:    userID,
		teamSlug:  teamSlug,
		eventSlug: eventSlug,
	}
}

// eventResults is built per request; the event is resolved inside each operation.
type eventResults struct {
	service   *resultsService
	userID    string
	teamSlug  string
	eventSlug string
}

func (r *eventResults) resolve(ctx context.Context, withDeliberation bool, allowed ...domain.TeamRole) (*domain.Event, error) {
	event, err := r.service.authorizer.Resolve(ctx, r.userID, r.teamSlug, r.eventSlug, allowed...)
	if err != nil {
		return nil, err
	}
	if withDeliberation && !event.SupportsDeliberation() {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (r *eventResults) Statistics(ctx context.Context) (*domain.ResultsStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, r.service.contextTimeout)
	defer cancel()

	event, err := r.resolve(ctx, true, domain.TeamRoleOwner, domain.TeamRoleMember)
	if err != nil {
		return nil, err
	}
	counts, err := r.service.proposalRepo.CountByStatus(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count proposals: %w", err)
	}
	return domain.NewResultsStatistics(counts), nil
}

func (r *eventResults) Publish(ctx context.Context, proposalID string, notify bool) error {
	ctx, cancel := context.WithTimeout(ctx, r.service.contextTimeout)
	defer cancel()

	event, err := r.resolve(ctx, false, domain.TeamRoleOwner, domain.TeamRoleMember)
	if err != nil {
		return err
	}
	if proposalID == "" {
		return domain.ErrProposalNotFound
	}
	proposal, err := r.service.proposalRepo.Publish(ctx, event.ID, proposalID)
	if err != nil {
		return err
	}
	metrics.ObservePublished(string(proposal.DeliberationStatus), 1)
	r.service.logger.InfoContext(ctx, "proposal published",
		"event_id", event.ID, "proposal_id", proposal.ID, "outcome", proposal.DeliberationStatus, "notify", notify)

	if !notify {
		return nil
	}
	return r.notify(ctx, event, proposal.DeliberationStatus, []*domain.Proposal{proposal})
}

func (r *eventResults) PublishAll(ctx context.Context, status domain.DeliberationStatus, notify bool) error {
	if !status.IsFinal() {
		return fmt.Errorf("%w: cannot publish %q proposals", domain.ErrInvalidInput, status)
	}
	ctx, cancel := context.WithTimeout(ctx, r.service.contextTimeout)
	defer cancel()

	event, err := r.resolve(ctx, true, domain.TeamRoleOwner, domain.TeamRoleMember)
	if err != nil {
		return err
	}
	proposals, err := r.service.proposalRepo.PublishByDeliberation(ctx, event.ID, status)
	if err != nil {
		return fmt.Errorf("publish proposals: %w", err)
	}
	if len(proposals) == 0 {
		return domain.ErrNothingToPublish
	}
	metrics.ObservePublished(string(status), len(proposals))
	r.service.logger.InfoContext(ctx, "proposals published",
		"event_id", event.ID, "outcome", status, "count", len(proposals), "notify", notify)

	if !notify {
		return nil
	}
	return r.notify(ctx, event, status, proposals)
}

func (r *eventResults) ResetPublication(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.service.contextTimeout)
	defer cancel()

	event, err := r.resolve(ctx, true, domain.TeamRoleOwner)
	if err != nil {
		return 0, err
	}
	n, err := r.service.proposalRepo.ResetPublication(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("reset publication: %w", err)
	}
	r.service.logger.InfoContext(ctx, "publication reset", "event_id", event.ID, "count", n)
	return n, nil
}

// notify runs after the publication is committed. A failure is returned to the caller
// but the publication stays in place.
func (r *eventResults) notify(ctx context.Context, event *domain.Event, status domain.DeliberationStatus, proposals []*domain.Proposal) error {
	var err error
	switch status {
	case domain.DeliberationAccepted:
		err = r.service.notifier.SendAccepted(ctx, event, proposals)
	case domain.DeliberationRejected:
		err = r.service.notifier.SendRejected(ctx, event, proposals)
	}
	if err != nil {
		r.service.logger.ErrorContext(ctx, "notify speakers failed",
			"event_id", event.ID, "outcome", status, "count", len(proposals), "err", err)
		return fmt.Errorf("notify speakers: %w", err)
	}
	return nil
}
