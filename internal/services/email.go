package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"conferencehall/internal/domain"
	"conferencehall/internal/metrics"
)

type proposalNotifier struct {
	renderer    domain.EmailTemplateRenderer
	queue       domain.NotificationQueue
	fromAddress string
	logger      *slog.Logger
}

// NewProposalNotifier returns a ProposalNotifier that renders one email per proposal and
// enqueues it on the given queue. fromAddress is the bare sender address; the event name
// is used as display name.
func NewProposalNotifier(renderer domain.EmailTemplateRenderer, queue domain.NotificationQueue, fromAddress string, logger *slog.Logger) domain.ProposalNotifier {
	return &proposalNotifier{
		renderer:    renderer,
		queue:       queue,
		fromAddress: fromAddress,
		logger:      logger,
	}
}

// SendAccepted notifies the speakers of each proposal with the "proposal_accepted" template.
func (s *proposalNotifier) SendAccepted(ctx context.Context, event *domain.Event, proposals []*domain.Proposal) error {
	return s.send(ctx, domain.TemplateProposalAccepted, event, proposals, true)
}

// SendRejected notifies the speakers of each proposal with the "proposal_rejected" template.
func (s *proposalNotifier) SendRejected(ctx context.Context, event *domain.Event, proposals []*domain.Proposal) error {
	return s.send(ctx, domain.TemplateProposalRejected, event, proposals, false)
}

func (s *proposalNotifier) send(ctx context.Context, templateName string, event *domain.Event, proposals []*domain.Proposal, withFormats bool) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	from := (&mail.Address{Name: event.Name, Address: s.fromAddress}).String()
	// Proposals are already published: one failed enqueue must not cancel the others.
	var g errgroup.Group
	for _, p := range proposals {
		to, names := speakerRecipients(p.Speakers)
		if len(to) == 0 {
			s.logger.WarnContext(ctx, "proposal has no speaker email, skipping notification",
				"event_id", event.ID, "proposal_id", p.ID, "template", templateName)
			continue
		}
		g.Go(func() error {
			data := &domain.ProposalResultEmailData{
				EventName:     event.Name,
				ProposalTitle: p.Title,
				SpeakerNames:  names,
			}
			if withFormats {
				data.Formats = p.Formats
			}
			subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
			if err != nil {
				return fmt.Errorf("failed to render %s template: %w", templateName, err)
			}
			msg := &domain.EmailMessage{
				ID:         uuid.NewString(),
				ProposalID: p.ID,
				Template:   templateName,
				From:       from,
				To:         to,
				Subject:    subject,
				HTMLBody:   htmlBody,
				TextBody:   textBody,
				CreatedAt:  time.Now(),
			}
			err = s.queue.Enqueue(ctx, msg)
			metrics.ObserveEnqueued(templateName, err)
			if err != nil {
				s.logger.ErrorContext(ctx, "failed to enqueue notification",
					"event_id", event.ID, "proposal_id", p.ID, "template", templateName, "error", err)
				return fmt.Errorf("failed to enqueue %s email for proposal %s: %w", templateName, p.ID, err)
			}
			s.logger.DebugContext(ctx, "notification enqueued",
				"proposal_id", p.ID, "template", templateName, "recipients", len(to))
			return nil
		})
	}
	return g.Wait()
}

func speakerRecipients(speakers []*domain.Speaker) (emails, names []string) {
	for _, sp := range speakers {
		if sp == nil {
			continue
		}
		email := strings.TrimSpace(sp.Email)
		if email == "" {
			continue
		}
		emails = append(emails, email)
		names = append(names, sp.Name)
	}
	return emails, names
}
