package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"conferencehall/internal/domain"
)

// testLogger discards output so tests don't assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository keyed by "team/event" slugs.
type fakeEventRepo struct {
	bySlugs map[string]*domain.Event
	err     error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{bySlugs: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) add(teamSlug string, e *domain.Event) {
	f.bySlugs[teamSlug+"/"+e.Slug] = e
}

func (f *fakeEventRepo) GetBySlugs(ctx context.Context, teamSlug, eventSlug string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.bySlugs[teamSlug+"/"+eventSlug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

// fakeTeamMemberRepo is an in-memory TeamMemberRepository.
type fakeTeamMemberRepo struct {
	roles map[string]domain.TeamRole // teamID|userID -> role
	err   error
}

func newFakeTeamMemberRepo() *fakeTeamMemberRepo {
	return &fakeTeamMemberRepo{roles: make(map[string]domain.TeamRole)}
}

func (f *fakeTeamMemberRepo) add(teamID, userID string, role domain.TeamRole) {
	f.roles[teamID+"|"+userID] = role
}

func (f *fakeTeamMemberRepo) GetByTeamAndUser(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[teamID+"|"+userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.TeamMember{TeamID: teamID, UserID: userID, Role: role}, nil
}

// fakeProposalRepo is an in-memory ProposalRepository applying the same filters as the SQL one.
type fakeProposalRepo struct {
	mu         sync.Mutex
	proposals  []*domain.Proposal
	countErr   error
	publishErr error
}

func (f *fakeProposalRepo) add(p *domain.Proposal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.PublicationStatus == "" {
		p.PublicationStatus = domain.PublicationNotPublished
	}
	f.proposals = append(f.proposals, p)
}

func (f *fakeProposalRepo) get(id string) *domain.Proposal {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.proposals {
		if p.ID == id {
			c := *p
			return &c
		}
	}
	return nil
}

func (f *fakeProposalRepo) CountByStatus(ctx context.Context, eventID string) ([]domain.ProposalStatusCount, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	type key struct {
		d domain.DeliberationStatus
		p domain.PublicationStatus
		c domain.ConfirmationStatus
	}
	grouped := make(map[key]int)
	var order []key
	for _, p := range f.proposals {
		if p.EventID != eventID || p.IsDraft {
			continue
		}
		k := key{p.DeliberationStatus, p.PublicationStatus, p.ConfirmationStatus}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k]++
	}
	out := make([]domain.ProposalStatusCount, 0, len(order))
	for _, k := range order {
		out = append(out, domain.ProposalStatusCount{Deliberation: k.d, Publication: k.p, Confirmation: k.c, Count: grouped[k]})
	}
	return out, nil
}

func (f *fakeProposalRepo) markPublished(p *domain.Proposal) *domain.Proposal {
	p.PublicationStatus = domain.PublicationPublished
	if p.DeliberationStatus == domain.DeliberationAccepted {
		p.ConfirmationStatus = domain.ConfirmationPending
	}
	c := *p
	return &c
}

func (f *fakeProposalRepo) PublishByDeliberation(ctx context.Context, eventID string, status domain.DeliberationStatus) ([]*domain.Proposal, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Proposal
	for _, p := range f.proposals {
		if p.EventID != eventID || p.IsDraft || p.DeliberationStatus != status || p.PublicationStatus != domain.PublicationNotPublished {
			continue
		}
		out = append(out, f.markPublished(p))
	}
	return out, nil
}

func (f *fakeProposalRepo) Publish(ctx context.Context, eventID, proposalID string) (*domain.Proposal, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.proposals {
		if p.ID == proposalID && p.EventID == eventID && !p.IsDraft &&
			p.PublicationStatus == domain.PublicationNotPublished && p.DeliberationStatus.IsFinal() {
			return f.markPublished(p), nil
		}
	}
	return nil, domain.ErrProposalNotFound
}

func (f *fakeProposalRepo) ResetPublication(ctx context.Context, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.proposals {
		if p.EventID == eventID && p.PublicationStatus == domain.PublicationPublished {
			p.PublicationStatus = domain.PublicationNotPublished
			p.ConfirmationStatus = domain.ConfirmationNone
			n++
		}
	}
	return n, nil
}

// fakeQueue records enqueued messages; safe for the concurrent fan-out.
type fakeQueue struct {
	mu       sync.Mutex
	messages []*domain.EmailMessage
	err      error
	failFor  map[string]error
}

func (f *fakeQueue) Enqueue(ctx context.Context, msg *domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	if err := f.failFor[msg.ProposalID]; err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeQueue) byProposal() map[string]*domain.EmailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*domain.EmailMessage, len(f.messages))
	for _, m := range f.messages {
		out[m.ProposalID] = m
	}
	return out
}

// fakeRenderer builds subjects close to the real templates.
type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	d, ok := data.(*domain.ProposalResultEmailData)
	if !ok {
		return "", "", "", fmt.Errorf("unexpected data %T", data)
	}
	word := "declined"
	if templateName == domain.TemplateProposalAccepted {
		word = "accepted"
	}
	subject := fmt.Sprintf("[%s] Your talk %q has been %s", d.EventName, d.ProposalTitle, word)
	text := fmt.Sprintf("formats: %v", d.Formats)
	return subject, "<p>" + subject + "</p>", text, nil
}
