package domain

import (
	"context"
	"time"
)

// Email template names.
const (
	TemplateProposalAccepted = "proposal_accepted"
	TemplateProposalRejected = "proposal_rejected"
)

// EmailMessage is a rendered email ready to be queued and delivered.
type EmailMessage struct {
	ID         string    `json:"id"`
	ProposalID string    `json:"proposal_id"`
	Template   string    `json:"template"`
	From       string    `json:"from"`
	To         []string  `json:"to"`
	Subject    string    `json:"subject"`
	HTMLBody   string    `json:"html_body"`
	TextBody   string    `json:"text_body"`
	Attempts   int       `json:"attempts"`
	CreatedAt  time.Time `json:"created_at"`
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NotificationQueue accepts rendered messages for asynchronous delivery.
// Enqueue returns once the message is durably accepted by the queue.
type NotificationQueue interface {
	Enqueue(ctx context.Context, msg *EmailMessage) error
}

// ProposalResultEmailData holds data for the accepted and rejected proposal emails.
type ProposalResultEmailData struct {
	EventName     string
	ProposalTitle string
	Formats       []string
	SpeakerNames  []string
}

// ProposalNotifier sends deliberation results to the speakers of each proposal.
type ProposalNotifier interface {
	SendAccepted(ctx context.Context, event *Event, proposals []*Proposal) error
	SendRejected(ctx context.Context, event *Event, proposals []*Proposal) error
}

// EmailOutbox is a NotificationQueue persisted next to the proposals and drained by a worker.
type EmailOutbox interface {
	NotificationQueue
	// ClaimBatch locks up to limit pending messages, plus processing ones whose lease expired,
	// and increments their attempt counter.
	ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]*EmailMessage, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed records the failure; retry puts the message back to pending, otherwise it is dead.
	MarkFailed(ctx context.Context, id, reason string, retry bool) error
}
