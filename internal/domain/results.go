package domain

import "context"

// DeliberationStatistics counts non-draft proposals by deliberation outcome.
type DeliberationStatistics struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// PublicationStatistics splits an outcome by publication status.
type PublicationStatistics struct {
	Published    int `json:"published"`
	NotPublished int `json:"notPublished"`
}

// ConfirmationStatistics counts accepted proposals by speaker confirmation.
type ConfirmationStatistics struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Declined  int `json:"declined"`
}

// ResultsStatistics is the dashboard summary of deliberation and publication for an event.
// swagger:model ResultsStatistics
type ResultsStatistics struct {
	Deliberation  DeliberationStatistics `json:"deliberation"`
	Accepted      PublicationStatistics  `json:"accepted"`
	Rejected      PublicationStatistics  `json:"rejected"`
	Confirmations ConfirmationStatistics `json:"confirmations"`
}

// NewResultsStatistics folds grouped status counts into ResultsStatistics.
func NewResultsStatistics(counts []ProposalStatusCount) *ResultsStatistics {
	stats := &ResultsStatistics{}
	for _, c := range counts {
		stats.Deliberation.Total += c.Count
		switch c.Deliberation {
		case DeliberationPending:
			stats.Deliberation.Pending += c.Count
		case DeliberationAccepted:
			stats.Deliberation.Accepted += c.Count
			stats.Accepted.add(c.Publication, c.Count)
			switch c.Confirmation {
			case ConfirmationPending:
				stats.Confirmations.Pending += c.Count
			case ConfirmationConfirmed:
				stats.Confirmations.Confirmed += c.Count
			case ConfirmationDeclined:
				stats.Confirmations.Declined += c.Count
			}
		case DeliberationRejected:
			stats.Deliberation.Rejected += c.Count
			stats.Rejected.add(c.Publication, c.Count)
		}
	}
	return stats
}

func (p *PublicationStatistics) add(status PublicationStatus, n int) {
	if status == PublicationPublished {
		p.Published += n
		return
	}
	p.NotPublished += n
}

// EventResults exposes results operations for one caller on one event.
// Each call checks the caller's team role before touching data.
type EventResults interface {
	Statistics(ctx context.Context) (*ResultsStatistics, error)
	Publish(ctx context.Context, proposalID string, notify bool) error
	PublishAll(ctx context.Context, status DeliberationStatus, notify bool) error
	ResetPublication(ctx context.Context) (int, error)
}

// ResultsService builds EventResults for a caller. Construction never fails.
type ResultsService interface {
	For(userID, teamSlug, eventSlug string) EventResults
}
