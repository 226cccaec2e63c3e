package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden operation")
	ErrInvalidInput = errors.New("invalid input")
)

// ErrProposalNotFound is returned when a proposal does not exist, belongs to another event,
// is already published or is still under deliberation.
var ErrProposalNotFound = errors.New("proposal not found")

// ErrNothingToPublish is returned by a bulk publish with no eligible proposal.
// It matches ErrForbidden with errors.Is.
var ErrNothingToPublish = fmt.Errorf("%w: no proposals to publish", ErrForbidden)
