// Package suggest asks a language model for replacement equipment when an
// item goes to repair.
package suggest

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("suggestion service not configured")

type Request struct {
	BrokenEquipmentName string
	UserRole            string
	HistoricalBorrowing string
}

type Suggestion struct {
	SuggestedEquipment []string `json:"suggestedEquipment"`
	Reasoning          string   `json:"reasoning"`
}

type Suggester interface {
	Suggest(ctx context.Context, req Request) (*Suggestion, error)
}

// ExternalServiceError marks a failure of the suggestion backend. It is kept
// apart from lifecycle errors: the repair report has already been stored
// when a suggestion fails.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("suggestion service: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// Disabled is used when no backend is configured.
type Disabled struct{}

func (Disabled) Suggest(context.Context, Request) (*Suggestion, error) {
	return nil, &ExternalServiceError{Err: ErrNotConfigured}
}
