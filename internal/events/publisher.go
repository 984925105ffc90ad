// Package events publishes committed card state transitions to interested
// subscribers. Publishing happens after the transition commits and never
// affects its outcome.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// DefaultSubject is the NATS subject transitions are published on.
const DefaultSubject = "kamishibai.card.transition"

// Transition is the message emitted for each committed state change.
type Transition struct {
	AuditID       int64                  `json:"audit_id"`
	CardID        string                 `json:"card_id"`
	BoardID       string                 `json:"board_id"`
	PreviousState domain.CardState       `json:"previous_state"`
	NewState      domain.CardState       `json:"new_state"`
	Cause         domain.TransitionCause `json:"cause"`
	Timestamp     time.Time              `json:"timestamp"`
}

// NewTransition builds the message for an audit entry of card.
func NewTransition(card *domain.Card, entry *domain.AuditEntry, cause domain.TransitionCause) Transition {
	return Transition{
		AuditID:       entry.ID,
		CardID:        entry.CardID,
		BoardID:       card.BoardID,
		PreviousState: entry.PreviousState,
		NewState:      entry.NewState,
		Cause:         cause,
		Timestamp:     entry.Timestamp,
	}
}

// Encode serialises the message payload.
func (t Transition) Encode() ([]byte, error) {
	return json.Marshal(t)
}

// Publisher delivers transitions.
type Publisher interface {
	Publish(ctx context.Context, t Transition) error
	Close() error
}

// Noop discards every transition.
type Noop struct{}

// Publish does nothing.
func (Noop) Publish(context.Context, Transition) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }
