package domain

import "time"

// TransitionCause records what triggered a state transition.
type TransitionCause string

const (
	CauseToggle TransitionCause = "toggle"
	CauseUpdate TransitionCause = "update"
	CauseReset  TransitionCause = "reset"
)

// AuditEntry is an immutable record of one card state transition.
type AuditEntry struct {
	ID            int64
	CardID        string
	PreviousState CardState
	NewState      CardState
	Timestamp     time.Time
}
