package domain

import "time"

// CardState is the binary visibility state of a card.
type CardState string

const (
	// CardStateGreen means cleared/done for now.
	CardStateGreen CardState = "GREEN"
	// CardStateRed means needs attention. Default and post-reset state.
	CardStateRed CardState = "RED"
)

// IsValid checks if the state is one of the allowed values.
func (s CardState) IsValid() bool {
	return s == CardStateGreen || s == CardStateRed
}

// Opposite returns the state a toggle moves to.
func (s CardState) Opposite() CardState {
	if s == CardStateGreen {
		return CardStateRed
	}
	return CardStateGreen
}

// Card is a board item carrying a daily-resetting state.
type Card struct {
	ID        string
	BoardID   string
	Title     string
	Details   string
	Position  int
	State     CardState
	ResetTime *TimeOfDay // nil: never auto-resets
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EligibleForReset reports whether the card could be due at all, before
// consulting its audit history.
func (c *Card) EligibleForReset() bool {
	return c.State == CardStateGreen && c.ResetTime != nil
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	cp := *c
	if c.ResetTime != nil {
		rt := *c.ResetTime
		cp.ResetTime = &rt
	}
	if c.ImageURL != nil {
		u := *c.ImageURL
		cp.ImageURL = &u
	}
	return &cp
}
