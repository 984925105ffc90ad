package service

import (
	"time"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// ShouldReset decides whether a card must automatically revert to RED.
//
// A GREEN card with a reset time is due once today's reset window has opened
// (now at or after resetTime) unless it was marked GREEN today strictly after
// the window opened. Cards without a recorded GREEN transition are never due.
// lastGreen is evaluated in now's location.
//
// A lastGreen later than now is never due, even when it falls on a later
// calendar date where the plain window rule alone would report a reset.
func ShouldReset(state domain.CardState, resetTime *domain.TimeOfDay, lastGreen *time.Time, now time.Time) bool {
	if state != domain.CardStateGreen || resetTime == nil || lastGreen == nil {
		return false
	}

	last := lastGreen.In(now.Location())
	// A mark stamped after now cannot be ordered against today's window.
	if last.After(now) {
		return false
	}

	window := resetTime.SinceMidnight()
	if domain.SinceMidnight(now) < window {
		return false
	}

	if sameDate(last, now) && domain.SinceMidnight(last) > window {
		return false
	}

	return true
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
