package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mtlprog/kamishibai/internal/clock"
	"github.com/mtlprog/kamishibai/internal/domain"
	"github.com/mtlprog/kamishibai/internal/events"
)

// CardService coordinates card state transitions and their audit trail.
// It is the only writer of Card.State and of audit entries.
type CardService struct {
	store     Store
	clock     clock.Clock
	publisher events.Publisher
}

// NewCardService creates a new CardService. A nil publisher disables notifications.
func NewCardService(store Store, clk clock.Clock, publisher events.Publisher) *CardService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &CardService{
		store:     store,
		clock:     clk,
		publisher: publisher,
	}
}

// CreateCardParams holds the caller-supplied fields of a new card.
type CreateCardParams struct {
	BoardID   string
	Title     string
	Details   string
	Position  int
	ResetTime *domain.TimeOfDay
	ImageURL  *string
}

// UpdateCardParams holds an explicit update. Nil fields are left untouched.
type UpdateCardParams struct {
	Title          *string
	Details        *string
	Position       *int
	ResetTime      *domain.TimeOfDay
	ClearResetTime bool
	ImageURL       *string // empty string clears
	State          *domain.CardState
}

// now reads the clock at the microsecond resolution timestamps are stored with,
// so returned and published values match what a later read sees.
func (s *CardService) now() time.Time {
	return s.clock.Now().Truncate(time.Microsecond)
}

// committed is a transition waiting to be published once its unit of work commits.
type committed struct {
	card  *domain.Card
	entry *domain.AuditEntry
	cause domain.TransitionCause
}

// recordTransition moves card to newState and appends the matching audit entry
// inside tx. Both writes commit or roll back together with tx.
func (s *CardService) recordTransition(
	ctx context.Context,
	tx Tx,
	card *domain.Card,
	newState domain.CardState,
	cause domain.TransitionCause,
) (*committed, error) {
	now := s.now()
	oldState := card.State

	card.State = newState
	card.UpdatedAt = now
	if err := tx.SaveCard(ctx, card, oldState); err != nil {
		return nil, fmt.Errorf("save card %s: %w", card.ID, err)
	}

	entry := &domain.AuditEntry{
		CardID:        card.ID,
		PreviousState: oldState,
		NewState:      newState,
		Timestamp:     now,
	}
	if err := tx.AppendAudit(ctx, entry); err != nil {
		return nil, fmt.Errorf("append audit for card %s: %w", card.ID, err)
	}

	return &committed{card: card.Clone(), entry: entry, cause: cause}, nil
}

// publish notifies subscribers of a committed transition. Failures are logged only.
func (s *CardService) publish(ctx context.Context, c *committed) {
	if c == nil {
		return
	}

	slog.Info("card state changed",
		"card_id", c.card.ID,
		"board_id", c.card.BoardID,
		"old_state", c.entry.PreviousState,
		"new_state", c.entry.NewState,
		"cause", c.cause,
		"audit_id", c.entry.ID,
	)

	if err := s.publisher.Publish(ctx, events.NewTransition(c.card, c.entry, c.cause)); err != nil {
		slog.Warn("failed to publish card transition",
			"card_id", c.card.ID,
			"audit_id", c.entry.ID,
			"error", err,
		)
	}
}

// Create stores a new card. The card always starts RED and gets no audit entry.
func (s *CardService) Create(ctx context.Context, p CreateCardParams) (*domain.Card, error) {
	if err := ValidateCreate(p); err != nil {
		return nil, err
	}

	if _, err := s.store.GetBoard(ctx, p.BoardID); err != nil {
		return nil, err
	}

	now := s.now()
	card := &domain.Card{
		BoardID:   p.BoardID,
		Title:     strings.TrimSpace(p.Title),
		Details:   p.Details,
		Position:  p.Position,
		State:     domain.CardStateRed,
		ResetTime: p.ResetTime,
		ImageURL:  p.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		return tx.CreateCard(ctx, card)
	})
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	slog.Info("card created",
		"card_id", card.ID,
		"board_id", card.BoardID,
	)

	return card, nil
}

// ExplicitUpdate applies the present non-state fields and, when the requested
// state differs from the current one, an audited state change.
func (s *CardService) ExplicitUpdate(ctx context.Context, cardID string, p UpdateCardParams) (*domain.Card, error) {
	if err := ValidateUpdate(p); err != nil {
		return nil, err
	}

	var (
		result *domain.Card
		change *committed
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		card, err := tx.GetCardForUpdate(ctx, cardID)
		if err != nil {
			return err
		}

		applyFields(card, p)

		if p.State != nil && *p.State != card.State {
			change, err = s.recordTransition(ctx, tx, card, *p.State, domain.CauseUpdate)
			if err != nil {
				return err
			}
		} else {
			card.UpdatedAt = s.now()
			if err := tx.SaveCard(ctx, card, card.State); err != nil {
				return fmt.Errorf("save card %s: %w", card.ID, err)
			}
		}

		result = card
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, change)
	return result, nil
}

func applyFields(card *domain.Card, p UpdateCardParams) {
	if p.Title != nil {
		card.Title = strings.TrimSpace(*p.Title)
	}
	if p.Details != nil {
		card.Details = *p.Details
	}
	if p.Position != nil {
		card.Position = *p.Position
	}
	if p.ClearResetTime {
		card.ResetTime = nil
	} else if p.ResetTime != nil {
		rt := *p.ResetTime
		card.ResetTime = &rt
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			card.ImageURL = nil
		} else {
			u := *p.ImageURL
			card.ImageURL = &u
		}
	}
}

// Toggle flips RED and GREEN, producing exactly one audit entry.
func (s *CardService) Toggle(ctx context.Context, cardID string) (*domain.Card, *domain.AuditEntry, error) {
	var change *committed
	err := s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		card, err := tx.GetCardForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		change, err = s.recordTransition(ctx, tx, card, card.State.Opposite(), domain.CauseToggle)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, change)
	return change.card, change.entry, nil
}

// GetWithLazyReset reads a card and applies its automatic reset if one is due.
func (s *CardService) GetWithLazyReset(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if !card.EligibleForReset() {
		return card, nil
	}

	card, _, err = s.resetIfDue(ctx, cardID)
	return card, err
}

// ListByBoardWithLazyReset returns the board's cards ordered by position,
// resetting each card that is due.
func (s *CardService) ListByBoardWithLazyReset(ctx context.Context, boardID string) ([]*domain.Card, error) {
	if _, err := s.store.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}

	cards, err := s.store.FindByBoardOrderedByPosition(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list cards of board %s: %w", boardID, err)
	}

	for i, card := range cards {
		if !card.EligibleForReset() {
			continue
		}
		updated, _, err := s.resetIfDue(ctx, card.ID)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", card.ID, err)
		}
		cards[i] = updated
	}

	return cards, nil
}

// CheckBoard fails with domain.ErrCardNotFound unless the card exists on boardID.
// Cards never move between boards, so the answer stays valid after the call.
func (s *CardService) CheckBoard(ctx context.Context, boardID, cardID string) error {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return err
	}
	if card.BoardID != boardID {
		return fmt.Errorf("%w: card %s is not on board %s", domain.ErrCardNotFound, cardID, boardID)
	}
	return nil
}

// History returns the card's audit entries, most recent first.
func (s *CardService) History(ctx context.Context, cardID string) ([]*domain.AuditEntry, error) {
	if _, err := s.store.GetCard(ctx, cardID); err != nil {
		return nil, err
	}
	entries, err := s.store.HistoryFor(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("history of card %s: %w", cardID, err)
	}
	return entries, nil
}

// resetIfDue re-reads the card under lock, re-evaluates ShouldReset and applies
// the reset when still due. It returns the card as committed.
func (s *CardService) resetIfDue(ctx context.Context, cardID string) (*domain.Card, bool, error) {
	var (
		result *domain.Card
		change *committed
	)
	err := s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		card, err := tx.GetCardForUpdate(ctx, cardID)
		if err != nil {
			return err
		}
		result = card

		if !card.EligibleForReset() {
			return nil
		}

		lastGreen, err := tx.MostRecentTransitionTo(ctx, cardID, domain.CardStateGreen)
		if err != nil {
			return fmt.Errorf("last green transition of card %s: %w", cardID, err)
		}

		now := s.now()
		if !ShouldReset(card.State, card.ResetTime, lastGreen, now) {
			slog.Debug("card not due for reset",
				"card_id", cardID,
				"reset_time", card.ResetTime.String(),
				"last_green", lastGreen,
				"now", now,
			)
			return nil
		}

		change, err = s.recordTransition(ctx, tx, card, domain.CardStateRed, domain.CauseReset)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	s.publish(ctx, change)
	return result, change != nil, nil
}

// SweepFailure is one card the sweep could not process.
type SweepFailure struct {
	CardID string
	Err    error
}

// SweepResult summarises one sweep run.
type SweepResult struct {
	Candidates int
	Reset      int
	Failures   []SweepFailure
}

// Err joins every per-card failure, or returns nil when there were none.
func (r SweepResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("card %s: %w", f.CardID, f.Err))
	}
	return errors.Join(errs...)
}

// SweepDueResets resets every GREEN card whose reset is due. Candidates come
// from a time-of-day pre-filter and are each re-validated with ShouldReset.
// A failing card is recorded in the result and does not stop the sweep; the
// returned error is non-nil only when the candidates cannot be listed.
func (s *CardService) SweepDueResets(ctx context.Context) (SweepResult, error) {
	now := s.now()

	cards, err := s.store.FindGreenCardsWithResetTimeAtOrBefore(ctx, domain.TimeOfDayOf(now))
	if err != nil {
		return SweepResult{}, fmt.Errorf("find reset candidates: %w", err)
	}

	result := SweepResult{Candidates: len(cards)}
	if len(cards) == 0 {
		slog.Debug("no cards due for reset")
		return result, nil
	}

	for _, card := range cards {
		_, reset, err := s.resetIfDue(ctx, card.ID)
		if err != nil {
			slog.Error("failed to reset card",
				"card_id", card.ID,
				"error", err,
			)
			result.Failures = append(result.Failures, SweepFailure{CardID: card.ID, Err: err})
			continue
		}
		if reset {
			result.Reset++
		}
	}

	slog.Info("processed due resets",
		"candidates", result.Candidates,
		"reset", result.Reset,
		"skipped", result.Candidates-result.Reset-len(result.Failures),
		"failed", len(result.Failures),
	)

	return result, nil
}
