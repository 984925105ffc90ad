package service

import (
	"context"
	"time"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// Store is the persistence boundary for boards, cards and the audit trail.
type Store interface {
	// InTx runs fn as one all-or-nothing unit of work. A card read through
	// Tx.GetCardForUpdate stays locked against other units until fn returns.
	// Returning an error from fn discards every write made through tx.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	GetCard(ctx context.Context, cardID string) (*domain.Card, error)
	FindGreenCardsWithResetTimeAtOrBefore(ctx context.Context, tod domain.TimeOfDay) ([]*domain.Card, error)
	FindByBoardOrderedByPosition(ctx context.Context, boardID string) ([]*domain.Card, error)
	HistoryFor(ctx context.Context, cardID string) ([]*domain.AuditEntry, error)

	GetBoard(ctx context.Context, boardID string) (*domain.Board, error)
	CreateBoard(ctx context.Context, board *domain.Board) error
	ListBoards(ctx context.Context) ([]*domain.Board, error)
	UpdateBoard(ctx context.Context, board *domain.Board) error
	// DeleteBoard removes the board, its cards and every audit entry of those cards.
	DeleteBoard(ctx context.Context, boardID string) error

	Ping(ctx context.Context) error
}

// Tx is the set of operations available inside a unit of work.
type Tx interface {
	GetCardForUpdate(ctx context.Context, cardID string) (*domain.Card, error)
	CreateCard(ctx context.Context, card *domain.Card) error
	// SaveCard persists every mutable field. It fails with
	// domain.ErrConcurrentModification when the stored state is no longer expectedState.
	SaveCard(ctx context.Context, card *domain.Card, expectedState domain.CardState) error
	AppendAudit(ctx context.Context, entry *domain.AuditEntry) error
	// MostRecentTransitionTo returns nil when the card never entered state.
	MostRecentTransitionTo(ctx context.Context, cardID string, state domain.CardState) (*time.Time, error)
}
