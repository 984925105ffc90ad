package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/kamishibai/internal/domain"
	"github.com/mtlprog/kamishibai/internal/service"
)

// PostgreSQL error codes mapped onto domain errors.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeForeignKeyViolation  = "23503"
)

// Store implements service.Store on PostgreSQL. Every unit of work is one
// transaction; cards read for update are row-locked until it ends.
type Store struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
	cards       *CardRepository
	audits      *CardAuditRepository
	boards      *BoardRepository
}

var _ service.Store = (*Store)(nil)

// NewStore creates a Store. lockTimeout bounds how long a unit of work waits
// for a row lock; zero leaves the server default.
func NewStore(pool *pgxpool.Pool, lockTimeout time.Duration) *Store {
	return &Store{
		pool:        pool,
		lockTimeout: lockTimeout,
		cards:       NewCardRepository(pool),
		audits:      NewCardAuditRepository(pool),
		boards:      NewBoardRepository(pool),
	}
}

// classify maps driver failures onto the domain error kinds.
func classify(err error) error {
	if err == nil ||
		errors.Is(err, domain.ErrCardNotFound) ||
		errors.Is(err, domain.ErrBoardNotFound) ||
		errors.Is(err, domain.ErrConcurrentModification) ||
		errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%w: %w", domain.ErrConcurrentModification, err)
		case codeForeignKeyViolation:
			if pgErr.ConstraintName == "card_audit_log_card_id_fkey" {
				return fmt.Errorf("%w: %w", domain.ErrCardNotFound, err)
			}
			return fmt.Errorf("%w: %w", domain.ErrBoardNotFound, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return err
}

// InTx runs fn inside a database transaction, committing only if fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx service.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrStoreUnavailable, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if s.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return classify(fmt.Errorf("set lock timeout: %w", err))
		}
	}

	if err := fn(ctx, &pgTx{tx: tx, cards: s.cards, audits: s.audits}); err != nil {
		return classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// GetCard retrieves a card by ID.
func (s *Store) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	return card, classify(err)
}

// FindGreenCardsWithResetTimeAtOrBefore is the sweep pre-filter.
func (s *Store) FindGreenCardsWithResetTimeAtOrBefore(ctx context.Context, tod domain.TimeOfDay) ([]*domain.Card, error) {
	cards, err := s.cards.FindGreenWithResetTimeAtOrBefore(ctx, tod)
	return cards, classify(err)
}

// FindByBoardOrderedByPosition lists a board's cards by position.
func (s *Store) FindByBoardOrderedByPosition(ctx context.Context, boardID string) ([]*domain.Card, error) {
	cards, err := s.cards.FindByBoardOrderedByPosition(ctx, boardID)
	return cards, classify(err)
}

// HistoryFor returns a card's audit entries, most recent first.
func (s *Store) HistoryFor(ctx context.Context, cardID string) ([]*domain.AuditEntry, error) {
	entries, err := s.audits.HistoryFor(ctx, cardID)
	return entries, classify(err)
}

// GetBoard retrieves a board by ID.
func (s *Store) GetBoard(ctx context.Context, boardID string) (*domain.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	return board, classify(err)
}

// CreateBoard inserts a board.
func (s *Store) CreateBoard(ctx context.Context, board *domain.Board) error {
	return classify(s.boards.Create(ctx, board))
}

// ListBoards returns every board, oldest first.
func (s *Store) ListBoards(ctx context.Context) ([]*domain.Board, error) {
	boards, err := s.boards.List(ctx)
	return boards, classify(err)
}

// UpdateBoard persists a board's name and description.
func (s *Store) UpdateBoard(ctx context.Context, board *domain.Board) error {
	return classify(s.boards.Update(ctx, board))
}

// DeleteBoard removes a board together with its cards and their audit entries.
func (s *Store) DeleteBoard(ctx context.Context, boardID string) error {
	return classify(s.boards.Delete(ctx, boardID))
}

// Ping checks if the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// pgTx adapts a pgx transaction to service.Tx.
type pgTx struct {
	tx     pgx.Tx
	cards  *CardRepository
	audits *CardAuditRepository
}

func (t *pgTx) GetCardForUpdate(ctx context.Context, cardID string) (*domain.Card, error) {
	return t.cards.GetByIDForUpdate(ctx, t.tx, cardID)
}

func (t *pgTx) CreateCard(ctx context.Context, card *domain.Card) error {
	return t.cards.Create(ctx, t.tx, card)
}

func (t *pgTx) SaveCard(ctx context.Context, card *domain.Card, expectedState domain.CardState) error {
	return t.cards.Update(ctx, t.tx, card, expectedState)
}

func (t *pgTx) AppendAudit(ctx context.Context, entry *domain.AuditEntry) error {
	return t.audits.Append(ctx, t.tx, entry)
}

func (t *pgTx) MostRecentTransitionTo(ctx context.Context, cardID string, state domain.CardState) (*time.Time, error) {
	return t.audits.MostRecentTransitionTo(ctx, t.tx, cardID, state)
}
