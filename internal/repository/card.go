package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// cardColumns is the shared list of columns for card queries.
var cardColumns = []string{
	"id", "board_id", "title", "details", "position", "state",
	"reset_time", "image_url", "created_at", "updated_at",
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CardRepository handles database operations for cards.
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

// isUUID reports whether id can be compared against a uuid column.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toPgTime(t *domain.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.SinceMidnight().Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) *domain.TimeOfDay {
	if !t.Valid {
		return nil
	}
	minutes := t.Microseconds / 60_000_000
	return &domain.TimeOfDay{Hour: int(minutes / 60), Minute: int(minutes % 60)}
}

// scanCard scans a single row into a Card struct.
func scanCard(row pgx.Row) (*domain.Card, error) {
	var (
		card      domain.Card
		resetTime pgtype.Time
	)
	err := row.Scan(
		&card.ID,
		&card.BoardID,
		&card.Title,
		&card.Details,
		&card.Position,
		&card.State,
		&resetTime,
		&card.ImageURL,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("scan card: %w", err)
	}
	card.ResetTime = fromPgTime(resetTime)
	return &card, nil
}

// scanCards scans multiple rows into a slice of Card structs.
func scanCards(rows pgx.Rows) ([]*domain.Card, error) {
	defer rows.Close()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return cards, nil
}

func (r *CardRepository) list(ctx context.Context, q querier, qb sq.SelectBuilder, name string) ([]*domain.Card, error) {
	query, args, err := qb.OrderBy("position ASC", "created_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", name, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}

	return scanCards(rows)
}

// GetByID retrieves a card by ID.
func (r *CardRepository) GetByID(ctx context.Context, cardID string) (*domain.Card, error) {
	if !isUUID(cardID) {
		return nil, domain.ErrCardNotFound
	}

	query, args, err := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"id": cardID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for card: %w", err)
	}

	return scanCard(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a card by ID with FOR UPDATE lock (within transaction).
func (r *CardRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, cardID string) (*domain.Card, error) {
	if !isUUID(cardID) {
		return nil, domain.ErrCardNotFound
	}

	query, args, err := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"id": cardID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for card %s: %w", cardID, err)
	}

	return scanCard(tx.QueryRow(ctx, query, args...))
}

// FindByBoardOrderedByPosition lists a board's cards by position.
func (r *CardRepository) FindByBoardOrderedByPosition(ctx context.Context, boardID string) ([]*domain.Card, error) {
	if !isUUID(boardID) {
		return []*domain.Card{}, nil
	}

	qb := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"board_id": boardID})
	return r.list(ctx, r.pool, qb, "FindByBoardOrderedByPosition")
}

// FindGreenWithResetTimeAtOrBefore lists GREEN cards whose reset time is at or before tod.
func (r *CardRepository) FindGreenWithResetTimeAtOrBefore(ctx context.Context, tod domain.TimeOfDay) ([]*domain.Card, error) {
	qb := psql.
		Select(cardColumns...).
		From("cards").
		Where(sq.Eq{"state": domain.CardStateGreen}).
		Where(sq.NotEq{"reset_time": nil}).
		Where(sq.LtOrEq{"reset_time": toPgTime(&tod)})
	return r.list(ctx, r.pool, qb, "FindGreenWithResetTimeAtOrBefore")
}

// Create inserts a card within a transaction and populates its ID.
func (r *CardRepository) Create(ctx context.Context, tx pgx.Tx, card *domain.Card) error {
	query, args, err := psql.
		Insert("cards").
		Columns(
			"board_id", "title", "details", "position", "state",
			"reset_time", "image_url", "created_at", "updated_at",
		).
		Values(
			card.BoardID,
			card.Title,
			card.Details,
			card.Position,
			card.State,
			toPgTime(card.ResetTime),
			card.ImageURL,
			card.CreatedAt,
			card.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for card: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&card.ID); err != nil {
		return fmt.Errorf("create card: %w", err)
	}

	return nil
}

// Update writes every mutable field with optimistic locking on state.
// Returns ErrConcurrentModification if the stored state is not expectedState.
func (r *CardRepository) Update(ctx context.Context, tx pgx.Tx, card *domain.Card, expectedState domain.CardState) error {
	query, args, err := psql.
		Update("cards").
		Set("title", card.Title).
		Set("details", card.Details).
		Set("position", card.Position).
		Set("state", card.State).
		Set("reset_time", toPgTime(card.ResetTime)).
		Set("image_url", card.ImageURL).
		Set("updated_at", card.UpdatedAt).
		Where(sq.Eq{
			"id":    card.ID,
			"state": expectedState,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for card %s: %w", card.ID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: card %s is no longer %s", domain.ErrConcurrentModification, card.ID, expectedState)
	}

	return nil
}
