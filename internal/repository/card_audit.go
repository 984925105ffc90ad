package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// CardAuditRepository handles database operations for the card audit log.
type CardAuditRepository struct {
	pool *pgxpool.Pool
}

// NewCardAuditRepository creates a new CardAuditRepository.
func NewCardAuditRepository(pool *pgxpool.Pool) *CardAuditRepository {
	return &CardAuditRepository{pool: pool}
}

// Append inserts an audit entry and populates its ID.
func (r *CardAuditRepository) Append(ctx context.Context, tx pgx.Tx, entry *domain.AuditEntry) error {
	query, args, err := psql.
		Insert("card_audit_log").
		Columns("card_id", "previous_state", "new_state", "changed_at").
		Values(entry.CardID, entry.PreviousState, entry.NewState, entry.Timestamp).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&entry.ID); err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}

	return nil
}

// MostRecentTransitionTo returns when the card last entered state, or nil if it never did.
func (r *CardAuditRepository) MostRecentTransitionTo(
	ctx context.Context,
	q querier,
	cardID string,
	state domain.CardState,
) (*time.Time, error) {
	query, args, err := psql.
		Select("changed_at").
		From("card_audit_log").
		Where(sq.Eq{"card_id": cardID, "new_state": state}).
		OrderBy("changed_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var changedAt time.Time
	if err := q.QueryRow(ctx, query, args...).Scan(&changedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last transition: %w", err)
	}

	return &changedAt, nil
}

// HistoryFor retrieves all audit entries of a card, most recent first.
func (r *CardAuditRepository) HistoryFor(ctx context.Context, cardID string) ([]*domain.AuditEntry, error) {
	if !isUUID(cardID) {
		return []*domain.AuditEntry{}, nil
	}

	query, args, err := psql.
		Select("id", "card_id", "previous_state", "new_state", "changed_at").
		From("card_audit_log").
		Where(sq.Eq{"card_id": cardID}).
		OrderBy("changed_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.AuditEntry{}
	for rows.Next() {
		var entry domain.AuditEntry
		err := rows.Scan(
			&entry.ID,
			&entry.CardID,
			&entry.PreviousState,
			&entry.NewState,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}
