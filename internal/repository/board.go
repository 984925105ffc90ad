package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// BoardRepository handles database operations for boards.
type BoardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository creates a new BoardRepository.
func NewBoardRepository(pool *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{pool: pool}
}

// GetByID retrieves a board by ID.
func (r *BoardRepository) GetByID(ctx context.Context, boardID string) (*domain.Board, error) {
	if !isUUID(boardID) {
		return nil, domain.ErrBoardNotFound
	}

	query, args, err := psql.
		Select("id", "name", "description", "created_at").
		From("boards").
		Where(sq.Eq{"id": boardID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for board %s: %w", boardID, err)
	}

	var board domain.Board
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&board.ID,
		&board.Name,
		&board.Description,
		&board.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBoardNotFound
		}
		return nil, fmt.Errorf("query board: %w", err)
	}

	return &board, nil
}

// Create inserts a board and populates its ID.
func (r *BoardRepository) Create(ctx context.Context, board *domain.Board) error {
	query, args, err := psql.
		Insert("boards").
		Columns("name", "description", "created_at").
		Values(board.Name, board.Description, board.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for board: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&board.ID); err != nil {
		return fmt.Errorf("create board: %w", err)
	}

	return nil
}

// List returns every board, oldest first.
func (r *BoardRepository) List(ctx context.Context) ([]*domain.Board, error) {
	query, args, err := psql.
		Select("id", "name", "description", "created_at").
		From("boards").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for boards: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query boards: %w", err)
	}
	defer rows.Close()

	boards := []*domain.Board{}
	for rows.Next() {
		var board domain.Board
		if err := rows.Scan(&board.ID, &board.Name, &board.Description, &board.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, &board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boards: %w", err)
	}

	return boards, nil
}

// Update persists the board's name and description.
func (r *BoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if !isUUID(board.ID) {
		return domain.ErrBoardNotFound
	}

	query, args, err := psql.
		Update("boards").
		Set("name", board.Name).
		Set("description", board.Description).
		Where(sq.Eq{"id": board.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for board %s: %w", board.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update board %s: %w", board.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBoardNotFound
	}

	return nil
}

// Delete removes a board. Its cards and their audit entries go with it
// through ON DELETE CASCADE.
func (r *BoardRepository) Delete(ctx context.Context, boardID string) error {
	if !isUUID(boardID) {
		return domain.ErrBoardNotFound
	}

	query, args, err := psql.
		Delete("boards").
		Where(sq.Eq{"id": boardID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for board %s: %w", boardID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete board %s: %w", boardID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBoardNotFound
	}

	return nil
}
