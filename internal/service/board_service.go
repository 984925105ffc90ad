package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mtlprog/kamishibai/internal/clock"
	"github.com/mtlprog/kamishibai/internal/domain"
)

// BoardService handles the minimal board lifecycle cards hang off.
type BoardService struct {
	store Store
	clock clock.Clock
}

// NewBoardService creates a new BoardService.
func NewBoardService(store Store, clk clock.Clock) *BoardService {
	return &BoardService{store: store, clock: clk}
}

// CreateBoardParams holds the fields of a new board.
type CreateBoardParams struct {
	Name        string
	Description string
}

// Create stores a new board.
func (s *BoardService) Create(ctx context.Context, p CreateBoardParams) (*domain.Board, error) {
	if err := ValidateBoard(p); err != nil {
		return nil, err
	}

	board := &domain.Board{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		CreatedAt:   s.clock.Now().Truncate(time.Microsecond),
	}
	if err := s.store.CreateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	slog.Info("board created", "board_id", board.ID)

	return board, nil
}

// Get retrieves a board by ID.
func (s *BoardService) Get(ctx context.Context, boardID string) (*domain.Board, error) {
	return s.store.GetBoard(ctx, boardID)
}

// List returns every board, oldest first.
func (s *BoardService) List(ctx context.Context) ([]*domain.Board, error) {
	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// UpdateBoardParams holds a board update. Nil fields are left untouched.
type UpdateBoardParams struct {
	Name        *string
	Description *string
}

// Update changes a board's name or description.
func (s *BoardService) Update(ctx context.Context, boardID string, p UpdateBoardParams) (*domain.Board, error) {
	if err := ValidateBoardUpdate(p); err != nil {
		return nil, err
	}

	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		board.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		board.Description = *p.Description
	}

	if err := s.store.UpdateBoard(ctx, board); err != nil {
		return nil, fmt.Errorf("update board %s: %w", boardID, err)
	}

	slog.Info("board updated", "board_id", board.ID)

	return board, nil
}

// Delete removes a board. Its cards and their audit history are removed with it.
func (s *BoardService) Delete(ctx context.Context, boardID string) error {
	if err := s.store.DeleteBoard(ctx, boardID); err != nil {
		return fmt.Errorf("delete board %s: %w", boardID, err)
	}

	slog.Info("board deleted", "board_id", boardID)

	return nil
}
