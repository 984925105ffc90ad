package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/kamishibai/internal/database"
	"github.com/mtlprog/kamishibai/internal/domain"
	"github.com/mtlprog/kamishibai/internal/repository"
	"github.com/mtlprog/kamishibai/internal/service"
)

// StoreTestSuite is the test suite for the PostgreSQL store.
type StoreTestSuite struct {
	suite.Suite
	db    *database.DB
	store *repository.Store

	boardID string
	now     time.Time
}

func TestStoreSuite(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	suite.Run(t, new(StoreTestSuite))
}

// SetupSuite runs once before all tests.
func (s *StoreTestSuite) SetupSuite() {
	ctx := context.Background()

	db, err := database.New(ctx, os.Getenv("DATABASE_URL"), database.DefaultOptions())
	s.Require().NoError(err, "failed to connect to database")
	s.db = db

	_, err = database.RunMigrations(ctx, db.Pool())
	s.Require().NoError(err, "failed to run migrations")

	s.store = repository.NewStore(db.Pool(), 200*time.Millisecond)
}

// SetupTest runs before each test.
func (s *StoreTestSuite) SetupTest() {
	ctx := context.Background()

	_, err := s.db.Pool().Exec(ctx, "TRUNCATE boards, cards, card_audit_log RESTART IDENTITY CASCADE")
	s.Require().NoError(err, "failed to truncate tables")

	s.now = time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC)
	board := &domain.Board{Name: "Line 1", CreatedAt: s.now}
	s.Require().NoError(s.store.CreateBoard(ctx, board))
	s.boardID = board.ID
}

// TearDownSuite runs once after all tests.
func (s *StoreTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *StoreTestSuite) createCard(position int, state domain.CardState, reset *domain.TimeOfDay) *domain.Card {
	card := &domain.Card{
		BoardID:   s.boardID,
		Title:     "Check",
		Position:  position,
		State:     state,
		ResetTime: reset,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	err := s.store.InTx(context.Background(), func(ctx context.Context, tx service.Tx) error {
		return tx.CreateCard(ctx, card)
	})
	s.Require().NoError(err)
	return card
}

func (s *StoreTestSuite) TestCreateAndGetCard() {
	url := "https://example.com/a.png"
	card := &domain.Card{
		BoardID:   s.boardID,
		Title:     "Check guard",
		Details:   "Left side",
		Position:  3,
		State:     domain.CardStateRed,
		ResetTime: &domain.TimeOfDay{Hour: 6, Minute: 45},
		ImageURL:  &url,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	err := s.store.InTx(context.Background(), func(ctx context.Context, tx service.Tx) error {
		return tx.CreateCard(ctx, card)
	})
	s.Require().NoError(err)
	s.NoError(uuid.Validate(card.ID))

	got, err := s.store.GetCard(context.Background(), card.ID)
	s.Require().NoError(err)
	s.Equal(card.Title, got.Title)
	s.Equal(card.Details, got.Details)
	s.Equal(3, got.Position)
	s.Require().NotNil(got.ResetTime)
	s.Equal(domain.TimeOfDay{Hour: 6, Minute: 45}, *got.ResetTime)
	s.Require().NotNil(got.ImageURL)
	s.Equal(url, *got.ImageURL)
	s.True(got.CreatedAt.Equal(s.now))
}

func (s *StoreTestSuite) TestGetCard_NotFound() {
	ctx := context.Background()

	_, err := s.store.GetCard(ctx, uuid.NewString())
	s.ErrorIs(err, domain.ErrCardNotFound)

	_, err = s.store.GetCard(ctx, "not-a-uuid")
	s.ErrorIs(err, domain.ErrCardNotFound)

	_, err = s.store.GetBoard(ctx, "not-a-uuid")
	s.ErrorIs(err, domain.ErrBoardNotFound)
}

func (s *StoreTestSuite) TestInTx_RollbackOnError() {
	ctx := context.Background()
	card := s.createCard(0, domain.CardStateRed, nil)

	boom := errors.New("boom")
	err := s.store.InTx(ctx, func(ctx context.Context, tx service.Tx) error {
		c, err := tx.GetCardForUpdate(ctx, card.ID)
		s.Require().NoError(err)
		c.State = domain.CardStateGreen
		s.Require().NoError(tx.SaveCard(ctx, c, domain.CardStateRed))
		s.Require().NoError(tx.AppendAudit(ctx, &domain.AuditEntry{
			CardID:        card.ID,
			PreviousState: domain.CardStateRed,
			NewState:      domain.CardStateGreen,
			Timestamp:     s.now,
		}))
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.store.GetCard(ctx, card.ID)
	s.Require().NoError(err)
	s.Equal(domain.CardStateRed, got.State)

	entries, err := s.store.HistoryFor(ctx, card.ID)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StoreTestSuite) TestSaveCard_StaleState() {
	card := s.createCard(0, domain.CardStateRed, nil)

	err := s.store.InTx(context.Background(), func(ctx context.Context, tx service.Tx) error {
		c, err := tx.GetCardForUpdate(ctx, card.ID)
		s.Require().NoError(err)
		c.State = domain.CardStateRed
		return tx.SaveCard(ctx, c, domain.CardStateGreen)
	})
	s.ErrorIs(err, domain.ErrConcurrentModification)
}

func (s *StoreTestSuite) TestLockTimeout_MapsToConcurrentModification() {
	ctx := context.Background()
	card := s.createCard(0, domain.CardStateRed, nil)

	locked := make(chan struct{})
	release := make(chan struct{})
	holder := make(chan error, 1)
	go func() {
		holder <- s.store.InTx(ctx, func(ctx context.Context, tx service.Tx) error {
			if _, err := tx.GetCardForUpdate(ctx, card.ID); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	err := s.store.InTx(ctx, func(ctx context.Context, tx service.Tx) error {
		_, err := tx.GetCardForUpdate(ctx, card.ID)
		return err
	})
	s.ErrorIs(err, domain.ErrConcurrentModification)

	close(release)
	s.NoError(<-holder)
}

func (s *StoreTestSuite) TestAppendAudit_UnknownCard() {
	err := s.store.InTx(context.Background(), func(ctx context.Context, tx service.Tx) error {
		return tx.AppendAudit(ctx, &domain.AuditEntry{
			CardID:        uuid.NewString(),
			PreviousState: domain.CardStateRed,
			NewState:      domain.CardStateGreen,
			Timestamp:     s.now,
		})
	})
	s.ErrorIs(err, domain.ErrCardNotFound)
}

func (s *StoreTestSuite) TestFindGreenCardsWithResetTimeAtOrBefore() {
	ctx := context.Background()
	due := s.createCard(0, domain.CardStateGreen, &domain.TimeOfDay{Hour: 8})
	atBoundary := s.createCard(1, domain.CardStateGreen, &domain.TimeOfDay{Hour: 9})
	s.createCard(2, domain.CardStateGreen, &domain.TimeOfDay{Hour: 10})
	s.createCard(3, domain.CardStateRed, &domain.TimeOfDay{Hour: 8})
	s.createCard(4, domain.CardStateGreen, nil)

	cards, err := s.store.FindGreenCardsWithResetTimeAtOrBefore(ctx, domain.TimeOfDay{Hour: 9})
	s.Require().NoError(err)
	s.Require().Len(cards, 2)
	s.Equal(due.ID, cards[0].ID)
	s.Equal(atBoundary.ID, cards[1].ID)
}

func (s *StoreTestSuite) TestFindByBoardOrderedByPosition() {
	ctx := context.Background()
	c2 := s.createCard(2, domain.CardStateRed, nil)
	c0 := s.createCard(0, domain.CardStateRed, nil)
	c1 := s.createCard(1, domain.CardStateGreen, nil)

	cards, err := s.store.FindByBoardOrderedByPosition(ctx, s.boardID)
	s.Require().NoError(err)
	s.Require().Len(cards, 3)
	s.Equal([]string{c0.ID, c1.ID, c2.ID}, []string{cards[0].ID, cards[1].ID, cards[2].ID})
}

func (s *StoreTestSuite) TestMostRecentTransitionToAndHistory() {
	ctx := context.Background()
	card := s.createCard(0, domain.CardStateRed, nil)

	states := []domain.CardState{domain.CardStateGreen, domain.CardStateRed, domain.CardStateGreen}
	prev := domain.CardStateRed
	for i, st := range states {
		err := s.store.InTx(ctx, func(ctx context.Context, tx service.Tx) error {
			return tx.AppendAudit(ctx, &domain.AuditEntry{
				CardID:        card.ID,
				PreviousState: prev,
				NewState:      st,
				Timestamp:     s.now.Add(time.Duration(i) * time.Hour),
			})
		})
		s.Require().NoError(err)
		prev = st
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx service.Tx) error {
		lastGreen, err := tx.MostRecentTransitionTo(ctx, card.ID, domain.CardStateGreen)
		s.Require().NoError(err)
		s.Require().NotNil(lastGreen)
		s.True(lastGreen.Equal(s.now.Add(2 * time.Hour)))

		none, err := tx.MostRecentTransitionTo(ctx, uuid.NewString(), domain.CardStateGreen)
		s.Require().NoError(err)
		s.Nil(none)
		return nil
	})
	s.Require().NoError(err)

	entries, err := s.store.HistoryFor(ctx, card.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(domain.CardStateGreen, entries[0].NewState)
	s.Equal(domain.CardStateRed, entries[1].NewState)
	s.Greater(entries[0].ID, entries[1].ID)
}

func (s *StoreTestSuite) TestBoards_ListAndUpdate() {
	ctx := context.Background()
	later := &domain.Board{Name: "Line 2", CreatedAt: s.now.Add(time.Minute)}
	s.Require().NoError(s.store.CreateBoard(ctx, later))

	boards, err := s.store.ListBoards(ctx)
	s.Require().NoError(err)
	s.Require().Len(boards, 2)
	s.Equal(s.boardID, boards[0].ID)
	s.Equal(later.ID, boards[1].ID)

	later.Name = "Line 2B"
	later.Description = "Weekend"
	s.Require().NoError(s.store.UpdateBoard(ctx, later))
	got, err := s.store.GetBoard(ctx, later.ID)
	s.Require().NoError(err)
	s.Equal("Line 2B", got.Name)
	s.Equal("Weekend", got.Description)

	s.ErrorIs(s.store.UpdateBoard(ctx, &domain.Board{ID: uuid.NewString(), Name: "x"}), domain.ErrBoardNotFound)
	s.ErrorIs(s.store.UpdateBoard(ctx, &domain.Board{ID: "not-a-uuid", Name: "x"}), domain.ErrBoardNotFound)
}

func (s *StoreTestSuite) TestDeleteBoard_CascadesToCardsAndAudit() {
	ctx := context.Background()
	card := s.createCard(0, domain.CardStateRed, nil)
	err := s.store.InTx(ctx, func(ctx context.Context, tx service.Tx) error {
		return tx.AppendAudit(ctx, &domain.AuditEntry{
			CardID: card.ID, PreviousState: domain.CardStateRed, NewState: domain.CardStateGreen, Timestamp: s.now,
		})
	})
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteBoard(ctx, s.boardID))

	_, err = s.store.GetBoard(ctx, s.boardID)
	s.ErrorIs(err, domain.ErrBoardNotFound)
	_, err = s.store.GetCard(ctx, card.ID)
	s.ErrorIs(err, domain.ErrCardNotFound)
	entries, err := s.store.HistoryFor(ctx, card.ID)
	s.Require().NoError(err)
	s.Empty(entries)

	s.ErrorIs(s.store.DeleteBoard(ctx, s.boardID), domain.ErrBoardNotFound)
	s.ErrorIs(s.store.DeleteBoard(ctx, "not-a-uuid"), domain.ErrBoardNotFound)
}

func (s *StoreTestSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}
