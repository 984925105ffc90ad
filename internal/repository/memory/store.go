// Package memory is an in-process implementation of the service store used by
// tests and the --store=memory development mode. Units of work hold a per-card
// lock and stage their writes until they commit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/kamishibai/internal/domain"
	"github.com/mtlprog/kamishibai/internal/service"
)

// Store keeps boards, cards and audit entries in memory.
type Store struct {
	mu     sync.RWMutex
	boards map[string]*domain.Board
	cards  map[string]*domain.Card
	audits []*domain.AuditEntry

	locksMu sync.Mutex
	locks   map[string]chan struct{}

	auditSeq atomic.Int64
}

var _ service.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		boards: make(map[string]*domain.Board),
		cards:  make(map[string]*domain.Card),
		locks:  make(map[string]chan struct{}),
	}
}

func (s *Store) cardLock(cardID string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[cardID]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[cardID] = l
	}
	return l
}

// InTx runs fn against a staging transaction and applies its writes only if fn succeeds.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx service.Tx) error) error {
	tx := &memTx{
		store:    s,
		staged:   make(map[string]*domain.Card),
		held:     make(map[string]chan struct{}),
		newCards: make(map[string]bool),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

// GetCard retrieves a committed card by ID.
func (s *Store) GetCard(_ context.Context, cardID string) (*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[cardID]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return card.Clone(), nil
}

// FindGreenCardsWithResetTimeAtOrBefore lists GREEN cards whose reset time is at or before tod.
func (s *Store) FindGreenCardsWithResetTimeAtOrBefore(_ context.Context, tod domain.TimeOfDay) ([]*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Card
	for _, card := range s.cards {
		if card.State != domain.CardStateGreen || card.ResetTime == nil {
			continue
		}
		if card.ResetTime.SinceMidnight() <= tod.SinceMidnight() {
			out = append(out, card.Clone())
		}
	}
	sortCards(out)
	return out, nil
}

// FindByBoardOrderedByPosition lists a board's cards by position.
func (s *Store) FindByBoardOrderedByPosition(_ context.Context, boardID string) ([]*domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Card{}
	for _, card := range s.cards {
		if card.BoardID == boardID {
			out = append(out, card.Clone())
		}
	}
	sortCards(out)
	return out, nil
}

func sortCards(cards []*domain.Card) {
	sort.Slice(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// HistoryFor returns a card's audit entries, most recent first.
func (s *Store) HistoryFor(_ context.Context, cardID string) ([]*domain.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.AuditEntry{}
	for _, e := range s.audits {
		if e.CardID == cardID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// GetBoard retrieves a board by ID.
func (s *Store) GetBoard(_ context.Context, boardID string) (*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[boardID]
	if !ok {
		return nil, domain.ErrBoardNotFound
	}
	cp := *b
	return &cp, nil
}

// CreateBoard stores a board, assigning its ID.
func (s *Store) CreateBoard(_ context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	board.ID = uuid.NewString()
	cp := *board
	s.boards[board.ID] = &cp
	return nil
}

// ListBoards returns every board, oldest first.
func (s *Store) ListBoards(_ context.Context) ([]*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Board, 0, len(s.boards))
	for _, b := range s.boards {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateBoard replaces a board's name and description.
func (s *Store) UpdateBoard(_ context.Context, board *domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[board.ID]
	if !ok {
		return domain.ErrBoardNotFound
	}
	b.Name = board.Name
	b.Description = board.Description
	return nil
}

// DeleteBoard removes a board with its cards and their audit entries.
func (s *Store) DeleteBoard(_ context.Context, boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[boardID]; !ok {
		return domain.ErrBoardNotFound
	}
	delete(s.boards, boardID)

	removed := make(map[string]bool)
	for id, card := range s.cards {
		if card.BoardID == boardID {
			removed[id] = true
			delete(s.cards, id)
		}
	}
	kept := s.audits[:0]
	for _, e := range s.audits {
		if !removed[e.CardID] {
			kept = append(kept, e)
		}
	}
	clear(s.audits[len(kept):])
	s.audits = kept
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type memTx struct {
	store    *Store
	staged   map[string]*domain.Card
	newCards map[string]bool
	audits   []*domain.AuditEntry
	held     map[string]chan struct{}
}

func (tx *memTx) release() {
	for id, l := range tx.held {
		<-l
		delete(tx.held, id)
	}
}

func (tx *memTx) lock(ctx context.Context, cardID string) error {
	if _, ok := tx.held[cardID]; ok {
		return nil
	}
	l := tx.store.cardLock(cardID)
	select {
	case l <- struct{}{}:
		tx.held[cardID] = l
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: lock card %s: %v", domain.ErrConcurrentModification, cardID, ctx.Err())
	}
}

// current returns the card as this transaction sees it, or nil.
func (tx *memTx) current(cardID string) *domain.Card {
	if c, ok := tx.staged[cardID]; ok {
		return c
	}
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	return tx.store.cards[cardID]
}

func (tx *memTx) GetCardForUpdate(ctx context.Context, cardID string) (*domain.Card, error) {
	if err := tx.lock(ctx, cardID); err != nil {
		return nil, err
	}
	card := tx.current(cardID)
	if card == nil {
		return nil, domain.ErrCardNotFound
	}
	return card.Clone(), nil
}

func (tx *memTx) CreateCard(_ context.Context, card *domain.Card) error {
	tx.store.mu.RLock()
	_, ok := tx.store.boards[card.BoardID]
	tx.store.mu.RUnlock()
	if !ok {
		return domain.ErrBoardNotFound
	}

	card.ID = uuid.NewString()
	tx.staged[card.ID] = card.Clone()
	tx.newCards[card.ID] = true
	return nil
}

func (tx *memTx) SaveCard(ctx context.Context, card *domain.Card, expectedState domain.CardState) error {
	if err := tx.lock(ctx, card.ID); err != nil {
		return err
	}
	cur := tx.current(card.ID)
	if cur == nil {
		return domain.ErrCardNotFound
	}
	if cur.State != expectedState {
		return fmt.Errorf("%w: card %s is %s, expected %s",
			domain.ErrConcurrentModification, card.ID, cur.State, expectedState)
	}
	tx.staged[card.ID] = card.Clone()
	return nil
}

func (tx *memTx) AppendAudit(_ context.Context, entry *domain.AuditEntry) error {
	if tx.current(entry.CardID) == nil {
		return domain.ErrCardNotFound
	}
	entry.ID = tx.store.auditSeq.Add(1)
	cp := *entry
	tx.audits = append(tx.audits, &cp)
	return nil
}

func (tx *memTx) MostRecentTransitionTo(_ context.Context, cardID string, state domain.CardState) (*time.Time, error) {
	var latest *domain.AuditEntry
	consider := func(e *domain.AuditEntry) {
		if e.CardID != cardID || e.NewState != state {
			return
		}
		if latest == nil || e.Timestamp.After(latest.Timestamp) ||
			(e.Timestamp.Equal(latest.Timestamp) && e.ID > latest.ID) {
			latest = e
		}
	}

	tx.store.mu.RLock()
	for _, e := range tx.store.audits {
		consider(e)
	}
	tx.store.mu.RUnlock()
	for _, e := range tx.audits {
		consider(e)
	}

	if latest == nil {
		return nil, nil
	}
	ts := latest.Timestamp
	return &ts, nil
}

func (tx *memTx) commit() error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()

	for id, card := range tx.staged {
		if tx.newCards[id] {
			if _, ok := tx.store.boards[card.BoardID]; !ok {
				return domain.ErrBoardNotFound
			}
			continue
		}
		if _, ok := tx.store.cards[id]; !ok {
			return domain.ErrCardNotFound
		}
	}
	for id, card := range tx.staged {
		tx.store.cards[id] = card
	}
	tx.store.audits = append(tx.store.audits, tx.audits...)
	return nil
}
