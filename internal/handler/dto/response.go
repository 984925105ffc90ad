package dto

import (
	"time"

	"github.com/mtlprog/kamishibai/internal/domain"
)

// BoardResponse represents a board.
type BoardResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToBoardResponse converts a domain board.
func ToBoardResponse(b *domain.Board) BoardResponse {
	return BoardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// BoardsListResponse represents the response for GET /boards.
type BoardsListResponse struct {
	Boards []BoardResponse `json:"boards"`
	Total  int             `json:"total"`
}

// ToBoardsListResponse converts a board list.
func ToBoardsListResponse(boards []*domain.Board) BoardsListResponse {
	resp := BoardsListResponse{
		Boards: make([]BoardResponse, len(boards)),
		Total:  len(boards),
	}
	for i, b := range boards {
		resp.Boards[i] = ToBoardResponse(b)
	}
	return resp
}

// CardResponse represents a card as currently stored.
type CardResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Title     string    `json:"title"`
	Details   string    `json:"details"`
	Position  int       `json:"position"`
	State     string    `json:"state" enums:"RED,GREEN"`
	ResetTime *string   `json:"reset_time" example:"08:00"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCardResponse converts a domain card.
func ToCardResponse(c *domain.Card) CardResponse {
	resp := CardResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Title:     c.Title,
		Details:   c.Details,
		Position:  c.Position,
		State:     string(c.State),
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ResetTime != nil {
		s := c.ResetTime.String()
		resp.ResetTime = &s
	}
	return resp
}

// CardsListResponse represents the response for GET /boards/{boardId}/cards.
type CardsListResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int            `json:"total"`
}

// ToCardsListResponse converts an ordered card list.
func ToCardsListResponse(cards []*domain.Card) CardsListResponse {
	resp := CardsListResponse{
		Cards: make([]CardResponse, len(cards)),
		Total: len(cards),
	}
	for i, c := range cards {
		resp.Cards[i] = ToCardResponse(c)
	}
	return resp
}

// AuditEntryResponse represents one recorded state transition.
type AuditEntryResponse struct {
	ID            int64     `json:"id"`
	CardID        string    `json:"card_id"`
	PreviousState string    `json:"previous_state"`
	NewState      string    `json:"new_state"`
	Timestamp     time.Time `json:"timestamp"`
}

// ToAuditEntryResponse converts a domain audit entry.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:            e.ID,
		CardID:        e.CardID,
		PreviousState: string(e.PreviousState),
		NewState:      string(e.NewState),
		Timestamp:     e.Timestamp,
	}
}

// AuditResponse represents a card's history, most recent first.
type AuditResponse struct {
	CardID  string               `json:"card_id"`
	Entries []AuditEntryResponse `json:"entries"`
}

// ToAuditResponse converts a card's history.
func ToAuditResponse(cardID string, entries []*domain.AuditEntry) AuditResponse {
	resp := AuditResponse{
		CardID:  cardID,
		Entries: make([]AuditEntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = ToAuditEntryResponse(e)
	}
	return resp
}

// ToggleResponse represents the result of POST .../toggle.
type ToggleResponse struct {
	Card       CardResponse       `json:"card"`
	Transition AuditEntryResponse `json:"transition"`
}
