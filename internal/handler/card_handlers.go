package handler

import (
	"net/http"

	"github.com/mtlprog/kamishibai/internal/handler/dto"
)

// handleListCards lists a board's cards ordered by position.
// @Summary List cards of a board
// @Description Cards whose daily reset is due are reset to RED before being returned.
// @Tags cards
// @Produce json
// @Param boardId path string true "Board ID"
// @Success 200 {object} dto.CardsListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /boards/{boardId}/cards [get]
func (h *Handler) handleListCards(w http.ResponseWriter, r *http.Request) {
	boardID, ok := extractID(w, r, "boardId")
	if !ok {
		return
	}

	cards, err := h.cardService.ListByBoardWithLazyReset(r.Context(), boardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCardsListResponse(cards))
}

// handleCreateCard creates a card on a board.
// @Summary Create a card
// @Description New cards always start RED.
// @Tags cards
// @Accept json
// @Produce json
// @Param boardId path string true "Board ID"
// @Param request body dto.CreateCardRequest true "Card creation request"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /boards/{boardId}/cards [post]
func (h *Handler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	boardID, ok := extractID(w, r, "boardId")
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params, err := req.Params(boardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	card, err := h.cardService.Create(r.Context(), params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToCardResponse(card))
}

// handleGetCard returns a card, applying its reset first when due.
// @Summary Get a card
// @Tags cards
// @Produce json
// @Param boardId path string true "Board ID"
// @Param cardId path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /boards/{boardId}/cards/{cardId} [get]
func (h *Handler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	_, cardID, ok := h.extractCardPath(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.GetWithLazyReset(r.Context(), cardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCardResponse(card))
}

// handleUpdateCard applies an explicit update.
// @Summary Update a card
// @Description Omitted fields are unchanged. A state different from the current one is recorded in the audit trail.
// @Tags cards
// @Accept json
// @Produce json
// @Param boardId path string true "Board ID"
// @Param cardId path string true "Card ID"
// @Param request body dto.UpdateCardRequest true "Card update request"
// @Success 200 {object} dto.CardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /boards/{boardId}/cards/{cardId} [put]
func (h *Handler) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	_, cardID, ok := h.extractCardPath(w, r)
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params, err := req.Params()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	card, err := h.cardService.ExplicitUpdate(r.Context(), cardID, params)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCardResponse(card))
}

// handleToggleCard flips a card between RED and GREEN.
// @Summary Toggle a card
// @Tags cards
// @Produce json
// @Param boardId path string true "Board ID"
// @Param cardId path string true "Card ID"
// @Success 200 {object} dto.ToggleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /boards/{boardId}/cards/{cardId}/toggle [post]
func (h *Handler) handleToggleCard(w http.ResponseWriter, r *http.Request) {
	_, cardID, ok := h.extractCardPath(w, r)
	if !ok {
		return
	}

	card, entry, err := h.cardService.Toggle(r.Context(), cardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToggleResponse{
		Card:       dto.ToCardResponse(card),
		Transition: dto.ToAuditEntryResponse(entry),
	})
}

// handleCardAudit returns a card's state transitions, most recent first.
// @Summary Card audit trail
// @Tags cards
// @Produce json
// @Param boardId path string true "Board ID"
// @Param cardId path string true "Card ID"
// @Success 200 {object} dto.AuditResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /boards/{boardId}/cards/{cardId}/audit [get]
func (h *Handler) handleCardAudit(w http.ResponseWriter, r *http.Request) {
	_, cardID, ok := h.extractCardPath(w, r)
	if !ok {
		return
	}

	entries, err := h.cardService.History(r.Context(), cardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToAuditResponse(cardID, entries))
}
