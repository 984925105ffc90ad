package handler

import (
	"net/http"

	"github.com/mtlprog/kamishibai/internal/handler/dto"
	"github.com/mtlprog/kamishibai/internal/service"
)

// handleCreateBoard creates a new board.
// @Summary Create a board
// @Tags boards
// @Accept json
// @Produce json
// @Param request body dto.CreateBoardRequest true "Board creation request"
// @Success 201 {object} dto.BoardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /boards [post]
func (h *Handler) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	board, err := h.boardService.Create(r.Context(), service.CreateBoardParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToBoardResponse(board))
}

// handleGetBoard returns a board.
// @Summary Get a board
// @Tags boards
// @Produce json
// @Param boardId path string true "Board ID"
// @Success 200 {object} dto.BoardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /boards/{boardId} [get]
func (h *Handler) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	boardID, ok := extractID(w, r, "boardId")
	if !ok {
		return
	}

	board, err := h.boardService.Get(r.Context(), boardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBoardResponse(board))
}

// handleListBoards lists every board.
// @Summary List boards
// @Tags boards
// @Produce json
// @Success 200 {object} dto.BoardsListResponse
// @Router /boards [get]
func (h *Handler) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boardService.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBoardsListResponse(boards))
}

// handleUpdateBoard renames a board or changes its description.
// @Summary Update a board
// @Tags boards
// @Accept json
// @Produce json
// @Param boardId path string true "Board ID"
// @Param request body dto.UpdateBoardRequest true "Board update request"
// @Success 200 {object} dto.BoardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /boards/{boardId} [put]
func (h *Handler) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	boardID, ok := extractID(w, r, "boardId")
	if !ok {
		return
	}

	var req dto.UpdateBoardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	board, err := h.boardService.Update(r.Context(), boardID, req.Params())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToBoardResponse(board))
}

// handleDeleteBoard deletes a board with all its cards and their audit history.
// @Summary Delete a board
// @Tags boards
// @Param boardId path string true "Board ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /boards/{boardId} [delete]
func (h *Handler) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID, ok := extractID(w, r, "boardId")
	if !ok {
		return
	}

	if err := h.boardService.Delete(r.Context(), boardID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
