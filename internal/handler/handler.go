package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/mtlprog/kamishibai/docs" // Register API docs
	"github.com/mtlprog/kamishibai/internal/handler/dto"
	"github.com/mtlprog/kamishibai/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	cardService  *service.CardService
	boardService *service.BoardService
	pinger       Pinger
}

// New creates a new Handler instance with all dependencies.
func New(cardService *service.CardService, boardService *service.BoardService, pinger Pinger) *Handler {
	return &Handler{
		cardService:  cardService,
		boardService: boardService,
		pinger:       pinger,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Boards
	mux.HandleFunc("GET /api/v1/boards", h.handleListBoards)
	mux.HandleFunc("POST /api/v1/boards", h.handleCreateBoard)
	mux.HandleFunc("GET /api/v1/boards/{boardId}", h.handleGetBoard)
	mux.HandleFunc("PUT /api/v1/boards/{boardId}", h.handleUpdateBoard)
	mux.HandleFunc("DELETE /api/v1/boards/{boardId}", h.handleDeleteBoard)

	// Cards
	mux.HandleFunc("GET /api/v1/boards/{boardId}/cards", h.handleListCards)
	mux.HandleFunc("POST /api/v1/boards/{boardId}/cards", h.handleCreateCard)
	mux.HandleFunc("GET /api/v1/boards/{boardId}/cards/{cardId}", h.handleGetCard)
	mux.HandleFunc("PUT /api/v1/boards/{boardId}/cards/{cardId}", h.handleUpdateCard)
	mux.HandleFunc("POST /api/v1/boards/{boardId}/cards/{cardId}/toggle", h.handleToggleCard)
	mux.HandleFunc("GET /api/v1/boards/{boardId}/cards/{cardId}/audit", h.handleCardAudit)
}

// handleHealthz returns 200 OK if the store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		slog.Error("store health check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err onto a status and error code.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// decodeJSON reads the request body into v. It reports false after
// responding when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return false
	}
	return true
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID")
		return "", false
	}

	return id, true
}

// extractCardPath extracts both IDs of a card route and checks the card is on the board.
func (h *Handler) extractCardPath(w http.ResponseWriter, r *http.Request) (boardID, cardID string, ok bool) {
	if boardID, ok = extractID(w, r, "boardId"); !ok {
		return "", "", false
	}
	if cardID, ok = extractID(w, r, "cardId"); !ok {
		return "", "", false
	}

	if err := h.cardService.CheckBoard(r.Context(), boardID, cardID); err != nil {
		respondDomainError(w, err)
		return "", "", false
	}

	return boardID, cardID, true
}
