package dto

import (
	"github.com/mtlprog/kamishibai/internal/domain"
	"github.com/mtlprog/kamishibai/internal/service"
)

// CreateBoardRequest represents the request body for POST /boards.
type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateBoardRequest represents the request body for PUT /boards/{boardId}.
// Omitted fields are left unchanged.
type UpdateBoardRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Params converts the request into service parameters.
func (r UpdateBoardRequest) Params() service.UpdateBoardParams {
	return service.UpdateBoardParams{
		Name:        r.Name,
		Description: r.Description,
	}
}

// CreateCardRequest represents the request body for POST /boards/{boardId}/cards.
type CreateCardRequest struct {
	Title     string  `json:"title"`
	Details   string  `json:"details,omitempty"`
	Position  int     `json:"position"`
	ResetTime *string `json:"reset_time,omitempty" example:"08:00"`
	ImageURL  *string `json:"image_url,omitempty"`
	// State is accepted and ignored: new cards always start RED.
	State *string `json:"state,omitempty"`
}

// Params converts the request into service parameters.
func (r CreateCardRequest) Params(boardID string) (service.CreateCardParams, error) {
	p := service.CreateCardParams{
		BoardID:  boardID,
		Title:    r.Title,
		Details:  r.Details,
		Position: r.Position,
	}
	if r.ResetTime != nil && *r.ResetTime != "" {
		tod, err := domain.ParseTimeOfDay(*r.ResetTime)
		if err != nil {
			return p, err
		}
		p.ResetTime = &tod
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		p.ImageURL = r.ImageURL
	}
	return p, nil
}

// UpdateCardRequest represents the request body for PUT /boards/{boardId}/cards/{cardId}.
// Omitted fields are left unchanged. An empty reset_time or image_url clears it.
type UpdateCardRequest struct {
	Title     *string `json:"title,omitempty"`
	Details   *string `json:"details,omitempty"`
	Position  *int    `json:"position,omitempty"`
	ResetTime *string `json:"reset_time,omitempty" example:"08:00"`
	ImageURL  *string `json:"image_url,omitempty"`
	State     *string `json:"state,omitempty" enums:"RED,GREEN"`
}

// Params converts the request into service parameters.
func (r UpdateCardRequest) Params() (service.UpdateCardParams, error) {
	p := service.UpdateCardParams{
		Title:    r.Title,
		Details:  r.Details,
		Position: r.Position,
		ImageURL: r.ImageURL,
	}
	if r.ResetTime != nil {
		if *r.ResetTime == "" {
			p.ClearResetTime = true
		} else {
			tod, err := domain.ParseTimeOfDay(*r.ResetTime)
			if err != nil {
				return p, err
			}
			p.ResetTime = &tod
		}
	}
	if r.State != nil {
		st := domain.CardState(*r.State)
		p.State = &st
	}
	return p, nil
}
