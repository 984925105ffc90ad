package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mtlprog/kamishibai/internal/domain"
)

const (
	maxTitleLength     = 200
	maxDetailsLength   = 5000
	maxBoardNameLength = 100
)

func validateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n == 0 || n > maxTitleLength {
		return fmt.Errorf("%w: title must be between 1 and %d characters", domain.ErrInvalidTitle, maxTitleLength)
	}
	return nil
}

func validateDetails(details string) error {
	if utf8.RuneCountInString(details) > maxDetailsLength {
		return fmt.Errorf("%w: details cannot exceed %d characters", domain.ErrInvalidDetails, maxDetailsLength)
	}
	return nil
}

func validatePosition(position int) error {
	if position < 0 {
		return fmt.Errorf("%w: position %d is negative", domain.ErrInvalidPosition, position)
	}
	return nil
}

// ValidateCreate checks the caller-supplied fields of a new card.
func ValidateCreate(p CreateCardParams) error {
	if err := validateTitle(p.Title); err != nil {
		return err
	}
	if err := validateDetails(p.Details); err != nil {
		return err
	}
	return validatePosition(p.Position)
}

// ValidateUpdate checks only the fields present in the update.
func ValidateUpdate(p UpdateCardParams) error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Details != nil {
		if err := validateDetails(*p.Details); err != nil {
			return err
		}
	}
	if p.Position != nil {
		if err := validatePosition(*p.Position); err != nil {
			return err
		}
	}
	if p.State != nil && !p.State.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidState, *p.State)
	}
	if p.ResetTime != nil && p.ClearResetTime {
		return fmt.Errorf("%w: reset time both set and cleared", domain.ErrInvalidResetTime)
	}
	return nil
}

func validateBoardName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 || n > maxBoardNameLength {
		return fmt.Errorf("%w: name must be between 1 and %d characters", domain.ErrInvalidBoardName, maxBoardNameLength)
	}
	return nil
}

// ValidateBoard checks a new board.
func ValidateBoard(p CreateBoardParams) error {
	if err := validateBoardName(p.Name); err != nil {
		return err
	}
	return validateDetails(p.Description)
}

// ValidateBoardUpdate checks only the fields present in the update.
func ValidateBoardUpdate(p UpdateBoardParams) error {
	if p.Name != nil {
		if err := validateBoardName(*p.Name); err != nil {
			return err
		}
	}
	if p.Description != nil {
		return validateDetails(*p.Description)
	}
	return nil
}
