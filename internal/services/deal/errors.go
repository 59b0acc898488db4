package deal

import "errors"

// Deal-related errors
var (
	// Validation errors
	ErrInvalidDealID = errors.New("invalid deal ID")
	ErrEmptyTitle    = errors.New("deal title cannot be empty")
	ErrTitleTooLong  = errors.New("deal title cannot exceed 255 characters")
	ErrEmptyCompany  = errors.New("deal company cannot be empty")
	ErrInvalidAmount = errors.New("deal amount must be a number")
	ErrNoChanges     = errors.New("no fields to update")

	// ErrInvalidDirection indicates a move request that names no usable target
	ErrInvalidDirection = errors.New("invalid move target")
)

// Movement-related errors
var (
	// ErrAlreadyFirstDeal indicates that the deal is already at the top of its stage
	ErrAlreadyFirstDeal = errors.New("deal is already at the top of the stage")

	// ErrAlreadyLastDeal indicates that the deal is already at the bottom of its stage
	ErrAlreadyLastDeal = errors.New("deal is already at the bottom of the stage")

	// ErrAlreadyLastStage indicates that the deal is already in the last stage
	ErrAlreadyLastStage = errors.New("deal is already in the last stage")

	// ErrAlreadyFirstStage indicates that the deal is already in the first stage
	ErrAlreadyFirstStage = errors.New("deal is already in the first stage")
)

// IsValidation reports whether err is a request validation failure
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidDealID, ErrEmptyTitle, ErrTitleTooLong,
		ErrEmptyCompany, ErrInvalidAmount, ErrNoChanges, ErrInvalidDirection,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsBoundary reports whether err is a relative move past the edge of the board
func IsBoundary(err error) bool {
	return errors.Is(err, ErrAlreadyFirstDeal) || errors.Is(err, ErrAlreadyLastDeal) ||
		errors.Is(err, ErrAlreadyFirstStage) || errors.Is(err, ErrAlreadyLastStage)
}
