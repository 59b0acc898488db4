package board

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/dealdesk/internal/types"
)

// Configuration errors returned when building a board
var (
	ErrNoStages     = errors.New("board needs at least one stage")
	ErrEmptyStageID = errors.New("stage ID cannot be empty")
)

// DuplicateStageError reports a stage ID configured more than once
type DuplicateStageError struct {
	ID types.StageID
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("duplicate stage ID %q", e.ID)
}
