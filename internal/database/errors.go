package database

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/dealdesk/internal/models"
)

var (
	// ErrDealNotStored indicates a write referenced a deal that has no row
	ErrDealNotStored = errors.New("deal not stored")

	// ErrStageInUse indicates a stage removed from configuration still holds deals
	ErrStageInUse = errors.New("stage still holds deals")

	// ErrUnknownStage is returned by MemStore when a deal is placed in a stage
	// that was never synced. The sqlite store reports a foreign key failure instead.
	ErrUnknownStage = errors.New("unknown stage")
)

// VersionConflictError reports a write made from a board view that another
// writer has since moved past. It matches models.ErrStaleMove.
type VersionConflictError struct {
	Expected uint64
	Stored   uint64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("board changed elsewhere: stored version is %d, this view is at %d", e.Stored, e.Expected)
}

// Is matches models.ErrStaleMove
func (e *VersionConflictError) Is(target error) bool {
	return target == models.ErrStaleMove
}
