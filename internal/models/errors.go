package models

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/dealdesk/internal/types"
)

// Board error kinds. NotFound and StaleMove are recoverable by refetching
// the board; InvariantViolation signals a programming defect.
var (
	// ErrNotFound indicates a referenced deal or stage does not exist
	ErrNotFound = errors.New("not found")

	// ErrStaleMove indicates the caller's view of a deal's position is out of date
	ErrStaleMove = errors.New("stale move")

	// ErrInvariantViolation indicates the board partition is broken
	ErrInvariantViolation = errors.New("board invariant violation")
)

// NotFoundError names the missing entity
type NotFoundError struct {
	Kind string // "deal" or "stage"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is matches ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DealNotFound builds a NotFoundError for a deal
func DealNotFound(id types.DealID) error {
	return &NotFoundError{Kind: "deal", ID: id.String()}
}

// StageNotFound builds a NotFoundError for a stage
func StageNotFound(id types.StageID) error {
	return &NotFoundError{Kind: "stage", ID: id.String()}
}

// StaleMoveError describes why a relocate was rejected
type StaleMoveError struct {
	DealID types.DealID

	// Positional mismatch
	AssertedStage types.StageID
	AssertedIndex int
	ActualStage   types.StageID
	ActualIndex   int

	// Version mismatch (zero when the version was not checked)
	ExpectedVersion uint64
	Version         uint64
}

func (e *StaleMoveError) Error() string {
	if e.ExpectedVersion != 0 && e.ExpectedVersion != e.Version {
		return fmt.Sprintf("stale move for deal %q: board is at version %d, caller saw %d",
			e.DealID, e.Version, e.ExpectedVersion)
	}
	return fmt.Sprintf("stale move for deal %q: expected at %s[%d], found at %s[%d]",
		e.DealID, e.AssertedStage, e.AssertedIndex, e.ActualStage, e.ActualIndex)
}

// Is matches ErrStaleMove
func (e *StaleMoveError) Is(target error) bool {
	return target == ErrStaleMove
}

// InvariantError carries details of a broken board partition
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "board invariant violation: " + e.Detail
}

// Is matches ErrInvariantViolation
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// Invariantf builds an InvariantError from a format string
func Invariantf(format string, args ...any) error {
	return &InvariantError{Detail: fmt.Sprintf(format, args...)}
}

// IsRecoverable reports whether err can be handled by refetching and retrying.
// Invariant violations are never recoverable.
func IsRecoverable(err error) bool {
	if err == nil || errors.Is(err, ErrInvariantViolation) {
		return false
	}
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrStaleMove)
}
