package cli

import (
	"errors"
	"log/slog"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	"github.com/thenoetrevino/dealdesk/internal/seed"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code err should end the process with
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Classify maps an error to its machine-readable code, exit code and a
// suggestion for the user (possibly empty)
func Classify(err error) (code string, exit int, suggestion string) {
	var notFound *models.NotFoundError
	switch {
	case errors.As(err, &notFound) && notFound.Kind == "stage":
		return "STAGE_NOT_FOUND", ExitNotFound, "Use 'dealdesk board show' to see the configured stages"
	case errors.Is(err, models.ErrNotFound):
		return "DEAL_NOT_FOUND", ExitNotFound, "Use 'dealdesk board show' to see deal IDs"
	case errors.Is(err, models.ErrStaleMove):
		return "STALE_MOVE", ExitStaleMove, "Run 'dealdesk board show' and retry with the current position"
	case errors.Is(err, models.ErrInvariantViolation):
		return "INVARIANT_VIOLATION", ExitFailure, ""
	case dealservice.IsValidation(err), errors.Is(err, money.ErrInvalidAmount):
		return "VALIDATION_ERROR", ExitValidation, ""
	case errors.Is(err, seed.ErrBoardNotEmpty):
		return "BOARD_NOT_EMPTY", ExitValidation, "Seeding only works on an empty board"
	case dealservice.IsBoundary(err):
		return "MOVE_NOT_POSSIBLE", ExitValidation, ""
	default:
		return "INTERNAL_ERROR", ExitFailure, ""
	}
}

// Report writes err through the formatter and returns it wrapped with its exit code
func Report(formatter *OutputFormatter, err error) error {
	code, exit, suggestion := Classify(err)
	if fmtErr := formatter.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		slog.Error("failed to formatting error message", "error", fmtErr)
	}
	return &ExitError{Code: exit, Err: err}
}

// ReportCode writes a usage-level error under an explicit code
func ReportCode(formatter *OutputFormatter, code string, exit int, err error) error {
	if fmtErr := formatter.Error(code, err.Error()); fmtErr != nil {
		slog.Error("failed to formatting error message", "error", fmtErr)
	}
	return &ExitError{Code: exit, Err: err}
}
