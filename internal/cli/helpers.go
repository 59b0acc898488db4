package cli

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// ResolveStage finds a stage by ID or label (case-insensitive).
// An empty name resolves to the empty StageID.
func ResolveStage(stages []models.Stage, name string) (types.StageID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	for _, s := range stages {
		if strings.EqualFold(s.ID.String(), name) || strings.EqualFold(s.Label, name) {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("%w (available: %s)", models.StageNotFound(types.StageID(name)), StageNames(stages))
}

// StageNames lists stage IDs for error messages
func StageNames(stages []models.Stage) string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.ID.String()
	}
	return strings.Join(names, ", ")
}
