package state

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// DealFormValues holds the fields of the deal form. The huh form writes
// into them in place.
type DealFormValues struct {
	Title   string
	Company string
	Amount  string
	Contact string
	Due     string
	Owner   string
	Confirm bool
}

// FormState manages the add/edit deal form
type FormState struct {
	// Form is the open huh form, nil when no form is shown
	Form *huh.Form

	// Values are bound to Form's fields
	Values DealFormValues

	editingID types.DealID
	stageID   types.StageID
	initial   DealFormValues
}

// NewFormState creates a FormState with no open form.
func NewFormState() *FormState {
	return &FormState{}
}

// Start prepares the values for a new form. An empty editingID means a new
// deal in stageID.
func (s *FormState) Start(editingID types.DealID, stageID types.StageID, values DealFormValues) {
	s.Form = nil
	s.editingID = editingID
	s.stageID = stageID
	s.Values = values
	s.initial = values
}

// EditingID returns the deal being edited, empty when adding
func (s *FormState) EditingID() types.DealID {
	return s.editingID
}

// StageID returns the stage a new deal goes into
func (s *FormState) StageID() types.StageID {
	return s.stageID
}

// Initial returns the values the form opened with
func (s *FormState) Initial() DealFormValues {
	return s.initial
}

// HasChanges reports whether any field differs from when the form opened.
// The confirm toggle is not a change.
func (s *FormState) HasChanges() bool {
	current := s.Values
	current.Confirm = s.initial.Confirm
	return current != s.initial
}

// Clear closes the form and drops its values
func (s *FormState) Clear() {
	*s = FormState{}
}
