package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	DeleteConfirmMode             // Confirming deal deletion
	DetailMode                    // Showing the selected deal's details
	HelpMode                      // Displaying help screen
	DealFormMode                  // Adding or editing a deal in a form
)

// UIState manages the user interface state.
// This includes navigation (stage/deal selection), terminal dimensions,
// and the current interaction mode.
type UIState struct {
	// selectedStage is the index of the currently selected stage
	selectedStage int

	// selectedDeal is the index of the selected deal within the selected stage
	selectedDeal int

	width  int
	height int

	mode Mode
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

// SelectedStage returns the index of the selected stage
func (s *UIState) SelectedStage() int {
	return s.selectedStage
}

// SelectedDeal returns the index of the selected deal within its stage
func (s *UIState) SelectedDeal() int {
	return s.selectedDeal
}

// Select sets the selection directly; call Clamp afterwards
func (s *UIState) Select(stage, deal int) {
	s.selectedStage = stage
	s.selectedDeal = deal
}

// Clamp keeps the selection inside a board whose stages have the given lengths.
// An empty stage keeps a deal index of 0.
func (s *UIState) Clamp(stageLens []int) {
	if len(stageLens) == 0 {
		s.selectedStage, s.selectedDeal = 0, 0
		return
	}
	s.selectedStage = min(max(s.selectedStage, 0), len(stageLens)-1)
	n := stageLens[s.selectedStage]
	s.selectedDeal = min(max(s.selectedDeal, 0), max(n-1, 0))
}

// Width returns the terminal width
func (s *UIState) Width() int {
	return s.width
}

// Height returns the terminal height
func (s *UIState) Height() int {
	return s.height
}

// SetWindowSize records the terminal dimensions
func (s *UIState) SetWindowSize(width, height int) {
	s.width = width
	s.height = height
}

// Mode returns the current interaction mode
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode changes the interaction mode
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}
