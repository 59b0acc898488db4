package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
	"github.com/thenoetrevino/dealdesk/internal/tui/huhforms"
	"github.com/thenoetrevino/dealdesk/internal/tui/state"
	"github.com/thenoetrevino/dealdesk/internal/user"
)

// openAddForm opens an empty deal form for the selected stage
func (m *Model) openAddForm() tea.Cmd {
	st := m.currentStage()
	if st == nil {
		return nil
	}
	m.FormState.Start("", st.ID, state.DealFormValues{
		Owner:   user.DefaultOwner(),
		Confirm: true,
	})
	return m.showForm()
}

// openEditForm opens the deal form filled in from the selected deal
func (m *Model) openEditForm() tea.Cmd {
	d, ok := m.currentDeal()
	if !ok {
		return nil
	}
	st := m.currentStage()
	m.FormState.Start(d.ID, st.ID, state.DealFormValues{
		Title:   d.Title,
		Company: d.Company,
		Amount:  d.Amount.String(),
		Contact: d.Contact,
		Due:     d.Due,
		Owner:   d.Owner,
		Confirm: true,
	})
	return m.showForm()
}

func (m *Model) showForm() tea.Cmd {
	editing := !m.FormState.EditingID().IsZero()
	m.FormState.Form = huhforms.CreateDealForm(&m.FormState.Values, editing, huhforms.CreateTheme(m.Config.ColorScheme))
	m.UiState.SetMode(state.DealFormMode)
	return m.FormState.Form.Init()
}

// updateDealForm handles all messages while the deal form is open.
// Forms need every message, not just key presses.
func (m *Model) updateDealForm(msg tea.Msg) tea.Cmd {
	if m.FormState.Form == nil {
		m.UiState.SetMode(state.NormalMode)
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			if m.FormState.HasChanges() {
				m.NotificationState.Add(state.LevelInfo, "Discarded changes")
			}
			m.closeForm()
			return tea.ClearScreen
		case m.Config.KeyMappings.SaveForm:
			m.FormState.Values.Confirm = true
			m.submitDealForm()
			return tea.ClearScreen
		}
	}

	model, cmd := m.FormState.Form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		m.FormState.Form = form
	}

	switch m.FormState.Form.State {
	case huh.StateCompleted:
		m.submitDealForm()
		return tea.ClearScreen
	case huh.StateAborted:
		m.closeForm()
		return tea.ClearScreen
	}
	return cmd
}

// submitDealForm saves the form through the deal service and closes it
func (m *Model) submitDealForm() {
	values := m.FormState.Values
	initial := m.FormState.Initial()
	editingID := m.FormState.EditingID()
	stageID := m.FormState.StageID()
	unchanged := !m.FormState.HasChanges()
	m.closeForm()

	if !values.Confirm {
		return
	}

	if editingID.IsZero() {
		d, err := m.deals.AddDeal(m.Ctx, dealservice.CreateDealRequest{
			Title:   values.Title,
			Company: values.Company,
			Amount:  values.Amount,
			Contact: values.Contact,
			Due:     values.Due,
			Owner:   values.Owner,
			StageID: stageID,
		})
		if err != nil {
			m.notifyError("add deal", err)
			return
		}
		m.refresh()
		m.selectDeal(d.ID)
		m.NotificationState.Add(state.LevelInfo, "Added "+d.Title)
		return
	}

	if unchanged {
		m.NotificationState.Add(state.LevelInfo, "No changes")
		return
	}

	// Only changed fields are sent, so stored initials survive an edit
	// that leaves the contact alone
	req := dealservice.UpdateDealRequest{DealID: editingID}
	changed := func(now, was string) *string {
		if now == was {
			return nil
		}
		return &now
	}
	req.Title = changed(values.Title, initial.Title)
	req.Company = changed(values.Company, initial.Company)
	req.Amount = changed(values.Amount, initial.Amount)
	req.Contact = changed(values.Contact, initial.Contact)
	req.Due = changed(values.Due, initial.Due)
	req.Owner = changed(values.Owner, initial.Owner)

	d, err := m.deals.EditDeal(m.Ctx, req)
	if err != nil {
		m.notifyError("edit deal", err)
		return
	}
	m.refresh()
	m.selectDeal(d.ID)
	m.NotificationState.Add(state.LevelInfo, "Saved "+d.Title)
}

func (m *Model) closeForm() {
	m.FormState.Clear()
	m.UiState.SetMode(state.NormalMode)
}
