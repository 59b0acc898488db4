package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	"github.com/thenoetrevino/dealdesk/internal/tui/state"
)

const (
	minColumnWidth = 24
	// cardHeight is three content lines plus the border
	cardHeight = 5
	// chromeHeight covers the column header, total, column border and footer
	chromeHeight = 5
)

func (m *Model) render() string {
	if m.UiState.Width() == 0 {
		return "Loading..."
	}

	height := m.UiState.Height() - 1
	var body string
	switch m.UiState.Mode() {
	case state.HelpMode:
		body = lipgloss.Place(m.UiState.Width(), height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	case state.DetailMode:
		body = lipgloss.Place(m.UiState.Width(), height, lipgloss.Center, lipgloss.Center, m.renderDetail())
	case state.DealFormMode:
		body = lipgloss.Place(m.UiState.Width(), height, lipgloss.Center, lipgloss.Center, m.renderDealForm())
	default:
		body = m.renderBoard()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m *Model) renderBoard() string {
	if len(m.board.Stages) == 0 {
		return m.styles.subtle.Render("No stages configured")
	}

	width := max(minColumnWidth, m.UiState.Width()/len(m.board.Stages))
	visible := max(1, (m.UiState.Height()-chromeHeight)/cardHeight)

	columns := make([]string, len(m.board.Stages))
	for i, st := range m.board.Stages {
		columns[i] = m.renderColumn(i, st, width, visible)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) renderColumn(index int, st models.Stage, width, visible int) string {
	summary := m.summaries[index]
	selected := index == m.UiState.SelectedStage()
	currency := m.Config.Currency

	header := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Accent)).Render("●") + " " +
		m.styles.columnHeader.Render(st.Label) + " " +
		m.styles.subtle.Render(fmt.Sprintf("(%d)", summary.Count))

	lines := []string{header, m.styles.amount.Render(money.Compact(summary.Total, currency))}

	// Scroll so the selected deal stays visible
	start := 0
	if selected {
		start = max(0, m.UiState.SelectedDeal()-visible+1)
	}
	end := min(len(st.DealIDs), start+visible)

	for pos := start; pos < end; pos++ {
		d := m.board.Deals[st.DealIDs[pos]]
		lines = append(lines, m.renderCard(d, width-4, selected && pos == m.UiState.SelectedDeal()))
	}
	if len(st.DealIDs) == 0 {
		lines = append(lines, m.styles.subtle.Render("No deals"))
	} else if hidden := len(st.DealIDs) - end; hidden > 0 {
		lines = append(lines, m.styles.subtle.Render(fmt.Sprintf("+%d more", hidden)))
	}

	return m.styles.column.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCard(d models.Deal, width int, selected bool) string {
	style := m.styles.card
	if selected {
		style = m.styles.selectedCard
	}

	content := m.styles.title.Render(d.Title) + "\n" +
		m.styles.subtle.Render(d.Company) + "\n" +
		m.styles.amount.Render(money.Format(d.Amount, m.Config.Currency)) + " " +
		m.styles.normal.Render(d.ContactInitials+" · "+d.Due)

	return style.Width(width).Render(content)
}

func (m *Model) renderDetail() string {
	d, ok := m.currentDeal()
	if !ok {
		return ""
	}
	st := m.currentStage()

	rows := []string{
		m.styles.title.Render(d.Title),
		"",
		"Company  " + d.Company,
		"Value    " + m.styles.amount.Render(money.Format(d.Amount, m.Config.Currency)),
		"Contact  " + d.Contact + " (" + d.ContactInitials + ")",
		"Due      " + d.Due,
		"Stage    " + st.Label,
		"",
		m.styles.subtle.Render(d.ID.String()),
	}
	return m.styles.overlay.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderHelp() string {
	km := m.Config.KeyMappings
	bindings := [][2]string{
		{km.PrevStage + "/" + km.NextStage, "select stage"},
		{km.PrevDeal + "/" + km.NextDeal, "select deal"},
		{km.MoveDealLeft + "/" + km.MoveDealRight, "move deal to previous/next stage"},
		{km.MoveDealUp + "/" + km.MoveDealDown, "move deal up/down"},
		{km.AddDeal, "add deal"},
		{km.EditDeal, "edit deal"},
		{km.SaveForm, "save form"},
		{km.ViewDeal, "show deal"},
		{km.DeleteDeal, "delete deal"},
		{km.Reload, "reload board"},
		{km.ShowHelp, "help"},
		{km.Quit, "quit"},
	}

	rows := []string{m.styles.title.Render("Keys"), ""}
	for _, b := range bindings {
		rows = append(rows, fmt.Sprintf("%-8s %s", b[0], b[1]))
	}
	return m.styles.overlay.Render(strings.Join(rows, "\n"))
}

// renderDealForm shows the open deal form under a heading naming what it
// will change
func (m *Model) renderDealForm() string {
	if m.FormState.Form == nil {
		return ""
	}
	heading := "Edit " + m.FormState.Initial().Title
	if m.FormState.EditingID().IsZero() {
		heading = "New deal"
		if st := m.board.StageByID(m.FormState.StageID()); st != nil {
			heading += " in " + st.Label
		}
	}
	hint := m.styles.subtle.Render(m.Config.KeyMappings.SaveForm + " to save · esc to cancel")
	return m.styles.overlay.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(heading), "", m.FormState.Form.View(), "", hint))
}

// renderFooter shows the pipeline total on the left, the latest notice in
// the middle and the help hint on the right
func (m *Model) renderFooter() string {
	count, total := board.SumSummaries(m.summaries)
	left := m.styles.subtle.Render(fmt.Sprintf("%d deals · ", count)) +
		m.styles.amount.Render(money.Format(total, m.Config.Currency))

	var notice string
	if m.UiState.Mode() == state.DeleteConfirmMode {
		if d, ok := m.currentDeal(); ok {
			notice = m.styles.error.Render(fmt.Sprintf("Delete %q? (y/n)", d.Title))
		}
	} else if n, ok := m.NotificationState.Current(); ok {
		if n.Level == state.LevelError {
			notice = m.styles.error.Render(n.Message)
		} else {
			notice = m.styles.info.Render(n.Message)
		}
	}

	right := m.styles.subtle.Render("press " + m.Config.KeyMappings.ShowHelp + " for help")

	gap := m.UiState.Width() - lipgloss.Width(left) - lipgloss.Width(notice) - lipgloss.Width(right)
	half := max(gap/2, 1)
	return left + strings.Repeat(" ", half) + notice + strings.Repeat(" ", max(gap-half, 1)) + right
}
