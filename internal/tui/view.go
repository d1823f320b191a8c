package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// currentMarker flags the selected region in the ranking table.
const currentMarker = "●"

// View renders the current view.
func (m *CalculatorModel) View() string {
	if m.state == StateQuitting {
		return ""
	}

	sections := []string{
		HeaderStyle.Render("CarbonSense • Interactive calculator"),
		m.renderResult(),
	}
	if len(m.ranking) > 0 {
		sections = append(sections, SubtleStyle.Render("Same workload in every region:"), m.table.View())
	}
	if m.state == StateEditing {
		sections = append(sections, fmt.Sprintf("%s %s", LabelStyle.Render("Set "+m.workloadName()), m.input.View()))
	}
	if m.status != "" {
		sections = append(sections, StatusStyle.Render(m.status))
	}
	sections = append(sections, RenderHelp(m.state))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CalculatorModel) renderResult() string {
	width := m.width - borderPadding
	if width < minInputLength {
		width = minInputLength
	}

	if m.report == nil {
		msg := "Select a model and region to estimate emissions."
		if m.err != nil {
			msg = m.err.Error()
		}
		return BoxStyle.Width(width).Render(ErrorStyle.Render(msg))
	}

	r := m.report
	var sb strings.Builder
	row := func(label, value string) {
		sb.WriteString(LabelStyle.Render(label))
		sb.WriteString(" ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	row("Emissions", GramsStyle.Render(greenops.FormatFloat(r.Grams, 2)+" g CO₂"))
	row("Energy", greenops.FormatEnergy(r.EnergyKWh))
	row("Equivalent", r.Equivalence)
	row("Tree offset", r.TreeOffset)
	if r.GreenScore != nil {
		row("Green score", ValueStyle.Render(fmt.Sprintf("%.3f", r.GreenScore.Value)))
	}
	sb.WriteString("\n")

	row("Model", ValueStyle.Render(r.Model.Name)+SubtleStyle.Render(" · "+r.Category.Name))
	row("Workload", r.Workload)
	intensity := lipgloss.NewStyle().Foreground(IntensityColor(r.IntensityLevel))
	row("Region", r.Region.Name+" "+intensity.Render(fmt.Sprintf("(%s g/kWh)",
		greenops.FormatFloat(r.Breakdown.CarbonIntensity, 0))))
	hardware := SubtleStyle.Render("none")
	if r.Hardware != nil {
		hardware = r.Hardware.Name
	}
	sb.WriteString(LabelStyle.Render("Hardware"))
	sb.WriteString(" ")
	sb.WriteString(hardware)

	return BoxStyle.Width(width).Render(sb.String())
}

// RenderHelp renders the keyboard shortcut help text.
func RenderHelp(state CalculatorState) string {
	shortcuts := []string{
		"↑/↓: Scale workload ×10",
		"←/→: Region",
		"w: Hardware",
		"e: Edit workload",
		"c: Copy",
		"q: Quit",
	}
	if state == StateEditing {
		shortcuts = []string{"Enter: Apply", "Esc: Cancel"}
	}
	return HelpStyle.Render(strings.Join(shortcuts, " | "))
}

// newRankingTable builds the region ranking table with the current region highlighted.
func newRankingTable(rows []report.Comparison, current string) table.Model {
	columns := []table.Column{
		{Title: " ", Width: 1},
		{Title: "#", Width: 2},
		{Title: "Region", Width: 18},     //nolint:mnd // Column width.
		{Title: "g CO₂", Width: 12},      //nolint:mnd // Column width.
		{Title: "vs best", Width: 8},     //nolint:mnd // Column width.
		{Title: "Equivalent", Width: 28}, //nolint:mnd // Column width.
	}

	tableRows := make([]table.Row, len(rows))
	cursor := 0
	for i, r := range rows {
		marker := ""
		if r.Key == current {
			marker = currentMarker
			cursor = i
		}
		tableRows[i] = table.Row{
			marker,
			fmt.Sprintf("%d", r.Rank),
			r.Name,
			greenops.FormatFloat(r.Grams, 2),
			fmt.Sprintf("%.2fx", r.Relative),
			r.Equivalence,
		}
	}

	height := len(rows)
	if height > tableHeight {
		height = tableHeight
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(height+1),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	t.SetCursor(cursor)

	return t
}
