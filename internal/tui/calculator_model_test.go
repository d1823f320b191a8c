package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

func newTestCalculator(t *testing.T, sel emissions.Selection) *CalculatorModel {
	t.Helper()
	c := catalog.Default()
	return NewCalculatorModel(context.Background(), c, emissions.NewEstimator(c), sel, report.Options{})
}

func gpt4oSelection() emissions.Selection {
	return emissions.Selection{Category: "llm", Model: "gpt-4o", Region: "us-west", Tokens: 1000}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *CalculatorModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestNewCalculatorModel(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	require.NotNil(t, m.Report())
	require.NoError(t, m.Err())
	assert.InDelta(t, 110.25, m.Report().Grams, 1e-9)
	assert.Equal(t, StateBrowsing, m.state)
	assert.Len(t, m.ranking, 5)
	assert.Equal(t, []string{"", "cpu", "gpu", "gpu-h100", "tpu", "edge", "apple-silicon"}, m.hardware)
}

func TestCalculator_ScaleWorkload(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.InDelta(t, 10000.0, m.Selection().Tokens, 0)
	assert.InDelta(t, 1102.5, m.Report().Grams, 1e-9)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	press(m, runes("j"))
	assert.InDelta(t, 100.0, m.Selection().Tokens, 0)

	for range 5 {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.InDelta(t, 1.0, m.Selection().Tokens, 0, "workload floors at one")
}

func TestCalculator_ScaleRowsForDataPointCategories(t *testing.T) {
	m := newTestCalculator(t, emissions.Selection{
		Category: "ml", Model: "xgboost", Region: "us-west", Rows: 100, Columns: 4,
	})

	press(m, runes("k"))
	assert.InDelta(t, 1000.0, m.Selection().Rows, 0)
	assert.InDelta(t, 4.0, m.Selection().Columns, 0)
	assert.Equal(t, "1,000 × 4 = 4,000 data points", m.Report().Workload)
}

func TestCalculator_CycleRegion(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "us-east", m.Selection().Region)
	assert.InDelta(t, 170.625, m.Report().Grams, 1e-9)

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	press(m, runes("h"))
	assert.Equal(t, "global-avg", m.Selection().Region, "wraps to the last region")
}

func TestCalculator_CycleHardware(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	press(m, runes("w"))
	assert.Equal(t, "cpu", m.Selection().Hardware)
	require.NotNil(t, m.Report().Hardware)
	assert.InDelta(t, 110.25*0.075, m.Report().Grams, 1e-9)

	for range 6 {
		press(m, runes("w"))
	}
	assert.Empty(t, m.Selection().Hardware)
	assert.Nil(t, m.Report().Hardware)
}

func TestCalculator_EditWorkload(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	press(m, runes("e"))
	assert.Equal(t, StateEditing, m.state)
	assert.Equal(t, "1000", m.input.Value())

	press(m, runes("q"))
	assert.Equal(t, StateEditing, m.state, "q is input while editing")

	m.input.SetValue("abc")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateEditing, m.state)
	assert.Contains(t, m.status, "invalid quantity")

	m.input.SetValue("2,500")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateBrowsing, m.state)
	assert.InDelta(t, 2500.0, m.Selection().Tokens, 0)
	assert.Empty(t, m.status)
}

func TestCalculator_EditCancel(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	press(m, runes("e"))
	m.input.SetValue("5")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StateBrowsing, m.state)
	assert.InDelta(t, 1000.0, m.Selection().Tokens, 0)
}

func TestCalculator_Copy(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	var copied *report.Report
	m.copyFn = func(r *report.Report) error {
		copied = r
		return nil
	}
	cmd := press(m, runes("c"))
	require.NotNil(t, cmd)
	press(m, cmd())
	assert.Same(t, m.Report(), copied)
	assert.Equal(t, "Copied summary to clipboard", m.status)

	m.copyFn = func(*report.Report) error { return errors.New("no display") }
	press(m, press(m, runes("c"))())
	assert.Equal(t, "Copy failed: no display", m.status)
}

func TestCalculator_Quit(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())

	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, StateQuitting, m.state)
	assert.Empty(t, m.View())
}

func TestCalculator_IncompleteSelection(t *testing.T) {
	sel := gpt4oSelection()
	sel.Model = ""
	m := newTestCalculator(t, sel)

	assert.Nil(t, m.Report())
	require.ErrorIs(t, m.Err(), report.ErrIncompleteSelection)
	assert.Empty(t, m.ranking)
	assert.Contains(t, m.View(), "incomplete selection")

	cmd := press(m, runes("c"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to copy", m.status)
}

func TestCalculator_View(t *testing.T) {
	m := newTestCalculator(t, gpt4oSelection())
	press(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "110.25 g CO₂")
	assert.Contains(t, view, "GPT-4o")
	assert.Contains(t, view, "US West Coast")
	assert.Contains(t, view, "Western Europe")
	assert.Contains(t, view, currentMarker)
	assert.Contains(t, view, "q: Quit")
}

func TestRenderHelp(t *testing.T) {
	assert.Contains(t, RenderHelp(StateBrowsing), "←/→: Region")
	assert.Contains(t, RenderHelp(StateEditing), "Esc: Cancel")
}

func TestIntensityColor(t *testing.T) {
	assert.Equal(t, ColorOK, IntensityColor("low"))
	assert.Equal(t, ColorWarning, IntensityColor("medium"))
	assert.Equal(t, ColorCritical, IntensityColor("high"))
	assert.Equal(t, ColorMuted, IntensityColor(""))
}
