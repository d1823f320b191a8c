package tui

import (
	"context"
	"math"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/logging"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// CalculatorState is the current mode of the calculator.
type CalculatorState int

const (
	// StateBrowsing reacts to single-key shortcuts.
	StateBrowsing CalculatorState = iota
	// StateEditing routes keys to the workload input.
	StateEditing
	// StateQuitting indicates the program is exiting.
	StateQuitting
)

// Key names.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyUp    = "up"
	keyDown  = "down"
	keyLeft  = "left"
	keyRight = "right"
	keyK     = "k"
	keyJ     = "j"
	keyH     = "h"
	keyL     = "l"
	keyW     = "w"
	keyE     = "e"
	keyC     = "c"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// workloadStep is the factor the arrow keys scale the workload by.
const workloadStep = 10

// maxWorkload caps arrow-key scaling.
const maxWorkload = 1e15

// clipboardMsg reports the result of a copy command.
type clipboardMsg struct {
	err error
}

// CalculatorModel is the Bubble Tea model for the interactive calculator.
type CalculatorModel struct {
	ctx  context.Context
	cat  Catalog
	est  report.Estimator
	opts report.Options

	sel       emissions.Selection
	regions   []catalog.Region
	hardware  []string
	regionIdx int
	hwIdx     int

	report  *report.Report
	ranking []report.Comparison
	table   table.Model
	input   textinput.Model

	state  CalculatorState
	status string
	err    error

	width  int
	height int

	copyFn func(*report.Report) error
}

// NewCalculatorModel creates a calculator seeded with sel and computes the first estimate.
func NewCalculatorModel(
	ctx context.Context,
	cat Catalog,
	est report.Estimator,
	sel emissions.Selection,
	opts report.Options,
) *CalculatorModel {
	m := &CalculatorModel{
		ctx:     ctx,
		cat:     cat,
		est:     est,
		opts:    opts,
		sel:     sel,
		regions: cat.Regions(),
		state:   StateBrowsing,
		width:   defaultWidth,
		height:  defaultHeight,
		input:   newWorkloadInput(),
		copyFn:  report.Copy,
	}

	m.hardware = []string{""}
	for _, h := range cat.HardwareProfiles() {
		m.hardware = append(m.hardware, h.Key)
	}
	for i, r := range m.regions {
		if r.Key == sel.Region {
			m.regionIdx = i
		}
	}
	for i, h := range m.hardware {
		if h == sel.Hardware {
			m.hwIdx = i
		}
	}

	m.recalculate()
	return m
}

func newWorkloadInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "1000"
	ti.CharLimit = 24
	ti.Width = minInputLength
	return ti
}

// Selection returns the current selection.
func (m *CalculatorModel) Selection() emissions.Selection {
	return m.sel
}

// Report returns the latest report, or nil when the selection is incomplete.
func (m *CalculatorModel) Report() *report.Report {
	return m.report
}

// Err returns the error from the latest estimate.
func (m *CalculatorModel) Err() error {
	return m.err
}

// Init initializes the model.
func (m *CalculatorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied summary to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		if m.state == StateEditing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *CalculatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = StateQuitting
		return m, tea.Quit

	case keyUp, keyK:
		m.scaleWorkload(workloadStep)

	case keyDown, keyJ:
		m.scaleWorkload(1.0 / workloadStep)

	case keyRight, keyL:
		m.cycleRegion(1)

	case keyLeft, keyH:
		m.cycleRegion(-1)

	case keyW:
		if len(m.hardware) > 0 {
			m.hwIdx = (m.hwIdx + 1) % len(m.hardware)
			m.sel.Hardware = m.hardware[m.hwIdx]
			m.recalculate()
		}

	case keyE:
		m.state = StateEditing
		m.input.SetValue(formatQuantity(*m.workloadField()))
		return m, m.input.Focus()

	case keyC:
		if m.report == nil {
			m.status = "Nothing to copy"
			return m, nil
		}
		r, copyFn := m.report, m.copyFn
		return m, func() tea.Msg {
			return clipboardMsg{err: copyFn(r)}
		}
	}

	return m, nil
}

func (m *CalculatorModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		v, err := parseQuantity(m.workloadName(), m.input.Value())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		*m.workloadField() = v
		m.endEdit()
		m.recalculate()
		return m, nil

	case keyEsc:
		m.endEdit()
		return m, nil

	case keyCtrlC:
		m.state = StateQuitting
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *CalculatorModel) endEdit() {
	m.state = StateBrowsing
	m.input.Blur()
	m.input.SetValue("")
	m.status = ""
}

// workloadField is the quantity the arrow keys and editor change: tokens for
// token categories, rows otherwise.
func (m *CalculatorModel) workloadField() *float64 {
	if isTokenCategory(m.cat, m.sel.Category) {
		return &m.sel.Tokens
	}
	return &m.sel.Rows
}

func (m *CalculatorModel) workloadName() string {
	if isTokenCategory(m.cat, m.sel.Category) {
		return "tokens"
	}
	return "rows"
}

func (m *CalculatorModel) scaleWorkload(factor float64) {
	f := m.workloadField()
	v := math.Round(*f * factor)
	switch {
	case v < 1:
		v = 1
	case v > maxWorkload:
		v = maxWorkload
	}
	*f = v
	m.recalculate()
}

func (m *CalculatorModel) cycleRegion(delta int) {
	n := len(m.regions)
	if n == 0 {
		return
	}
	m.regionIdx = ((m.regionIdx+delta)%n + n) % n
	m.sel.Region = m.regions[m.regionIdx].Key
	m.recalculate()
}

// recalculate rebuilds the report and the region ranking for the current selection.
func (m *CalculatorModel) recalculate() {
	log := logging.FromContext(m.ctx)

	r, err := report.Build(m.cat, m.est, m.sel, m.opts)
	m.report, m.err = r, err
	if err != nil {
		log.Debug().Err(err).Str("component", "tui").Msg("estimate unavailable")
		m.ranking = nil
		m.table = newRankingTable(nil, m.sel.Region)
		return
	}

	ranking, err := report.Compare(m.ctx, m.cat, m.est, m.sel, report.ByRegion)
	if err != nil {
		log.Debug().Err(err).Str("component", "tui").Msg("region ranking unavailable")
	}
	m.ranking = ranking
	m.table = newRankingTable(ranking, m.sel.Region)
}

// Run starts the calculator on the terminal and returns the model state at exit.
func Run(ctx context.Context, m *CalculatorModel) (*CalculatorModel, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return m, err
	}
	if cm, ok := final.(*CalculatorModel); ok {
		return cm, nil
	}
	return m, nil
}
