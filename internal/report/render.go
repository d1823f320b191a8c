package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
)

// Formats accepted by Render.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Render writes r to w in the given format. precision sets the decimals of
// the grams figure in the table format.
func Render(w io.Writer, format string, r *Report, precision int) error {
	switch format {
	case FormatTable, "":
		return renderTable(w, r, precision)
	case FormatJSON:
		return WriteJSON(w, r, true)
	case FormatNDJSON:
		return WriteJSON(w, r, false)
	case FormatYAML:
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteJSON encodes v as JSON followed by a newline, indented when pretty is true.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// WriteYAML encodes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// tableStyles are bound to the output writer so colours are only emitted
// when w is a colour-capable terminal.
type tableStyles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	level  map[string]lipgloss.Style
}

func newTableStyles(w io.Writer) tableStyles {
	re := lipgloss.NewRenderer(w)
	return tableStyles{
		header: re.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		label:  re.NewStyle().Foreground(lipgloss.Color("245")).Width(14),
		value:  re.NewStyle().Bold(true),
		muted:  re.NewStyle().Foreground(lipgloss.Color("241")),
		level: map[string]lipgloss.Style{
			"low":    re.NewStyle().Foreground(lipgloss.Color("42")),
			"medium": re.NewStyle().Foreground(lipgloss.Color("214")),
			"high":   re.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}

func renderTable(w io.Writer, r *Report, precision int) error {
	st := newTableStyles(w)

	var sb strings.Builder
	row := func(label, value string) {
		sb.WriteString(st.label.Render(label))
		sb.WriteString(" ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	sb.WriteString(st.header.Render("CO₂ Emissions Estimate"))
	sb.WriteString("\n\n")

	row("Emissions", st.value.Render(greenops.FormatFloat(r.Grams, precision)+" g CO₂"))
	row("Energy", greenops.FormatEnergy(r.EnergyKWh))
	row("Equivalent", r.Equivalence)
	row("Tree offset", r.TreeOffset+" for one year")
	if r.GreenScore != nil {
		row("Green score", fmt.Sprintf("%.3f (performance %.2f, %s blend)",
			r.GreenScore.Value, r.GreenScore.Performance, r.GreenScore.Options.Blend))
	}
	sb.WriteString("\n")

	model := r.Model.Name
	if r.Company != "" {
		model += st.muted.Render(" (" + r.Company + ")")
	}
	row("Model", model)
	row("Category", r.Category.Name)
	row("Workload", r.Workload)
	if r.DatasetType != nil {
		row("Data type", r.DatasetType.Name)
	}
	if r.Task != nil {
		row("Task", r.Task.Name)
	}
	levelStyle, ok := st.level[r.IntensityLevel]
	if !ok {
		levelStyle = st.muted
	}
	row("Region", fmt.Sprintf("%s %s", r.Region.Name,
		levelStyle.Render(fmt.Sprintf("(%s g/kWh, PUE %s)",
			greenops.FormatFloat(r.Breakdown.CarbonIntensity, 0), greenops.FormatFloat(r.Breakdown.PUE, 2)))))
	if r.Hardware != nil {
		row("Hardware", fmt.Sprintf("%s %s", r.Hardware.Name,
			st.muted.Render(fmt.Sprintf("(%.3f kW avg)", r.Breakdown.HardwareFactor))))
	}
	sb.WriteString("\n")
	sb.WriteString(st.muted.Render("Estimates are heuristic and not measured values."))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
