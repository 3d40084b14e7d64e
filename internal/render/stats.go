package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phrazzld/scry-cards/internal/stats"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Stats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the output formats accepted by Stats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

const barWidth = 30

// Stats writes report to w in the given format.
func Stats(w io.Writer, format string, report stats.Report) error {
	switch format {
	case FormatText, "":
		return StatsText(w, report)
	case FormatJSON:
		return StatsJSON(w, report)
	case FormatYAML:
		return StatsYAML(w, report)
	default:
		return fmt.Errorf("unknown output format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// StatsJSON writes report as indented JSON.
func StatsJSON(w io.Writer, report stats.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// StatsYAML writes report as YAML.
func StatsYAML(w io.Writer, report stats.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	bar   lipgloss.Style
	muted lipgloss.Style
}

// newStyles binds the styles to w, so color is only emitted when w is a
// terminal that supports it.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
		label: r.NewStyle().Foreground(lipgloss.Color("241")).Width(18),
		value: r.NewStyle().Foreground(lipgloss.Color("252")),
		bar:   r.NewStyle().Foreground(lipgloss.Color("42")),
		muted: r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// StatsText writes report as a styled terminal report with bar histograms.
func StatsText(w io.Writer, report stats.Report) error {
	st := newStyles(w)
	var b strings.Builder

	line := func(label string, value any) {
		b.WriteString(st.label.Render(label))
		b.WriteString(st.value.Render(fmt.Sprint(value)))
		b.WriteByte('\n')
	}

	b.WriteString(st.title.Render("Cards"))
	b.WriteByte('\n')
	line("in scope", report.NumCards)
	line("in database", report.TotalCardsInDB)
	line("due now", report.DueCards)
	line("due this month", report.UpcomingMonth)
	for _, l := range stats.Lifecycles {
		line(l.String(), report.Lifecycles[l.String()])
	}

	b.WriteByte('\n')
	b.WriteString(st.title.Render("Due this week"))
	b.WriteByte('\n')
	if len(report.UpcomingWeek) == 0 {
		b.WriteString(st.muted.Render("nothing scheduled"))
		b.WriteByte('\n')
	}
	var peak int64
	for _, d := range report.UpcomingWeek {
		peak = max(peak, d.Count)
	}
	for _, d := range report.UpcomingWeek {
		b.WriteString(st.label.Render(d.Day))
		b.WriteString(st.bar.Render(bar(uint64(d.Count), uint64(peak))))
		b.WriteString(st.value.Render(fmt.Sprintf(" %d", d.Count)))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(st.title.Render("Files"))
	b.WriteByte('\n')
	for _, f := range report.Files {
		b.WriteString(st.value.Render(fmt.Sprintf("%6d  %s", f.Count, f.Path)))
		b.WriteByte('\n')
	}

	writeHistogram(&b, st, "Difficulty", report.Difficulty)
	writeHistogram(&b, st, "Retrievability", report.Retrievability)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHistogram(b *strings.Builder, st styles, title string, h stats.HistogramReport) {
	b.WriteByte('\n')
	b.WriteString(st.title.Render(title))
	b.WriteString(st.muted.Render(fmt.Sprintf("  n=%d mean=%.2f", h.Count, h.Mean)))
	b.WriteByte('\n')

	var peak uint64
	for _, n := range h.Bins {
		peak = max(peak, n)
	}

	width := 1.0 / float64(max(len(h.Bins), 1))
	for i, n := range h.Bins {
		label := fmt.Sprintf("%.2f-%.2f", float64(i)*width, float64(i+1)*width)
		b.WriteString(st.label.Render(label))
		b.WriteString(st.bar.Render(bar(n, peak)))
		b.WriteString(st.value.Render(fmt.Sprintf(" %d", n)))
		b.WriteByte('\n')
	}
}

// bar scales n against peak into a bar of at most barWidth cells. Non-zero
// values always get at least one cell.
func bar(n, peak uint64) string {
	if n == 0 || peak == 0 {
		return ""
	}
	cells := int(n * barWidth / peak)
	if cells < 1 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}
