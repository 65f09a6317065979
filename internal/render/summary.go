package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/obsidianstack/schedhealth/internal/alerts"
	"github.com/obsidianstack/schedhealth/internal/health"
	"github.com/obsidianstack/schedhealth/pkg/types"
)

// maxNameWidth is the activity name column width; longer names are cut.
const maxNameWidth = 25

// Summary writes a human-readable report for a terminal. Colors are only
// emitted when w is a terminal that supports them.
func Summary(w io.Writer, p *types.Project, rep health.Report, fired []alerts.Alert) error {
	r := lipgloss.NewRenderer(w)

	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937"))
	muted := r.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	heading := r.NewStyle().Bold(true)
	statusStyle := func(s health.Status) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(s.Color()))
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("%s", title.Render("Schedule Report"))
	if p.Name != "" {
		line("%s", muted.Render(p.Name))
	}
	if !p.Start.IsZero() || !p.End.IsZero() {
		line("%s", muted.Render(fmt.Sprintf("Period: %s - %s", p.Start, p.End)))
	}
	line("")

	// Legend.
	legend := []string{
		statusStyle(health.StatusOnTrack).Render("■") + fmt.Sprintf(" %s (SPI >= %.1f)", health.StatusOnTrack.Label(), health.ThresholdOnTrack),
		statusStyle(health.StatusAtRisk).Render("■") + fmt.Sprintf(" %s (%.1f <= SPI < %.1f)", health.StatusAtRisk.Label(), health.ThresholdAtRisk, health.ThresholdOnTrack),
		statusStyle(health.StatusDelayed).Render("■") + fmt.Sprintf(" %s (SPI < %.1f)", health.StatusDelayed.Label(), health.ThresholdAtRisk),
	}
	line("%s", strings.Join(legend, "   "))
	line("")

	// Activity table.
	if len(rep.Activities) > 0 {
		line("%s", heading.Render(fmt.Sprintf("%-*s  %-18s  %6s  %7s  %s", maxNameWidth, "ACTIVITY", "PROFESSIONAL", "SPI", "SV", "STATUS")))
		for _, ah := range rep.Activities {
			line("%-*s  %-18s  %6.2f  %+7.1f  %s",
				maxNameWidth, truncate(ah.Activity.Name, maxNameWidth),
				truncate(ah.Activity.Professional, 18),
				ah.SPI, ah.SV,
				statusStyle(ah.Status).Render(ah.Status.Label()),
			)
		}
		line("")
	}

	// Aggregates.
	line("%s", heading.Render("Observations"))
	line("  Weighted mean SPI   %.2f", rep.WeightedMeanSPI)
	line("  Standard deviation  %.2f", rep.StandardDeviation)
	line("  Activities at risk  %.0f%%", rep.PercentAtRisk)
	line("")

	listing := func(s health.Status, label string) {
		part := rep.Partition(s)
		if len(part) == 0 {
			return
		}
		line("%s", statusStyle(s).Bold(true).Render(fmt.Sprintf("%s (%d)", label, len(part))))
		for _, ah := range part {
			line("  - %s: SPI %.2f - %s%% achieved vs %s%% planned",
				ah.Activity.Name, ah.SPI,
				formatNumber(ah.Activity.PercentAchieved),
				formatNumber(ah.Activity.PercentPlanned),
			)
		}
		line("")
	}
	listing(health.StatusDelayed, "Delayed activities")
	listing(health.StatusAtRisk, "At-risk activities")

	c := rep.Counts()
	line("Summary: %d activities - %d on track (%.0f%%), %d at risk, %d delayed.",
		c.Total, c.OnTrack, rep.PercentOnTrack(), c.AtRisk, c.Delayed)

	if len(fired) > 0 {
		line("")
		line("%s", heading.Render(fmt.Sprintf("Alerts (%d)", len(fired))))
		for _, a := range fired {
			line("  %s", a.Message)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render: write summary: %w", err)
	}
	return nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}

// formatNumber prints v without trailing zeros: 85 → "85", 42.5 → "42.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
