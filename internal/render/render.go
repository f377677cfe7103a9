// Package render turns report structs into styled terminal output. It lives
// outside the core engine: nothing here affects what is computed, only how it
// is shown.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackroad/journeymap/internal/domain"
)

const funnelWidth = 60

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

// Success formats a confirmation line.
func Success(msg string) string {
	return goodStyle.Render("✓ " + msg)
}

// rateStyle colors a conversion rate: green from 50%, yellow from 25%, red
// below.
func rateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 50:
		return goodStyle
	case rate >= 25:
		return warnStyle
	default:
		return badStyle
	}
}

// Funnel renders the per-stage funnel as centered bars scaled against the
// top stage's entry count.
func Funnel(stages []domain.StageMetrics) string {
	if len(stages) == 0 {
		return warnStyle.Render("No funnel stages defined.")
	}

	var b strings.Builder
	rule := strings.Repeat("═", funnelWidth)
	b.WriteString(titleStyle.Render(rule) + "\n")
	b.WriteString(titleStyle.Render("  CUSTOMER JOURNEY FUNNEL") + "\n")
	b.WriteString(titleStyle.Render(rule) + "\n\n")

	topEntry := stages[0].EntryCount
	for i, st := range stages {
		ratio := 0.0
		if topEntry > 0 {
			ratio = float64(st.EntryCount) / float64(topEntry)
		}
		barWidth := int(ratio * (funnelWidth - 20))
		if barWidth < 4 {
			barWidth = 4
		}
		pad := strings.Repeat(" ", (funnelWidth-barWidth)/2)
		style := rateStyle(st.ConversionRate)

		b.WriteString(boldStyle.Render(fmt.Sprintf("  Stage %2d: %s", st.Position, st.StageName)) + "\n")
		b.WriteString("  " + pad + style.Render(strings.Repeat("█", barWidth)) + "\n")
		b.WriteString(fmt.Sprintf("        Entries: %-6d  Conv: %s  Drop: %s  Avg: %s\n",
			st.EntryCount,
			style.Render(fmt.Sprintf("%5.1f%%", st.ConversionRate)),
			badStyle.Render(fmt.Sprintf("%5.1f%%", st.DropOffRate)),
			dimStyle.Render(fmt.Sprintf("%.0fms", st.AvgDurationMS)),
		))
		if i < len(stages)-1 {
			b.WriteString("  " + strings.Repeat(" ", funnelWidth/2-1) + dimStyle.Render("▼") + "\n")
		}
	}
	b.WriteString("\n" + titleStyle.Render("  "+rule) + "\n")
	return b.String()
}

// Paths renders the top conversion path table.
func Paths(groups []domain.PathGroup, limit int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("  TOP %d CONVERSION PATHS", limit)) + "\n")
	b.WriteString(fmt.Sprintf("  %-50s %6s  %6s\n", "Path Signature", "Count", "Conv%"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s  %s",
		strings.Repeat("─", 50), strings.Repeat("─", 6), strings.Repeat("─", 6))) + "\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("  %-50s %6d  %s\n",
			g.PathSignature, g.Occurrences,
			goodStyle.Render(fmt.Sprintf("%5.1f%%", g.ConversionRate))))
	}
	return b.String()
}

// Dropoffs renders the three-way dropoff breakdown for one stage.
func Dropoffs(b *domain.DropoffBreakdown) string {
	var s strings.Builder
	id := b.StageID
	if len(id) > 8 {
		id = id[:8] + "…"
	}
	s.WriteString(titleStyle.Render("  DROPOFF ANALYSIS: Stage "+id) + "\n")
	s.WriteString(fmt.Sprintf("  Total dropoffs : %d\n", b.TotalDropoffs))
	s.WriteString("  Reasons        : " + countMap(b.Reasons) + "\n")
	s.WriteString("  By channel     : " + countMap(b.ByChannel) + "\n")
	s.WriteString("  Time of day    : " + hourMap(b.TimeOfDay) + "\n")
	return s.String()
}

// Channels renders the channel attribution table.
func Channels(stats []domain.ChannelStats, days int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("  CHANNEL ATTRIBUTION (last %dd)", days)) + "\n")
	b.WriteString(fmt.Sprintf("  %-20s %8s  %6s  %6s  %8s\n", "Channel", "Sessions", "Conv", "Rate%", "Avg $"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s  %s  %s  %s",
		strings.Repeat("─", 20), strings.Repeat("─", 8), strings.Repeat("─", 6),
		strings.Repeat("─", 6), strings.Repeat("─", 8))) + "\n")
	for _, cs := range stats {
		avg := 0.0
		if cs.AvgValue != nil {
			avg = *cs.AvgValue
		}
		b.WriteString(fmt.Sprintf("  %-20s %8d  %6d  %s  %8.2f\n",
			cs.Channel, cs.Sessions, cs.Conversions,
			goodStyle.Render(fmt.Sprintf("%5.1f%%", cs.ConversionRate)), avg))
	}
	return b.String()
}

// LTV renders the customer value segment table.
func LTV(segments []domain.LTVSegment) string {
	if len(segments) == 0 {
		return warnStyle.Render("No converted customers yet.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("  CUSTOMER LTV SEGMENTS") + "\n")
	b.WriteString(fmt.Sprintf("  %-12s %10s  %10s  %9s\n", "Segment", "Min $", "Max $", "Customers"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s  %s  %s",
		strings.Repeat("─", 12), strings.Repeat("─", 10), strings.Repeat("─", 10),
		strings.Repeat("─", 9))) + "\n")
	for _, seg := range segments {
		b.WriteString(fmt.Sprintf("  %-12s %10.2f  %10.2f  %9d\n",
			seg.Label, seg.LTVMin, seg.LTVMax, seg.CustomerCount))
	}
	return b.String()
}

// Heatmap renders the 7×24 matrix as a shaded grid, one column per two
// hours.
func Heatmap(h *domain.Heatmap) string {
	blocks := []rune(" ░▒▓█")

	maxVal := 0
	for _, row := range h.Matrix {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("  JOURNEY HEATMAP  (%d touchpoints)", h.TotalTouchpoints)) + "\n")

	var header strings.Builder
	header.WriteString("     ")
	for hr := 0; hr < 24; hr += 2 {
		header.WriteString(fmt.Sprintf("%3d", hr))
	}
	b.WriteString(dimStyle.Render(header.String()) + "\n")

	for d, day := range h.DayLabels {
		var row strings.Builder
		for hr := 0; hr < 24; hr += 2 {
			val := h.Matrix[d][hr]
			lvl := 0
			if maxVal > 0 {
				lvl = val * (len(blocks) - 1) / maxVal
			}
			row.WriteRune(blocks[lvl])
			row.WriteRune(blocks[lvl])
		}
		b.WriteString("  " + boldStyle.Render(day) + "  " + row.String() + "\n")
	}
	return b.String()
}

func countMap(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, "  ")
}

func hourMap(m map[int]int) string {
	hours := make([]int, 0, len(m))
	for h := range m {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00=%d", h, m[h])
	}
	return strings.Join(parts, "  ")
}
