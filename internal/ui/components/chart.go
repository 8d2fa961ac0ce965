// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

const noData = "No data available"

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(noData)
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	// asciigraph needs two points to draw a line.
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue),
	)
}

// RenderBarChart creates a horizontal bar chart of a series.
func RenderBarChart(item models.ChartDataItem, width int) string {
	if len(item.Data) == 0 {
		return styles.HelpStyle.Render(noData)
	}

	// Find max value for scaling
	maxVal := 0.0
	for _, d := range item.Data {
		maxVal = max(maxVal, d.Value)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labels := make([]string, len(item.Data))
	maxLabelLen := 0
	for i, d := range item.Data {
		labels[i] = format.Truncate(format.Sanitize(d.Label), 18)
		maxLabelLen = max(maxLabelLen, lipgloss.Width(labels[i]))
	}

	barWidth := max(width-maxLabelLen-14, 10)

	lines := make([]string, 0, len(item.Data))
	for i, d := range item.Data {
		barLen := max(int((d.Value/maxVal)*float64(barWidth)), 0)

		bar := lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render(strings.Repeat("█", barLen))
		value := fmt.Sprintf(" %s", format.Number(d.Value))
		if d.Unit != "" {
			value += " " + styles.HelpStyle.Render(format.Sanitize(d.Unit))
		}

		pad := strings.Repeat(" ", maxLabelLen-lipgloss.Width(labels[i]))
		lines = append(lines, pad+labels[i]+" │"+bar+value)
	}

	return strings.Join(lines, "\n")
}

// RenderRing renders a pie-style summary: one stacked bar split by share,
// the series total and a legend with percentages.
func RenderRing(item models.ChartDataItem, width int) string {
	total := item.Total()
	if len(item.Data) == 0 || total <= 0 {
		return styles.HelpStyle.Render(noData)
	}

	width = max(width, 10)

	var bar strings.Builder
	used := 0
	for i, d := range item.Data {
		if d.Value <= 0 {
			continue
		}
		n := int(math.Round(d.Value / total * float64(width)))
		if i == len(item.Data)-1 || used+n > width {
			n = width - used
		}
		used += n
		bar.WriteString(lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render(strings.Repeat("█", n)))
	}
	if used < width {
		bar.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", width-used)))
	}

	legend := make([]LegendItem, 0, len(item.Data))
	for i, d := range item.Data {
		legend = append(legend, LegendItem{
			Label: fmt.Sprintf("%s %s", format.Sanitize(d.Label), format.Percent(d.Value, total)),
			Color: styles.SeriesColor(i),
		})
	}

	unit := ""
	for _, d := range item.Data {
		if d.Unit != "" {
			unit = " " + format.Sanitize(d.Unit)
			break
		}
	}
	totalLine := styles.HelpStyle.Render("Total ") + lipgloss.NewStyle().Bold(true).Render(format.Number(total)+unit)

	return lipgloss.JoinVertical(lipgloss.Left, bar.String(), totalLine, RenderLegend(legend))
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
