package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/logger"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := min(max(int(float64(width)*percent/100), 0), width)

	var barChars []string
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#ff6b6b", "#51cf66", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

// AvailabilityPercent returns the share of units still available. Projects
// without unit counts report -1.
func AvailabilityPercent(p models.ShowcaseProject) float64 {
	if p.TotalUnits <= 0 {
		return -1
	}
	return float64(p.AvailableUnits) / float64(p.TotalUnits) * 100
}

// AvailabilityBar renders the unit availability of a project as a bar
// followed by its availability label.
func AvailabilityBar(p models.ShowcaseProject, width int) string {
	label := p.Availability()
	percent := AvailabilityPercent(p)
	if percent < 0 {
		return styles.HelpStyle.Render(label)
	}

	barWidth := max(width-lipgloss.Width(label)-1, 5)
	return RenderGradientBar(percent, barWidth) + " " +
		styles.GetAvailabilityStyle(percent).Render(label)
}

// ShimmerBar renders an animated placeholder bar for content still loading.
func ShimmerBar(width, frame int) string {
	if width < 1 {
		return ""
	}

	const cycle = 120

	t := float64(frame%cycle) / float64(cycle)
	var p float64
	if t < 0.5 {
		p = t * 2
	} else {
		p = (1 - t) * 2
	}
	eased := p * p * (3 - 2*p)
	shimmerPos := int(eased * float64(width))

	var barChars []string
	for i := 0; i < width; i++ {
		dist := shimmerPos - i
		if dist < 0 {
			dist = -dist
		}

		var char string
		var style lipgloss.Style

		switch {
		case dist < 3:
			char = "▓"
			style = lipgloss.NewStyle().Foreground(styles.Primary)
		case dist < 5:
			char = "▒"
			style = lipgloss.NewStyle().Foreground(styles.TextSecondary)
		default:
			char = "░"
			style = lipgloss.NewStyle().Foreground(styles.BgLight)
		}

		barChars = append(barChars, style.Render(char))
	}

	return strings.Join(barChars, "")
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
