package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services"
	"github.com/j-veylop/promaster-tui/internal/ui/components"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

const maxActivities = 12

// View renders the dashboard component.
func (m *Model) View() string {
	dash := m.state.GetDashboard()
	if dash == nil {
		if m.state.IsLoading("dashboard") || m.state.IsInitialLoading() {
			return m.renderLoading()
		}
		return m.renderEmpty()
	}

	cardWidth := max(m.width-6, 40)

	sections := []string{
		m.renderHeader(dash),
		m.renderProjects(dash, cardWidth),
		"",
		m.renderStatistics(dash, cardWidth),
		"",
		m.renderActivities(dash, cardWidth),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

func (m *Model) renderEmpty() string {
	emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
	msg := fmt.Sprintf("%s %s", emptyIcon, styles.HelpStyle.Render("No dashboard data yet"))
	hint := styles.InfoTextStyle.Render("╰─▶ Press r to refresh")

	return styles.CenterBoth(lipgloss.JoinVertical(lipgloss.Left, msg, hint), m.width, m.height)
}

// renderHeader renders the profile line and the refresh time.
func (m *Model) renderHeader(dash *services.Dashboard) string {
	profile := dash.Data.UserProfile

	name := format.Sanitize(profile.ProfileName)
	if name == "" {
		name = "Dashboard"
	}
	title := styles.TitleStyle.Render(name)

	var meta []string
	if team := format.Sanitize(profile.TeamName); team != "" {
		meta = append(meta, team)
	}
	if !dash.FetchedAt.IsZero() {
		meta = append(meta, "updated "+format.Clock(dash.FetchedAt))
	}
	subtitle := styles.HelpStyle.Render(strings.Join(meta, " · "))
	if dash.Stale {
		subtitle += " " + styles.StaleStyle.Render("cached")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func cardTitle(title string) string {
	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	return fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(title))
}

func emptyRow(text string) string {
	emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
	return fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render(text))
}

// renderProjects renders the featured projects, filtered by the selected tag.
func (m *Model) renderProjects(dash *services.Dashboard, cardWidth int) string {
	sel := m.state.GetSelection()

	title := "Projects"
	for _, t := range dash.Data.ProjectTags {
		if t.IntID == sel.TagID {
			title += " · " + format.Sanitize(t.Description)
		}
	}

	rows := []string{cardTitle(title), ""}

	projects := dash.Data.ProjectsByTag(sel.TagID)
	if len(projects) == 0 {
		rows = append(rows, emptyRow("No projects for this tag"))
	}

	textWidth := max(cardWidth-12, 20)
	for _, p := range projects {
		marker := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○ ")
		if p.IsFeature {
			marker = lipgloss.NewStyle().Foreground(styles.Accent).Render("★ ")
		}
		if _, ok := m.state.ImagePath(p.Photo); ok {
			marker += styles.SuccessTextStyle.Render("▣ ")
		} else {
			marker += "  "
		}

		line := marker + lipgloss.NewStyle().Bold(true).Render(format.Truncate(format.Sanitize(p.ProjectName), textWidth))
		if p.TagName != "" {
			line += " " + styles.HelpStyle.Render("["+format.Sanitize(p.TagName)+"]")
		}
		rows = append(rows, "  "+line)
		if p.ProjectAddress != "" {
			rows = append(rows, "      "+styles.HelpStyle.Render(format.Truncate(format.Sanitize(p.ProjectAddress), textWidth)))
		}
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderAxisStrip renders the axis selector with the active axis highlighted.
func (m *Model) renderAxisStrip(active models.Axis) string {
	parts := make([]string, 0, len(models.Axes))
	for _, a := range models.Axes {
		if a == active {
			parts = append(parts, styles.ButtonActiveStyle.Render(a.Title()))
		} else {
			parts = append(parts, styles.ButtonInactiveStyle.Render(a.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderStatistics renders the charts of the active axis.
func (m *Model) renderStatistics(dash *services.Dashboard, cardWidth int) string {
	axis := m.state.GetAxis()
	sel := m.state.GetSelection()

	rows := []string{cardTitle("Statistics"), "", m.renderAxisStrip(axis), ""}

	chartName := sel.ChartNames[axis]
	if chartName == "" {
		rows = append(rows, emptyRow("No statistics for "+strings.ToLower(axis.Title())))
		return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	filter := "all identities"
	if sel.Groups[axis] != "" {
		filter = fmt.Sprintf("%s (%d)", groupLabel(sel.Groups[axis]), len(sel.Identities[axis]))
	}
	rows = append(rows,
		styles.SubTitleStyle.Render(format.Sanitize(chartName))+"  "+styles.HelpStyle.Render("showing "+filter),
		"",
	)

	charts := m.state.Charts(axis)
	if len(charts) == 0 {
		rows = append(rows, emptyRow("No data for this chart"))
	}

	innerWidth := max(cardWidth-8, 30)
	selected := min(m.series, max(len(charts)-1, 0))
	for i, item := range charts {
		rows = append(rows, m.renderSeries(item, axis, i == selected, innerWidth), "")
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderSeries(item models.ChartDataItem, axis models.Axis, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = styles.FocusedStyle.Render("▸ ")
	}

	name := format.Sanitize(item.ChartIdentityName)
	if name == "" {
		name = format.Sanitize(item.ChartName)
	}
	header := prefix + lipgloss.NewStyle().Bold(true).Render(name)

	var body string
	if axis == models.AxisPeriod {
		header += styles.HelpStyle.Render("  total " + format.Number(item.Total()))
		body = components.RenderLineChart(item.Values(), width-10, 6, strings.Join(item.Labels(), " · "))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left,
			components.RenderRing(item, width),
			components.RenderBarChart(item, width),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.NewStyle().PaddingLeft(2).Render(body))
}

// renderActivities renders the activity feed, filtered by category.
func (m *Model) renderActivities(dash *services.Dashboard, cardWidth int) string {
	sel := m.state.GetSelection()

	title := "Activity"
	for _, f := range dash.Data.ActivityFilters {
		if f.IntID == sel.ActivityCategory {
			title += " · " + format.Sanitize(f.Description)
		}
	}

	rows := []string{cardTitle(title), ""}

	activities := dash.Data.ActivitiesByCategory(sel.ActivityCategory)
	if len(activities) == 0 {
		rows = append(rows, emptyRow("No recent activity"))
	}

	now := m.now()
	textWidth := max(cardWidth-38, 20)
	for i, a := range activities {
		if i == maxActivities {
			more := fmt.Sprintf("  ╰─ %d more", len(activities)-maxActivities)
			rows = append(rows, styles.HelpStyle.Render(more))
			break
		}

		when := lipgloss.NewStyle().Width(22).Foreground(styles.TextMuted).Render(format.ActivityTime(a.Time(), now))
		line := "  " + when + format.Truncate(format.Sanitize(a.ActivityTitle), textWidth)
		if a.Status != "" {
			line += " " + styles.InfoTextStyle.Render(format.Sanitize(a.Status))
		}
		rows = append(rows, line)
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
