package showcase

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/services/images"
	"github.com/j-veylop/promaster-tui/internal/ui/components"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

// View renders the showcase.
func (m *Model) View() string {
	sections := m.state.ShowcaseSections()
	if len(sections) == 0 && m.state.IsLoading("showcase") {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	cardWidth := max(m.width-6, 40)

	rows := []string{m.renderTitle(), ""}

	if len(sections) == 0 {
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows,
			fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No projects in the showcase")),
			"",
			styles.InfoTextStyle.Render("  ╰─▶ Press t to change the tag or r to refresh"),
		)
	}

	index := 0
	for _, s := range sections {
		rows = append(rows, m.renderSectionHeader(s))
		for _, p := range s.Projects {
			rows = append(rows, m.renderProject(p, index == m.cursor, cardWidth))
			index++
		}
		rows = append(rows, "")
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Showcase")

	tag := "All tags"
	if f := m.Filter(); f.TagName != "" {
		tag = f.TagName
	}
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s · %d pinned", tag, m.pinnedCount()))
	if m.state.IsLoading("showcase") {
		subtitle += " " + m.spinner.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m *Model) pinnedCount() int {
	n := 0
	for _, p := range m.state.GetShowcase() {
		if m.state.IsPinned(p.ProjectID) {
			n++
		}
	}
	return n
}

func (m *Model) renderSectionHeader(s models.ShowcaseSection) string {
	icon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	name := styles.SectionStyle.Render(format.Sanitize(s.Name))
	if s.Name == models.PinnedSectionName {
		icon = styles.PinnedStyle.Render("★")
	}
	count := styles.HelpStyle.Render(fmt.Sprintf("(%d)", len(s.Projects)))
	return fmt.Sprintf("%s %s %s", icon, name, count)
}

func (m *Model) renderProject(p models.ShowcaseProject, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = styles.FocusedStyle.Render("▸ ")
	}

	pin := "  "
	if m.state.IsPinned(p.ProjectID) {
		pin = styles.PinnedStyle.Render("★ ")
	}

	textWidth := max(width-24, 20)
	name := lipgloss.NewStyle().Bold(true).Render(format.Truncate(format.Sanitize(p.ProjectName), textWidth))
	tag := styles.HelpStyle.Render("[" + models.ShowcaseTagLabel(p.TagID) + "]")

	lines := []string{prefix + pin + name + " " + tag}
	if p.ProjectAddress != "" {
		lines = append(lines, "    "+styles.HelpStyle.Render(format.Truncate(format.Sanitize(p.ProjectAddress), textWidth)))
	}
	lines = append(lines,
		"    "+components.AvailabilityBar(p, min(width-8, 60)),
		"    "+m.renderImage(p.Photo),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderImage shows the cached photo file, or a placeholder while the
// archive is still being fetched.
func (m *Model) renderImage(photo string) string {
	if photo == "" {
		return styles.HelpStyle.Render("no photo")
	}
	if path, ok := m.state.ImagePath(photo); ok {
		return styles.SuccessTextStyle.Render("▣ ") + styles.HelpStyle.Render(m.describe(path))
	}
	return components.ShimmerBar(16, m.frame)
}

// describe labels a cached image with its format and size. Headers are
// decoded once per path.
func (m *Model) describe(path string) string {
	if label, ok := m.described[path]; ok {
		return label
	}
	label := filepath.Base(path)
	if info, err := images.Describe(path); err == nil {
		label += " · " + info.String()
	}
	m.described[path] = label
	return label
}
