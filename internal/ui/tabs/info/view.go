package info

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/models"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
	"github.com/j-veylop/promaster-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderSessionCard(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Session, configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderSessionCard() string {
	rows := []string{styles.CardTitleStyle.Render("Session"), ""}

	sess := m.state.GetSession()
	if !sess.IsAuthenticated() {
		rows = append(rows, styles.HelpStyle.Render("Not signed in"))
	} else {
		rows = append(rows, m.renderConfigRow("User", sess.UserName))
		if sess.Profile != nil {
			rows = append(rows, m.renderConfigRow("Profile", format.Sanitize(sess.Profile.ProfileName)))
			rows = append(rows, m.renderConfigRow("Team", format.Sanitize(sess.Profile.TeamName)))
		}
		rows = append(rows, m.renderConfigRow("Language", models.LanguageByID(sess.LanguageID).Name))
		if !sess.LoggedInAt.IsZero() {
			rows = append(rows, m.renderConfigRow("Signed in", format.ActivityTime(sess.LoggedInAt, m.now())))
		}
	}

	rows = append(rows, "")
	if updated := m.state.GetLastUpdated(); !updated.IsZero() {
		since := m.now().Sub(updated).Truncate(time.Second)
		rows = append(rows, m.renderConfigRow("Last refresh", fmt.Sprintf("%s ago", since)))
	}
	rows = append(rows,
		m.renderConfigRow("Showcase", strconv.Itoa(len(m.state.GetShowcase()))+" projects"),
		m.renderConfigRow("Cached photos", strconv.Itoa(m.state.ImageCount())),
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderConfigRow("Server", m.config.BaseURL))
		rows = append(rows, m.renderConfigRow("Session File", m.config.SessionPath))
		rows = append(rows, m.renderConfigRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderConfigRow("Image Cache", m.config.ImageCacheDir))
		rows = append(rows, m.renderConfigRow("Export Dir", valueOr(m.config.ExportDir, "disabled")))
		rows = append(rows, m.renderConfigRow("Log File", valueOr(m.config.LogPath, "disabled")))
		rows = append(rows, m.renderConfigRow("Request Timeout", m.config.RequestTimeout.String()))
		refresh := "off"
		if m.config.DashboardRefreshInterval > 0 {
			refresh = m.config.DashboardRefreshInterval.String()
		}
		rows = append(rows, m.renderConfigRow("Auto Refresh", refresh))
		rows = append(rows, m.renderConfigRow("Notifications", strconv.FormatBool(m.config.DesktopNotifications)))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About ProMaster TUI"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", version.GetVersion()))
	rows = append(rows, m.renderConfigRow("Build Date", version.GetDate()))
	rows = append(rows, m.renderConfigRow("Git Commit", version.GetCommit()))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
