package login

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

// View renders the form centered in the window.
func (m *Model) View() string {
	rows := []string{
		styles.TitleStyle.Render("ProMaster"),
		styles.SubTitleStyle.Render("Sign in to your sales dashboard"),
		"",
		m.labelStyle(fieldUser) + styles.HelpStyle.Render("User name"),
		"  " + m.inputBox(m.user.View(), m.focus == fieldUser),
		m.labelStyle(fieldPassword) + styles.HelpStyle.Render("Password"),
		"  " + m.inputBox(m.password.View(), m.focus == fieldPassword),
		"",
		m.labelStyle(fieldLanguage) + styles.HelpStyle.Render("Language  ") + m.renderLanguage(),
		"",
		m.labelStyle(fieldSubmit) + m.renderButton(),
	}

	switch {
	case m.submitting:
		rows = append(rows, "", m.spinner.ViewWithLabel())
	case m.err != "":
		rows = append(rows, "", styles.ErrorTextStyle.Render(m.err))
	}

	rows = append(rows, "", styles.HelpStyle.Render("tab next · enter sign in · ctrl+c quit"))

	card := styles.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if m.width == 0 || m.height == 0 {
		return card
	}
	return styles.CenterBoth(card, m.width, m.height)
}

func (m *Model) inputBox(input string, focused bool) string {
	if focused {
		return styles.FocusedBorderStyle.Render(input)
	}
	return styles.BlurredBorderStyle.Render(input)
}

func (m *Model) renderLanguage() string {
	name := m.Language().Name
	if m.focus == fieldLanguage {
		return styles.FocusedStyle.Render("◂ " + name + " ▸")
	}
	return name
}

func (m *Model) renderButton() string {
	if m.focus == fieldSubmit {
		return styles.ButtonActiveStyle.Render("Sign in")
	}
	return styles.ButtonInactiveStyle.Render("Sign in")
}
