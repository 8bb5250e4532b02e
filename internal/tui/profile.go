package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Profile: view and edit the signed-in user's details.

func (m *Model) initFormProfile() {
	m.inputs = make([]textinput.Model, 2)
	m.inputs[0] = ti("display name", 40)
	m.inputs[0].SetValue(m.details.Name)
	m.inputs[0].Focus()
	m.inputs[1] = ti("https://example.com/avatar.png", 60)
	m.inputs[1].SetValue(m.details.ProfileImageURL)
	m.fieldErrs = make([]string, 2)
	m.focus = 0
	m.errorMsg = ""
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateDashboard
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			return m, m.moveFocus(-1)
		}
		return m, m.moveFocus(1)

	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.moveFocus(1)
		}
		m.fieldErrs[0] = validateName(m.inputs[0].Value())
		if m.fieldErrs[0] != "" {
			return m, nil
		}
		m.loading = true
		return m, m.saveProfileCmd(strings.TrimSpace(m.inputs[0].Value()), strings.TrimSpace(m.inputs[1].Value()))
	}

	return m.updateInputs(msg)
}

func (m Model) viewProfile() string {
	header := m.navBar("Profile")
	content := "\n" + titleStyle.Render("Your profile") + "\n\n"
	content += subtleStyle.Render("E-mail: ") + m.user.Email + "\n"
	content += subtleStyle.Render("Role:   ") + m.user.Type + "\n\n"
	if m.loading {
		content += m.spin.View() + " loading...\n\n"
	}
	content += m.labeled("Name", 0)
	content += m.labeled("Avatar URL", 1)
	return pad(header + "\n" + content + m.footer("[Enter] Save  [Tab] Next field  [Esc] Back"))
}

// Settings: general preferences, notification toggle.

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateDashboard
		return m, nil
	case " ", "space":
		return m, m.saveNotificationCmd(!m.details.Notifications)
	}
	return m, nil
}

func (m Model) viewSettings() string {
	header := m.navBar("Settings")
	notif := "off"
	if m.details.Notifications {
		notif = "on"
	}
	content := "\n" + titleStyle.Render("General preferences") + "\n\n"
	content += "E-mail notifications: " + specialStyle.Render(notif) + subtleStyle.Render("  (space to toggle)") + "\n"
	content += "Refresh cadence:      owned by the backend (1 minute)\n"
	content += "Theme:                follows your terminal\n"
	return pad(header + "\n" + content + m.footer("[Space] Toggle notifications  [Esc] Back"))
}
