package tui

import (
	"strings"

	"appwatch/internal/api"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Auth screens: login (with forgot-password and Google token entry), register
// and recover-password. Validation failures render inline under the field and
// never reach the network.

func (m *Model) initFormLogin() {
	m.inputs = make([]textinput.Model, 2)
	m.inputs[0] = ti("user@example.com", 40)
	m.inputs[0].Focus()
	m.inputs[1] = ti("password", 40)
	m.inputs[1].EchoMode = textinput.EchoPassword
	m.fieldErrs = make([]string, 2)
	m.focus = 0
	m.errorMsg = ""
	m.resetEmailMode = false
	m.googleMode = false
	m.showPassword = false
}

func (m *Model) initResetEmail() {
	m.inputs = make([]textinput.Model, 1)
	m.inputs[0] = ti("user@example.com", 40)
	m.inputs[0].Focus()
	m.fieldErrs = make([]string, 1)
	m.focus = 0
	m.errorMsg = ""
}

func (m *Model) initGoogleToken() {
	m.inputs = make([]textinput.Model, 1)
	m.inputs[0] = ti("paste OAuth access token", 60)
	m.inputs[0].Focus()
	m.fieldErrs = make([]string, 1)
	m.focus = 0
	m.errorMsg = ""
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.resetEmailMode || m.googleMode {
			m.initFormLogin()
			return m, nil
		}
		m.teardown()
		return m, tea.Quit

	case "ctrl+n":
		m.state = stateRegister
		m.initFormRegister()
		return m, nil

	case "ctrl+t":
		m.state = stateRecover
		m.initFormRecover()
		return m, nil

	case "ctrl+f":
		m.initResetEmail()
		m.resetEmailMode = true
		m.googleMode = false
		return m, nil

	case "ctrl+g":
		m.initGoogleToken()
		m.googleMode = true
		m.resetEmailMode = false
		return m, nil

	case "ctrl+p":
		m.showPassword = !m.showPassword
		if !m.resetEmailMode && !m.googleMode {
			if m.showPassword {
				m.inputs[1].EchoMode = textinput.EchoNormal
			} else {
				m.inputs[1].EchoMode = textinput.EchoPassword
			}
		}
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "shift+tab" || msg.String() == "up" {
			return m, m.moveFocus(-1)
		}
		return m, m.moveFocus(1)

	case "enter":
		if m.resetEmailMode {
			email := m.inputs[0].Value()
			if err := validateEmail(email); err != "" {
				m.fieldErrs[0] = err
				return m, nil
			}
			m.loading = true
			return m, m.requestResetCmd(email)
		}
		if m.googleMode {
			token := strings.TrimSpace(m.inputs[0].Value())
			if token == "" {
				m.fieldErrs[0] = "token is required"
				return m, nil
			}
			m.loading = true
			return m, m.googleSignInCmd(token)
		}
		if m.focus < len(m.inputs)-1 {
			return m, m.moveFocus(1)
		}
		email, password := m.inputs[0].Value(), m.inputs[1].Value()
		m.fieldErrs[0] = validateEmail(email)
		m.fieldErrs[1] = validatePassword(password)
		if m.fieldErrs[0] != "" || m.fieldErrs[1] != "" {
			return m, nil
		}
		m.loading = true
		return m, m.signInCmd(email, password)
	}

	return m.updateInputs(msg)
}

func (m Model) viewLogin() string {
	if m.resetEmailMode {
		content := titleStyle.Render("Recover your password") + "\n\n" +
			"We will e-mail you a reset link.\n\n" +
			m.labeled("E-mail", 0)
		return pad(content) + m.footer("[Enter] Send  [Esc] Back")
	}
	if m.googleMode {
		content := titleStyle.Render("Sign in with Google") + "\n\n" +
			m.labeled("Access token", 0)
		return pad(content) + m.footer("[Enter] Sign in  [Esc] Back")
	}

	content := titleStyle.Render("App-Watch") + "\n\n" +
		m.labeled("E-mail", 0) +
		m.labeled("Password", 1)
	if m.loading {
		content += m.spin.View() + " signing in...\n"
	}
	return pad(content) + m.footer("[Enter] Sign in  [Ctrl+N] Register  [Ctrl+G] Google  [Ctrl+F] Forgot  [Ctrl+T] Have reset token  [Ctrl+P] Show/hide  [Esc] Quit")
}

// --- register ---

func (m *Model) initFormRegister() {
	m.inputs = make([]textinput.Model, 5)
	m.inputs[0] = ti("name", 40)
	m.inputs[0].Focus()
	m.inputs[1] = ti("user@example.com", 40)
	m.inputs[2] = ti("password", 40)
	m.inputs[2].EchoMode = textinput.EchoPassword
	m.inputs[3] = ti("CPF", 10)
	m.inputs[3].SetValue("CPF")
	m.inputs[4] = ti("document number", 30)
	m.fieldErrs = make([]string, 5)
	m.focus = 0
	m.errorMsg = ""
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateLogin
		m.initFormLogin()
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
		m.fieldErrs[1] = validateEmail(m.inputs[1].Value())
		m.fieldErrs[2] = validatePassword(m.inputs[2].Value())
		m.fieldErrs[3] = validateDocType(m.inputs[3].Value())
		m.fieldErrs[4] = validateDocument(m.inputs[4].Value())
		for _, e := range m.fieldErrs {
			if e != "" {
				return m, nil
			}
		}
		m.loading = true
		return m, m.registerCmd(api.RegisterInput{
			Email:        m.inputs[1].Value(),
			Password:     m.inputs[2].Value(),
			Name:         strings.TrimSpace(m.inputs[0].Value()),
			Type:         "client",
			TypeDocument: strings.ToUpper(strings.TrimSpace(m.inputs[3].Value())),
			Document:     strings.TrimSpace(m.inputs[4].Value()),
		})
	}

	return m.updateInputs(msg)
}

func validateDocType(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CPF", "CNPJ":
		return ""
	}
	return "document type must be CPF or CNPJ"
}

func (m Model) viewRegister() string {
	content := titleStyle.Render("Create your account") + "\n\n" +
		m.labeled("Name", 0) +
		m.labeled("E-mail", 1) +
		m.labeled("Password", 2) +
		m.labeled("Document type (CPF/CNPJ)", 3) +
		m.labeled("Document number", 4)
	if m.loading {
		content += m.spin.View() + " creating account...\n"
	}
	return pad(content) + m.footer("[Enter] Register  [Tab] Next field  [Esc] Back")
}

// --- recover password (token from the reset e-mail) ---

func (m *Model) initFormRecover() {
	m.inputs = make([]textinput.Model, 2)
	m.inputs[0] = ti("reset token", 50)
	m.inputs[0].Focus()
	m.inputs[1] = ti("new password", 40)
	m.inputs[1].EchoMode = textinput.EchoPassword
	m.fieldErrs = make([]string, 2)
	m.focus = 0
	m.errorMsg = ""
}

func (m Model) updateRecover(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateLogin
		m.initFormLogin()
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
		token := strings.TrimSpace(m.inputs[0].Value())
		if token == "" {
			m.fieldErrs[0] = "token is required"
			return m, nil
		}
		m.fieldErrs[0] = ""
		m.fieldErrs[1] = validatePassword(m.inputs[1].Value())
		if m.fieldErrs[1] != "" {
			return m, nil
		}
		m.loading = true
		return m, m.resetPasswordCmd(token, m.inputs[1].Value())
	}

	return m.updateInputs(msg)
}

func (m Model) viewRecover() string {
	content := titleStyle.Render("Set a new password") + "\n\n" +
		m.labeled("Reset token", 0) +
		m.labeled("New password", 1)
	return pad(content) + m.footer("[Enter] Save  [Esc] Back")
}

// --- helpers ---

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return *m, tea.Batch(cmds...)
}

// labeled renders one input with its label and inline validation error.
func (m Model) labeled(label string, i int) string {
	out := label + ":\n" + m.inputs[i].View() + "\n"
	if i < len(m.fieldErrs) && m.fieldErrs[i] != "" {
		out += dangerStyle.Render(m.fieldErrs[i]) + "\n"
	}
	return out + "\n"
}
