package tui

import (
	"fmt"
	"strings"

	"appwatch/internal/pager"

	tea "github.com/charmbracelet/bubbletea"
)

// Admin area: paginated, searchable oversight listings. Reachable only for
// users with the admin role; the backend enforces it again server-side.

const (
	adminTabLogs = iota
	adminTabWebsites
	adminTabRoutes
	adminTabUsers
)

var adminTabNames = []string{"Error Logs", "Websites", "Routes", "Users"}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.adminSearch.Blur()
			m.adminPage = 1
			m.loading = true
			return m, m.fetchAdminCmd()
		case "esc":
			m.searching = false
			m.adminSearch.Blur()
			m.adminSearch.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.adminSearch, cmd = m.adminSearch.Update(msg)
		return m, cmd
	}

	p := pager.Pager{Total: m.adminTotal, PerPage: m.adminPerPage}

	switch msg.String() {
	case "esc":
		m.state = stateDashboard
		return m, nil

	case "tab":
		m.adminTab = (m.adminTab + 1) % len(adminTabNames)
		m.adminPage = 1
		m.adminTotal = 0
		m.loading = true
		return m, m.fetchAdminCmd()

	case "left", "h":
		if next := p.Clamp(m.adminPage - 1); next != m.adminPage {
			m.adminPage = next
			m.loading = true
			return m, m.fetchAdminCmd()
		}

	case "right", "l":
		if next := p.Clamp(m.adminPage + 1); next != m.adminPage {
			m.adminPage = next
			m.loading = true
			return m, m.fetchAdminCmd()
		}

	case "+", "=", "-":
		// Per-page cycles through the web client's choices.
		choices := []int{5, 10, 15}
		idx := 0
		for i, c := range choices {
			if c == m.adminPerPage {
				idx = i
			}
		}
		if msg.String() == "-" {
			idx = (idx + len(choices) - 1) % len(choices)
		} else {
			idx = (idx + 1) % len(choices)
		}
		m.adminPerPage = choices[idx]
		m.adminPage = 1
		m.loading = true
		return m, m.fetchAdminCmd()

	case "/":
		m.searching = true
		return m, m.adminSearch.Focus()

	case "f":
		m.loading = true
		return m, m.fetchAdminCmd()
	}

	return m, nil
}

func (m Model) viewAdmin() string {
	header := m.navBar("Admin")

	var tabs []string
	for i, t := range adminTabNames {
		if i == m.adminTab {
			tabs = append(tabs, activeTab.Render(t))
		} else {
			tabs = append(tabs, inactiveTab.Render(t))
		}
	}
	header += "\n" + strings.Join(tabs, " ")

	search := "\nSearch: " + m.adminSearch.View()

	var content string
	if m.loading {
		content = "\n  " + m.spin.View() + " loading..."
	} else {
		switch m.adminTab {
		case adminTabLogs:
			content = m.viewLogRows()
		case adminTabWebsites:
			content = m.viewAdminSiteRows()
		case adminTabRoutes:
			content = m.viewAdminRouteRows()
		default:
			content = m.viewAdminUserRows()
		}
	}

	p := pager.Pager{Total: m.adminTotal, PerPage: m.adminPerPage}
	pageLine := fmt.Sprintf("\nTotal: %d   Page %d/%d   Per page: %d",
		m.adminTotal, p.Clamp(m.adminPage), p.TotalPages(), m.adminPerPage)

	hints := "[Tab] Switch list  [h/l] Page  [+/-] Per page  [/] Search  [f] Refresh  [Esc] Back"
	return pad(header + search + "\n" + content + "\n" + subtleStyle.Render(pageLine) + m.footer(hints))
}

func (m Model) viewLogRows() string {
	out := fmt.Sprintf("\n%-20s %-50s %s\n", "WHEN", "MESSAGE", "ORIGIN")
	out += subtleStyle.Render(strings.Repeat("-", 90)) + "\n"
	for _, l := range m.logs {
		out += fmt.Sprintf("%-20s %-50s %s\n", l.CreatedAt, limitStr(l.Message, 48), l.Origin)
	}
	if len(m.logs) == 0 {
		out += "\n  nothing to show"
	}
	return out
}

func (m Model) viewAdminSiteRows() string {
	out := fmt.Sprintf("\n%-22s %-32s %-26s %-7s %s\n", "NAME", "URL", "USER", "ROUTES", "CREATED")
	out += subtleStyle.Render(strings.Repeat("-", 100)) + "\n"
	for _, w := range m.adminSites {
		out += fmt.Sprintf("%-22s %-32s %-26s %-7d %s\n",
			limitStr(w.Name, 20), limitStr(w.URL, 30), limitStr(w.UserEmail, 24), w.RouteCount, w.CreatedAt)
	}
	if len(m.adminSites) == 0 {
		out += "\n  nothing to show"
	}
	return out
}

func (m Model) viewAdminRouteRows() string {
	out := fmt.Sprintf("\n%-22s %-8s %-32s %-26s %s\n", "WEBSITE", "METHOD", "ROUTE", "USER", "CREATED")
	out += subtleStyle.Render(strings.Repeat("-", 100)) + "\n"
	for _, r := range m.adminRoutes {
		out += fmt.Sprintf("%-22s %-8s %-32s %-26s %s\n",
			limitStr(r.WebsiteName, 20), r.Method, limitStr(r.Route, 30), limitStr(r.UserEmail, 24), r.CreatedAt)
	}
	if len(m.adminRoutes) == 0 {
		out += "\n  nothing to show"
	}
	return out
}

func (m Model) viewAdminUserRows() string {
	out := fmt.Sprintf("\n%-38s %-28s %-22s %-8s %s\n", "UUID", "EMAIL", "NAME", "ROLE", "CREATED")
	out += subtleStyle.Render(strings.Repeat("-", 110)) + "\n"
	for _, u := range m.adminUsers {
		out += fmt.Sprintf("%-38s %-28s %-22s %-8s %s\n",
			u.UUID, limitStr(u.Email, 26), limitStr(u.Name, 20), u.Type, u.CreatedAt)
	}
	if len(m.adminUsers) == 0 {
		out += "\n  nothing to show"
	}
	return out
}
