package tui

import (
	"fmt"
	"strings"

	"appwatch/internal/api"
	"appwatch/internal/models"
	"appwatch/internal/reconcile"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) applyUpdate(upd models.StatusUpdate) {
	m.sites = reconcile.Apply(m.sites, upd)
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.teardown()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.tableOffset {
				m.tableOffset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.sites)-1 {
			m.cursor++
			if m.cursor >= m.tableOffset+m.maxTableRows {
				m.tableOffset++
			}
		}

	case "n":
		m.editUUID = ""
		m.errorMsg = ""
		m.state = stateFormSite
		m.initFormSite(nil)
		m.formViewport.GotoTop()
		m.updateSiteFormContent()
		return m, nil

	case "e", "enter":
		if len(m.sites) > 0 {
			site := m.sites[m.cursor]
			m.editUUID = site.UUID
			m.errorMsg = ""
			m.state = stateFormSite
			m.initFormSite(&site)
			m.formViewport.GotoTop()
			m.updateSiteFormContent()
			return m, nil
		}

	case "d", "backspace":
		if len(m.sites) > 0 {
			site := m.sites[m.cursor]
			m.confirmKind = confirmDeleteSite
			m.confirmUUID = site.UUID
			m.confirmLabel = site.Name
			m.prevState = stateDashboard
			m.state = stateConfirm
			return m, nil
		}

	case "r":
		// On-demand re-check: fire the request, then re-fetch rather than
		// waiting for the push.
		if len(m.sites) > 0 {
			m.statusMsg = ""
			return m, m.recheckCmd(m.sites[m.cursor].UUID)
		}

	case "f":
		m.loading = true
		return m, m.fetchSitesCmd()

	case "p":
		m.state = stateProfile
		m.loading = true
		m.initFormProfile()
		return m, m.fetchDetailsCmd()

	case "o":
		m.state = stateSettings
		return m, nil

	case "a":
		if m.user.IsAdmin() {
			m.state = stateAdmin
			m.adminTab = adminTabLogs
			m.adminPage = 1
			m.adminSearch.SetValue("")
			m.loading = true
			return m, m.fetchAdminCmd()
		}

	case "x":
		// Signs out every open tab, not just this one.
		m.app.Session.SignOut()
		return m, nil
	}

	return m, nil
}

func (m Model) viewDashboard() string {
	header := m.navBar("Dashboard")

	content := "\n" + lipgloss.JoinHorizontal(lipgloss.Left,
		colName.Render("NAME"), colURL.Render("URL"), colStatus.Render("STATUS"), colRoutes.Render("ROUTES"), "LAST CHECK") + "\n"
	content += subtleStyle.Render(strings.Repeat("-", 90)) + "\n"

	end := m.tableOffset + m.maxTableRows
	if end > len(m.sites) {
		end = len(m.sites)
	}

	if len(m.sites) == 0 {
		if m.loading {
			content += "\n  " + m.spin.View() + " loading sites..."
		} else {
			content += "\n  No sites registered yet. Press [n] to add one."
		}
	}

	for i := m.tableOffset; i < end; i++ {
		site := m.sites[i]

		ok := 0
		for _, rt := range site.Routes {
			if strings.EqualFold(rt.Status.Status, "success") || strings.EqualFold(rt.Status.Status, "online") {
				ok++
			}
		}

		row := lipgloss.JoinHorizontal(lipgloss.Left,
			colName.Render(limitStr(site.Name, 20)),
			colURL.Render(limitStr(site.URL, 32)),
			colStatus.Render(statusStyle(site.SiteStatus.Status).Render(displayTag(site.SiteStatus.Status))),
			colRoutes.Render(fmt.Sprintf("%d/%d", ok, len(site.Routes))),
			site.SiteStatus.LastChecked,
		)
		if m.cursor == i {
			row = lipgloss.NewStyle().Bold(true).Render(">" + row)
		} else {
			row = " " + row
		}
		content += row + "\n"
	}

	// Selected site expanded: per-route status with the last response line.
	if len(m.sites) > 0 && m.cursor < len(m.sites) {
		site := m.sites[m.cursor]
		content += "\n" + titleStyle.Render("Routes of "+site.Name) + "\n"
		if len(site.Routes) == 0 {
			content += subtleStyle.Render("  no routes registered") + "\n"
		}
		for _, rt := range site.Routes {
			line := fmt.Sprintf("  %-7s %-30s %s", rt.Method, limitStr(rt.Route, 30),
				statusStyle(rt.Status.Status).Render(displayTag(rt.Status.Status)))
			if rt.Status.Response != "" {
				line += subtleStyle.Render("  " + limitStr(rt.Status.Response, 40))
			}
			content += line + "\n"
		}
	}

	if m.fromCache {
		content += "\n" + subtleStyle.Render("showing cached data, refreshing...")
	}

	hints := "[n] New  [e/Enter] Edit  [d] Delete  [r] Re-check  [f] Refresh  [p] Profile  [o] Settings"
	if m.user.IsAdmin() {
		hints += "  [a] Admin"
	}
	hints += "  [x] Sign out  [q] Quit"
	return pad(header + "\n" + content + m.footer(hints))
}

func displayTag(tag string) string {
	if tag == "" {
		return "-"
	}
	return tag
}

func (m Model) navBar(active string) string {
	tabs := []string{"Dashboard", "Profile", "Settings"}
	if m.user.IsAdmin() {
		tabs = append(tabs, "Admin")
	}
	var rendered []string
	for _, t := range tabs {
		if t == active {
			rendered = append(rendered, activeTab.Render(t))
		} else {
			rendered = append(rendered, inactiveTab.Render(t))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.user.Email != "" {
		bar += subtleStyle.Render("   " + m.user.Email)
	}
	return bar
}

// --- site form (create / edit, with inline route rows) ---

const siteFixedFields = 3 // name, url, token

func (m *Model) initFormSite(site *models.Website) {
	m.routeCount = 0
	m.routeUUIDs = nil
	m.inputs = []textinput.Model{ti("My Site", 40), ti("https://example.com", 50), ti("optional auth token", 50)}
	m.inputs[0].Focus()
	m.focus = 0

	if site != nil {
		m.inputs[0].SetValue(site.Name)
		m.inputs[1].SetValue(site.URL)
		m.inputs[2].SetValue(site.Token)
		for _, rt := range site.Routes {
			m.appendRouteRow(rt.Method, rt.Route, rt.Body, rt.UUID)
		}
	} else {
		m.appendRouteRow("GET", "", "", "")
	}
	m.fieldErrs = make([]string, len(m.inputs))
}

func (m *Model) appendRouteRow(method, path, body, uuid string) {
	mi := ti("GET", 10)
	mi.SetValue(method)
	pi := ti("/health", 40)
	pi.SetValue(path)
	bi := ti("request body (POST/PUT)", 50)
	bi.SetValue(body)
	m.inputs = append(m.inputs, mi, pi, bi)
	m.routeUUIDs = append(m.routeUUIDs, uuid)
	m.routeCount++
	m.fieldErrs = make([]string, len(m.inputs))
}

// focusedRouteRow maps the focus index to a route row, -1 for fixed fields.
func (m *Model) focusedRouteRow() int {
	if m.focus < siteFixedFields {
		return -1
	}
	return (m.focus - siteFixedFields) / 3
}

func (m *Model) removeRouteRow(row int) {
	start := siteFixedFields + row*3
	m.inputs = append(m.inputs[:start], m.inputs[start+3:]...)
	m.routeUUIDs = append(m.routeUUIDs[:row], m.routeUUIDs[row+1:]...)
	m.routeCount--
	m.fieldErrs = make([]string, len(m.inputs))
	if m.focus >= len(m.inputs) {
		m.focus = len(m.inputs) - 1
	}
}

func (m Model) updateFormSite(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateDashboard
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.formViewport, cmd = m.formViewport.Update(msg)
		return m, cmd

	case "ctrl+a":
		m.appendRouteRow("GET", "", "", "")
		m.updateSiteFormContent()
		return m, nil

	case "ctrl+x":
		row := m.focusedRouteRow()
		if row < 0 || m.routeCount == 0 {
			return m, nil
		}
		if uuid := m.routeUUIDs[row]; uuid != "" && m.editUUID != "" {
			// Persisted route: deletion goes through the backend, gated by a
			// confirm like every destructive action.
			m.confirmKind = confirmDeleteRoute
			m.confirmUUID = uuid
			m.confirmLabel = m.inputs[siteFixedFields+row*3+1].Value()
			m.prevState = stateFormSite
			m.state = stateConfirm
			return m, nil
		}
		m.removeRouteRow(row)
		m.updateSiteFormContent()
		return m, nil

	case "tab", "shift+tab", "up", "down", "enter":
		s := msg.String()
		if s == "enter" && m.focus == len(m.inputs)-1 {
			if m.validateSiteForm() {
				m.loading = true
				return m, m.saveSiteCmd(m.editUUID, m.siteInput())
			}
			m.updateSiteFormContent()
			return m, nil
		}
		var cmd tea.Cmd
		if s == "up" || s == "shift+tab" {
			cmd = m.moveFocus(-1)
		} else {
			cmd = m.moveFocus(1)
		}
		m.formViewport.SetYOffset(m.focus * 3)
		m.updateSiteFormContent()
		return m, cmd
	}

	mm, cmd := m.updateInputs(msg)
	model := mm.(Model)
	model.updateSiteFormContent()
	return model, cmd
}

func (m *Model) validateSiteForm() bool {
	m.fieldErrs = make([]string, len(m.inputs))
	ok := true
	if strings.TrimSpace(m.inputs[0].Value()) == "" {
		m.fieldErrs[0] = "site name is required"
		ok = false
	}
	if err := validateURL(m.inputs[1].Value()); err != "" {
		m.fieldErrs[1] = err
		ok = false
	}
	for row := 0; row < m.routeCount; row++ {
		base := siteFixedFields + row*3
		if err := validateMethod(m.inputs[base].Value()); err != "" {
			m.fieldErrs[base] = err
			ok = false
		}
		if strings.TrimSpace(m.inputs[base+1].Value()) == "" {
			m.fieldErrs[base+1] = "route path is required"
			ok = false
		}
	}
	return ok
}

func (m *Model) siteInput() api.WebsiteInput {
	in := api.WebsiteInput{
		Name:   strings.TrimSpace(m.inputs[0].Value()),
		URL:    strings.TrimSpace(m.inputs[1].Value()),
		Token:  strings.TrimSpace(m.inputs[2].Value()),
		UserID: m.user.UUID,
	}
	for row := 0; row < m.routeCount; row++ {
		base := siteFixedFields + row*3
		in.Routes = append(in.Routes, api.RouteInput{
			UUID:   m.routeUUIDs[row],
			Method: strings.ToUpper(strings.TrimSpace(m.inputs[base].Value())),
			Route:  strings.TrimSpace(m.inputs[base+1].Value()),
			Body:   m.inputs[base+2].Value(),
		})
	}
	return in
}

func (m *Model) updateSiteFormContent() {
	var content string
	if m.errorMsg != "" {
		content += dangerStyle.Render("Error: "+m.errorMsg) + "\n\n"
	}

	title := "Register Site"
	if m.editUUID != "" {
		title = "Edit Site"
	}
	content += titleStyle.Render(title) + "\n\n"
	content += m.labeled("Site name", 0)
	content += m.labeled("Site URL", 1)
	content += m.labeled("Authorization token (optional)", 2)

	for row := 0; row < m.routeCount; row++ {
		base := siteFixedFields + row*3
		content += titleStyle.Render(fmt.Sprintf("Route %d", row+1)) + "\n"
		content += m.labeled("Method (GET/POST/PUT/DELETE)", base)
		content += m.labeled("Path", base+1)
		method := strings.ToUpper(strings.TrimSpace(m.inputs[base].Value()))
		if method == "POST" || method == "PUT" {
			content += m.labeled("Body (JSON)", base+2)
		}
	}

	m.formViewport.SetContent(lipgloss.NewStyle().Padding(1, 2).Render(content))
}

func (m Model) viewFormSite() string {
	return m.formViewport.View() + m.footer("[Enter] Save  [Ctrl+A] Add route  [Ctrl+X] Remove route  [PgUp/PgDn] Scroll  [Esc] Cancel")
}

// --- destructive-action confirm ---

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		kind, uuid := m.confirmKind, m.confirmUUID
		m.confirmKind = confirmNone
		m.state = m.prevState
		switch kind {
		case confirmDeleteSite:
			if m.cursor >= len(m.sites)-1 && m.cursor > 0 {
				m.cursor--
			}
			if m.cursor < m.tableOffset {
				m.tableOffset = m.cursor
			}
			m.loading = true
			return m, m.deleteSiteCmd(uuid)
		case confirmDeleteRoute:
			for row, ru := range m.routeUUIDs {
				if ru == uuid {
					m.removeRouteRow(row)
					break
				}
			}
			m.updateSiteFormContent()
			return m, m.deleteRouteCmd(uuid)
		}
		return m, nil

	case "n", "esc":
		m.confirmKind = confirmNone
		m.state = m.prevState
		return m, nil
	}
	return m, nil
}

func (m Model) viewConfirm() string {
	what := "site"
	if m.confirmKind == confirmDeleteRoute {
		what = "route"
	}
	content := titleStyle.Render("Confirm deletion") + "\n\n" +
		fmt.Sprintf("Delete %s %q? This cannot be undone.", what, m.confirmLabel)
	return pad(content) + m.footer("[y/Enter] Delete  [n/Esc] Cancel")
}
