package tui

import (
	"appwatch/internal/api"
	"appwatch/internal/models"
	"appwatch/internal/realtime"
	"appwatch/internal/session"
	"appwatch/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// App bundles the process-wide dependencies every dashboard session shares.
// The session manager is the browser profile; each Model is one open tab.
type App struct {
	API       *api.Client
	Session   *session.Manager
	Store     store.Store
	SocketURL string
	Log       *log.Logger
}

// NewListener builds a fresh realtime listener; every tab opens its own
// connection scoped by the signed-in user.
func (a *App) NewListener() *realtime.Listener {
	return realtime.NewListener(a.SocketURL, a.Log)
}

type sessionState int

const (
	stateLogin sessionState = iota
	stateRegister
	stateRecover
	stateDashboard
	stateFormSite
	stateConfirm
	stateProfile
	stateSettings
	stateAdmin
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteSite
	confirmDeleteRoute
)

type Model struct {
	app *App

	state        sessionState
	width        int
	maxTableRows int

	// shared form machinery
	inputs    []textinput.Model
	focus     int
	fieldErrs []string
	errorMsg  string

	formViewport viewport.Model

	statusMsg string
	loading   bool
	spin      spinner.Model

	// auth screens
	showPassword   bool
	resetEmailMode bool
	googleMode     bool

	// dashboard
	user        models.UserData
	sites       []models.Website
	cursor      int
	tableOffset int
	fromCache   bool
	listener    *realtime.Listener
	events      chan session.Event

	// site form
	editUUID   string
	routeCount int
	routeUUIDs []string

	// destructive-action gate
	confirmKind  confirmKind
	confirmUUID  string
	confirmLabel string
	prevState    sessionState

	// admin listings
	adminTab     int
	adminPage    int
	adminPerPage int
	adminTotal   int
	adminSearch  textinput.Model
	searching    bool
	logs         []models.ErrorLog
	adminSites   []models.AdminWebsite
	adminRoutes  []models.AdminRoute
	adminUsers   []models.AdminUser

	// profile
	details models.UserDetails
}

func InitialModel(app *App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := ti("search...", 30)

	vp := viewport.New(100, 20)

	m := Model{
		app:          app,
		state:        stateLogin,
		spin:         sp,
		adminSearch:  search,
		adminPage:    1,
		adminPerPage: 5,
		formViewport: vp,
		maxTableRows: 10,
		events:       app.Session.Broadcaster().Attach(),
	}

	if user, ok := app.Session.Current(); ok {
		m.user = user
		m.state = stateDashboard
		if cached, ok := app.Store.LoadSnapshot(user.UUID); ok {
			m.sites = cached
			m.fromCache = true
		}
	} else {
		m.initFormLogin()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, waitForSignOut(m.events)}
	if m.state == stateDashboard {
		// Restore path: re-validate the cached token, then load fresh data.
		cmds = append(cmds, m.verifyCmd(), m.fetchSitesCmd(), m.connectCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.maxTableRows = msg.Height - 9
		if m.maxTableRows < 1 {
			m.maxTableRows = 1
		}
		m.formViewport.Width = msg.Width
		m.formViewport.Height = msg.Height - 3

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.teardown()
			return m, tea.Quit
		}
		return m.updateKeys(msg)

	// --- session lifecycle ---

	case authedMsg:
		m.loading = false
		m.user = models.UserData(msg)
		m.errorMsg = ""
		m.statusMsg = ""
		m.enterDashboard()
		return m, tea.Batch(m.fetchSitesCmd(), m.connectCmd())

	case verifiedMsg:
		m.user = models.UserData(msg)
		return m, nil

	case signedOutMsg:
		// Either this tab signed out or another one broadcast it.
		m.closeRealtime()
		m.resetToLogin()
		return m, waitForSignOut(m.events)

	// --- dashboard data ---

	case sitesMsg:
		m.loading = false
		m.sites = msg.sites
		m.fromCache = false
		if m.cursor >= len(m.sites) {
			m.cursor = 0
			m.tableOffset = 0
		}
		return m, nil

	case listenerMsg:
		m.listener = msg
		return m, waitForUpdate(msg)

	case statusUpdateMsg:
		m.applyUpdate(models.StatusUpdate(msg))
		return m, waitForUpdate(m.listener)

	case streamEndedMsg:
		m.listener = nil
		if msg.err != nil {
			m.statusMsg = "live updates disconnected"
		}
		return m, nil

	case recheckMsg:
		m.statusMsg = "re-check requested"
		return m, m.fetchSitesCmd()

	case siteSavedMsg:
		m.loading = false
		m.state = stateDashboard
		m.statusMsg = "site saved"
		return m, m.fetchSitesCmd()

	case siteDeletedMsg:
		m.loading = false
		m.statusMsg = "site deleted"
		return m, m.fetchSitesCmd()

	case routeDeletedMsg:
		m.statusMsg = "route deleted"
		return m, m.fetchSitesCmd()

	// --- auth flows ---

	case resetRequestedMsg:
		m.loading = false
		m.resetEmailMode = false
		m.statusMsg = "password reset e-mail sent"
		m.initFormLogin()
		return m, nil

	case resetDoneMsg:
		m.loading = false
		m.statusMsg = "password updated, sign in again"
		m.state = stateLogin
		m.initFormLogin()
		return m, nil

	// --- profile ---

	case detailsMsg:
		m.loading = false
		m.details = models.UserDetails(msg)
		if m.state == stateProfile {
			m.initFormProfile()
		}
		return m, nil

	case profileSavedMsg:
		m.loading = false
		m.statusMsg = "profile updated"
		return m, m.fetchDetailsCmd()

	case notifSavedMsg:
		m.details.Notifications = bool(msg)
		m.statusMsg = "preference saved"
		return m, nil

	// --- admin listings ---

	case adminLogsMsg:
		m.loading = false
		m.logs = msg.Logs
		m.adminTotal = msg.Total
		return m, nil
	case adminSitesMsg:
		m.loading = false
		m.adminSites = msg.Websites
		m.adminTotal = msg.Total
		return m, nil
	case adminRoutesMsg:
		m.loading = false
		m.adminRoutes = msg.Routes
		m.adminTotal = msg.Total
		return m, nil
	case adminUsersMsg:
		m.loading = false
		m.adminUsers = msg.Users
		m.adminTotal = msg.Total
		return m, nil

	case errMsg:
		m.loading = false
		m.errorMsg = userMessage(msg.err)
		return m, nil
	}

	if m.usesInputs() {
		var cmd tea.Cmd
		for i := range m.inputs {
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateLogin:
		return m.updateLogin(msg)
	case stateRegister:
		return m.updateRegister(msg)
	case stateRecover:
		return m.updateRecover(msg)
	case stateDashboard:
		return m.updateDashboard(msg)
	case stateFormSite:
		return m.updateFormSite(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateProfile:
		return m.updateProfile(msg)
	case stateSettings:
		return m.updateSettings(msg)
	case stateAdmin:
		return m.updateAdmin(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateLogin:
		return m.viewLogin()
	case stateRegister:
		return m.viewRegister()
	case stateRecover:
		return m.viewRecover()
	case stateFormSite:
		return m.viewFormSite()
	case stateConfirm:
		return m.viewConfirm()
	case stateProfile:
		return m.viewProfile()
	case stateSettings:
		return m.viewSettings()
	case stateAdmin:
		return m.viewAdmin()
	default:
		return m.viewDashboard()
	}
}

// --- shared helpers ---

func (m *Model) usesInputs() bool {
	switch m.state {
	case stateLogin, stateRegister, stateRecover, stateFormSite, stateProfile:
		return true
	}
	return false
}

func (m *Model) enterDashboard() {
	m.state = stateDashboard
	m.cursor = 0
	m.tableOffset = 0
	if cached, ok := m.app.Store.LoadSnapshot(m.user.UUID); ok {
		m.sites = cached
		m.fromCache = true
	}
	m.loading = true
}

func (m *Model) resetToLogin() {
	m.user = models.UserData{}
	m.sites = nil
	m.cursor = 0
	m.tableOffset = 0
	m.state = stateLogin
	m.statusMsg = "signed out"
	m.initFormLogin()
}

func (m *Model) closeRealtime() {
	if m.listener != nil {
		m.listener.Close()
		m.listener = nil
	}
}

func (m *Model) teardown() {
	m.closeRealtime()
	m.app.Session.Broadcaster().Detach(m.events)
}

// ReleaseEvents drops this session's sign-out subscription. The SSH server
// calls it when a connection goes away without a clean quit, so dropped
// connections do not leave subscribers behind; releasing twice is harmless.
func (m Model) ReleaseEvents() {
	m.app.Session.Broadcaster().Detach(m.events)
}

// moveFocus cycles the focus index through m.inputs, teacher-style.
func (m *Model) moveFocus(delta int) tea.Cmd {
	m.focus += delta
	if m.focus >= len(m.inputs) {
		m.focus = 0
	}
	if m.focus < 0 {
		m.focus = len(m.inputs) - 1
	}
	var cmds []tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
		} else {
			m.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func ti(placeholder string, width int) textinput.Model {
	t := textinput.New()
	t.Placeholder = placeholder
	t.Width = width
	return t
}

func (m Model) footer(hints string) string {
	line := subtleStyle.Render("\n" + hints)
	if m.statusMsg != "" {
		line += "  " + specialStyle.Render(m.statusMsg)
	}
	if m.errorMsg != "" {
		line += "  " + dangerStyle.Render(m.errorMsg)
	}
	return line
}

func pad(content string) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}
