package tui

import (
	"context"
	"errors"

	"appwatch/internal/api"
	"appwatch/internal/models"
	"appwatch/internal/realtime"
	"appwatch/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

type errMsg struct{ err error }

type authedMsg models.UserData
type verifiedMsg models.UserData
type signedOutMsg struct{}

type sitesMsg struct {
	sites []models.Website
}

type listenerMsg *realtime.Listener
type statusUpdateMsg models.StatusUpdate
type streamEndedMsg struct{ err error }

type recheckMsg struct{}
type siteSavedMsg struct{}
type siteDeletedMsg struct{}
type routeDeletedMsg struct{}

type resetRequestedMsg struct{}
type resetDoneMsg struct{}

type detailsMsg models.UserDetails
type profileSavedMsg struct{}
type notifSavedMsg bool

type adminLogsMsg models.ErrorLogList
type adminSitesMsg models.AdminWebsiteList
type adminRoutesMsg models.AdminRouteList
type adminUsersMsg models.AdminUserList

// userMessage turns an error into the footer notice: the backend's own
// message when it sent one, a generic line otherwise.
func userMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "not authorized"
	}
	return "request failed, try again"
}

func (m *Model) verifyCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		user, err := app.Session.VerifyToken(context.Background())
		if err != nil {
			// VerifyToken already forced the sign-out; the broadcast loop
			// delivers signedOutMsg to every tab including this one.
			return nil
		}
		return verifiedMsg(user)
	}
}

// fetchSitesCmd re-fetches the whole list. No sequence numbers are attached:
// a slow mutation response racing a fresh fetch can still win, matching the
// original client's accepted behavior.
func (m *Model) fetchSitesCmd() tea.Cmd {
	app := m.app
	user := m.user
	return func() tea.Msg {
		list, err := app.API.ListWebsites(context.Background(), user.UUID)
		if err != nil {
			return errMsg{err}
		}
		app.Store.SaveSnapshot(user.UUID, list.Websites)
		return sitesMsg{sites: list.Websites}
	}
}

func (m *Model) connectCmd() tea.Cmd {
	app := m.app
	user := m.user
	return func() tea.Msg {
		l := app.NewListener()
		if err := l.Connect(context.Background(), user.UUID); err != nil {
			return streamEndedMsg{err}
		}
		return listenerMsg(l)
	}
}

func waitForUpdate(l *realtime.Listener) tea.Cmd {
	if l == nil {
		return nil
	}
	return func() tea.Msg {
		upd, ok := <-l.Updates()
		if !ok {
			return streamEndedMsg{l.Err()}
		}
		return statusUpdateMsg(upd)
	}
}

func waitForSignOut(ch chan session.Event) tea.Cmd {
	return func() tea.Msg {
		for ev := range ch {
			if ev == session.EventSignOut {
				return signedOutMsg{}
			}
		}
		return nil
	}
}

func (m *Model) recheckCmd(siteUUID string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.API.Recheck(context.Background(), siteUUID); err != nil {
			return errMsg{err}
		}
		return recheckMsg{}
	}
}

func (m *Model) deleteSiteCmd(uuid string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.API.DeleteWebsite(context.Background(), uuid); err != nil {
			return errMsg{err}
		}
		return siteDeletedMsg{}
	}
}

func (m *Model) deleteRouteCmd(uuid string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.API.DeleteRoute(context.Background(), uuid); err != nil {
			return errMsg{err}
		}
		return routeDeletedMsg{}
	}
}

func (m *Model) saveSiteCmd(editUUID string, in api.WebsiteInput) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		var err error
		if editUUID != "" {
			err = app.API.UpdateWebsite(context.Background(), editUUID, in)
		} else {
			_, err = app.API.CreateWebsite(context.Background(), in)
		}
		if err != nil {
			return errMsg{err}
		}
		return siteSavedMsg{}
	}
}

func (m *Model) signInCmd(email, password string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		user, err := app.Session.SignInByEmail(context.Background(), email, password)
		if err != nil {
			return errMsg{err}
		}
		return authedMsg(user)
	}
}

func (m *Model) googleSignInCmd(token string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		user, err := app.Session.SignInByGoogle(context.Background(), token)
		if err != nil {
			return errMsg{err}
		}
		return authedMsg(user)
	}
}

func (m *Model) registerCmd(in api.RegisterInput) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		user, err := app.Session.Register(context.Background(), in)
		if err != nil {
			return errMsg{err}
		}
		return authedMsg(user)
	}
}

func (m *Model) requestResetCmd(email string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.API.RequestPasswordReset(context.Background(), email); err != nil {
			return errMsg{err}
		}
		return resetRequestedMsg{}
	}
}

func (m *Model) resetPasswordCmd(token, password string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.API.ResetPassword(context.Background(), token, password); err != nil {
			return errMsg{err}
		}
		return resetDoneMsg{}
	}
}

func (m *Model) fetchDetailsCmd() tea.Cmd {
	app := m.app
	uuid := m.user.UserDetails.UUID
	return func() tea.Msg {
		details, err := app.API.GetUserDetails(context.Background(), uuid)
		if err != nil {
			return errMsg{err}
		}
		return detailsMsg(details)
	}
}

func (m *Model) saveProfileCmd(name, imageURL string) tea.Cmd {
	app := m.app
	uuid := m.user.UserDetails.UUID
	return func() tea.Msg {
		if err := app.API.UpdateUserDetails(context.Background(), uuid, name, imageURL); err != nil {
			return errMsg{err}
		}
		return profileSavedMsg{}
	}
}

func (m *Model) saveNotificationCmd(enabled bool) tea.Cmd {
	app := m.app
	uuid := m.user.UserDetails.UUID
	return func() tea.Msg {
		if err := app.API.UpdateNotification(context.Background(), uuid, enabled); err != nil {
			return errMsg{err}
		}
		return notifSavedMsg(enabled)
	}
}

func (m *Model) fetchAdminCmd() tea.Cmd {
	app := m.app
	tab := m.adminTab
	q := api.ListQuery{Page: m.adminPage, ItemsPerPage: m.adminPerPage, Search: m.adminSearch.Value()}
	return func() tea.Msg {
		ctx := context.Background()
		switch tab {
		case adminTabLogs:
			list, err := app.API.ListErrorLogs(ctx, q)
			if err != nil {
				return errMsg{err}
			}
			return adminLogsMsg(list)
		case adminTabWebsites:
			list, err := app.API.ListAllWebsites(ctx, q)
			if err != nil {
				return errMsg{err}
			}
			return adminSitesMsg(list)
		case adminTabRoutes:
			list, err := app.API.ListAllRoutes(ctx, q)
			if err != nil {
				return errMsg{err}
			}
			return adminRoutesMsg(list)
		default:
			list, err := app.API.ListUsers(ctx, q)
			if err != nil {
				return errMsg{err}
			}
			return adminUsersMsg(list)
		}
	}
}
