package session

import (
	"context"
	"sync"
	"time"

	"appwatch/internal/api"
	"appwatch/internal/models"
	"appwatch/internal/store"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL matches the backend cookie lifetime the web client used.
const TokenTTL = 30 * 24 * time.Hour

// Manager owns the authenticated user and the persisted credential. It has an
// explicit lifecycle: NewManager at app start, Close at teardown. All session
// mutations go through it; views only read.
type Manager struct {
	store store.Store
	log   *log.Logger
	bus   *Broadcaster

	api *api.Client

	mu    sync.RWMutex
	token string
	user  *models.UserData
}

func NewManager(st store.Store, logger *log.Logger) *Manager {
	return &Manager{store: st, log: logger, bus: newBroadcaster()}
}

// AttachAPI breaks the construction cycle: the API client needs the manager as
// its token source, the manager needs the client for auth calls.
func (m *Manager) AttachAPI(c *api.Client) { m.api = c }

func (m *Manager) Broadcaster() *Broadcaster { return m.bus }

// Token implements api.TokenSource. Read fresh on every request.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) Current() (models.UserData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.UserData{}, false
	}
	return *m.user, true
}

func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// Restore loads the cached credential so the UI can paint the signed-in state
// immediately. Callers follow up with VerifyToken; an expired token is cleared
// here without a network round trip.
func (m *Manager) Restore() bool {
	sess, ok := m.store.LoadSession()
	if !ok || sess.Token == "" {
		return false
	}

	deadline := sess.ExpiresAt
	if exp, ok := tokenExpiry(sess.Token); ok {
		deadline = exp
	}
	if time.Now().After(deadline) {
		m.log.Info("cached token expired, clearing session")
		m.store.ClearSession()
		return false
	}

	m.mu.Lock()
	m.token = sess.Token
	u := sess.User
	m.user = &u
	m.mu.Unlock()
	return true
}

// VerifyToken re-validates the cached token against the backend. Run once at
// startup when Restore succeeded. Any failure forces a sign-out.
func (m *Manager) VerifyToken(ctx context.Context) (models.UserData, error) {
	user, err := m.api.VerifyToken(ctx)
	if err != nil {
		m.log.Warn("token verification failed", "err", err)
		m.SignOut()
		return models.UserData{}, err
	}

	m.mu.Lock()
	m.user = &user
	tok := m.token
	m.mu.Unlock()

	m.store.SaveSession(store.Session{Token: tok, ExpiresAt: sessionDeadline(tok), User: user})
	return user, nil
}

func (m *Manager) SignInByEmail(ctx context.Context, email, password string) (models.UserData, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.log.Warn("login failed", "email", email, "err", err)
		return models.UserData{}, err
	}
	m.adopt(resp)
	return resp.UserData, nil
}

func (m *Manager) SignInByGoogle(ctx context.Context, accessToken string) (models.UserData, error) {
	resp, err := m.api.GoogleLogin(ctx, accessToken)
	if err != nil {
		m.log.Warn("google login failed", "err", err)
		return models.UserData{}, err
	}
	m.adopt(resp)
	return resp.UserData, nil
}

// Register creates the account and signs it in immediately on success.
func (m *Manager) Register(ctx context.Context, in api.RegisterInput) (models.UserData, error) {
	resp, err := m.api.Register(ctx, in)
	if err != nil {
		m.log.Warn("registration failed", "email", in.Email, "err", err)
		return models.UserData{}, err
	}
	m.adopt(resp)
	return resp.UserData, nil
}

// SignOut clears the persisted credential and in-memory state, then notifies
// every attached session so they drop to the login screen too.
func (m *Manager) SignOut() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.ClearSession(); err != nil {
		m.log.Error("failed to clear persisted session", "err", err)
	}
	m.bus.Publish(EventSignOut)
}

func (m *Manager) Close() {
	m.bus.Close()
}

func (m *Manager) adopt(resp models.AuthResponse) {
	m.mu.Lock()
	m.token = resp.AccessToken
	u := resp.UserData
	m.user = &u
	m.mu.Unlock()

	err := m.store.SaveSession(store.Session{
		Token:     resp.AccessToken,
		ExpiresAt: sessionDeadline(resp.AccessToken),
		User:      resp.UserData,
	})
	if err != nil {
		m.log.Error("failed to persist session", "err", err)
	}
}

// sessionDeadline prefers the token's own exp claim; the 30-day default only
// covers opaque tokens.
func sessionDeadline(token string) time.Time {
	if exp, ok := tokenExpiry(token); ok {
		return exp
	}
	return time.Now().Add(TokenTTL)
}

// tokenExpiry reads the exp claim without verifying the signature. Validity is
// the backend's call; the client only wants to know when the cache goes stale.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
