package store

import (
	"path/filepath"
	"testing"
	"time"

	"appwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := &SQLiteStore{DBPath: filepath.Join(t.TempDir(), "appwatch.db")}
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.LoadSession()
	assert.False(t, ok, "fresh store has no session")

	expires := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	sess := Session{
		Token:     "tok-1",
		ExpiresAt: expires,
		User:      models.UserData{UUID: "u1", Email: "a@b.c", Type: "admin", UserDetails: models.UserDetails{UUID: "d1", Name: "Ana"}},
	}
	require.NoError(t, s.SaveSession(sess))

	got, ok := s.LoadSession()
	require.True(t, ok)
	assert.Equal(t, "tok-1", got.Token)
	assert.True(t, got.ExpiresAt.Equal(expires))
	assert.Equal(t, sess.User, got.User)
}

func TestSaveSessionOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSession(Session{Token: "old", ExpiresAt: time.Now(), User: models.UserData{UUID: "u1"}}))
	require.NoError(t, s.SaveSession(Session{Token: "new", ExpiresAt: time.Now(), User: models.UserData{UUID: "u2"}}))

	got, ok := s.LoadSession()
	require.True(t, ok)
	// Single credential slot: the latest sign-in wins.
	assert.Equal(t, "new", got.Token)
	assert.Equal(t, "u2", got.User.UUID)
}

func TestClearSession(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSession(Session{Token: "tok", ExpiresAt: time.Now(), User: models.UserData{UUID: "u1"}}))
	require.NoError(t, s.ClearSession())

	_, ok := s.LoadSession()
	assert.False(t, ok)

	// Clearing an already-empty store is fine.
	assert.NoError(t, s.ClearSession())
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.LoadSnapshot("u1")
	assert.False(t, ok)

	sites := []models.Website{{
		UUID:       "A",
		Name:       "Create Burger",
		URL:        "https://createburger.com.br/",
		SiteStatus: models.SiteStatus{Status: "online"},
		Routes: []models.Route{
			{UUID: "r1", Method: "GET", Route: "/health", Status: models.RouteStatus{Status: "success", Response: "200 OK"}},
		},
	}}
	require.NoError(t, s.SaveSnapshot("u1", sites))

	got, ok := s.LoadSnapshot("u1")
	require.True(t, ok)
	assert.Equal(t, sites, got)

	// Snapshots are keyed per user.
	_, ok = s.LoadSnapshot("u2")
	assert.False(t, ok)
}

func TestSnapshotOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveSnapshot("u1", []models.Website{{UUID: "A"}, {UUID: "B"}}))
	require.NoError(t, s.SaveSnapshot("u1", []models.Website{{UUID: "A", SiteStatus: models.SiteStatus{Status: "offline"}}}))

	got, ok := s.LoadSnapshot("u1")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "offline", got[0].SiteStatus.Status)
}

func TestOpenPicksDriver(t *testing.T) {
	if _, ok := Open("sqlite", "x.db").(*SQLiteStore); !ok {
		t.Error("sqlite driver should open a SQLiteStore")
	}
	if _, ok := Open("postgres", "postgres://x").(*PostgresStore); !ok {
		t.Error("postgres driver should open a PostgresStore")
	}
	if _, ok := Open("", "x.db").(*SQLiteStore); !ok {
		t.Error("unknown driver should fall back to sqlite")
	}
}
