package store

import (
	"time"

	"appwatch/internal/models"
)

// Session is the locally persisted credential: the bearer token (the cookie
// analog, ~30 day lifetime) plus a snapshot of the signed-in user so the
// dashboard can paint before token verification completes.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.UserData
}

type Store interface {
	Init() error

	// Session
	SaveSession(s Session) error
	LoadSession() (Session, bool)
	ClearSession() error

	// Cached site list, keyed by user, refreshed after every successful fetch.
	SaveSnapshot(userUUID string, sites []models.Website) error
	LoadSnapshot(userUUID string) ([]models.Website, bool)

	Close() error
}

// Open picks a backend by driver name. sqlite is the default single-machine
// setup, postgres serves shared team deployments behind the SSH server.
func Open(driver, dsn string) Store {
	if driver == "postgres" {
		return &PostgresStore{ConnStr: dsn}
	}
	return &SQLiteStore{DBPath: dsn}
}
