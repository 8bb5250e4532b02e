package tui

import (
	"io"
	"testing"

	"appwatch/internal/models"
	"appwatch/internal/session"
	"appwatch/internal/store"

	"github.com/charmbracelet/log"
)

type stubStore struct{}

func (stubStore) Init() error                                  { return nil }
func (stubStore) SaveSession(store.Session) error              { return nil }
func (stubStore) LoadSession() (store.Session, bool)           { return store.Session{}, false }
func (stubStore) ClearSession() error                          { return nil }
func (stubStore) SaveSnapshot(string, []models.Website) error  { return nil }
func (stubStore) LoadSnapshot(string) ([]models.Website, bool) { return nil, false }
func (stubStore) Close() error                                 { return nil }

func TestReleaseEventsDetachesSubscription(t *testing.T) {
	mgr := session.NewManager(stubStore{}, log.NewWithOptions(io.Discard, log.Options{}))
	defer mgr.Close()
	app := &App{Session: mgr, Store: stubStore{}}

	m := InitialModel(app)
	m.ReleaseEvents()
	m.ReleaseEvents() // dropped connection racing a clean quit

	// A sign-out after the release must not reach this session.
	mgr.SignOut()
	select {
	case _, open := <-m.events:
		if open {
			t.Error("released session still receives events")
		}
	default:
		t.Error("released channel should be closed")
	}
}
