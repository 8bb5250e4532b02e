package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"appwatch/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	DBPath string
	db     *sql.DB
}

func (s *SQLiteStore) Init() error {
	var err error
	s.db, err = sql.Open("sqlite3", s.DBPath)
	if err != nil { return err }

	createTables := `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		user_json TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS snapshots (
		user_uuid TEXT PRIMARY KEY,
		sites_json TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);`
	_, err = s.db.Exec(createTables)
	return err
}

func (s *SQLiteStore) SaveSession(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil { return err }
	_, err = s.db.Exec(`INSERT INTO session (id, token, expires_at, user_json) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token=excluded.token, expires_at=excluded.expires_at, user_json=excluded.user_json`,
		sess.Token, sess.ExpiresAt.Unix(), string(userJSON))
	return err
}

func (s *SQLiteStore) LoadSession() (Session, bool) {
	var sess Session
	var expires int64
	var userJSON string
	err := s.db.QueryRow("SELECT token, expires_at, user_json FROM session WHERE id = 1").
		Scan(&sess.Token, &expires, &userJSON)
	if err != nil { return Session{}, false }
	sess.ExpiresAt = time.Unix(expires, 0)
	if json.Unmarshal([]byte(userJSON), &sess.User) != nil { return Session{}, false }
	return sess, true
}

func (s *SQLiteStore) ClearSession() error {
	_, err := s.db.Exec("DELETE FROM session WHERE id = 1")
	return err
}

func (s *SQLiteStore) SaveSnapshot(userUUID string, sites []models.Website) error {
	sitesJSON, err := json.Marshal(sites)
	if err != nil { return err }
	_, err = s.db.Exec(`INSERT INTO snapshots (user_uuid, sites_json, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(user_uuid) DO UPDATE SET sites_json=excluded.sites_json, saved_at=excluded.saved_at`,
		userUUID, string(sitesJSON), time.Now().Unix())
	return err
}

func (s *SQLiteStore) LoadSnapshot(userUUID string) ([]models.Website, bool) {
	var sitesJSON string
	err := s.db.QueryRow("SELECT sites_json FROM snapshots WHERE user_uuid = ?", userUUID).Scan(&sitesJSON)
	if err != nil { return nil, false }
	var sites []models.Website
	if json.Unmarshal([]byte(sitesJSON), &sites) != nil { return nil, false }
	return sites, true
}

func (s *SQLiteStore) Close() error {
	if s.db == nil { return nil }
	return s.db.Close()
}
