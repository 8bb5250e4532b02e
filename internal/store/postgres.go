package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"appwatch/internal/models"

	_ "github.com/lib/pq"
)

type PostgresStore struct {
	ConnStr string
	db      *sql.DB
}

func (p *PostgresStore) Init() error {
	var err error
	p.db, err = sql.Open("postgres", p.ConnStr)
	if err != nil { return err }

	queries := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			token TEXT NOT NULL,
			expires_at BIGINT NOT NULL,
			user_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			user_uuid TEXT PRIMARY KEY,
			sites_json TEXT NOT NULL,
			saved_at BIGINT NOT NULL
		);`,
	}
	for _, q := range queries {
		if _, err := p.db.Exec(q); err != nil { return err }
	}
	return nil
}

func (p *PostgresStore) SaveSession(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil { return err }
	_, err = p.db.Exec(`INSERT INTO session (id, token, expires_at, user_json) VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET token=EXCLUDED.token, expires_at=EXCLUDED.expires_at, user_json=EXCLUDED.user_json`,
		sess.Token, sess.ExpiresAt.Unix(), string(userJSON))
	return err
}

func (p *PostgresStore) LoadSession() (Session, bool) {
	var sess Session
	var expires int64
	var userJSON string
	err := p.db.QueryRow("SELECT token, expires_at, user_json FROM session WHERE id = 1").
		Scan(&sess.Token, &expires, &userJSON)
	if err != nil { return Session{}, false }
	sess.ExpiresAt = time.Unix(expires, 0)
	if json.Unmarshal([]byte(userJSON), &sess.User) != nil { return Session{}, false }
	return sess, true
}

func (p *PostgresStore) ClearSession() error {
	_, err := p.db.Exec("DELETE FROM session WHERE id = 1")
	return err
}

func (p *PostgresStore) SaveSnapshot(userUUID string, sites []models.Website) error {
	sitesJSON, err := json.Marshal(sites)
	if err != nil { return err }
	_, err = p.db.Exec(`INSERT INTO snapshots (user_uuid, sites_json, saved_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_uuid) DO UPDATE SET sites_json=EXCLUDED.sites_json, saved_at=EXCLUDED.saved_at`,
		userUUID, string(sitesJSON), time.Now().Unix())
	return err
}

func (p *PostgresStore) LoadSnapshot(userUUID string) ([]models.Website, bool) {
	var sitesJSON string
	err := p.db.QueryRow("SELECT sites_json FROM snapshots WHERE user_uuid = $1", userUUID).Scan(&sitesJSON)
	if err != nil { return nil, false }
	var sites []models.Website
	if json.Unmarshal([]byte(sitesJSON), &sites) != nil { return nil, false }
	return sites, true
}

func (p *PostgresStore) Close() error {
	if p.db == nil { return nil }
	return p.db.Close()
}
