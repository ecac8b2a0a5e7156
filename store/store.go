// Package store persists the CLI's login session and survey drafts in a
// local SQLite file. The core logic never touches it.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/model"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := migrateDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession replaces the single persisted session.
func (s *Store) SaveSession(session client.Session, apiURL string) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, refresh_token, api_url, saved_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			refresh_token = excluded.refresh_token,
			api_url = excluded.api_url,
			saved_at = excluded.saved_at`,
		session.Token, session.RefreshToken, apiURL, time.Now())
	return err
}

// LoadSession returns the persisted session, or an anonymous one when
// nobody is logged in.
func (s *Store) LoadSession() (client.Session, error) {
	var session client.Session
	err := s.db.
		QueryRow("SELECT token, refresh_token FROM session WHERE id = 1").
		Scan(&session.Token, &session.RefreshToken)
	if errors.Is(err, sql.ErrNoRows) {
		return client.Session{}, nil
	}
	return session, err
}

func (s *Store) ClearSession() error {
	_, err := s.db.Exec("DELETE FROM session WHERE id = 1")
	return err
}

// SaveDraft stores a survey document under a local name, overwriting any
// previous draft with the same name.
func (s *Store) SaveDraft(name string, survey model.Survey) error {
	body, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO draft (name, title, body, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		name, survey.Title, string(body), time.Now())
	return err
}

func (s *Store) LoadDraft(name string) (model.Survey, error) {
	var body string
	err := s.db.
		QueryRow("SELECT body FROM draft WHERE name = ?", name).
		Scan(&body)
	if err != nil {
		return model.Survey{}, err
	}

	var survey model.Survey
	err = json.Unmarshal([]byte(body), &survey)
	return survey, err
}

type DraftInfo struct {
	Name      string
	Title     string
	UpdatedAt time.Time
}

func (s *Store) ListDrafts() ([]DraftInfo, error) {
	rows, err := s.db.Query("SELECT name, title, updated_at FROM draft ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := []DraftInfo{}
	for rows.Next() {
		var d DraftInfo
		if err := rows.Scan(&d.Name, &d.Title, &d.UpdatedAt); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func (s *Store) DeleteDraft(name string) error {
	_, err := s.db.Exec("DELETE FROM draft WHERE name = ?", name)
	return err
}
