package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the persistence port. Load returns ok=false for an unknown
// key; Save overwrites the full session record.
type Store interface {
	Load(key string) (*Session, bool, error)
	Save(key string, s *Session) error
}

// SQLiteStore keeps one row per session key in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the sessions database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		key        TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		run_id     TEXT NOT NULL,
		state      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (st *SQLiteStore) Close() error {
	return st.db.Close()
}

func (st *SQLiteStore) Load(key string) (*Session, bool, error) {
	var state string
	err := st.db.QueryRow(`SELECT state FROM sessions WHERE key = ?`, key).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var s Session
	if err := json.Unmarshal([]byte(state), &s); err != nil {
		return nil, false, fmt.Errorf("decoding session %s: %w", key, err)
	}
	if s.Cases == nil {
		s.Cases = make(map[string]*CaseState)
	}
	return &s, true, nil
}

func (st *SQLiteStore) Save(key string, s *Session) error {
	state, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", key, err)
	}

	_, err = st.db.Exec(`INSERT INTO sessions (key, title, run_id, state, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		key, s.Title, s.RunID, string(state), time.Now().Unix())
	return err
}

// LatestRun returns the most recently saved run id for a checklist
// title, for the resume flow. ok is false when the title has no runs.
func (st *SQLiteStore) LatestRun(title string) (string, bool, error) {
	var runID string
	err := st.db.QueryRow(
		`SELECT run_id FROM sessions WHERE title = ? ORDER BY updated_at DESC LIMIT 1`,
		title).Scan(&runID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return runID, true, nil
}

// MemoryStore is the in-process Store used by tests and as the
// degraded fallback when the database cannot be opened.
type MemoryStore struct {
	records  map[string][]byte
	FailSave error // when set, Save returns this error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Load(key string) (*Session, bool, error) {
	raw, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	if s.Cases == nil {
		s.Cases = make(map[string]*CaseState)
	}
	return &s, true, nil
}

func (m *MemoryStore) Save(key string, s *Session) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.records[key] = raw
	return nil
}
