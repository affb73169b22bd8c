package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tarea/internal/task"
)

// Slot keys. Tasks and theme are stored independently so a corrupt value in
// one never takes the other down with it.
const (
	tasksSlot = "tasks"
	themeSlot = "darkMode"
)

// Store is the durable key-value boundary: a single sqlite table of named
// JSON slots. Writes replace the whole slot; reads that fail to parse are
// treated as absent and reported as a recoverable error.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// SaveTasks writes the full collection into the tasks slot.
func (s *Store) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.putSlot(tasksSlot, string(data))
}

// SaveTheme writes the dark-mode flag into the theme slot.
func (s *Store) SaveTheme(dark bool) error {
	data, err := json.Marshal(dark)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	return s.putSlot(themeSlot, string(data))
}

// LoadTasks reads the tasks slot. An absent slot is an empty collection with
// no error; a present but unparseable slot is also an empty collection, with
// the parse failure returned so the caller can warn.
func (s *Store) LoadTasks() ([]task.Task, error) {
	raw, ok, err := s.getSlot(tasksSlot)
	if err != nil {
		return nil, fmt.Errorf("read tasks slot: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks slot: %w", err)
	}
	return tasks, nil
}

// LoadTheme reads the theme slot; absent or corrupt means theme off.
func (s *Store) LoadTheme() (bool, error) {
	raw, ok, err := s.getSlot(themeSlot)
	if err != nil {
		return false, fmt.Errorf("read theme slot: %w", err)
	}
	if !ok {
		return false, nil
	}
	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		return false, fmt.Errorf("decode theme slot: %w", err)
	}
	return dark, nil
}

func (s *Store) putSlot(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value)
	if err != nil {
		return fmt.Errorf("write %s slot: %w", key, err)
	}
	return nil
}

func (s *Store) getSlot(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
