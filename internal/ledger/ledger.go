// Package ledger keeps issued challenges and their answers in SQLite so a
// response can be verified after the challenge image has been shown.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"vcpass/internal/params"
	"vcpass/internal/plaintext"
)

var (
	ErrNotFound = errors.New("ledger: no such challenge")
	ErrSolved   = errors.New("ledger: challenge already solved")
)

// Entry is one issued challenge.
type Entry struct {
	ID          int64
	Created     time.Time
	Secret      []int
	Fingerprint string // identifies the slide the challenge was made for
	Attempts    int
	Solved      bool
}

// Ledger records challenges for one parameter set.
type Ledger struct {
	db *sql.DB
	p  params.Params
}

// Open opens (or creates) the SQLite database at dbPath and ensures the
// challenges table exists.
func Open(dbPath string, p params.Params) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create dir: %w", err)
	}
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS challenges (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		ts          TEXT    NOT NULL,
		secret      TEXT    NOT NULL,
		fingerprint TEXT    NOT NULL,
		attempts    INTEGER NOT NULL DEFAULT 0,
		solved_at   TEXT
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: create table: %w", err)
	}
	return &Ledger{db: db, p: p}, nil
}

// Issue stores a new challenge and returns its id.
func (l *Ledger) Issue(secret []int, fingerprint string) (int64, error) {
	if _, err := plaintext.Encode(l.p, secret); err != nil {
		return 0, fmt.Errorf("ledger: %w", err)
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	res, err := l.db.Exec(
		`INSERT INTO challenges (ts, secret, fingerprint) VALUES (?, ?, ?)`,
		ts, joinSymbols(secret), fingerprint,
	)
	if err != nil {
		return 0, fmt.Errorf("ledger: insert: %w", err)
	}
	return res.LastInsertId()
}

// Get loads a challenge.
func (l *Ledger) Get(id int64) (Entry, error) {
	return get(l.db, id)
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func get(q querier, id int64) (Entry, error) {
	var (
		e      Entry
		ts     string
		secret string
		solved sql.NullString
	)
	err := q.QueryRow(
		`SELECT id, ts, secret, fingerprint, attempts, solved_at FROM challenges WHERE id = ?`, id,
	).Scan(&e.ID, &ts, &secret, &e.Fingerprint, &e.Attempts, &solved)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("ledger: select: %w", err)
	}
	if e.Created, err = time.Parse(time.RFC3339, ts); err != nil {
		return Entry{}, fmt.Errorf("ledger: bad timestamp %q: %w", ts, err)
	}
	if e.Secret, err = splitSymbols(secret); err != nil {
		return Entry{}, err
	}
	e.Solved = solved.Valid
	return e, nil
}

// Check counts an attempt at challenge id and reports whether response
// answers it. A solved challenge cannot be answered again.
func (l *Ledger) Check(id int64, response []int) (bool, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return false, fmt.Errorf("ledger: begin: %w", err)
	}
	defer tx.Rollback()

	e, err := get(tx, id)
	if err != nil {
		return false, err
	}
	if e.Solved {
		return false, ErrSolved
	}

	ok := plaintext.Check(l.p, e.Secret, response)
	if ok {
		_, err = tx.Exec(`UPDATE challenges SET attempts = attempts + 1, solved_at = ? WHERE id = ?`,
			time.Now().UTC().Format(time.RFC3339), id)
	} else {
		_, err = tx.Exec(`UPDATE challenges SET attempts = attempts + 1 WHERE id = ?`, id)
	}
	if err != nil {
		return false, fmt.Errorf("ledger: update: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("ledger: commit: %w", err)
	}
	return ok, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func joinSymbols(s []int) string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitSymbols(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("ledger: bad secret %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
