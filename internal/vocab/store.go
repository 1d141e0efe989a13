// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab persists the card log: every lemma ever exported to a
// flashcard file, so later runs can skip words the learner already has.
package vocab

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Card is one logged flashcard lemma.
type Card struct {
	Lemma      string
	Surface    string
	SourceLine int
	Sentence   string
	CreatedAt  time.Time
}

// Store manages the card log SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the card log at path, creating the schema when
// missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating card log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening card log: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating card log schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			lemma TEXT PRIMARY KEY,
			surface TEXT,
			source_line INTEGER,
			sentence TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_created_at ON cards(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// KnownSet returns every logged lemma.
func (s *Store) KnownSet(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lemma FROM cards`)
	if err != nil {
		return nil, fmt.Errorf("querying card log: %w", err)
	}
	defer rows.Close()

	known := make(map[string]bool)
	for rows.Next() {
		var lemma string
		if err := rows.Scan(&lemma); err != nil {
			return nil, fmt.Errorf("scanning card log row: %w", err)
		}
		known[lemma] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading card log rows: %w", err)
	}
	return known, nil
}

// RecordBatch logs cards in one transaction. Already-logged lemmas keep
// their original entry.
func (s *Store) RecordBatch(ctx context.Context, cards []Card) error {
	if len(cards) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning card log transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO cards
		(lemma, surface, source_line, sentence, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing card insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		created := c.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, c.Lemma, c.Surface, c.SourceLine, c.Sentence,
			created.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("inserting card %q: %w", c.Lemma, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing card log transaction: %w", err)
	}
	return nil
}

// Count returns the number of logged cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}

// Get returns the logged card for lemma.
func (s *Store) Get(ctx context.Context, lemma string) (Card, bool, error) {
	var c Card
	var created string
	err := s.db.QueryRowContext(ctx, `SELECT lemma, surface, source_line, sentence, created_at
		FROM cards WHERE lemma = ?`, lemma).
		Scan(&c.Lemma, &c.Surface, &c.SourceLine, &c.Sentence, &created)
	if err == sql.ErrNoRows {
		return Card{}, false, nil
	}
	if err != nil {
		return Card{}, false, fmt.Errorf("querying card %q: %w", lemma, err)
	}
	if t, perr := time.Parse(time.RFC3339, created); perr == nil {
		c.CreatedAt = t
	}
	return c, true, nil
}
