// Package store handles SQLite persistence of imported word lists.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for word lists.
type Store struct {
	db *sql.DB
}

// ListInfo describes an imported word list.
type ListInfo struct {
	Lang       string
	Source     string
	Words      int
	ImportedAt time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS wordlists (
			lang TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS words (
			lang TEXT NOT NULL,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			PRIMARY KEY (lang, position)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportWords replaces the word list stored for lang.
func (s *Store) ImportWords(ctx context.Context, lang, source string, words []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM words WHERE lang = ?`, lang); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO wordlists (lang, source, imported_at) VALUES (?, ?, ?)
		 ON CONFLICT(lang) DO UPDATE SET source = excluded.source, imported_at = excluded.imported_at`,
		lang, source, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (lang, position, word) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, w := range words {
		if _, err = stmt.ExecContext(ctx, lang, i, w); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RemoveWords deletes the word list stored for lang. It reports whether a
// list existed.
func (s *Store) RemoveWords(ctx context.Context, lang string) (removed bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM wordlists WHERE lang = ?`, lang)
	if err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM words WHERE lang = ?`, lang); err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Words returns the stored words for lang in import order. A missing list
// yields no words and no error.
func (s *Store) Words(ctx context.Context, lang string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words WHERE lang = ? ORDER BY position ASC`, lang)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Lists returns every imported word list ordered by language.
func (s *Store) Lists(ctx context.Context) ([]ListInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT l.lang, l.source, l.imported_at, COUNT(w.word)
		FROM wordlists l
		LEFT JOIN words w ON w.lang = l.lang
		GROUP BY l.lang
		ORDER BY l.lang ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var lists []ListInfo
	for rows.Next() {
		var info ListInfo
		var importedAt string
		if err := rows.Scan(&info.Lang, &info.Source, &importedAt, &info.Words); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		lists = append(lists, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

// Languages returns the languages with an imported list.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	lists, err := s.Lists(ctx)
	if err != nil {
		return nil, err
	}
	langs := make([]string, len(lists))
	for i, l := range lists {
		langs[i] = l.Lang
	}
	return langs, nil
}
