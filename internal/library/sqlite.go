package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pedagogy-studio/internal/domain"
)

// SQLiteStore implements Store on an embedded SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens or creates the database file and its schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets readers proceed while a lesson is being written
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS lessons (
		id TEXT PRIMARY KEY,
		topic TEXT NOT NULL,
		pedagogy TEXT NOT NULL,
		params TEXT NOT NULL DEFAULT '{}',
		content TEXT NOT NULL DEFAULT 'null',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lessons_pedagogy ON lessons(pedagogy);
	CREATE INDEX IF NOT EXISTS idx_lessons_created_at ON lessons(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.dbPath }

// Save inserts or updates lesson.
func (s *SQLiteStore) Save(ctx context.Context, lesson *Lesson) error {
	prepare(lesson, time.Now().UTC())

	params, err := encodeParams(lesson.Params)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lessons (id, topic, pedagogy, params, content, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			topic = excluded.topic,
			pedagogy = excluded.pedagogy,
			params = excluded.params,
			content = excluded.content,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		lesson.ID,
		lesson.Topic,
		lesson.Pedagogy,
		params,
		lesson.Content.Compact(),
		lesson.Notes,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lesson: %w", err)
	}

	// An update keeps the original creation time
	err = s.db.QueryRowContext(ctx, "SELECT created_at FROM lessons WHERE id = ?", lesson.ID).Scan(&lesson.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read saved lesson: %w", err)
	}
	return nil
}

// Get retrieves one lesson.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Lesson, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, topic, pedagogy, params, content, notes, created_at, updated_at
		FROM lessons
		WHERE id = ?
	`, id)

	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return l, nil
}

// List returns lessons newest first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Lesson, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, pedagogy, params, content, notes, created_at, updated_at
		FROM lessons
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lessons").Scan(&count)
	return count, err
}

// Delete removes a lesson.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return checkAffected(res, id)
}

func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return writeExport(ctx, s, writer)
}

func (s *SQLiteStore) ImportJSON(ctx context.Context, reader io.Reader) (int, int, error) {
	return readImport(ctx, s, reader)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func checkAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
