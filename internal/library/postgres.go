package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pedagogy-studio/internal/domain"
)

// PostgresStore implements Store on PostgreSQL. The lessons table is created
// by the database migrations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Save upserts lesson. Content is kept as TEXT so member order survives.
func (s *PostgresStore) Save(ctx context.Context, lesson *Lesson) error {
	prepare(lesson, time.Now().UTC())

	params, err := encodeParams(lesson.Params)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO lessons (id, topic, pedagogy, params, content, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			topic = EXCLUDED.topic,
			pedagogy = EXCLUDED.pedagogy,
			params = EXCLUDED.params,
			content = EXCLUDED.content,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		lesson.ID,
		lesson.Topic,
		lesson.Pedagogy,
		params,
		lesson.Content.Compact(),
		lesson.Notes,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	).Scan(&lesson.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save lesson: %w", err)
	}
	return nil
}

// Get retrieves one lesson.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Lesson, error) {
	query := `
		SELECT id, topic, pedagogy, params::text, content, notes, created_at, updated_at
		FROM lessons
		WHERE id = $1
	`

	l, err := scanLesson(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return l, nil
}

// List returns lessons newest first.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*Lesson, error) {
	query := `
		SELECT id, topic, pedagogy, params::text, content, notes, created_at, updated_at
		FROM lessons
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var result []*Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lessons").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}

// Delete removes a lesson.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return checkAffected(res, id)
}

func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return writeExport(ctx, s, writer)
}

func (s *PostgresStore) ImportJSON(ctx context.Context, reader io.Reader) (int, int, error) {
	return readImport(ctx, s, reader)
}

// Close is a no-op; the connection belongs to the caller.
func (s *PostgresStore) Close() error {
	return nil
}
