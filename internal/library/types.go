// Package library stores generated lessons so they can be reopened,
// exported and shared later. Stored content is re-rendered on every view.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pedagogy-studio/internal/payload"
)

// Lesson is one saved generation result.
type Lesson struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	Pedagogy  string            `json:"pedagogy"`
	Params    map[string]string `json:"params"`
	Content   payload.Value     `json:"content"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store defines the lesson storage operations.
type Store interface {
	// Save inserts the lesson, or updates it when ID already exists.
	// An empty ID is assigned a new one.
	Save(ctx context.Context, lesson *Lesson) error

	// Get returns domain.ErrNotFound when id is unknown.
	Get(ctx context.Context, id string) (*Lesson, error)

	// List returns lessons newest first.
	List(ctx context.Context, limit, offset int) ([]*Lesson, error)

	Count(ctx context.Context) (int64, error)

	// Delete returns domain.ErrNotFound when id is unknown.
	Delete(ctx context.Context, id string) error

	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON skips lessons whose ID is already stored.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	Close() error
}

// Export is the JSON export format.
type Export struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Lessons    []*Lesson `json:"lessons"`
}

const exportVersion = "1.0"

// maxExportLimit is the maximum number of lessons to export at once.
const maxExportLimit = 1000000

// prepare fills the ID and timestamps before a write.
func prepare(lesson *Lesson, now time.Time) {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = now
	}
	lesson.CreatedAt = lesson.CreatedAt.UTC()
	lesson.UpdatedAt = now
	if lesson.Params == nil {
		lesson.Params = map[string]string{}
	}
}

func encodeParams(params map[string]string) (string, error) {
	if params == nil {
		params = map[string]string{}
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode params: %w", err)
	}
	return string(b), nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(s scanner) (*Lesson, error) {
	l := &Lesson{}
	var params, content string

	if err := s.Scan(&l.ID, &l.Topic, &l.Pedagogy, &params, &content, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(params), &l.Params); err != nil {
		return nil, fmt.Errorf("failed to decode params of lesson %s: %w", l.ID, err)
	}
	v, err := payload.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content of lesson %s: %w", l.ID, err)
	}
	l.Content = v
	return l, nil
}

func writeExport(ctx context.Context, s Store, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list lessons: %w", err)
	}
	if all == nil {
		all = []*Lesson{}
	}

	export := &Export{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Count:      len(all),
		Lessons:    all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

func readImport(ctx context.Context, s Store, reader io.Reader) (imported int, skipped int, err error) {
	var export Export
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, lesson := range export.Lessons {
		if lesson == nil {
			continue
		}
		if lesson.ID != "" {
			if _, err := s.Get(ctx, lesson.ID); err == nil {
				skipped++
				continue
			} else if !isNotFound(err) {
				return imported, skipped, fmt.Errorf("failed to check existing: %w", err)
			}
		}

		if err := s.Save(ctx, lesson); err != nil {
			return imported, skipped, fmt.Errorf("failed to save: %w", err)
		}
		imported++
	}

	return imported, skipped, nil
}
