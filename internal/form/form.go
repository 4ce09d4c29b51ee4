// Package form holds the topic checks and parameter form construction used
// by the landing and pedagogy pages.
package form

import (
	"strings"
	"unicode/utf8"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/render"
)

// MinTopicLength is the minimum topic length in characters after trimming.
const MinTopicLength = 3

const (
	msgTopicRequired = "Topic is required."
	msgTopicTooShort = "Enter at least 3 characters."
	msgTopicInvalid  = "Please provide a valid topic (at least 3 characters) on the home page and try again."
)

// ValidateTopic checks a topic typed on the landing page and returns it trimmed.
func ValidateTopic(topic string) (string, error) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return "", domain.NewValidationError("topic", msgTopicRequired, topic)
	}
	if utf8.RuneCountInString(trimmed) < MinTopicLength {
		return "", domain.NewValidationError("topic", msgTopicTooShort, topic)
	}
	return trimmed, nil
}

// ValidateTopicForGeneration re-checks the topic carried to the pedagogy page
// before a generation request is sent.
func ValidateTopicForGeneration(topic string) (string, error) {
	trimmed := strings.TrimSpace(topic)
	if utf8.RuneCountInString(trimmed) < MinTopicLength {
		return "", domain.NewValidationError("topic", msgTopicInvalid, topic)
	}
	return trimmed, nil
}

// Field is one select input of the parameter form.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Hint        string   `json:"hint,omitempty"`
	Placeholder string   `json:"placeholder"`
	Options     []string `json:"options"`
	Value       string   `json:"value"`
}

// Form is the parameter form for one pedagogy.
type Form struct {
	Pedagogy    string  `json:"pedagogy"`
	Title       string  `json:"title"`
	Fields      []Field `json:"fields"`
	SubmitLabel string  `json:"submit_label"`
	BusyLabel   string  `json:"busy_label"`
}

// Build lays out the form for id. Fields follow schema order; an empty schema
// falls back to the pedagogy's defaulted parameters. Every field is seeded
// with its default value.
func Build(id string, schema []pedagogy.Parameter) *Form {
	if len(schema) == 0 {
		for _, name := range pedagogy.DefaultParamNames(id) {
			schema = append(schema, pedagogy.Parameter{Name: name})
		}
	}

	defaults := pedagogy.DefaultParams(id)
	title := render.Humanize(id)

	f := &Form{
		Pedagogy:    id,
		Title:       "Configure " + title + " Parameters",
		Fields:      make([]Field, 0, len(schema)),
		SubmitLabel: "Generate " + title,
		BusyLabel:   "Generating...",
	}
	for _, p := range schema {
		label := render.Humanize(p.Name)
		f.Fields = append(f.Fields, Field{
			Name:        p.Name,
			Label:       label,
			Hint:        p.Hint,
			Placeholder: "Select " + label,
			Options:     pedagogy.Options(p.Name),
			Value:       defaults[p.Name],
		})
	}
	return f
}

// Merge overlays non-empty selections on the pedagogy's defaults, so every
// defaulted parameter is always populated.
func Merge(id string, submitted map[string]string) map[string]string {
	out := pedagogy.DefaultParams(id)
	for k, v := range submitted {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	return out
}
