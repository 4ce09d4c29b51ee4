package domain

import (
	"github.com/pedagogy-studio/internal/payload"
)

// GenerateRequest is the body sent to the backend's generation endpoint.
type GenerateRequest struct {
	Topic    string            `json:"topic"`
	Pedagogy string            `json:"pedagogy"`
	Params   map[string]string `json:"params"`
}

// GenerateResponse is the backend's reply. Content keeps the backend's member
// order so raw diagnostics show it as sent.
type GenerateResponse struct {
	Pedagogy string        `json:"pedagogy"`
	Topic    string        `json:"topic"`
	Content  payload.Value `json:"content"`
}
