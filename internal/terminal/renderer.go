package terminal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/pedagogy-studio/internal/render"
)

// Format selects an output representation.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts the names above, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTerminal, FormatMarkdown, FormatJSON, FormatYAML:
		return f, nil
	case "", "term", "text":
		return FormatTerminal, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want terminal, markdown, json or yaml)", s)
	}
}

// Renderer formats views for output.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a renderer. Without options the terminal style is picked
// from the environment and text wraps at 80 columns.
func NewRenderer(opts ...glamour.TermRendererOption) (*Renderer, error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		}
	}
	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return &Renderer{term: term}, nil
}

// Render formats v. A nil view is empty text, or null in JSON and YAML.
func (r *Renderer) Render(v *render.View, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(v), nil
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode view: %w", err)
		}
		return string(b) + "\n", nil
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode view: %w", err)
		}
		return string(b), nil
	case FormatTerminal, "":
		md := Markdown(v)
		if md == "" {
			return "", nil
		}
		out, err := r.term.Render(md)
		if err != nil {
			return "", fmt.Errorf("failed to style output: %w", err)
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
