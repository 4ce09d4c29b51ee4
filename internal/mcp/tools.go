package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/form"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/render"
	"github.com/pedagogy-studio/internal/terminal"
)

// Tool names.
const (
	ToolListPedagogies = "list_pedagogies"
	ToolGenerate       = "generate_content"
	ToolRender         = "render_content"
)

type listPedagogiesInput struct{}

// PedagogyEntry is one catalog entry as returned to agents.
type PedagogyEntry struct {
	Name        string               `json:"name"`
	Title       string               `json:"title"`
	Icon        string               `json:"icon"`
	Description string               `json:"description"`
	Parameters  []pedagogy.Parameter `json:"parameters"`
	Defaults    map[string]string    `json:"defaults,omitempty"`
}

// GenerateInput defines parameters for the generate_content tool
type GenerateInput struct {
	Topic    string            `json:"topic,omitempty" jsonschema:"Lesson topic of at least 3 characters"`
	Pedagogy string            `json:"pedagogy,omitempty" jsonschema:"Pedagogy identifier from list_pedagogies"`
	Params   map[string]string `json:"params,omitempty" jsonschema:"Parameter selections; omitted parameters use the pedagogy defaults"`
	Save     bool              `json:"save,omitempty" jsonschema:"Save the result to the lesson library"`
	Notes    string            `json:"notes,omitempty" jsonschema:"Notes stored with a saved lesson"`
	Format   string            `json:"format,omitempty" jsonschema:"Text output format: markdown (default), json or yaml"`
}

// GenerateResult is the structured result of generate_content.
type GenerateResult struct {
	Topic    string            `json:"topic"`
	Pedagogy string            `json:"pedagogy"`
	Params   map[string]string `json:"params"`
	Content  payload.Value     `json:"content"`
	View     *render.View      `json:"view"`
	LessonID string            `json:"lesson_id,omitempty"`
}

// RenderInput defines parameters for the render_content tool. ContentJSON
// keeps the payload's member order; Content is used when it is empty.
type RenderInput struct {
	Pedagogy    string `json:"pedagogy,omitempty" jsonschema:"Pedagogy identifier selecting the layout"`
	Content     any    `json:"content,omitempty" jsonschema:"Generated content payload"`
	ContentJSON string `json:"content_json,omitempty" jsonschema:"Generated content payload as a JSON string"`
	Format      string `json:"format,omitempty" jsonschema:"Text output format: markdown (default), json or yaml"`
}

// RenderResult is the structured result of render_content.
type RenderResult struct {
	Pedagogy string       `json:"pedagogy"`
	Layout   string       `json:"layout"`
	View     *render.View `json:"view"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolListPedagogies,
		Description: "List the available pedagogies with their parameter hints and default values.",
	}, s.handleListPedagogies)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolGenerate,
		Description: "Generate lesson content for a topic in a pedagogy style and return it rendered with the pedagogy's layout.",
	}, s.handleGenerate)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolRender,
		Description: "Render an existing content payload with the layout of a pedagogy. Unknown pedagogies use the generic layout.",
	}, s.handleRender)

	s.logger.WithField("tool_count", 3).Debug("Registered MCP tools")
}

func (s *Server) handleListPedagogies(ctx context.Context, _ *mcp.CallToolRequest, _ listPedagogiesInput) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", ToolListPedagogies).Info("Tool invoked")

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil || len(catalog) == 0 {
		s.metrics.ObserveCatalog("error")
		catalog = pedagogy.BuiltinCatalog()
	} else {
		s.metrics.ObserveCatalog("ok")
	}

	entries := make([]PedagogyEntry, 0, len(catalog))
	lines := make([]string, 0, len(catalog))
	for _, info := range catalog {
		e := PedagogyEntry{
			Name:        info.Name,
			Title:       render.Humanize(info.Name),
			Icon:        pedagogy.Icon(info.Name),
			Description: info.Description,
			Parameters:  info.Parameters,
			Defaults:    pedagogy.DefaultParams(info.Name),
		}
		entries = append(entries, e)
		lines = append(lines, fmt.Sprintf("- %s %s (`%s`): %s", e.Icon, e.Title, e.Name, e.Description))
	}

	out := map[string]any{"pedagogies": entries}
	return textResult(strings.Join(lines, "\n")), out, nil
}

func (s *Server) handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, any, error) {
	logger := s.logger.WithFields(logrus.Fields{"tool": ToolGenerate, "pedagogy": in.Pedagogy})
	logger.Info("Tool invoked")

	topic, err := form.ValidateTopic(in.Topic)
	if err != nil {
		return errorResult(domain.UserMessage(err)), nil, nil
	}
	if in.Pedagogy == "" {
		return errorResult("pedagogy is required"), nil, nil
	}
	format, err := parseFormat(in.Format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	params := form.Merge(in.Pedagogy, in.Params)
	start := time.Now()
	resp, err := s.generator.Generate(ctx, &domain.GenerateRequest{Topic: topic, Pedagogy: in.Pedagogy, Params: params})
	if err != nil {
		s.metrics.ObserveGeneration(in.Pedagogy, "error", time.Since(start))
		logger.WithError(err).Warn("Generation failed")
		return errorResult(domain.UserMessage(err)), nil, nil
	}
	s.metrics.ObserveGeneration(in.Pedagogy, "ok", time.Since(start))

	view := s.render(in.Pedagogy, resp.Content)
	result := GenerateResult{
		Topic:    topic,
		Pedagogy: in.Pedagogy,
		Params:   params,
		Content:  resp.Content,
		View:     view,
	}

	if in.Save {
		if s.library == nil {
			return errorResult("the lesson library is not enabled"), nil, nil
		}
		lesson := &library.Lesson{
			Topic:    topic,
			Pedagogy: in.Pedagogy,
			Params:   params,
			Content:  resp.Content,
			Notes:    strings.TrimSpace(in.Notes),
		}
		if err := s.library.Save(ctx, lesson); err != nil {
			logger.WithError(err).Error("Failed to save lesson")
			return errorResult("failed to save lesson: " + err.Error()), nil, nil
		}
		result.LessonID = lesson.ID
	}

	text, err := formatView(view, format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	if result.LessonID != "" {
		text += "\nSaved as lesson " + result.LessonID + "\n"
	}
	return textResult(text), result, nil
}

func (s *Server) handleRender(_ context.Context, _ *mcp.CallToolRequest, in RenderInput) (*mcp.CallToolResult, any, error) {
	s.logger.WithFields(logrus.Fields{"tool": ToolRender, "pedagogy": in.Pedagogy}).Info("Tool invoked")

	format, err := parseFormat(in.Format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	content, err := renderInputContent(in)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	view := s.render(in.Pedagogy, content)
	text, err := formatView(view, format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	if view == nil {
		text = "No content to render."
	}
	return textResult(text), RenderResult{
		Pedagogy: in.Pedagogy,
		Layout:   pedagogy.ParseKind(in.Pedagogy).String(),
		View:     view,
	}, nil
}

func renderInputContent(in RenderInput) (payload.Value, error) {
	if in.ContentJSON != "" {
		v, err := payload.ParseString(in.ContentJSON)
		if err != nil {
			return payload.Value{}, fmt.Errorf("content_json is not valid JSON: %w", err)
		}
		return v, nil
	}
	if in.Content == nil {
		return payload.Value{}, nil
	}
	// Objects arrive as maps, so their member order is already lost here.
	b, err := json.Marshal(in.Content)
	if err != nil {
		return payload.Value{}, fmt.Errorf("content is not valid JSON: %w", err)
	}
	return payload.Parse(b)
}

func (s *Server) render(id string, content payload.Value) *render.View {
	v := render.Render(id, content)
	switch {
	case v == nil:
		s.metrics.ObserveRender(pedagogy.ParseKind(id).String(), "none")
	case v.Placeholder != nil:
		s.metrics.ObserveRender(v.Layout, string(v.Placeholder.State))
	default:
		s.metrics.ObserveRender(v.Layout, "content")
	}
	return v
}

// parseFormat defaults to markdown; styled terminal output is not useful to
// an agent.
func parseFormat(s string) (terminal.Format, error) {
	if strings.TrimSpace(s) == "" {
		return terminal.FormatMarkdown, nil
	}
	f, err := terminal.ParseFormat(s)
	if err != nil {
		return "", err
	}
	if f == terminal.FormatTerminal {
		return "", fmt.Errorf("format %q is not supported here (want markdown, json or yaml)", s)
	}
	return f, nil
}

func formatView(v *render.View, f terminal.Format) (string, error) {
	// Markdown, JSON and YAML need no terminal styling.
	var r terminal.Renderer
	return r.Render(v, f)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + message}},
	}
}
