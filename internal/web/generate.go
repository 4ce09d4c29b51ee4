package web

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/form"
	"github.com/pedagogy-studio/internal/logging"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/render"
)

// result is one completed generation, ready for display.
type result struct {
	Topic    string            `json:"topic"`
	Pedagogy string            `json:"pedagogy"`
	Params   map[string]string `json:"params"`
	Content  payload.Value     `json:"content"`
	View     *render.View      `json:"view"`
}

// generate submits an already validated topic. Params are merged over the
// pedagogy defaults first so the backend always sees a full mapping.
func (s *Server) generate(ctx context.Context, topic, id string, params map[string]string) (*result, error) {
	params = form.Merge(id, params)

	op := logging.StartOperation(ctx, s.log, "generate", logrus.Fields{
		"pedagogy": id,
		"topic":    topic,
	})
	start := time.Now()
	resp, err := s.deps.Generator.Generate(ctx, &domain.GenerateRequest{
		Topic:    topic,
		Pedagogy: id,
		Params:   params,
	})
	op.End(err)
	if err != nil {
		s.deps.Metrics.ObserveGeneration(id, "error", time.Since(start))
		return nil, err
	}
	s.deps.Metrics.ObserveGeneration(id, "ok", time.Since(start))

	return &result{
		Topic:    topic,
		Pedagogy: id,
		Params:   params,
		Content:  resp.Content,
		View:     s.render(id, resp.Content),
	}, nil
}

// render runs the resolver and records which state it produced.
func (s *Server) render(id string, content payload.Value) *render.View {
	v := render.Render(id, content)
	switch {
	case v == nil:
		s.deps.Metrics.ObserveRender(pedagogy.ParseKind(id).String(), "none")
	case v.Placeholder != nil:
		s.deps.Metrics.ObserveRender(v.Layout, string(v.Placeholder.State))
	default:
		s.deps.Metrics.ObserveRender(v.Layout, "content")
	}
	return v
}

// catalog never fails; a provider error falls back to the built-in catalog.
func (s *Server) catalog(ctx context.Context) pedagogy.Catalog {
	c, err := s.deps.Catalog.Catalog(ctx)
	if err != nil || len(c) == 0 {
		s.deps.Metrics.ObserveCatalog("error")
		logging.FromContext(ctx, s.log).WithError(err).Warn("Catalog unavailable")
		return pedagogy.BuiltinCatalog()
	}
	s.deps.Metrics.ObserveCatalog("ok")
	return c
}

// schema returns the parameter schema for id from the catalog, or nil when
// the catalog has no entry for it.
func (s *Server) schema(ctx context.Context, id string) (pedagogy.Info, []pedagogy.Parameter) {
	info, ok := s.catalog(ctx).Lookup(id)
	if !ok {
		return pedagogy.Info{Name: id}, nil
	}
	return info, info.Parameters
}
