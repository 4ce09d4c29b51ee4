// Package mcp exposes the studio's catalog, generation and rendering as
// Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/metrics"
)

// Server wraps an MCP server with the studio tools registered.
type Server struct {
	mcp       *mcp.Server
	catalog   domain.CatalogProvider
	generator domain.ContentGenerator
	library   library.Store
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// Option is a functional option for Server.
type Option func(*Server)

// WithLibrary enables saving generated lessons.
func WithLibrary(store library.Store) Option {
	return func(s *Server) { s.library = store }
}

// WithLogger sets a custom logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics records generation and render counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates a server named after cfg and registers every tool.
func NewServer(cfg domain.MCPConfig, catalog domain.CatalogProvider, generator domain.ContentGenerator, opts ...Option) (*Server, error) {
	if catalog == nil || generator == nil {
		return nil, errors.New("mcp: catalog and generator are required")
	}

	s := &Server{
		catalog:   catalog,
		generator: generator,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	name, version := cfg.ServerName, cfg.ServerVersion
	if name == "" {
		name = "pedagogy-studio"
	}
	if version == "" {
		version = "1.0.0"
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	s.registerTools()
	s.logger.WithFields(logrus.Fields{
		"server":  name,
		"version": version,
		"library": s.library != nil,
	}).Info("MCP server initialized")
	return s, nil
}

// Run serves one session over t until the peer disconnects or ctx ends.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	if err := s.mcp.Run(ctx, t); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// RunStdio serves over standard input and output.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("Serving MCP over stdio")
	return s.Run(ctx, &mcp.StdioTransport{})
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}
