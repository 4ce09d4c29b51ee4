// Package web serves the studio's HTML pages, JSON API and live generation
// socket.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/metrics"
	"github.com/pedagogy-studio/internal/middleware"
	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Deps are the collaborators a Server calls. Library may be nil, which
// disables the saved lesson pages and endpoints.
type Deps struct {
	Catalog   domain.CatalogProvider
	Generator domain.ContentGenerator
	Library   library.Store
	Metrics   *metrics.Metrics
	Logger    *logrus.Logger
}

// Server represents the HTTP server
type Server struct {
	cfg       domain.ServerConfig
	deps      Deps
	log       *logrus.Logger
	router    *gin.Engine
	templates *template.Template
	server    *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(cfg domain.ServerConfig, deps Deps) (*Server, error) {
	if deps.Catalog == nil || deps.Generator == nil {
		return nil, errors.New("web: catalog and generator are required")
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}

	switch cfg.Mode {
	case gin.DebugMode, gin.TestMode, gin.ReleaseMode:
		gin.SetMode(cfg.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Metrics(deps.Metrics))
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		cfg:       cfg,
		deps:      deps,
		log:       deps.Logger,
		router:    router,
		templates: tmpl,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"humanize": render.Humanize,
		"icon":     pedagogy.Icon,
		"theme":    pedagogy.ThemeFor,
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", ln.Addr().String()).Info("HTTP server listening")
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("Shutting down HTTP server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	<-errCh
	return nil
}

// setupRoutes configures the page, API and socket routes
func (s *Server) setupRoutes() error {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	s.router.StaticFS("/static", http.FS(static))

	s.router.GET("/health", s.handleHealth)
	if s.deps.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	s.router.GET("/", s.handleIndex)
	s.router.POST("/select", s.handleSelect)
	s.router.GET("/pedagogy/:name", s.handlePedagogy)
	s.router.POST("/pedagogy/:name/generate", s.handleGeneratePage)
	s.router.GET("/ws/generate", s.handleGenerateSocket)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/pedagogies", s.handleListPedagogies)
		v1.GET("/pedagogies/:name/form", s.handlePedagogyForm)
		v1.POST("/generate", s.handleGenerate)
		v1.POST("/render", s.handleRender)
	}

	if s.deps.Library != nil {
		s.router.GET("/lessons", s.handleLessonsPage)
		s.router.POST("/lessons", s.handleSaveLessonPage)
		s.router.GET("/lessons/:id", s.handleLessonPage)

		lessons := v1.Group("/lessons")
		{
			lessons.GET("", s.handleListLessons)
			lessons.POST("", s.handleCreateLesson)
			lessons.GET("/export", s.handleExportLessons)
			lessons.POST("/import", s.handleImportLessons)
			lessons.GET("/:id", s.handleGetLesson)
			lessons.DELETE("/:id", s.handleDeleteLesson)
		}
	}
	return nil
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   Version,
		"library":   s.deps.Library != nil,
	})
}
