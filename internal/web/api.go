package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/form"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/middleware"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/render"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pedagogyCard is one landing page entry.
type pedagogyCard struct {
	Name        string               `json:"name"`
	Title       string               `json:"title"`
	Icon        string               `json:"icon"`
	Description string               `json:"description"`
	Parameters  []pedagogy.Parameter `json:"parameters"`
}

func cards(c pedagogy.Catalog) []pedagogyCard {
	out := make([]pedagogyCard, 0, len(c))
	for _, info := range c {
		out = append(out, pedagogyCard{
			Name:        info.Name,
			Title:       render.Humanize(info.Name),
			Icon:        pedagogy.Icon(info.Name),
			Description: info.Description,
			Parameters:  info.Parameters,
		})
	}
	return out
}

type generateRequest struct {
	Topic    string            `json:"topic"`
	Pedagogy string            `json:"pedagogy" binding:"required"`
	Params   map[string]string `json:"params"`
}

type renderRequest struct {
	Pedagogy string        `json:"pedagogy"`
	Content  payload.Value `json:"content"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": domain.NewAppError(code, message, "", c.GetString(middleware.CorrelationIDKey)),
	})
}

// respondGenerationError maps a generation failure to a status and code.
// The message is always the user facing one.
func respondGenerationError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, domain.ErrValidation, verr.Message)
		return
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		respondError(c, http.StatusServiceUnavailable, domain.ErrBackendUnavailable, domain.UserMessage(err))
		return
	}
	respondError(c, http.StatusBadGateway, domain.ErrGenerationFailed, domain.UserMessage(err))
}

// GET /api/v1/pedagogies
func (s *Server) handleListPedagogies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pedagogies": cards(s.catalog(c.Request.Context()))})
}

// GET /api/v1/pedagogies/:name/form
func (s *Server) handlePedagogyForm(c *gin.Context) {
	id := c.Param("name")
	_, schema := s.schema(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{
		"form":  form.Build(id, schema),
		"theme": pedagogy.ThemeFor(id),
	})
}

// POST /api/v1/generate
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "Request body must name a pedagogy.")
		return
	}

	topic, err := form.ValidateTopic(req.Topic)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	res, err := s.generate(c.Request.Context(), topic, req.Pedagogy, req.Params)
	if err != nil {
		respondGenerationError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/render
func (s *Server) handleRender(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "Request body must be a JSON object.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": s.render(req.Pedagogy, req.Content)})
}

// GET /api/v1/lessons
func (s *Server) handleListLessons(c *gin.Context) {
	limit := queryInt(c, "limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	ctx := c.Request.Context()
	lessons, err := s.deps.Library.List(ctx, limit, offset)
	if err != nil {
		s.storageError(c, err)
		return
	}
	total, err := s.deps.Library.Count(ctx)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lessons": lessons,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// POST /api/v1/lessons
func (s *Server) handleCreateLesson(c *gin.Context) {
	var lesson library.Lesson
	if err := c.ShouldBindJSON(&lesson); err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, "Request body must be a lesson object.")
		return
	}
	if err := validateLesson(&lesson); err != nil {
		respondGenerationError(c, err)
		return
	}
	if err := s.deps.Library.Save(c.Request.Context(), &lesson); err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// GET /api/v1/lessons/:id
func (s *Server) handleGetLesson(c *gin.Context) {
	lesson, err := s.deps.Library.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lesson": lesson,
		"view":   s.render(lesson.Pedagogy, lesson.Content),
	})
}

// DELETE /api/v1/lessons/:id
func (s *Server) handleDeleteLesson(c *gin.Context) {
	if err := s.deps.Library.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/lessons/export
func (s *Server) handleExportLessons(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.deps.Library.ExportJSON(c.Request.Context(), &buf); err != nil {
		s.storageError(c, err)
		return
	}
	name := "lessons-" + time.Now().UTC().Format("20060102-150405") + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// POST /api/v1/lessons/import
func (s *Server) handleImportLessons(c *gin.Context) {
	imported, skipped, err := s.deps.Library.ImportJSON(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidInput, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

func (s *Server) storageError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		respondError(c, http.StatusNotFound, domain.ErrNotFoundCode, "Lesson not found.")
		return
	}
	s.log.WithError(err).WithField(middleware.CorrelationIDKey, c.GetString(middleware.CorrelationIDKey)).
		Error("Lesson storage failed")
	respondError(c, http.StatusInternalServerError, domain.ErrStorage, "The lesson library is unavailable.")
}

// validateLesson checks the fields a saved lesson cannot do without.
func validateLesson(l *library.Lesson) error {
	topic, err := form.ValidateTopic(l.Topic)
	if err != nil {
		return err
	}
	l.Topic = topic
	if l.Pedagogy == "" {
		return domain.NewValidationError("pedagogy", "Pedagogy is required.", l.Pedagogy)
	}
	if !l.Content.Present() {
		return domain.NewValidationError("content", "Content is required.", nil)
	}
	return nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
