package web

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/form"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/pedagogy"
	"github.com/pedagogy-studio/internal/render"
)

// pedagogyPage is the data behind pedagogy.html.
type pedagogyPage struct {
	Info     pedagogy.Info
	Title    string
	Icon     string
	Theme    pedagogy.Theme
	Topic    string
	Form     *form.Form
	Error    string
	Result   *result
	Saveable bool
	// SaveParams is the merged parameter mapping as JSON for the save form.
	SaveParams string
}

// GET /
func (s *Server) handleIndex(c *gin.Context) {
	s.indexPage(c, http.StatusOK, c.Query("topic"), "")
}

func (s *Server) indexPage(c *gin.Context, status int, topic, errMsg string) {
	c.HTML(status, "index.html", gin.H{
		"Topic":      topic,
		"Error":      errMsg,
		"Pedagogies": cards(s.catalog(c.Request.Context())),
		"Library":    s.deps.Library != nil,
	})
}

// POST /select validates the topic before leaving the landing page.
func (s *Server) handleSelect(c *gin.Context) {
	raw := c.PostForm("topic")
	topic, err := form.ValidateTopic(raw)
	if err != nil {
		s.indexPage(c, http.StatusUnprocessableEntity, raw, domain.UserMessage(err))
		return
	}
	id := c.PostForm("pedagogy")
	if id == "" {
		s.indexPage(c, http.StatusUnprocessableEntity, raw, "Choose a pedagogy.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/pedagogy/"+url.PathEscape(id)+"?topic="+url.QueryEscape(topic))
}

// GET /pedagogy/:name
func (s *Server) handlePedagogy(c *gin.Context) {
	page := s.newPedagogyPage(c, c.Param("name"), c.Query("topic"), nil)
	c.HTML(http.StatusOK, "pedagogy.html", page)
}

// POST /pedagogy/:name/generate
func (s *Server) handleGeneratePage(c *gin.Context) {
	id := c.Param("name")
	submitted := c.PostFormMap("params")
	page := s.newPedagogyPage(c, id, c.PostForm("topic"), submitted)

	topic, err := form.ValidateTopicForGeneration(page.Topic)
	if err != nil {
		page.Error = domain.UserMessage(err)
		c.HTML(http.StatusUnprocessableEntity, "pedagogy.html", page)
		return
	}

	res, err := s.generate(c.Request.Context(), topic, id, submitted)
	if err != nil {
		page.Error = domain.UserMessage(err)
		c.HTML(http.StatusBadGateway, "pedagogy.html", page)
		return
	}

	page.Result = res
	if params, err := json.Marshal(res.Params); err == nil {
		page.SaveParams = string(params)
	}
	c.HTML(http.StatusOK, "pedagogy.html", page)
}

// newPedagogyPage builds the form, keeping any submitted selections.
func (s *Server) newPedagogyPage(c *gin.Context, id, topic string, submitted map[string]string) *pedagogyPage {
	info, schema := s.schema(c.Request.Context(), id)
	f := form.Build(id, schema)
	for i, field := range f.Fields {
		if v := strings.TrimSpace(submitted[field.Name]); v != "" {
			f.Fields[i].Value = v
		}
	}
	return &pedagogyPage{
		Info:     info,
		Title:    render.Humanize(id),
		Icon:     pedagogy.Icon(id),
		Theme:    pedagogy.ThemeFor(id),
		Topic:    strings.TrimSpace(topic),
		Form:     f,
		Saveable: s.deps.Library != nil,
	}
}

// GET /lessons
func (s *Server) handleLessonsPage(c *gin.Context) {
	ctx := c.Request.Context()
	pageNum := queryInt(c, "page", 1)
	if pageNum < 1 {
		pageNum = 1
	}

	total, err := s.deps.Library.Count(ctx)
	if err != nil {
		s.errorPage(c, err)
		return
	}
	lessons, err := s.deps.Library.List(ctx, defaultPageSize, (pageNum-1)*defaultPageSize)
	if err != nil {
		s.errorPage(c, err)
		return
	}

	pages := int(math.Ceil(float64(total) / defaultPageSize))
	c.HTML(http.StatusOK, "lessons.html", gin.H{
		"Lessons": lessons,
		"Total":   total,
		"Page":    pageNum,
		"Pages":   pages,
		"Prev":    pageNum - 1,
		"Next":    nextPage(pageNum, pages),
	})
}

func nextPage(current, pages int) int {
	if current >= pages {
		return 0
	}
	return current + 1
}

// GET /lessons/:id
func (s *Server) handleLessonPage(c *gin.Context) {
	lesson, err := s.deps.Library.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.errorPage(c, err)
		return
	}
	c.HTML(http.StatusOK, "lesson.html", gin.H{
		"Lesson": lesson,
		"Title":  render.Humanize(lesson.Pedagogy),
		"View":   s.render(lesson.Pedagogy, lesson.Content),
	})
}

// POST /lessons saves the result shown on a pedagogy page.
func (s *Server) handleSaveLessonPage(c *gin.Context) {
	content, err := payload.ParseString(c.PostForm("content"))
	if err != nil {
		s.errorPage(c, domain.NewValidationError("content", "The lesson content could not be read.", nil))
		return
	}
	params := map[string]string{}
	if raw := c.PostForm("params"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			s.errorPage(c, domain.NewValidationError("params", "The lesson parameters could not be read.", nil))
			return
		}
	}

	lesson := &library.Lesson{
		Topic:    c.PostForm("topic"),
		Pedagogy: c.PostForm("pedagogy"),
		Params:   params,
		Content:  content,
		Notes:    strings.TrimSpace(c.PostForm("notes")),
	}
	if err := validateLesson(lesson); err != nil {
		s.errorPage(c, err)
		return
	}
	if err := s.deps.Library.Save(c.Request.Context(), lesson); err != nil {
		s.errorPage(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/lessons/"+url.PathEscape(lesson.ID))
}

func (s *Server) errorPage(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong. Please try again."
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "Lesson not found."
	case errors.As(err, &verr):
		status, msg = http.StatusUnprocessableEntity, verr.Message
	default:
		s.log.WithError(err).Error("Page request failed")
	}
	c.HTML(status, "error.html", gin.H{"Status": status, "Message": msg})
}
