package web

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/form"
	"github.com/pedagogy-studio/internal/logging"
	"github.com/pedagogy-studio/internal/payload"
	"github.com/pedagogy-studio/internal/render"
)

// Frame statuses sent on the generation socket.
const (
	StatusGenerating = "generating"
	StatusDone       = "done"
	StatusError      = "error"
)

// ErrGenerationPending is the message rejecting a request made while the
// socket's previous one is still running.
const ErrGenerationPending = "a generation is already in progress"

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 << 10
)

// socketRequest is one generation request read from the socket.
type socketRequest struct {
	Topic    string            `json:"topic"`
	Pedagogy string            `json:"pedagogy"`
	Params   map[string]string `json:"params"`
}

// socketFrame is a status update written to the socket.
type socketFrame struct {
	Status   string            `json:"status"`
	Pedagogy string            `json:"pedagogy,omitempty"`
	Topic    string            `json:"topic,omitempty"`
	Message  string            `json:"message,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Content  *payload.Value    `json:"content,omitempty"`
	View     *render.View      `json:"view,omitempty"`
	// HTML is the server rendered view for browsers.
	HTML string `json:"html,omitempty"`
}

// generationSocket serializes writes and allows one generation at a time.
type generationSocket struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	busy    atomic.Bool
	wg      sync.WaitGroup
}

func (g *generationSocket) send(f socketFrame) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	_ = g.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return g.conn.WriteJSON(f)
}

func (s *Server) upgrader() *websocket.Upgrader {
	allowed := make(map[string]bool, len(s.cfg.CORSOrigins))
	for _, o := range s.cfg.CORSOrigins {
		allowed[o] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowed) == 0 || allowed[origin] {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// GET /ws/generate
func (s *Server) handleGenerateSocket(c *gin.Context) {
	conn, err := s.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.log.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	s.deps.Metrics.WebSocketOpened()
	defer s.deps.Metrics.WebSocketClosed()

	sock := &generationSocket{conn: conn}
	conn.SetReadLimit(maxMessageSize)

	// Generations run to completion even if the peer goes away; the socket
	// is closed once the last one has reported.
	ctx := context.WithoutCancel(c.Request.Context())
	defer func() {
		sock.wg.Wait()
		conn.Close()
	}()

	for {
		var req socketRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.FromContext(ctx, s.log).WithError(err).Debug("WebSocket closed")
			}
			return
		}

		if !sock.busy.CompareAndSwap(false, true) {
			_ = sock.send(socketFrame{Status: StatusError, Pedagogy: req.Pedagogy, Message: ErrGenerationPending})
			continue
		}

		topic, err := form.ValidateTopicForGeneration(req.Topic)
		if err == nil && req.Pedagogy == "" {
			err = domain.NewValidationError("pedagogy", "Choose a pedagogy.", req.Pedagogy)
		}
		if err != nil {
			sock.busy.Store(false)
			_ = sock.send(socketFrame{Status: StatusError, Pedagogy: req.Pedagogy, Message: domain.UserMessage(err)})
			continue
		}

		if err := sock.send(socketFrame{Status: StatusGenerating, Pedagogy: req.Pedagogy, Topic: topic}); err != nil {
			sock.busy.Store(false)
			return
		}

		sock.wg.Add(1)
		go func(req socketRequest, topic string) {
			defer sock.wg.Done()
			frame := s.runSocketGeneration(ctx, req, topic)
			// Clear busy before reporting so a client reacting to the
			// frame can submit again immediately.
			sock.busy.Store(false)
			_ = sock.send(frame)
		}(req, topic)
	}
}

func (s *Server) runSocketGeneration(ctx context.Context, req socketRequest, topic string) socketFrame {
	res, err := s.generate(ctx, topic, req.Pedagogy, req.Params)
	if err != nil {
		return socketFrame{Status: StatusError, Pedagogy: req.Pedagogy, Topic: topic, Message: domain.UserMessage(err)}
	}

	frame := socketFrame{
		Status:   StatusDone,
		Pedagogy: req.Pedagogy,
		Topic:    topic,
		Params:   res.Params,
		Content:  &res.Content,
		View:     res.View,
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "view", res.View); err != nil {
		s.log.WithError(err).Warn("Failed to render view fragment")
	} else {
		frame.HTML = buf.String()
	}
	return frame
}
