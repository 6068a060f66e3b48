// Package live connects browser pages to overlay sessions over a
// websocket. The page reports pointer, selection and layout events; the
// server runs the overlay engine and streams back what to display.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ziadkadry99/termlens/internal/overlay"
)

const (
	writeWait    = 10 * time.Second
	maxFrameSize = 64 << 10
	outboxSize   = 64
)

var defaultViewport = overlay.Viewport{Width: 1280, Height: 800}

var liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "termlens_live_sessions",
	Help: "Open overlay websocket sessions",
})

// Bridge serves overlay sessions over websockets.
type Bridge struct {
	explainer overlay.Explainer
	opts      overlay.Options
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

// NewBridge creates a Bridge whose sessions resolve terms with explainer.
func NewBridge(explainer overlay.Explainer, opts overlay.Options, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		explainer: explainer,
		opts:      opts,
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes mounts the websocket endpoint at /overlay/ws.
func (b *Bridge) RegisterRoutes(r chi.Router) {
	r.Get("/overlay/ws", b.ServeHTTP)
}

// ServeHTTP upgrades the request and runs one overlay session until the
// page disconnects. Optional w and h query parameters give the initial
// viewport.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxFrameSize)

	id := uuid.NewString()
	logger := b.logger.With("session", id)
	c := &conn{
		ws:     ws,
		out:    make(chan Outbound, outboxSize),
		logger: logger,
	}

	session, err := overlay.New(overlay.Config{
		Options:   b.opts,
		Explainer: b.explainer,
		Surface:   c,
		Selection: c,
		Viewport:  viewportFromQuery(r),
		Logger:    logger,
	})
	if err != nil {
		logger.Error("creating overlay session", "err", err)
		return
	}

	if err := c.write(Outbound{Type: FrameHello, SessionID: id, Options: helloOptions(session.Options())}); err != nil {
		logger.Warn("sending hello", "err", err)
		return
	}

	liveSessions.Inc()
	defer liveSessions.Dec()
	logger.Info("overlay session opened")

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = session.Run(ctx)
	}()
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		c.writeLoop()
	}()

	c.readLoop(session)

	cancel()
	<-runDone
	close(c.out)
	<-writeDone
	logger.Info("overlay session closed")
}

func viewportFromQuery(r *http.Request) overlay.Viewport {
	vp := defaultViewport
	q := r.URL.Query()
	if w, err := strconv.ParseFloat(q.Get("w"), 64); err == nil && w > 0 {
		vp.Width = w
	}
	if h, err := strconv.ParseFloat(q.Get("h"), 64); err == nil && h > 0 {
		vp.Height = h
	}
	return vp
}

// conn is one page connection. It is the session's Surface and
// SelectionReader.
type conn struct {
	ws     *websocket.Conn
	out    chan Outbound
	logger *slog.Logger

	mu        sync.Mutex
	selection overlay.Selection
}

// Measure implements overlay.Surface.
func (c *conn) Measure(content string) overlay.Size {
	return estimateSize(content)
}

// Render implements overlay.Surface. It never blocks the session loop.
// If the page is not keeping up the oldest queued frames are discarded,
// so the newest view is always delivered.
func (c *conn) Render(v overlay.View) {
	f := Outbound{Type: FrameView, View: &v}
	for {
		select {
		case c.out <- f:
			return
		default:
		}
		select {
		case old := <-c.out:
			c.logger.Debug("outbound frame superseded", "type", old.Type)
		default:
		}
	}
}

// Selection implements overlay.SelectionReader.
func (c *conn) Selection() overlay.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

func (c *conn) setSelection(sel overlay.Selection) {
	c.mu.Lock()
	c.selection = sel
	c.mu.Unlock()
}

func (c *conn) send(f Outbound) {
	select {
	case c.out <- f:
	default:
		c.logger.Warn("outbound frame dropped", "type", f.Type)
	}
}

func (c *conn) sendError(msg string) {
	c.send(Outbound{Type: FrameError, Message: msg})
}

func (c *conn) write(f Outbound) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(f)
}

func (c *conn) writeLoop() {
	for f := range c.out {
		if err := c.write(f); err != nil {
			c.logger.Debug("websocket write", "err", err)
		}
	}
}

func (c *conn) readLoop(s *overlay.Session) {
	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read", "err", err)
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			c.sendError("invalid message format")
			continue
		}
		if errMsg := c.dispatch(s, in); errMsg != "" {
			c.sendError(errMsg)
		}
	}
}

// dispatch forwards one page event to the session and returns a
// complaint for malformed frames.
func (c *conn) dispatch(s *overlay.Session, in Inbound) string {
	switch in.Type {
	case FrameSelection, FramePointerUp:
		if in.Rect != nil || in.Text != "" || in.Collapsed {
			sel := overlay.Selection{Text: in.Text, Collapsed: in.Collapsed}
			if in.Rect != nil {
				sel.Rect = *in.Rect
			}
			c.setSelection(sel)
		}
		if in.Type == FramePointerUp {
			s.PointerUp()
		}
	case FrameHoverEnter:
		if in.Rect == nil {
			return "hover_enter requires rect"
		}
		s.HoverEnter(in.Text, *in.Rect)
	case FrameHoverLeave:
		s.HoverLeave()
	case FrameOverlayEnter:
		s.OverlayEnter()
	case FrameOverlayLeave:
		s.OverlayLeave()
	case FramePointerDown:
		s.PointerDown(in.Inside)
	case FrameScroll:
		s.Scroll(in.DX, in.DY)
	case FrameResize:
		if in.Viewport == nil {
			return "resize requires viewport"
		}
		s.Resize(*in.Viewport)
	case FrameReanchor:
		s.Reanchor(in.Rect)
	case FrameHide:
		s.Hide()
	default:
		return "unknown message type: " + in.Type
	}
	return ""
}
