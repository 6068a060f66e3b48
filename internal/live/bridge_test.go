package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/termlens/internal/logging"
	"github.com/ziadkadry99/termlens/internal/overlay"
)

type testPage struct {
	t     *testing.T
	ws    *websocket.Conn
	calls *atomic.Int32
}

func dialPage(t *testing.T, query string) *testPage {
	t.Helper()
	var calls atomic.Int32
	explainer := overlay.ExplainerFunc(func(ctx context.Context, term string) (string, error) {
		calls.Add(1)
		return "Plain words about " + term + ".", nil
	})
	opts := overlay.DefaultOptions()
	opts.SelectionDelay = 10 * time.Millisecond

	r := chi.NewRouter()
	NewBridge(explainer, opts, logging.Discard()).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/overlay/ws" + query
	ws, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { ws.Close() })
	return &testPage{t: t, ws: ws, calls: &calls}
}

func (p *testPage) send(in Inbound) {
	p.t.Helper()
	require.NoError(p.t, p.ws.WriteJSON(in))
}

func (p *testPage) next() Outbound {
	p.t.Helper()
	require.NoError(p.t, p.ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var out Outbound
	require.NoError(p.t, p.ws.ReadJSON(&out))
	return out
}

// nextView skips to the next view frame with the given state.
func (p *testPage) nextView(st overlay.State) overlay.View {
	p.t.Helper()
	for {
		out := p.next()
		if out.Type == FrameView && out.View != nil && out.View.State == st {
			return *out.View
		}
	}
}

var markerRect = &overlay.Rect{Top: 300, Left: 400, Width: 80, Height: 20}

func TestHelloFrame(t *testing.T) {
	p := dialPage(t, "")

	hello := p.next()
	assert.Equal(t, FrameHello, hello.Type)
	assert.NotEmpty(t, hello.SessionID)
	require.NotNil(t, hello.Options)
	assert.Equal(t, "/simplifier/explain", hello.Options.APIEndpoint)
	assert.Equal(t, "main", hello.Options.ContentSelector)
	assert.EqualValues(t, 300, hello.Options.HoverGraceMS)
	assert.EqualValues(t, 10, hello.Options.SelectionDelayMS)
}

func TestHoverShowsExplanation(t *testing.T) {
	p := dialPage(t, "?w=1024&h=768")
	p.next()

	p.send(Inbound{Type: FrameHoverEnter, Text: "Kubernetes", Rect: markerRect})

	loading := p.nextView(overlay.StateLoading)
	assert.Equal(t, "Kubernetes", loading.Term)
	assert.Equal(t, overlay.DefaultLoadingMessage, loading.Content)

	shown := p.nextView(overlay.StateShown)
	assert.Equal(t, "Plain words about Kubernetes.", shown.Content)
	assert.Equal(t, overlay.PlaceAbove, shown.Placement)
	assert.Less(t, shown.Top, markerRect.Top)

	p.send(Inbound{Type: FramePointerDown, Inside: false})
	p.nextView(overlay.StateHidden)
	assert.EqualValues(t, 1, p.calls.Load())
}

func TestSelectionThenPointerUp(t *testing.T) {
	p := dialPage(t, "")
	p.next()

	p.send(Inbound{Type: FrameSelection, Text: "Docker", Rect: markerRect})
	p.send(Inbound{Type: FramePointerUp})

	shown := p.nextView(overlay.StateShown)
	assert.Equal(t, "Docker", shown.Term)
	assert.Equal(t, "Plain words about Docker.", shown.Content)
}

func TestScrollRepositions(t *testing.T) {
	p := dialPage(t, "")
	p.next()

	p.send(Inbound{Type: FrameHoverEnter, Text: "API", Rect: markerRect})
	before := p.nextView(overlay.StateShown)

	p.send(Inbound{Type: FrameScroll, DY: 100})
	after := p.nextView(overlay.StateShown)
	assert.InDelta(t, before.Top-100, after.Top, 0.001)
}

func TestReanchorNilHides(t *testing.T) {
	p := dialPage(t, "")
	p.next()

	p.send(Inbound{Type: FrameHoverEnter, Text: "API", Rect: markerRect})
	p.nextView(overlay.StateShown)

	p.send(Inbound{Type: FrameReanchor})
	p.nextView(overlay.StateHidden)
}

func TestMalformedFrames(t *testing.T) {
	p := dialPage(t, "")
	p.next()

	require.NoError(t, p.ws.WriteMessage(websocket.TextMessage, []byte("{not json")))
	out := p.next()
	assert.Equal(t, FrameError, out.Type)
	assert.Equal(t, "invalid message format", out.Message)

	p.send(Inbound{Type: "teleport"})
	out = p.next()
	assert.Equal(t, FrameError, out.Type)
	assert.Contains(t, out.Message, "teleport")

	p.send(Inbound{Type: FrameHoverEnter, Text: "API"})
	out = p.next()
	assert.Equal(t, "hover_enter requires rect", out.Message)

	p.send(Inbound{Type: FrameResize})
	out = p.next()
	assert.Equal(t, "resize requires viewport", out.Message)
}

func TestEstimateSize(t *testing.T) {
	short := estimateSize("Hi")
	assert.InDelta(t, 2*charWidth+2*padding, short.Width, 0.001)
	assert.InDelta(t, lineHeight+2*padding, short.Height, 0.001)

	long := estimateSize(strings.Repeat("x", 200))
	assert.InDelta(t, maxWidth, long.Width, 0.001)
	assert.Greater(t, long.Height, short.Height)
}

func TestViewportFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/overlay/ws?w=800&h=-1", nil)
	assert.Equal(t, overlay.Viewport{Width: 800, Height: defaultViewport.Height}, viewportFromQuery(r))
}

func TestRenderKeepsNewestViewWhenPageLags(t *testing.T) {
	c := &conn{out: make(chan Outbound, outboxSize), logger: logging.Discard()}
	for range outboxSize {
		c.Render(overlay.View{State: overlay.StateLoading, Term: "A", Content: "loading"})
	}
	c.Render(overlay.View{State: overlay.StateShown, Term: "B", Content: "final B"})
	c.sendError("dropped while full")
	require.Len(t, c.out, outboxSize)

	var last Outbound
	for range outboxSize {
		last = <-c.out
	}
	require.Equal(t, FrameView, last.Type)
	assert.Equal(t, "B", last.View.Term)
	assert.Equal(t, "final B", last.View.Content)
	assert.Equal(t, overlay.StateShown, last.View.State)
}
