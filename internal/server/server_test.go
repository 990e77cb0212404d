package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	"github.com/alexisbeaulieu97/qdxstudio/internal/theme"
)

const boxDocument = `{
  "display": "BOX",
  "image": {"url": "https://cdn.example.com/a.png"},
  "text": {"title": "Hi", "body": "There"},
  "buttons": {"items": [
    {"text": "One", "url": "https://one.example.com"},
    {"text": "Two", "url": "https://two.example.com", "target": "new"}
  ]}
}`

func newTestServer(t *testing.T, inbound InboundHandler) *Server {
	t.Helper()
	s := New(Options{
		Page:    preview.NewPage([]string{"https://cdn.example.com/sdk.js"}),
		Inbound: inbound,
		Logger:  logger.Nop(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s.RunHub(ctx)
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSurfacePage(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, nil), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), "https://cdn.example.com/sdk.js")
}

func TestCatalogEndpoint(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, catalog.SourceBuiltin, resp.Source)
	require.Len(t, resp.Displays, 4)
	require.Equal(t, []catalog.Slot{catalog.SlotText}, resp.Displays[3].Slots)
	require.Equal(t, catalog.Builtin(), resp.Codes)
}

func TestThemesEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/api/themes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []theme.Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 16)

	rec = do(t, s, http.MethodGet, "/api/themes?display=star", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Equal(t, []theme.Row{{Display: catalog.Star, Key: "msg", Resolution: theme.Resolution{Theme: "T16", Code: "M8", CSSClass: "qdx_theme4-1"}}}, rows)

	rec = do(t, s, http.MethodGet, "/api/themes?display=FOO", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayloadEndpoint(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/payload", boxDocument)
	require.Equal(t, http.StatusOK, rec.Code)

	var pl payload.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pl))
	require.Equal(t, "T9", pl.Theme)
	require.Equal(t, "M7", pl.Template)
	require.Equal(t, []theme.Tag{theme.TagImages, theme.TagMsg, theme.TagButtons2}, pl.Show)
	require.Len(t, pl.Buttons, 2)
	require.Equal(t, "B", pl.Buttons[1].LinkOpt)
}

func TestPayloadEndpointRejectsBadInput(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/api/payload", "{")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/payload", `{"display":"BOX","location":"LEFT"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), `"field":"location"`)

	strictDoc := `{"display":"BOX","text":{"enabled":true}}`
	rec = do(t, s, http.MethodPost, "/api/payload", strictDoc)
	require.Equal(t, http.StatusOK, rec.Code, "live preview ignores submit rules")
	rec = do(t, s, http.MethodPost, "/api/payload?strict=true", strictDoc)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), `"field":"text.title"`)
}

func TestHTMLEndpoint(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/html?id=m-42", boxDocument)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Contains(t, rec.Body.String(), `"m-42"`)
	require.Contains(t, rec.Body.String(), `"theme":"T9"`)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodOptions, "/api/payload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	newTestServer(t, nil).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebsocketBroadcastAndInbound(t *testing.T) {
	t.Parallel()

	inbound := make(chan preview.Message, 4)
	s := newTestServer(t, func(_ context.Context, m preview.Message) error {
		inbound <- m
		return nil
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + SocketPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return s.Hub().Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	ready, err := preview.Encode(preview.SurfaceReady{})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, ready))
	select {
	case m := <-inbound:
		require.Equal(t, preview.SurfaceReady{}, m)
	case <-time.After(2 * time.Second):
		t.Fatal("inbound message not delivered")
	}

	require.NoError(t, s.Hub().Send(context.Background(), preview.TodayOptionChanged{Checked: true}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	msg, err := preview.Decode(data)
	require.NoError(t, err)
	require.Equal(t, preview.TodayOptionChanged{Checked: true}, msg)
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	s := New(Options{Addr: "127.0.0.1:0", Logger: logger.Nop()})
	require.Equal(t, "127.0.0.1:0", s.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
