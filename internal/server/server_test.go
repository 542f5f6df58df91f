package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tasneemkhan/portfolio/internal/content"
	"github.com/tasneemkhan/portfolio/internal/view"
	"github.com/tasneemkhan/portfolio/internal/visitors"
)

type recordingTracker struct {
	mu   sync.Mutex
	hits []visitors.Hit
}

func (r *recordingTracker) Track(h visitors.Hit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = append(r.hits, h)
	return true
}

func (r *recordingTracker) Hits() []visitors.Hit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]visitors.Hit(nil), r.hits...)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T, tracker HitTracker) *Server {
	t.Helper()
	tables, err := content.Load()
	require.NoError(t, err)
	return newServerFor(t, tables, Options{ShutdownTimeout: time.Second}, tracker, nil)
}

func newServerFor(t *testing.T, tables content.Tables, opts Options, tracker HitTracker, logger *zap.Logger) *Server {
	t.Helper()
	renderer, err := view.New(tables, view.Options{Interactive: true, EventPath: EventPath})
	require.NoError(t, err)
	srv, err := New(opts, renderer, tracker, logger)
	require.NoError(t, err)
	return srv
}

func postEvent(t *testing.T, srv *Server, action string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, EventPath+"/"+action, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	body := w.Body.String()
	for _, id := range []string{"home", "about", "skills", "projects", "experience", "contact"} {
		assert.Contains(t, body, `<section id="`+id+`"`)
	}
	assert.Contains(t, body, `<input type="hidden" name="active" value="home">`)
	assert.Contains(t, body, "-translate-y-full")
	assert.Contains(t, body, `href="mailto:alex@example.com"`)
}

func TestSelectEvent(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, target := range []string{"home", "about", "skills", "projects", "experience", "contact"} {
		t.Run(target, func(t *testing.T) {
			w := postEvent(t, srv, "select", url.Values{
				"active": {"contact"},
				"menu":   {"true"},
				"loaded": {"true"},
				"target": {target},
			})
			require.Equal(t, http.StatusOK, w.Code)

			body := w.Body.String()
			assert.True(t, strings.HasPrefix(strings.TrimSpace(body), `<nav id="site-nav"`))
			assert.Contains(t, body, `data-active="`+target+`"`)
			assert.Contains(t, body, `<input type="hidden" name="active" value="`+target+`">`)
			assert.Contains(t, body, `<input type="hidden" name="menu" value="false">`)
			assert.Contains(t, body, `<input type="hidden" name="loaded" value="true">`)
			assert.NotContains(t, body, `id="mobile-menu"`)
			assert.Contains(t, body, `data-section="`+target+`" class="nav-item hover:text-blue-400 transition-colors duration-300 text-blue-400"`)
		})
	}
}

func TestToggleMenuEvent(t *testing.T) {
	srv := newTestServer(t, nil)
	state := url.Values{"active": {"about"}, "menu": {"false"}, "loaded": {"true"}}

	w := postEvent(t, srv, "toggle-menu", state)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="mobile-menu"`)
	assert.Contains(t, w.Body.String(), `<input type="hidden" name="menu" value="true">`)
	assert.Contains(t, w.Body.String(), `data-active="about"`)

	state.Set("menu", "true")
	w = postEvent(t, srv, "toggle-menu", state)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `id="mobile-menu"`)
	assert.Contains(t, w.Body.String(), `<input type="hidden" name="menu" value="false">`)
}

func TestMountedEvent(t *testing.T) {
	srv := newTestServer(t, nil)

	w := postEvent(t, srv, "mounted", url.Values{"active": {"home"}, "menu": {"false"}, "loaded": {"false"}})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<input type="hidden" name="loaded" value="true">`)
	assert.Contains(t, body, `<input type="hidden" name="active" value="home">`)
	assert.Contains(t, body, `<div id="hero-content" hx-swap-oob="true"`)
	assert.NotContains(t, body, `hx-trigger="load"`)
}

func TestEventRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		action string
		form   url.Values
	}{
		{name: "missing state", action: "toggle-menu", form: url.Values{}},
		{name: "unknown active", action: "toggle-menu", form: url.Values{"active": {"blog"}}},
		{name: "unknown target", action: "select", form: url.Values{"active": {"home"}, "target": {"blog"}}},
		{name: "unknown action", action: "scroll", form: url.Values{"active": {"home"}}},
		{name: "bad bool", action: "toggle-menu", form: url.Values{"active": {"home"}, "menu": {"maybe"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postEvent(t, srv, tt.action, tt.form)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/static/site.css", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".section-title")
}

func TestRequestIDPropagated(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestVisitorTracking(t *testing.T) {
	tracker := &recordingTracker{}
	srv := newTestServer(t, tracker)

	do := func(method, path string, header map[string]string) {
		var req *http.Request
		if method == http.MethodPost {
			req = httptest.NewRequest(method, path, strings.NewReader("active=home"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		for k, v := range header {
			req.Header.Set(k, v)
		}
		srv.Handler().ServeHTTP(httptest.NewRecorder(), req)
	}

	do(http.MethodGet, "/", map[string]string{"User-Agent": "test-agent"})
	do(http.MethodGet, "/", map[string]string{"DNT": "1"})
	do(http.MethodGet, "/static/site.css", nil)
	do(http.MethodGet, "/healthz", nil)
	do(http.MethodPost, EventPath+"/toggle-menu", nil)
	do(http.MethodGet, "/no-such-page", nil)

	hits := tracker.Hits()
	require.Len(t, hits, 1)
	assert.Equal(t, "/", hits[0].Path)
	assert.Equal(t, "test-agent", hits[0].UserAgent)
	assert.NotEmpty(t, hits[0].IP)
}

func TestRunStopsOnCancel(t *testing.T) {
	tables, err := content.Load()
	require.NoError(t, err)
	srv := newServerFor(t, tables, Options{Port: 0, ShutdownTimeout: time.Second}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRenderFailureIs500(t *testing.T) {
	tables, err := content.Load()
	require.NoError(t, err)
	tables.Skills[0].Icon = "rocket"

	core, logs := observer.New(zapcore.InfoLevel)
	srv := newServerFor(t, tables, Options{}, nil, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].ContextMap()["errors"], "rocket")
}

func TestNewRejectsBadTrustedProxy(t *testing.T) {
	tables, err := content.Load()
	require.NoError(t, err)
	renderer, err := view.New(tables, view.Options{Interactive: true})
	require.NoError(t, err)

	_, err = New(Options{TrustedProxies: []string{"not-an-ip"}}, renderer, nil, nil)
	assert.Error(t, err)
}

func TestVisitorTrackingClientIP(t *testing.T) {
	tables, err := content.Load()
	require.NoError(t, err)

	get := func(srv *Server) visitors.Hit {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:4242"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		srv.Handler().ServeHTTP(httptest.NewRecorder(), req)
		return srv.tracker.(*recordingTracker).Hits()[0]
	}

	direct := newServerFor(t, tables, Options{}, &recordingTracker{}, nil)
	assert.Equal(t, "192.0.2.1", get(direct).IP)

	proxied := newServerFor(t, tables, Options{TrustedProxies: []string{"192.0.2.0/24"}}, &recordingTracker{}, nil)
	assert.Equal(t, "203.0.113.9", get(proxied).IP)
}
