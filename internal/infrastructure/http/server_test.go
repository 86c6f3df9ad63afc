package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/metrics"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/adapters/store"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/knowledge"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/usecases"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	opts.Mode = "test"

	reg := prometheus.NewRegistry()
	opts.Gatherer = reg

	uc := usecases.NewQueryUseCase(store.NewInMemoryStore(knowledge.Default()), metrics.NewRecorder(reg))
	return NewServer(uc, opts)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleQuery_JSON(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"Hello there!"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp queryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, knowledge.Default().Entry(0).Answer, resp.Answer)
	assert.Equal(t, "greeting", resp.Topic)
	assert.False(t, resp.Fallback)
	assert.NotEmpty(t, resp.ID)
	assert.Contains(t, resp.HTML, "<strong>Hello!</strong>")
}

func TestHandleQuery_EmptyQueryFallsBack(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp queryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, knowledge.FallbackText, resp.Answer)
	assert.True(t, resp.Fallback)
}

func TestHandleQuery_MalformedJSON(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleQuery_FormReturnsEscapedFragment(t *testing.T) {
	s := newTestServer(t, Options{})

	form := url.Values{"query": {"<b>hello</b>"}}
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<div class="message user">&lt;b&gt;hello&lt;/b&gt;</div>`)
	assert.Contains(t, body, "<strong>Hello!</strong>")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
}

func TestHandleQuery_CanceledRequest(t *testing.T) {
	s := newTestServer(t, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"hello"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := serve(s, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// readEvents decodes the data lines of an SSE body.
func readEvents(t *testing.T, body string) []map[string]any {
	t.Helper()
	var events []map[string]any
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestHandleQueryStream_StreamsFullAnswer(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/query/stream?q="+url.QueryEscape("what is this app"), nil)
	w := serve(s, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"), w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	events := readEvents(t, w.Body.String())
	require.NotEmpty(t, events)

	var sb strings.Builder
	for _, ev := range events[:len(events)-1] {
		assert.Equal(t, false, ev["done"])
		sb.WriteString(ev["content"].(string))
	}
	assert.Equal(t, knowledge.Default().Entry(1).Answer, sb.String())

	last := events[len(events)-1]
	assert.Equal(t, true, last["done"])
	assert.Equal(t, "about", last["topic"])
	assert.Contains(t, last["html"], "<strong>AssessIQ</strong>")
}

func TestHandleQueryStream_DelayDoesNotChangeAnswer(t *testing.T) {
	fast := newTestServer(t, Options{})
	slow := newTestServer(t, Options{TypingDelay: time.Millisecond})

	target := "/api/query/stream?q=" + url.QueryEscape("thanks a lot")
	a := readEvents(t, serve(fast, httptest.NewRequest(http.MethodGet, target, nil)).Body.String())
	b := readEvents(t, serve(slow, httptest.NewRequest(http.MethodGet, target, nil)).Body.String())

	require.Equal(t, len(a), len(b))
	assert.Equal(t, a[len(a)-1]["html"], b[len(b)-1]["html"])
}

func TestHandleQueryStream_EmptyQueryFallsBack(t *testing.T) {
	s := newTestServer(t, Options{})

	events := readEvents(t, serve(s, httptest.NewRequest(http.MethodGet, "/api/query/stream", nil)).Body.String())
	require.NotEmpty(t, events)
	assert.Equal(t, true, events[len(events)-1]["fallback"])
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Options{})

	w := serve(s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(knowledge.Default().Len()), body["entries"])
}

func TestHandleIndex(t *testing.T) {
	s := newTestServer(t, Options{})

	w := serve(s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AssessIQ Help Desk")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	serve(s, req)

	w := serve(s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `helpdesk_matches_total{outcome="matched",topic="greeting"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := serve(s, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGzip(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := serve(s, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	page, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(page), "AssessIQ Help Desk")

	req = httptest.NewRequest(http.MethodGet, "/api/query/stream?q=hello", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = serve(s, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.NotEmpty(t, readEvents(t, w.Body.String()))
}
