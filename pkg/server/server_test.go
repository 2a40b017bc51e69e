package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/geom"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ts := httptest.NewServer(New(opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Options{})
	var body map[string]string
	resp := get(t, ts, "/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestLayouts(t *testing.T) {
	ts := newTestServer(t, Options{})

	var body LayoutsResponse
	resp := get(t, ts, "/v1/layouts?count=2&width=1200&height=800", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 3, body.MaxVisible)
	assert.True(t, body.Lookahead)
	assert.Equal(t, "default", body.WidthPolicy)
	require.Len(t, body.Layouts, 3)

	want := []struct {
		x, w    float64
		visible bool
	}{{0, 400, true}, {400, 800, true}, {1200, 400, false}}
	for i, w := range want {
		l := body.Layouts[i]
		assert.Equal(t, geom.Vec(w.x, 0), l.Offset, "offset %d", i)
		assert.Equal(t, geom.Vec(w.w, 800), l.Size, "size %d", i)
		assert.Equal(t, w.visible, l.Visible, "visible %d", i)
	}
	assert.Equal(t, "0.5", body.Layouts[2].Declarations["opacity"])
}

func TestLayoutsOptions(t *testing.T) {
	ts := newTestServer(t, Options{})

	var noLookahead LayoutsResponse
	get(t, ts, "/v1/layouts?count=3&width=1200&height=800&lookahead=false", &noLookahead)
	assert.Len(t, noLookahead.Layouts, 3)
	assert.False(t, noLookahead.Lookahead)

	var equal LayoutsResponse
	get(t, ts, "/v1/layouts?count=2&width=1200&height=800&policy=equal", &equal)
	require.Len(t, equal.Layouts, 3)
	assert.Equal(t, 600.0, equal.Layouts[0].Size.X)
	assert.Equal(t, 600.0, equal.Layouts[1].Size.X)
	assert.Equal(t, "equal", equal.WidthPolicy)
}

func TestViewport(t *testing.T) {
	ts := newTestServer(t, Options{})

	var still ViewportResponse
	get(t, ts, "/v1/viewport?count=3&width=500&height=400", &still)
	assert.Equal(t, 2, still.ActiveIndex)
	assert.Equal(t, geom.Vec(1000, 0), still.Transform.Offset)
	assert.Equal(t, "translate3d(-1000px, 0px, 0)", still.Declarations["transform"])
	assert.Nil(t, still.Transform.Transition)
	assert.NotContains(t, still.Declarations, "transition")

	var moving ViewportResponse
	get(t, ts, "/v1/viewport?count=3&width=500&height=400&animating=true", &moving)
	assert.True(t, moving.Animating)
	require.NotNil(t, moving.Transform.Transition)
	assert.Equal(t, "transform 2000ms ease-out", moving.Declarations["transition"])
}

func TestViewportEmpty(t *testing.T) {
	ts := newTestServer(t, Options{})
	var body ViewportResponse
	resp := get(t, ts, "/v1/viewport?count=0&width=1200&height=800", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, -1, body.ActiveIndex)
	assert.Equal(t, geom.Zero, body.Transform.Offset)
}

func TestCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	ts := newTestServer(t, Options{Cache: fc})

	path := "/v1/layouts?count=4&width=900&height=600"
	first, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	firstBody, _ := io.ReadAll(first.Body)
	first.Body.Close()
	assert.Equal(t, "miss", first.Header.Get(CacheHeader))

	second, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	secondBody, _ := io.ReadAll(second.Body)
	second.Body.Close()
	assert.Equal(t, "hit", second.Header.Get(CacheHeader))
	assert.Equal(t, firstBody, secondBody)

	// A different parameter is a different entry.
	third := get(t, ts, path+"&lookahead=false", nil)
	assert.Equal(t, "miss", third.Header.Get(CacheHeader))
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t, Options{})
	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"missing count", "/v1/layouts?width=1&height=1", 400, "INVALID_COUNT"},
		{"bad count", "/v1/layouts?count=two&width=1&height=1", 400, "INVALID_COUNT"},
		{"negative count", "/v1/layouts?count=-1&width=1&height=1", 400, "INVALID_COUNT"},
		{"missing height", "/v1/viewport?count=1&width=1", 400, "INVALID_SIZE"},
		{"bad width", "/v1/layouts?count=1&width=wide&height=1", 400, "INVALID_SIZE"},
		{"negative width", "/v1/layouts?count=1&width=-5&height=1", 400, "INVALID_SIZE"},
		{"bad flag", "/v1/layouts?count=1&width=1&height=1&lookahead=maybe", 400, "INVALID_INPUT"},
		{"bad policy", "/v1/layouts?count=1&width=1&height=1&policy=golden", 400, "INVALID_POLICY"},
		{"unknown route", "/v2/layouts", 404, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorResponse
			resp := get(t, ts, tt.path, &body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp := get(t, ts, "/healthz", nil)
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
}
