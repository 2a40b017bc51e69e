package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/layout"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/viewport"
)

// CacheHeader reports whether a response came from the cache ("hit") or was
// computed ("miss").
const CacheHeader = "X-Cache"

// Panel is one layout with its rendered style declarations.
type Panel struct {
	layout.Layout
	Declarations map[string]string `json:"declarations"`
}

// LayoutsResponse is the body of GET /v1/layouts.
type LayoutsResponse struct {
	Count         int          `json:"count"`
	ContainerSize geom.Vector2 `json:"container_size"`
	MaxVisible    int          `json:"max_visible"`
	Lookahead     bool         `json:"lookahead"`
	WidthPolicy   string       `json:"width_policy"`
	Layouts       []Panel      `json:"layouts"`
}

// ViewportResponse is the body of GET /v1/viewport.
type ViewportResponse struct {
	Count         int                `json:"count"`
	ActiveIndex   int                `json:"active_index"`
	ContainerSize geom.Vector2       `json:"container_size"`
	Animating     bool               `json:"animating"`
	Transform     viewport.Transform `json:"transform"`
	Declarations  map[string]string  `json:"declarations"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type request struct {
	count         int
	width, height float64
	lookahead     bool
	animating     bool
	policy        string
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := s.opts.Keyer.LayoutKey(req.layoutKey(s.opts.MinPanelWidth))
	s.serveCached(w, r, key, func(ctx context.Context) any {
		start := time.Now()
		params := s.params(req)
		layouts := layout.Compute(params)
		maxVisible := layout.MaxVisible(req.width, params.MinWidthFunc)
		observability.Layout().OnLayoutComputed(ctx, req.count, maxVisible, time.Since(start))

		panels := make([]Panel, len(layouts))
		for i, l := range layouts {
			panels[i] = Panel{Layout: l, Declarations: l.Style.Declarations()}
		}
		return LayoutsResponse{
			Count:         req.count,
			ContainerSize: geom.Vec(req.width, req.height),
			MaxVisible:    maxVisible,
			Lookahead:     req.lookahead,
			WidthPolicy:   req.policy,
			Layouts:       panels,
		}
	})
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := s.opts.Keyer.ViewportKey(cache.ViewportKeyOpts{
		LayoutKeyOpts: req.layoutKey(s.opts.MinPanelWidth),
		Animating:     req.animating,
		Duration:      s.opts.AnimationDuration.Milliseconds(),
	})
	s.serveCached(w, r, key, func(ctx context.Context) any {
		size := geom.Vec(req.width, req.height)
		layouts := layout.Compute(s.params(req))
		active := req.count - 1
		t := viewport.Render(viewport.Offset(layouts, active, size), req.animating, s.opts.AnimationDuration)
		return ViewportResponse{
			Count:         req.count,
			ActiveIndex:   active,
			ContainerSize: size,
			Animating:     req.animating,
			Transform:     t,
			Declarations:  t.Declarations(),
		}
	})
}

// serveCached writes the cached body for key, or computes, stores and writes
// it. Cache failures are logged and otherwise ignored.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string, compute func(context.Context) any) {
	ctx := r.Context()
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		w.Header().Set(CacheHeader, "hit")
		writeRaw(w, http.StatusOK, data)
		return
	}

	data, err = json.Marshal(compute(ctx))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.opts.TTL); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
	w.Header().Set(CacheHeader, "miss")
	writeRaw(w, http.StatusOK, data)
}

func (s *Server) parseRequest(r *http.Request) (request, error) {
	q := r.URL.Query()
	req := request{lookahead: true, policy: s.opts.WidthPolicy}

	raw := q.Get("count")
	if raw == "" {
		return req, errors.New(errors.ErrCodeInvalidCount, "count is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return req, errors.New(errors.ErrCodeInvalidCount, "count must be an integer: %q", raw)
	}
	req.count = n
	if err := errors.ValidateElementCount(n); err != nil {
		return req, err
	}

	for _, dim := range []struct {
		name string
		dst  *float64
	}{{"width", &req.width}, {"height", &req.height}} {
		raw := q.Get(dim.name)
		if raw == "" {
			return req, errors.New(errors.ErrCodeInvalidSize, "%s is required", dim.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidSize, "%s must be a number: %q", dim.name, raw)
		}
		*dim.dst = v
	}
	if err := errors.ValidateContainerSize(req.width, req.height); err != nil {
		return req, err
	}

	for _, flag := range []struct {
		name string
		dst  *bool
	}{{"lookahead", &req.lookahead}, {"animating", &req.animating}} {
		raw := q.Get(flag.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false: %q", flag.name, raw)
		}
		*flag.dst = v
	}

	if p := q.Get("policy"); p != "" {
		req.policy = p
	}
	if _, ok := layout.WidthPolicies[req.policy]; !ok {
		return req, errors.New(errors.ErrCodeInvalidPolicy, "unknown width policy %q", req.policy)
	}
	return req, nil
}

func (s *Server) params(req request) layout.Params {
	return layout.Params{
		ElementCount:  req.count,
		ContainerSize: geom.Vec(req.width, req.height),
		WidthFunc:     layout.WidthPolicies[req.policy],
		MinWidthFunc:  layout.MinWidthAtLeast(s.opts.MinPanelWidth),
		NoLookahead:   !req.lookahead,
	}
}

func (req request) layoutKey(minWidth float64) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Count:       req.count,
		Width:       req.width,
		Height:      req.height,
		NoLookahead: !req.lookahead,
		WidthPolicy: req.policy,
		MinWidth:    minWidth,
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeJSON(w, status, errorResponse{Code: string(errors.GetCode(err)), Error: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
