package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooklinpub/brooklin/pkg/cache"
	"github.com/brooklinpub/brooklin/pkg/specials"
)

type stubSpecials struct {
	list []specials.Special
	err  error
}

func (s stubSpecials) Active(context.Context, bool) ([]specials.Special, error) {
	return s.list, s.err
}

type placementBody struct {
	Device     string `json:"device"`
	Size       float64
	Placements []struct {
		Index int     `json:"index"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Label string  `json:"label"`
		URL   string  `json:"url"`
	} `json:"placements"`
}

func newServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newServer(t, Options{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newServer(t, Options{}).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestPlacementsJSON(t *testing.T) {
	rec := get(t, newServer(t, Options{}), "/placements?count=3&width=800&height=600")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body placementBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "desktop", body.Device)
	require.Len(t, body.Placements, 3)
	for i, p := range body.Placements {
		assert.Equal(t, i+1, p.Index)
		assert.GreaterOrEqual(t, p.X, 36.0)
		assert.LessOrEqual(t, p.X, 800-36.0)
	}
}

func TestPlacementsSVG(t *testing.T) {
	rec := get(t, newServer(t, Options{}), "/placements?count=2&width=400&height=300&format=svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `data-index="2"`)
}

func TestPlacementsCached(t *testing.T) {
	mem, err := cache.NewMemoryCache(16)
	require.NoError(t, err)
	s := newServer(t, Options{Cache: mem, TTL: time.Minute})

	first := get(t, s, "/placements?count=4&width=1024&height=768")
	second := get(t, s, "/placements?count=4&width=1024&height=768")
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	third := get(t, s, "/placements?count=4&width=1024&height=768&format=svg")
	assert.Equal(t, "miss", third.Header().Get("X-Cache"), "format is part of the key")
}

func TestPlacementsBadRequest(t *testing.T) {
	s := newServer(t, Options{})
	for _, q := range []string{
		"",
		"count=0&width=800&height=600",
		"count=abc&width=800&height=600",
		"count=999&width=800&height=600",
		"count=3&width=-1&height=600",
		"count=3&width=800",
		"count=3&width=800&height=600&format=png",
	} {
		rec := get(t, s, "/placements?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestPlacementsViewportTooSmall(t *testing.T) {
	rec := get(t, newServer(t, Options{}), "/placements?count=3&width=60&height=60")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlacementsLabelledBySpecials(t *testing.T) {
	s := newServer(t, Options{Specials: stubSpecials{list: []specials.Special{
		{ID: "7", Title: "Pie Night", Active: true},
	}}})
	rec := get(t, s, "/placements?count=2&width=800&height=600")
	require.Equal(t, http.StatusOK, rec.Code)

	var body placementBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Placements, 2)
	assert.Equal(t, "Pie Night", body.Placements[0].Label)
	assert.Equal(t, "/specials/7", body.Placements[0].URL)
	assert.Empty(t, body.Placements[1].Label)
}

func TestPlacementsSpecialsFailureDegrades(t *testing.T) {
	s := newServer(t, Options{Specials: stubSpecials{err: errors.New("down")}})
	rec := get(t, s, "/placements?count=2&width=800&height=600")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActiveSpecials(t *testing.T) {
	rec := get(t, newServer(t, Options{}), "/specials/active")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s := newServer(t, Options{Specials: stubSpecials{list: []specials.Special{{ID: "1", Title: "Quiz"}}}})
	rec = get(t, s, "/specials/active")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Quiz"`)

	s = newServer(t, Options{Specials: stubSpecials{err: errors.New("down")}})
	rec = get(t, s, "/specials/active")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNewRejectsBadPath(t *testing.T) {
	_, err := New(Options{Path: "M0,0 A5,5 0 0 1 10,10"})
	assert.Error(t, err)
}

func TestListenAndServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := newServer(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
}
