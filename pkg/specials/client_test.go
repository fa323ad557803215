package specials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooklinpub/brooklin/pkg/cache"
	bkerrors "github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/httputil"
)

type fakeAPI struct {
	hits    atomic.Int32
	failFor atomic.Int32
	list    []Special
}

func (a *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.hits.Add(1)
	if a.failFor.Load() > 0 {
		a.failFor.Add(-1)
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	switch r.URL.Path {
	case "/specials":
		_ = json.NewEncoder(w).Encode(a.list)
	case "/specials/active":
		var active []Special
		for _, s := range a.list {
			if s.Active {
				active = append(active, s)
			}
		}
		_ = json.NewEncoder(w).Encode(active)
	default:
		id := r.URL.Path[len("/specials/"):]
		for _, s := range a.list {
			if s.ID == id {
				_ = json.NewEncoder(w).Encode(s)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	mem, err := cache.NewMemoryCache(64)
	require.NoError(t, err)
	c, err := NewClient(srv.URL+"/", httputil.NewCache(mem, time.Hour))
	require.NoError(t, err)
	c.http = srv.Client()
	c.retry = func(ctx context.Context, fn func() error) error {
		return httputil.Retry(ctx, 3, time.Millisecond, fn)
	}
	return c
}

func sampleAPI() *fakeAPI {
	return &fakeAPI{list: []Special{
		{ID: "1", Title: "Pie Night", Price: 12.5, Active: true},
		{ID: "2", Title: "Quiz", Active: false},
		{ID: "3", Title: "Oyster Hour", Active: true},
	}}
}

func TestNewClientValidatesURL(t *testing.T) {
	_, err := NewClient("ftp://example.com", nil)
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidInput))

	c, err := NewClient("https://api.example.com///", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", c.BaseURL())
}

func TestClientList(t *testing.T) {
	api := sampleAPI()
	c := newTestClient(t, api)

	list, err := c.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Pie Night", list[0].Title)
	assert.Equal(t, 12.5, list[0].Price)
}

func TestClientActive(t *testing.T) {
	c := newTestClient(t, sampleAPI())

	list, err := c.Active(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "3", list[1].ID)
}

func TestClientGet(t *testing.T) {
	c := newTestClient(t, sampleAPI())
	ctx := context.Background()

	s, err := c.Get(ctx, "3", false)
	require.NoError(t, err)
	assert.Equal(t, "Oyster Hour", s.Title)

	_, err = c.Get(ctx, "99", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Get(ctx, "../admin", false)
	assert.True(t, bkerrors.Is(err, bkerrors.ErrCodeInvalidInput))
}

func TestClientCaches(t *testing.T) {
	api := sampleAPI()
	c := newTestClient(t, api)
	ctx := context.Background()

	_, err := c.List(ctx, false)
	require.NoError(t, err)
	_, err = c.List(ctx, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, api.hits.Load(), "second call should be served from cache")

	_, err = c.List(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, api.hits.Load(), "refresh should bypass cache")
}

func TestClientRetriesServerErrors(t *testing.T) {
	api := sampleAPI()
	api.failFor.Store(2)
	c := newTestClient(t, api)

	list, err := c.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.EqualValues(t, 3, api.hits.Load())
}

func TestClientGivesUpAfterRetries(t *testing.T) {
	api := sampleAPI()
	api.failFor.Store(10)
	c := newTestClient(t, api)

	_, err := c.List(context.Background(), false)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.EqualValues(t, 3, api.hits.Load())
}

func TestCheckStatus(t *testing.T) {
	assert.NoError(t, checkStatus(http.StatusOK))
	assert.ErrorIs(t, checkStatus(http.StatusNotFound), ErrNotFound)
	assert.True(t, httputil.IsRetryable(checkStatus(http.StatusServiceUnavailable)))

	err := checkStatus(http.StatusForbidden)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.False(t, httputil.IsRetryable(err))
}
