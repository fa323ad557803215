package specials

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu      sync.Mutex
	batches [][]Special
	err     error
	calls   int
}

func (s *stubSource) Active(context.Context, bool) ([]Special, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.batches) == 0 {
		return nil, nil
	}
	b := s.batches[0]
	if len(s.batches) > 1 {
		s.batches = s.batches[1:]
	}
	return b, nil
}

func TestWatcherPoll(t *testing.T) {
	src := &stubSource{batches: [][]Special{
		{{ID: "1"}, {ID: "2"}},
		{{ID: "2"}, {ID: "3"}},
	}}
	bus := NewBus()
	var events []Event
	bus.Subscribe(func(e Event) { events = append(events, e) })

	w := NewWatcher(src, bus, time.Hour, nil)
	ctx := context.Background()

	fresh, err := w.Poll(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	fresh, err = w.Poll(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "3", fresh[0].ID)

	var got []string
	for _, e := range events {
		got = append(got, string(e.Type)+":"+e.Special.ID)
	}
	assert.Equal(t, []string{"new:1", "new:2", "new:3", "ended:1"}, got)
}

func TestWatcherPollError(t *testing.T) {
	src := &stubSource{err: errors.New("down")}
	w := NewWatcher(src, NewBus(), 0, nil)
	assert.Equal(t, DefaultPollInterval, w.interval)

	_, err := w.Poll(context.Background())
	assert.Error(t, err)
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	src := &stubSource{batches: [][]Special{{{ID: "1"}}}}
	bus := NewBus()
	published := make(chan Event, 1)
	bus.Subscribe(func(e Event) { published <- e })

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(src, bus, time.Hour, nil)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case e := <-published:
		assert.Equal(t, "1", e.Special.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not poll immediately")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
