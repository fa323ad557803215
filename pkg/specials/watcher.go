package specials

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPollInterval is used when NewWatcher gets a non-positive interval.
const DefaultPollInterval = time.Minute

// Source is the part of [Client] the watcher needs.
type Source interface {
	Active(ctx context.Context, refresh bool) ([]Special, error)
}

// Watcher polls a Source and publishes a new-special event for every special
// it has not seen before, and an ended event when a seen special drops out
// of the active list.
type Watcher struct {
	src      Source
	bus      *Bus
	interval time.Duration
	logger   *log.Logger
	seen     map[string]Special
}

// NewWatcher creates a watcher publishing to bus. A nil logger discards output.
func NewWatcher(src Source, bus *Bus, interval time.Duration, logger *log.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Watcher{
		src:      src,
		bus:      bus,
		interval: interval,
		logger:   logger,
		seen:     make(map[string]Special),
	}
}

// Run polls immediately and then once per interval until ctx is cancelled.
// Poll errors are logged and do not stop the watcher. Run returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Poll(ctx); err != nil && ctx.Err() == nil {
			w.logger.Warn("poll specials", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll fetches the active specials once, bypassing the cache, publishes the
// differences against the previous poll and returns the newly seen specials.
func (w *Watcher) Poll(ctx context.Context) ([]Special, error) {
	list, err := w.src.Active(ctx, true)
	if err != nil {
		return nil, err
	}

	current := make(map[string]bool, len(list))
	var fresh []Special
	for _, s := range list {
		current[s.ID] = true
		if _, ok := w.seen[s.ID]; ok {
			continue
		}
		w.seen[s.ID] = s
		fresh = append(fresh, s)
		w.logger.Debug("new special", "id", s.ID, "title", s.Title)
		w.bus.Publish(Event{Type: EventNew, Special: s})
	}

	var ended []string
	for id := range w.seen {
		if !current[id] {
			ended = append(ended, id)
		}
	}
	slices.Sort(ended)
	for _, id := range ended {
		s := w.seen[id]
		delete(w.seen, id)
		w.logger.Debug("special ended", "id", id)
		w.bus.Publish(Event{Type: EventEnded, Special: s})
	}
	return fresh, nil
}
