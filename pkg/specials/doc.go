// Package specials talks to the pub's specials API and announces new
// specials to in-process subscribers.
//
// # Client
//
// [Client] wraps the three read endpoints:
//
//	GET /specials         all specials
//	GET /specials/active  specials running right now
//	GET /specials/{id}    one special
//
// Responses are cached for the TTL of the [httputil.Cache] passed to
// [NewClient]; pass refresh=true to bypass it. Network failures and 5xx
// responses are retried with backoff, a 404 maps to [ErrNotFound].
//
// # Bus and Watcher
//
// [Bus] is an explicit publish/subscribe registry. Subscribers receive
// every [Event] published after they subscribe, in subscription order, and
// unsubscribe with the id Subscribe returned.
//
// [Watcher] polls the active endpoint on a ticker and publishes an
// [EventNew] for every special it has not seen before:
//
//	bus := specials.NewBus()
//	bus.Subscribe(func(e specials.Event) { fmt.Println("new:", e.Special.Title) })
//	w := specials.NewWatcher(client, bus, time.Minute, logger)
//	err := w.Run(ctx) // returns when ctx is cancelled
//
// [httputil.Cache]: github.com/brooklinpub/brooklin/pkg/httputil.Cache
package specials
