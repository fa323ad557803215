// Package httputil provides the plumbing behind brooklin's API clients.
//
//   - [Cache]: JSON values over any [cache.Cache] backend, with a fixed TTL
//     and namespaced keys
//   - [Retry]: exponential backoff for transient failures
//
// A client wraps each remote call in both:
//
//	c := httputil.NewCache(backend, 5*time.Minute).Namespace("specials:")
//	var list []specials.Special
//	if ok, _ := c.Get(ctx, "active", &list); !ok {
//	    err := httputil.RetryWithBackoff(ctx, func() error { return fetch(&list) })
//	    ...
//	    _ = c.Set(ctx, "active", list)
//	}
//
// Only errors wrapped with [Retryable] are retried: network failures and
// 5xx responses. A 404 is final.
//
// [cache.Cache]: github.com/brooklinpub/brooklin/pkg/cache.Cache
package httputil
