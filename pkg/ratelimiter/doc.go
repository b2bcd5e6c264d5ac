// Package ratelimiter implements token bucket rate limiting with an
// in-memory store and HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token; a request arriving at an
// empty bucket is denied without draining it further.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(bucket, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	})).Post("/view/{format}", update)
//
// Middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every checked response, plus Retry-After when a
// request is denied. Use WithLimitedHandler to render the denial through
// the application's error pages.
package ratelimiter
