// Package session keeps per-client state on the server. It backs the view
// preferences recorded by format negotiation and anything else a handler
// wants to remember between requests.
//
// A Manager combines a Transport, which carries the session token (an
// encrypted cookie by default, or a header), with a Store, which persists the
// session itself. MemoryStore suits single instances and tests; RedisStore
// shares sessions between instances and lets Redis expire them.
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions := session.New(
//		session.WithCookieManager(cookies),
//		session.WithStore(session.NewRedisStore(redisClient)),
//	)
//	defer sessions.Close()
//
//	r.Use(sessions.EnsureSession)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		_ = sessions.Update(r.Context(), w, r, func(s *session.Session) {
//			s.Set("mobile_view", false)
//		})
//	}
//
// Sessions expire after an idle timeout, capped by a maximum lifetime
// counted from creation. Activity updates are applied by a background worker
// so that reading a session never blocks on a write.
package session
