// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// Only the headers passed by the caller are trusted; pass none when the
// server faces clients directly, since any client can forge them.
//
//	r.Use(clientip.Middleware(clientip.DefaultHeaders...))
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
