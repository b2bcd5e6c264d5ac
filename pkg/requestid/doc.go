// Package requestid tags every request with a correlation id.
//
// The middleware reuses a client supplied X-Request-ID when it is at most 128
// characters of letters, digits, underscores and dashes. Otherwise it
// generates a UUIDv4. The id is stored in the request context and echoed in
// the response header. LoggerExtractor adds it to log records as
// "request_id".
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
