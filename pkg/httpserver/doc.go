// Package httpserver runs an http.Handler with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(sessions.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns when ctx ends or the process receives SIGINT or SIGTERM.
// Shutdown waits up to the shutdown timeout for in-flight requests and then
// runs the WithOnShutdown hooks.
//
// LivenessHandler and ReadinessHandler serve probe endpoints. Readiness runs
// named dependency checks such as a Redis ping.
package httpserver
