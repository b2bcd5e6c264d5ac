// Package logger builds slog loggers for devicekit services.
//
// New returns a *slog.Logger whose handler is wrapped by LogHandlerDecorator.
// The decorator runs the registered ContextExtractor callbacks on every
// record, so request-scoped values such as the request id or the negotiated
// format show up without being passed explicitly:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "devicekit"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			negotiate.LoggerExtractor(),
//		),
//	)
//	log.InfoContext(ctx, "rendered view", logger.Template("home/index.mobile"))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
