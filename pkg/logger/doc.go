// Package logger builds slog loggers the platform way: structured JSON in
// production, readable text in development, and automatic injection of
// request-scoped attributes (request id, site classification) via context
// extractors.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "gateway"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			resolution.LoggerExtractor(),
//		),
//	)
//	logger.SetAsDefault(log)
package logger
