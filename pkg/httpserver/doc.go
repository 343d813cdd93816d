// Package httpserver wraps http.Server with graceful shutdown, signal
// handling, and health-check plumbing so gateway binaries can focus on
// routing.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server exited", logger.Error(err))
//	}
package httpserver
