// Package logger provides structured logging based on Zap.
//
// New builds a production (json) or development (console) logger from
// Config. WithRayID attaches the request id stored by the rayid middleware,
// so every log line of one HTTP request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Report failed", zap.Error(err))
package logger
