// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// defines its settings: listen port, API key and the request deadlines
// applied to report handlers.
//
// # Usage
//
// This package is embedded by core/config and read by the start command.
package server
