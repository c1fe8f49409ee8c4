// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through X-API-Key or a Bearer token.
//     An empty key leaves the API open.
//   - rayid: assigns every request a ray id (UUID), stores it in the
//     context locals for logger.WithRayID and echoes it as X-Ray-ID.
package middleware
