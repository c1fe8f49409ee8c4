// Package platform is the data-access layer for the provisioning platform's
// REST API. It owns authentication, pagination, retry with backoff and the
// translation of transport and HTTP failures into *apperror.UpstreamError.
//
// Only materialized domain objects from core/models leave this package.
package platform
