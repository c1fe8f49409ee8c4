// Package utils provides common utility functions for the catalog-insights application.
// It includes loose type conversion for platform payloads and zero-safe
// percentage and ratio helpers shared by the report builders.
package utils
