// Package models defines the provisioning platform domain objects shared by
// the core and the feature packages.
//
// Catalog items, deployments and resources are modeled as records with
// explicitly optional fields. An optional field is a pointer: nil means the
// platform did not send the value, which the reconcile matcher treats
// differently from an empty value.
//
// # Status Helpers
//
// Deployment statuses are enum-like strings such as CREATE_SUCCESSFUL,
// UPDATE_FAILED or DELETE_INPROGRESS. IsSuccessful, IsFailed and IsInProgress
// classify them by suffix so every lifecycle verb is handled the same way.
package models
