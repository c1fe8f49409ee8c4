// Package catalog lists catalog items and submits deployment requests
// against the provisioning platform.
package catalog
