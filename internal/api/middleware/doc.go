// Package middleware provides the HTTP middleware shared by all API routes:
// trace propagation, request logging, metrics and panic recovery.
package middleware
