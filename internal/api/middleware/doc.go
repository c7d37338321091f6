// Package middleware contains the HTTP middleware shared by all API routes:
// request tracing and bearer token authentication.
package middleware
