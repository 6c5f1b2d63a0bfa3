// Package middleware holds the global and route-level echo middleware:
// the role gate, request logging, CORS, rate limiting, tracing, metrics
// and panic recovery, plus the accessors handlers use to read
// request-scoped values.
package middleware
