// Package api contains the HTTP handlers, request/response types, and
// error-to-status mapping for the service's REST surface. Handlers stay
// thin: decode and validate, call a service, map the result.
package api
