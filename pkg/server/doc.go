// Package server exposes the solve pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/solve     text records in, best score and route out
//	POST /v1/network   text records in, graph JSON out
//	GET  /healthz      liveness probe
//	GET  /metrics      Prometheus exposition, when a metrics handler is set
//
// /v1/solve accepts the query parameters entry, budget and top. Missing
// parameters fall back to the defaults passed with [WithDefaults].
//
// # Errors
//
// Failures are returned as JSON {"error": ..., "code": ...}. The code is the
// pkg/errors code of the failure; [StatusFor] maps it to an HTTP status.
//
// # Middleware
//
// Every request gets an X-Request-ID (client-supplied or a fresh UUID), is
// reported to the registered [observability.HTTPHooks], and has its body
// capped at the configured size.
//
// [observability.HTTPHooks]: github.com/matzehuels/valvepath/pkg/observability.HTTPHooks
package server
