// Package server implements the Wayfind dev server.
//
// The server hosts the SPA shell with route-aware fallback, exposes the
// route table over a small JSON API, and broadcasts navigation state
// changes to connected clients over WebSocket:
//
//	GET  /api/resolve?path=  resolve a path against the table
//	GET  /api/routes         the route manifest
//	POST /api/navigate       dispatch a navigation
//	GET  /ws                 navigation state stream
//	GET  /healthz            liveness probe
//	GET  /metrics            Prometheus metrics
//
// Any other GET whose path matches a registered route serves the app
// shell (index.html); unmatched paths get a 404 JSON body.
package server
