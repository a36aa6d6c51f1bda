// Package api serves the renderer over HTTP.
//
// Routes:
//
//	GET  /healthz         liveness
//	GET  /metrics         Prometheus exposition
//	GET  /api/defaults    form values with defaults applied
//	POST /api/render      form values in, rendered document out
//	GET  /api/secret      random preshared key
//	GET  /api/stats       render counters
//	GET  /api/ws          live preview over WebSocket
//
// Nothing is persisted; every request is rendered from its own body.
package api
