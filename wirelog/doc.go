// Package wirelog defines the observability collaborator used by the
// streaming engine and the error enricher. Records are fire-and-forget and
// append-only: implementations must never block the request path or return
// errors to the caller.
package wirelog
