// Package http implements the HTTP transport layer of the bookmarks server.
//
// It exposes route wiring, request handlers, the websocket change stream and
// the middleware used by the REST API. Authentication, request tracing,
// access logging, response compression and integrity checks are handled here
// before requests are delegated to the service layer.
package http
