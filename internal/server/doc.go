// Package server runs the bookmarks HTTP server.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown, including closing the open change streams the HTTP server
// itself does not track.
package server
