// Package httpserver wraps the standard http.Server with the timeouts every
// deployment of this service should run with.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an http.Server for the given address and handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
