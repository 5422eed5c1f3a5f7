// Package server builds the HTTP server hosting the notification API.
package server

import (
	"net/http"
	"time"

	"github.com/wb-go/wbf/ginext"
)

// New returns an http.Server serving the API router on addr. Admission is
// a short synchronous path; the header timeout guards against stalled
// clients holding connections open.
func New(addr string, router *ginext.Engine) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
