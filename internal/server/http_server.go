package server

import (
	"context"
	"net/http"
)

// httpServer is the seam between wiring and net/http. The API and metrics
// listeners both run behind it, and wiring tests exercise routes through
// Handler without binding a port.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

// stdServer adapts *http.Server to the httpServer seam.
type stdServer struct {
	srv *http.Server
}

func (s stdServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s stdServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s stdServer) Addr() string                       { return s.srv.Addr }
func (s stdServer) Handler() http.Handler              { return s.srv.Handler }
