package httpserver

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"
)

// Options holds listener settings for Server.
type Options struct {
	Addr         string
	TLSCertFile  string
	TLSKeyFile   string
	// TLSConfig, when set, supplies certificates instead of the files,
	// typically through GetCertificate for hot reload.
	TLSConfig    *tls.Config
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	opts       Options
}

// New creates a new HTTP server.
func New(opts Options, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			TLSConfig:         opts.TLSConfig,
		},
		opts: opts,
	}
}

// TLS reports whether the server terminates TLS itself.
func (s *Server) TLS() bool {
	return s.opts.TLSConfig != nil || (s.opts.TLSCertFile != "" && s.opts.TLSKeyFile != "")
}

// ListenAndServe listens on the configured address and serves until
// Shutdown. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln, with TLS when cert and key files are configured.
func (s *Server) Serve(ln net.Listener) error {
	var err error
	switch {
	case s.opts.TLSConfig != nil:
		err = s.httpServer.ServeTLS(ln, "", "")
	case s.TLS():
		err = s.httpServer.ServeTLS(ln, s.opts.TLSCertFile, s.opts.TLSKeyFile)
	default:
		err = s.httpServer.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
