package httpserver

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	srv := New(Options{
		Addr:        ln.Addr().String(),
		ReadTimeout: time.Second,
	}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	if srv.TLS() {
		t.Fatal("TLS() = true without cert files")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := <-errCh; err != nil {
		t.Errorf("Serve() after Shutdown = %v, want nil", err)
	}
}

func TestServer_TLS(t *testing.T) {
	srv := New(Options{TLSCertFile: "cert.pem", TLSKeyFile: "key.pem"}, http.NotFoundHandler())
	if !srv.TLS() {
		t.Error("TLS() = false with cert and key configured")
	}

	srv = New(Options{TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12}}, http.NotFoundHandler())
	if !srv.TLS() {
		t.Error("TLS() = false with a TLS config")
	}
}

func TestServer_ListenError(t *testing.T) {
	srv := New(Options{Addr: "256.0.0.1:0"}, http.NotFoundHandler())
	if err := srv.ListenAndServe(); err == nil {
		t.Error("expected listen error for invalid address")
	}
}
