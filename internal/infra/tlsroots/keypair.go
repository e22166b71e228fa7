package tlsroots

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// KeyPair serves the current server certificate and reloads it on demand.
type KeyPair struct {
	certFile string
	keyFile  string
	logger   *slog.Logger

	mu   sync.RWMutex
	cert *tls.Certificate

	// Editors and renewal tools often write cert and key back to back.
	debounce   time.Duration
	reloadMu   sync.Mutex
	lastReload time.Time
}

// Option configures a KeyPair.
type Option func(*KeyPair)

// WithLogger sets the logger for reload reports.
func WithLogger(logger *slog.Logger) Option {
	return func(k *KeyPair) {
		k.logger = logger
	}
}

// WithDebounce sets the minimum gap between two reloads.
func WithDebounce(d time.Duration) Option {
	return func(k *KeyPair) {
		k.debounce = d
	}
}

// LoadKeyPair reads certFile and keyFile. Both must be valid at startup.
func LoadKeyPair(certFile, keyFile string, opts ...Option) (*KeyPair, error) {
	k := &KeyPair{
		certFile: certFile,
		keyFile:  keyFile,
		logger:   slog.Default(),
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(k)
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsroots: load key pair: %w", err)
	}
	k.cert = &cert
	return k, nil
}

// Files returns the certificate and key paths.
func (k *KeyPair) Files() (certFile, keyFile string) {
	return k.certFile, k.keyFile
}

// GetCertificate implements tls.Config.GetCertificate.
func (k *KeyPair) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.cert, nil
}

// Reload re-reads the files. A pair that fails to load leaves the current
// certificate in place. Calls closer together than the debounce interval
// are ignored.
func (k *KeyPair) Reload() error {
	k.reloadMu.Lock()
	defer k.reloadMu.Unlock()

	now := time.Now()
	if now.Sub(k.lastReload) < k.debounce {
		return nil
	}

	cert, err := tls.LoadX509KeyPair(k.certFile, k.keyFile)
	if err != nil {
		return fmt.Errorf("tlsroots: reload key pair: %w", err)
	}
	k.lastReload = now

	k.mu.Lock()
	k.cert = &cert
	k.mu.Unlock()

	k.logger.Info("certificate reloaded", "cert_file", k.certFile)
	return nil
}

// ServerConfig returns a server tls.Config backed by GetCertificate.
func (k *KeyPair) ServerConfig() *tls.Config {
	return &tls.Config{
		GetCertificate: k.GetCertificate,
		MinVersion:     tls.VersionTLS12,
	}
}
