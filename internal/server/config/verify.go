package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yndnr/yggauth-go/internal/core/domain"
	"github.com/yndnr/yggauth-go/internal/telemetry/logger"
)

// Verify validates the configuration and reports every problem found.
func Verify(cfg *ServerConfig) error {
	var errs []error
	errs = append(errs, verifyServer(&cfg.Server)...)
	errs = append(errs, verifyAuth(&cfg.Auth)...)
	errs = append(errs, verifySession(&cfg.Session)...)
	errs = append(errs, verifyStorage(&cfg.Storage)...)
	errs = append(errs, verifySeed(&cfg.Seed)...)
	errs = append(errs, verifyLog(&cfg.Log)...)
	return errors.Join(errs...)
}

func verifyServer(cfg *ServerSection) []error {
	var errs []error
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.http.addr %q: %w", cfg.HTTP.Addr, err))
	}
	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		errs = append(errs, errors.New("server.http.tls_cert_file and tls_key_file must be set together"))
	}
	for _, f := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			errs = append(errs, fmt.Errorf("server.http tls file: %w", err))
		}
	}
	if cfg.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.http.max_body_bytes must be positive"))
	}
	if cfg.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.http.shutdown_timeout must be positive"))
	}
	return errs
}

func verifyAuth(cfg *AuthSection) []error {
	var errs []error
	if cfg.TokenTTL < time.Minute {
		errs = append(errs, errors.New("auth.token_ttl must be at least 1m"))
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errs
}

func verifySession(cfg *SessionSection) []error {
	var errs []error
	if cfg.SweepInterval < time.Second {
		errs = append(errs, errors.New("session.sweep_interval must be at least 1s"))
	}
	if cfg.JoinTTL <= 0 {
		errs = append(errs, errors.New("session.join_ttl must be positive"))
	}
	if cfg.Shards < 1 {
		errs = append(errs, errors.New("session.shards must be at least 1"))
	}
	return errs
}

func verifyStorage(cfg *StorageSection) []error {
	if cfg.DataDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return []error{fmt.Errorf("storage.data_dir: %w", err)}
	}
	return nil
}

func verifySeed(cfg *SeedSection) []error {
	if !cfg.Enabled {
		return nil
	}
	var errs []error
	if cfg.Username == "" || cfg.Email == "" {
		errs = append(errs, errors.New("seed.username and seed.email are required when seeding"))
	}
	if err := domain.ValidatePassword(cfg.Password); err != nil {
		errs = append(errs, fmt.Errorf("seed.password: %w", err))
	}
	return errs
}

func verifyLog(cfg *LogSection) []error {
	var errs []error
	if !logger.ValidLevel(cfg.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level))
	}
	switch cfg.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, text, console", cfg.Format))
	}
	return errs
}
