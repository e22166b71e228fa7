package config

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sanitize copies cfg for the startup debug log. Secrets are replaced by a
// short fingerprint so two deployments can still be compared.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	out := *cfg
	out.Server.CORSOrigins = append([]string(nil), cfg.Server.CORSOrigins...)
	out.Server.AdminToken = fingerprint(cfg.Server.AdminToken)
	out.Seed.Password = fingerprint(cfg.Seed.Password)
	return &out
}

func fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret))
	return "sha256:" + hex.EncodeToString(sum[:4])
}
