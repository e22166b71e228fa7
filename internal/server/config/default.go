package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:3000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxBodyBytes    = 1 << 20

	DefaultTokenTTL   = 24 * time.Hour
	DefaultBcryptCost = 10

	DefaultSweepInterval = time.Hour
	DefaultJoinTTL       = 30 * time.Second
	DefaultSessionShards = 32

	DefaultStorageGCInterval = 10 * time.Minute

	DefaultSeedUsername    = "admin"
	DefaultSeedEmail       = "admin@example.com"
	DefaultSeedPassword    = "admin123"
	DefaultSeedProfileName = "AdminPlayer"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				IdleTimeout:     DefaultIdleTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
				MaxBodyBytes:    DefaultMaxBodyBytes,
			},
		},
		Auth: AuthSection{
			TokenTTL:   DefaultTokenTTL,
			BcryptCost: DefaultBcryptCost,
		},
		Session: SessionSection{
			SweepInterval: DefaultSweepInterval,
			JoinTTL:       DefaultJoinTTL,
			Shards:        DefaultSessionShards,
		},
		Storage: StorageSection{
			GCInterval: DefaultStorageGCInterval,
		},
		Seed: SeedSection{
			Enabled:     true,
			Username:    DefaultSeedUsername,
			Email:       DefaultSeedEmail,
			Password:    DefaultSeedPassword,
			ProfileName: DefaultSeedProfileName,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Telemetry: TelemetrySection{
			MetricsEnabled: true,
		},
	}
}
