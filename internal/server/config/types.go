package config

import "time"

// ServerConfig is the root configuration for yggauth-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Auth      AuthSection      `koanf:"auth"`
	Session   SessionSection   `koanf:"session"`
	Texture   TextureSection   `koanf:"texture"`
	Storage   StorageSection   `koanf:"storage"`
	Seed      SeedSection      `koanf:"seed"`
	Log       LogSection       `koanf:"log"`
	Telemetry TelemetrySection `koanf:"telemetry"`
}

// ServerSection configures the HTTP endpoint.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`

	// CORSOrigins lists allowed browser origins. Empty allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// AdminToken guards /admin/*. Empty disables the admin routes.
	AdminToken string `koanf:"admin_token"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// AuthSection configures token issuance and password hashing.
type AuthSection struct {
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

// SessionSection configures the session table and session server.
type SessionSection struct {
	SweepInterval time.Duration `koanf:"sweep_interval"`
	JoinTTL       time.Duration `koanf:"join_ttl"`
	Shards        int           `koanf:"shards"`
}

// TextureSection configures texture payloads.
type TextureSection struct {
	// DefaultSkinURL is used for profiles without an active skin.
	// "{id}" expands to the compact profile id.
	DefaultSkinURL string `koanf:"default_skin_url"`
}

// StorageSection configures persistence. An empty DataDir keeps
// everything in memory.
type StorageSection struct {
	DataDir    string        `koanf:"data_dir"`
	GCInterval time.Duration `koanf:"gc_interval"`
	SyncWrites bool          `koanf:"sync_writes"`
}

// SeedSection describes the account created at startup.
type SeedSection struct {
	Enabled     bool   `koanf:"enabled"`
	Username    string `koanf:"username"`
	Email       string `koanf:"email"`
	Password    string `koanf:"password"`
	ProfileName string `koanf:"profile_name"`
}

// LogSection configures logging.
type LogSection struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	AddSource bool   `koanf:"add_source"`
}

// TelemetrySection configures metrics exposure.
type TelemetrySection struct {
	MetricsEnabled bool `koanf:"metrics_enabled"`
}
