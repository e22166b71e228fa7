package config

import "time"

// CLIConfig is the persisted state of yggauth-cli.
type CLIConfig struct {
	// Server is used when --server is not given.
	Server string `yaml:"server,omitempty"`

	// Output is used when --output is not given.
	Output string `yaml:"output,omitempty"`

	// Session holds the tokens of the last authenticate or refresh.
	Session *SavedSession `yaml:"session,omitempty"`
}

// SavedSession is a token pair and the profile it is bound to.
type SavedSession struct {
	Server      string    `yaml:"server"`
	Username    string    `yaml:"username"`
	AccessToken string    `yaml:"access_token"`
	ClientToken string    `yaml:"client_token"`
	ProfileID   string    `yaml:"profile_id,omitempty"`
	ProfileName string    `yaml:"profile_name,omitempty"`
	SavedAt     time.Time `yaml:"saved_at"`
}

// Default returns an empty state.
func Default() *CLIConfig {
	return &CLIConfig{}
}
