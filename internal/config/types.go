package config

import (
	"os"
	"path/filepath"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Mode numbers accepted by the mode setting.
const (
	ModeStatus = 1
	ModeCLI    = 5
)

// Refresh interval bounds.
const (
	MinInterval = time.Second
	MaxInterval = 30 * time.Second
)

// Config represents the complete .hatop.yaml configuration file, merged
// with HATOP_* environment variables and command-line flags.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Socket is the stats socket address: a unix socket path, or
	// tcp://host:port, ipv4@host:port, ipv6@host:port.
	Socket string `yaml:"socket" mapstructure:"socket"`

	// ReadOnly disables the CLI mode.
	ReadOnly bool `yaml:"read_only" mapstructure:"read_only"`

	// Interval is the refresh interval. Plain numbers are seconds.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Mode is the start mode, 1-5.
	Mode int `yaml:"mode" mapstructure:"mode"`

	LogFile string `yaml:"log_file" mapstructure:"log_file"`
	Debug   bool   `yaml:"debug" mapstructure:"debug"`
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`

	Limits   LimitsConfig   `yaml:"limits" mapstructure:"limits"`
	Timeouts TimeoutsConfig `yaml:"timeouts" mapstructure:"timeouts"`
}

// LimitsConfig bounds the memory a single poll may use.
type LimitsConfig struct {
	// MaxServices caps the fully parsed records per snapshot. Lines past
	// the cap still count toward the proxy and service totals.
	MaxServices int `yaml:"max_services" mapstructure:"max_services"`

	// MaxLines caps the rendered table lines.
	MaxLines int `yaml:"max_lines" mapstructure:"max_lines"`

	// ProtocolMaxLines caps the lines yielded per socket response.
	ProtocolMaxLines int `yaml:"protocol_max_lines" mapstructure:"protocol_max_lines"`
}

// TimeoutsConfig controls the stats socket timeouts.
type TimeoutsConfig struct {
	Dial time.Duration `yaml:"dial" mapstructure:"dial"`

	// Read bounds every wait for socket data; a missing prompt past it
	// is a protocol error.
	Read time.Duration `yaml:"read" mapstructure:"read"`

	// CLI is sent to haproxy with "set timeout cli".
	CLI time.Duration `yaml:"cli" mapstructure:"cli"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: MinInterval,
		Mode:     ModeStatus,
		LogFile:  DefaultLogFile(),
		Limits: LimitsConfig{
			MaxServices:      100,
			MaxLines:         1000,
			ProtocolMaxLines: 10000,
		},
		Timeouts: TimeoutsConfig{
			Dial: 5 * time.Second,
			Read: 10 * time.Second,
			CLI:  60 * time.Second,
		},
	}
}

// DefaultLogFile is the diagnostic log path used when none is configured.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "hatop.log")
}
