package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rileyhilliard/hatop/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".hatop.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/hatop"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes the environment overrides, e.g. HATOP_SOCKET.
	EnvPrefix = "HATOP"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"unix-socket": "socket",
	"read-only":   "read_only",
	"interval":    "interval",
	"mode":        "mode",
	"log-file":    "log_file",
	"debug":       "debug",
	"no-color":    "no_color",
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .hatop.yaml in current directory
// 3. ~/.config/hatop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// Load builds the effective configuration: defaults, then the config file
// at path (skipped when empty), then HATOP_* environment variables, then
// the flags that were set explicitly. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'hatop init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.WrapWithCode(err, errors.ErrConfig,
						"Failed to bind flag --"+name, "")
				}
			}
		}
	}

	return parseConfig(v, path)
}

// LoadOrDefault loads the config file found by Find, or returns defaults
// merged with the environment if there is none.
func LoadOrDefault() (*Config, error) {
	path, err := Find("")
	if err != nil {
		return nil, err
	}
	return Load(path, nil)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsHook,
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		where := "the environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	cfg.Socket = ExpandPath(cfg.Socket)
	cfg.LogFile = ExpandPath(cfg.LogFile)
	return cfg, nil
}

// setDefaults registers every key so environment variables are picked up
// for keys the config file leaves out.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("socket", "")
	v.SetDefault("read_only", false)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("mode", def.Mode)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("debug", false)
	v.SetDefault("no_color", false)
	v.SetDefault("limits.max_services", def.Limits.MaxServices)
	v.SetDefault("limits.max_lines", def.Limits.MaxLines)
	v.SetDefault("limits.protocol_max_lines", def.Limits.ProtocolMaxLines)
	v.SetDefault("timeouts.dial", def.Timeouts.Dial)
	v.SetDefault("timeouts.read", def.Timeouts.Read)
	v.SetDefault("timeouts.cli", def.Timeouts.CLI)
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsHook decodes bare numbers into durations as seconds, so both
// "interval: 5" and "interval: 5s" mean five seconds.
func secondsHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != durationType {
		return data, nil
	}
	switch n := data.(type) {
	case int:
		return time.Duration(n) * time.Second, nil
	case int64:
		return time.Duration(n) * time.Second, nil
	case float64:
		return time.Duration(n * float64(time.Second)), nil
	case string:
		if secs, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
	}
	return data, nil
}
