package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/haproxy"
)

// Validate checks the merged config for errors and returns structured error
// messages. It does not touch the filesystem; see CheckSocket.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hatop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade hatop or lower the version in your .hatop.yaml.")
	}

	if cfg.Socket == "" {
		return errors.New(errors.ErrConfig,
			"No stats socket given",
			"Pass one with -s /path/to/haproxy.sock, set HATOP_SOCKET, or add 'socket:' to .hatop.yaml.")
	}

	if cfg.Interval < MinInterval || cfg.Interval > MaxInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is out of range", cfg.Interval),
			fmt.Sprintf("Pick an interval between %s and %s.", MinInterval, MaxInterval))
	}

	if cfg.Mode < ModeStatus || cfg.Mode > ModeCLI {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid start mode %d", cfg.Mode),
			"Modes are 1 (STATUS), 2 (TRAFFIC), 3 (HTTP), 4 (ERRORS) and 5 (CLI).")
	}
	if cfg.Mode == ModeCLI && cfg.ReadOnly {
		return errors.New(errors.ErrConfig,
			"The CLI mode is not available in read-only mode",
			"Start in another mode, or drop --read-only.")
	}

	if err := validateLimits(cfg.Limits); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'limits' section in your .hatop.yaml.")
	}
	if err := validateTimeouts(cfg.Timeouts); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'timeouts' section in your .hatop.yaml.")
	}
	return nil
}

func validateLimits(l LimitsConfig) error {
	for name, n := range map[string]int{
		"max_services":       l.MaxServices,
		"max_lines":          l.MaxLines,
		"protocol_max_lines": l.ProtocolMaxLines,
	} {
		if n <= 0 {
			return fmt.Errorf("limits.%s must be positive, got %d", name, n)
		}
	}
	return nil
}

func validateTimeouts(t TimeoutsConfig) error {
	if t.Dial <= 0 || t.Read <= 0 {
		return fmt.Errorf("timeouts.dial and timeouts.read must be positive")
	}
	if t.CLI < 0 {
		return fmt.Errorf("timeouts.cli can't be negative")
	}
	return nil
}

// CheckSocket verifies that a unix stats socket exists, is a socket, and
// can be read and written by this process. Network addresses are not
// checked; a failed dial reports them.
func CheckSocket(addr string) error {
	if !haproxy.IsUnix(addr) {
		return nil
	}
	_, path := haproxy.ParseAddress(addr)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Stats socket not found: "+path,
				"Check the 'stats socket' line in haproxy.cfg and that haproxy is running.")
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access stats socket: "+path,
			"Check the path and the permissions of its parent directories.")
	}
	if info.Mode()&os.ModeSocket == 0 {
		return errors.New(errors.ErrConfig,
			path+" is not a unix socket",
			"Point -s at the socket haproxy creates with 'stats socket'.")
	}

	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return errors.WrapWithCode(err, errors.ErrSocket,
			"Insufficient permissions for the stats socket: "+path,
			"Run hatop as a user in the socket's group, or adjust 'mode'/'group' on the 'stats socket' line.")
	}
	return nil
}
