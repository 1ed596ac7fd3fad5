package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/hatop/internal/config"
	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/haproxy"
	"github.com/rileyhilliard/hatop/internal/stats"
	"github.com/rileyhilliard/hatop/internal/ui"
)

const probeTimeout = 3 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Target file; empty means ./.hatop.yaml
	Global         bool   // Write ~/.config/hatop/config.yaml instead
	Socket         string // Pre-specified stats socket
	ReadOnly       bool
	Interval       int  // seconds; 0 keeps the default
	Mode           int  // 0 keeps the default
	Overwrite      bool // Update an existing config without asking
	NonInteractive bool // Skip prompts, use flags and defaults
	Out            io.Writer
}

// Init creates a hatop config file, or updates the dashboard settings of
// an existing one in place.
func Init(ctx context.Context, opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	configPath, err := initPath(opts)
	if err != nil {
		return err
	}

	exists := false
	if _, err := os.Stat(configPath); err == nil {
		exists = true
	}
	if exists && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to update it")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("'%s' already exists. Update it?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to update the file")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.Socket = opts.Socket
	cfg.ReadOnly = opts.ReadOnly
	if opts.Interval > 0 {
		cfg.Interval = time.Duration(opts.Interval) * time.Second
	}
	if opts.Mode > 0 {
		cfg.Mode = opts.Mode
	}

	if opts.NonInteractive {
		if cfg.Socket == "" {
			return errors.New(errors.ErrConfig,
				"The stats socket is required in non-interactive mode",
				"Provide --socket or run interactively")
		}
	} else if err := promptConfig(cfg); err != nil {
		return err
	}
	cfg.Socket = config.ExpandPath(cfg.Socket)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if info, err := probeSocket(ctx, cfg); err != nil {
		ui.PrintWarning(out, "Couldn't reach %s, saving anyway", cfg.Socket)
		fmt.Fprintln(out, ui.Muted("  "+firstLine(err)))
	} else {
		ui.PrintSuccess(out, "Connected to %s %s on node %s",
			orUnknown(info.Get(stats.InfoSoftwareName)),
			orUnknown(info.Get(stats.InfoSoftwareVersion)),
			orUnknown(info.Get(stats.InfoNode)))
	}

	if exists {
		err = config.SetValues(configPath, map[string]string{
			"socket":    cfg.Socket,
			"read_only": strconv.FormatBool(cfg.ReadOnly),
			"interval":  cfg.Interval.String(),
			"mode":      strconv.Itoa(cfg.Mode),
		})
	} else {
		err = config.Write(configPath, cfg)
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to save %s", configPath),
			"Check directory permissions")
	}

	if exists {
		ui.PrintSuccess(out, "Updated %s", configPath)
	} else {
		ui.PrintSuccess(out, "Created %s", configPath)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  hatop           - Open the dashboard")
	fmt.Fprintln(out, "  hatop -m 2      - Start in TRAFFIC mode")
	return nil
}

func initPath(opts InitOptions) (string, error) {
	if opts.Path != "" {
		return opts.Path, nil
	}
	if !opts.Global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't find your home directory",
			"Pass an explicit path with --config")
	}
	dir := filepath.Join(home, config.GlobalConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create "+dir,
			"Check directory permissions")
	}
	return filepath.Join(dir, config.GlobalConfigFile), nil
}

func promptConfig(cfg *config.Config) error {
	interval := strconv.Itoa(int(cfg.Interval / time.Second))
	mode := cfg.Mode

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stats socket").
				Description("Path of the 'stats socket' in haproxy.cfg, or tcp://host:port").
				Placeholder("/var/run/haproxy.sock").
				Value(&cfg.Socket).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("the stats socket is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Start mode").
				Options(
					huh.NewOption("1 STATUS", 1),
					huh.NewOption("2 TRAFFIC", 2),
					huh.NewOption("3 HTTP", 3),
					huh.NewOption("4 ERRORS", 4),
					huh.NewOption("5 CLI", 5),
				).
				Value(&mode),
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Value(&interval).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 30 {
						return fmt.Errorf("enter a number from 1 to 30")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Read-only?").
				Description("Disables the CLI mode").
				Value(&cfg.ReadOnly),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive")
	}

	n, _ := strconv.Atoi(strings.TrimSpace(interval))
	cfg.Interval = time.Duration(n) * time.Second
	cfg.Mode = mode
	return nil
}

// probeSocket asks the socket for "show info" to confirm it answers.
func probeSocket(ctx context.Context, cfg *config.Config) (stats.Info, error) {
	if err := config.CheckSocket(cfg.Socket); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client, err := haproxy.Open(ctx, cfg.Socket, haproxy.Options{
		DialTimeout: probeTimeout,
		ReadTimeout: probeTimeout,
	})
	if err != nil {
		return nil, err
	}
	defer client.Close()

	src, err := client.Request(ctx, haproxy.CmdShowInfo)
	if err != nil {
		return nil, err
	}
	return stats.ParseInfo(src)
}

func firstLine(err error) string {
	line, _, _ := strings.Cut(strings.TrimPrefix(err.Error(), "✗ "), "\n")
	return line
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
