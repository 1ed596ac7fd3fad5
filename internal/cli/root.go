package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hatop/internal/config"
	"github.com/rileyhilliard/hatop/internal/errors"
	"github.com/rileyhilliard/hatop/internal/ui"
)

// Global flags
var (
	cfgFile string
)

// commandStarted is set once cobra has accepted the command line and is
// about to run a command.
var commandStarted bool

// rootCmd runs the dashboard; subcommands are helpers around it.
var rootCmd = &cobra.Command{
	Use:   "hatop",
	Short: "Interactive dashboard for the haproxy stats socket",
	Long: `hatop is an interactive dashboard for haproxy.

It connects to the haproxy stats socket, polls "show info" and
"show stat" every interval, and shows the proxies and their
services in five modes.

Examples:
  hatop -s /var/run/haproxy.sock
  hatop -s /var/run/haproxy.sock -n -i 5 -m 2
  hatop -s tcp://127.0.0.1:9999
  HATOP_SOCKET=/run/haproxy/admin.sock hatop`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commandStarted = true
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return NewSession(cfg).Run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.hatop.yaml or ~/.config/hatop/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "diagnostic log file (default: $TMPDIR/hatop.log)")
	rootCmd.PersistentFlags().Bool("debug", false, "log debug messages")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colors")

	rootCmd.Flags().StringP("unix-socket", "s", "", "path to the haproxy stats socket, or tcp://host:port")
	rootCmd.Flags().BoolP("read-only", "n", false, "disable the CLI mode")
	rootCmd.Flags().IntP("interval", "i", 1, "refresh interval in seconds (1-30)")
	rootCmd.Flags().IntP("mode", "m", 1, "start mode: 1=STATUS 2=TRAFFIC 3=HTTP 4=ERRORS 5=CLI")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})
}

// loadConfig merges defaults, the config file, HATOP_* variables and the
// command's flags, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.Find(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfgFile = ""
	commandStarted = false
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return errors.ExitOK
	}

	// Anything cobra rejects before a command runs is a usage problem.
	// Unstructured errors from a running command are internal failures.
	var hErr *errors.Error
	if !commandStarted && !stderrors.As(err, &hErr) {
		err = usageError(err)
	}
	ui.PrintError(stderr, err)
	return errors.ExitCode(err)
}

func usageError(err error) error {
	return errors.WrapWithCode(err, errors.ErrConfig,
		usageMessage(err),
		"Run 'hatop --help' for usage")
}

func usageMessage(err error) string {
	if name := extractUnknownCommand(err); name != "" {
		return fmt.Sprintf("'%s' is not a hatop command", name)
	}
	return "Invalid command line"
}

// extractUnknownCommand returns the name from cobra's
// `unknown command "foo" for "hatop"` error, or "".
func extractUnknownCommand(err error) string {
	msg := err.Error()
	if !strings.HasPrefix(msg, "unknown command") {
		return ""
	}
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
