package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hatop/internal/errors"
)

// init command flags
var (
	initSocket         string
	initReadOnly       bool
	initInterval       int
	initMode           int
	initGlobal         bool
	initForce          bool
	initNonInteractive bool
)

// emulate command flags
var (
	emulateSocket string
	emulateInfo   string
	emulateStat   string
	emulateUpdate time.Duration
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a hatop config file",
	Long: `Create a .hatop.yaml config file in the current directory.

Asks for the stats socket, start mode, refresh interval and read-only
setting, checks that the socket answers, and saves the answers. If the
file already exists only those keys are updated; comments and other
settings are kept.

Examples:
  hatop init
  hatop init --global
  hatop init --socket /var/run/haproxy.sock --mode 2 --non-interactive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.Context(), InitOptions{
			Path:           cfgFile,
			Global:         initGlobal,
			Socket:         initSocket,
			ReadOnly:       initReadOnly,
			Interval:       initInterval,
			Mode:           initMode,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Out:            cmd.OutOrStdout(),
		})
	},
}

var emulateCmd = &cobra.Command{
	Use:   "emulate",
	Short: "Serve a fake stats socket for trying out the dashboard",
	Long: `Serve canned "show info" and "show stat" responses on a unix socket
until interrupted. Without --info and --stat a small demo fleet is served
and its counters move every --update interval.

Examples:
  hatop emulate --socket /tmp/hatop.sock
  hatop emulate --socket /tmp/hatop.sock --stat stat.csv --info info.txt

Then, in another terminal:
  hatop -s /tmp/hatop.sock`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Emulate(ctx, EmulateOptions{
			Socket:   emulateSocket,
			InfoFile: emulateInfo,
			StatFile: emulateStat,
			Update:   emulateUpdate,
			Debug:    debug,
			Out:      cmd.OutOrStdout(),
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for hatop.

Examples:
  # Bash
  hatop completion bash > /etc/bash_completion.d/hatop

  # Zsh
  hatop completion zsh > "${fpath[1]}/_hatop"

  # Fish
  hatop completion fish > ~/.config/fish/completions/hatop.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// init command flags
	initCmd.Flags().StringVarP(&initSocket, "socket", "s", "", "stats socket to write into the config")
	initCmd.Flags().BoolVarP(&initReadOnly, "read-only", "n", false, "disable the CLI mode")
	initCmd.Flags().IntVarP(&initInterval, "interval", "i", 0, "refresh interval in seconds (1-30)")
	initCmd.Flags().IntVarP(&initMode, "mode", "m", 0, "start mode (1-5)")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write ~/.config/hatop/config.yaml")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "update an existing config without asking")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts (requires --socket)")

	// emulate command flags
	emulateCmd.Flags().StringVarP(&emulateSocket, "socket", "s", filepath.Join(os.TempDir(), "hatop-emulate.sock"), "unix socket to listen on")
	emulateCmd.Flags().StringVar(&emulateInfo, "info", "", "file with a captured \"show info\" response")
	emulateCmd.Flags().StringVar(&emulateStat, "stat", "", "file with a captured \"show stat\" response")
	emulateCmd.Flags().DurationVar(&emulateUpdate, "update", 2*time.Second, "how often the demo counters move (0 freezes them)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(emulateCmd)
	rootCmd.AddCommand(completionCmd)
}
