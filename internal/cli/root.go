package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/menu/internal/app"
	"github.com/idilsaglam/menu/internal/config"
	"github.com/idilsaglam/menu/internal/output"
	"github.com/idilsaglam/menu/internal/remote"
	"github.com/idilsaglam/menu/internal/suggest"
	"github.com/idilsaglam/menu/internal/tui"
	"github.com/idilsaglam/menu/internal/ui"
)

// Version is set at build time via -ldflags "-X github.com/idilsaglam/menu/internal/cli.Version=x.y.z"
var Version = "0.1.0"

// Options holds the root flags and the configuration they resolve to.
type Options struct {
	ConfigPath string
	Server     string
	Output     string
	Theme      string
	Seed       uint64

	cfg       *config.Config
	formatter output.Formatter
	log       *log.Logger
}

// UsageError marks a bad invocation; the process exits with 2.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ExitCode maps a command error to the process exit status:
// 0 ok, 1 remote or storage failure, 2 usage or validation.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *UsageError
	var ve *app.ValidationError
	if errors.As(err, &ue) || errors.As(err, &ve) {
		return 2
	}
	return 1
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// args wraps a cobra positional-args validator so violations exit with 2.
func args(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := v(cmd, a); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

func NewRootCmd() *cobra.Command {
	opt := &Options{}

	cmd := &cobra.Command{
		Use:           "menu",
		Short:         "Browse, like and pick menus from a shared list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          args(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive browser
  menu

  # Scriptable commands
  menu add "Green curry"
  menu ls -o json
  menu like 3
  menu suggest --seed 42

  # Serve a list locally
  menu serve --backend sqlite
`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opt.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opt)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.PersistentFlags().StringVar(&opt.ConfigPath, "config", envOr("MENU_CONFIG", ""), "config file (default is ~/.menu/config.yaml)")
	cmd.PersistentFlags().StringVar(&opt.Server, "server", envOr("MENU_SERVER", ""), "menu list endpoint URL")
	cmd.PersistentFlags().StringVarP(&opt.Output, "output", "o", "", "output format: table, plain, json, yaml")
	cmd.PersistentFlags().StringVar(&opt.Theme, "theme", envOr("MENU_THEME", ""), "colour theme: "+strings.Join(ui.Themes, ", "))
	cmd.PersistentFlags().Uint64Var(&opt.Seed, "seed", 0, "seed for suggestions (0 picks a random seed)")

	cmd.AddCommand(newListCmd(opt))
	cmd.AddCommand(newAddCmd(opt))
	cmd.AddCommand(newRenameCmd(opt))
	cmd.AddCommand(newRemoveCmd(opt))
	cmd.AddCommand(newLikeCmd(opt))
	cmd.AddCommand(newSuggestCmd(opt))
	cmd.AddCommand(newServeCmd(opt))
	cmd.AddCommand(newConfigCmd(opt))
	cmd.AddCommand(newVersionCmd(opt))

	return cmd
}

func (o *Options) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return config.DefaultPath()
}

// resolve loads the config file and lays flags and environment over it.
func (o *Options) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath())
	if err != nil {
		return &UsageError{Err: err}
	}
	if o.Server != "" {
		cfg.ServerURL = o.Server
	}
	if o.Output != "" {
		cfg.OutputFormat = o.Output
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	f, err := output.NewFormatter(cfg.OutputFormat)
	if err != nil {
		return &UsageError{Err: err}
	}
	o.cfg = cfg
	o.formatter = f
	o.log = log.New(cmd.ErrOrStderr(), "menu: ", 0)

	ui.SetTheme(cfg.Theme)
	ui.SetOutput(cmd.OutOrStdout())
	if envOr("NO_COLOR", "") != "" {
		ui.SetColorForcing(false, true)
	}
	return nil
}

// newApp wires an app over the configured endpoint.
func (o *Options) newApp(logger *log.Logger) (*app.App, error) {
	client, err := remote.NewClient(&http.Client{Timeout: o.cfg.Timeout}, o.cfg.ServerURL)
	if err != nil {
		return nil, &UsageError{Err: err}
	}
	return app.New(client, logger), nil
}

func (o *Options) table() bool {
	return strings.EqualFold(o.cfg.OutputFormat, output.FormatTable)
}

func runTUI(cmd *cobra.Command, opt *Options) error {
	// stderr belongs to the alt screen; diagnostics go to a file or nowhere
	logger := log.New(io.Discard, "", 0)
	if opt.cfg.LogFile != "" {
		f, err := tea.LogToFile(opt.cfg.LogFile, "menu")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}
	a, err := opt.newApp(logger)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), a, suggest.NewSource(opt.Seed), tui.Options{
		Theme:     opt.cfg.Theme,
		AltScreen: true,
	})
}

// parseID validates a record id argument.
func parseID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", usagef("id must not be empty")
	}
	return s, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + one
	}
	return strconv.Itoa(n) + " " + many
}
