package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/menu/internal/config"
	"github.com/idilsaglam/menu/internal/output"
	"github.com/idilsaglam/menu/internal/ui"
)

var configKeys = []string{"server_url", "output_format", "theme", "log_file", "timeout"}

func newConfigCmd(opt *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, environment and flags)",
		Args:  args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := opt.formatter
			if opt.table() {
				f = &output.YAMLFormatter{}
			}
			fmt.Fprint(cmd.OutOrStdout(), f.Format(opt.cfg))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one key in the config file (" + strings.Join(configKeys, ", ") + ")",
		Args:  args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, a []string) error {
			path := opt.configPath()
			// the file alone; flags and env must not leak into it
			cfg, err := config.Load(path)
			if err != nil {
				return &UsageError{Err: err}
			}
			if err := setKey(cfg, a[0], a[1]); err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s = %s (%s)", a[0], a[1], path))
			return nil
		},
	})
	return cmd
}

func setKey(cfg *config.Config, key, value string) error {
	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "output_format":
		if !output.ValidFormat(value) {
			return usagef("unknown output format %q", value)
		}
		cfg.OutputFormat = strings.ToLower(value)
	case "theme":
		if !slices.Contains(ui.Themes, strings.ToLower(value)) {
			return usagef("unknown theme %q (want %s)", value, strings.Join(ui.Themes, ", "))
		}
		cfg.Theme = strings.ToLower(value)
	case "log_file":
		cfg.LogFile = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return usagef("timeout: want a non-negative duration like 5s, got %q", value)
		}
		cfg.Timeout = d
	default:
		return usagef("unknown key %q (want one of %s)", key, strings.Join(configKeys, ", "))
	}
	return nil
}
