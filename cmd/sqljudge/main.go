// Package main provides sqljudge, a command that evaluates an SQL submission against a solution
// on copies of an SQLite database and writes feedback as JSON lines.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type flags struct {
	config   string
	logLevel string
	color    bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "sqljudge [--config path-to-config]",
		Short: "Judge SQL submission",
		Long: "Judge SQL submission against a solution on copies of an SQLite database.\n" +
			"Configuration is read from JSON on stdin unless --config is set, feedback is written to stdout.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&f.config, "config", "c", "", "path to .json, .yaml or .toml config file")
	cmd.PersistentFlags().StringVarP(&f.logLevel, "log-level", "l", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&f.color, "color", false, "colorize log output")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "sqljudge:", err)

		os.Exit(1)
	}
}
