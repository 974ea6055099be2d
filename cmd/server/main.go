package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"workdays/internal/platform/config"
	"workdays/internal/platform/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// exitError carries a process exit code out of a subcommand.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// cli holds state shared by the command tree.
type cli struct {
	configPath string
	cfg        *config.Config
}

// newRootCmd builds the command tree writing to out and errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "workdays",
		Short:         "Working day calculator for European countries",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			logger.Install(logger.New(cmd.ErrOrStderr(), cfg.SlogLevel(), cfg.IsProduction()), version)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML, JSON or TOML config file")

	root.AddCommand(c.serveCmd(), c.calcCmd(), c.countriesCmd())
	return root
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}
