// Package cli provides the command-line interface for huetune.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/huetune/internal/anneal"
	"github.com/jmylchreest/huetune/internal/config"
	"github.com/jmylchreest/huetune/internal/version"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfgFile  string
	verbose  bool
	quiet    bool
	noColor  bool
	schedule anneal.Schedule

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(anneal.DefaultSchedule)
}

func newRootCmd(schedule anneal.Schedule) *cobra.Command {
	a := &app{schedule: schedule, logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "huetune",
		Short: "Tune a UI colour palette for contrast and colour-blind legibility",
		Long: `huetune searches for background and foreground colours that stay legible,
distinguishable from each other, close to a reference palette, and robust
under protanopia, deuteranopia and tritanopia.

It starts from a built-in theme, anneals the palette, and prints contrast
tables and a cost breakdown before and after.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/huetune/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured swatches")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newOptimizeCmd(a))
	rootCmd.AddCommand(newContrastCmd(a))
	rootCmd.AddCommand(newSimulateCmd(a))
	rootCmd.AddCommand(newThemesCmd(a))
	rootCmd.AddCommand(newReportCmd(a))

	return rootCmd
}

// setup loads configuration and builds the logger once flags are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if !cmd.Flags().Changed("log-level") {
		switch {
		case a.verbose:
			level = "debug"
		case a.quiet:
			level = "error"
		}
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// newLogger builds the process logger.
func newLogger(w io.Writer, level string) (hclog.Logger, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: %s", level)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "huetune",
		Output: w,
		Level:  lvl,
	}), nil
}

// renderer returns output helpers for cmd, colouring only real terminals.
func (a *app) renderer(cmd *cobra.Command) renderer {
	out := cmd.OutOrStdout()
	colour := false
	if f, ok := out.(*os.File); ok && !a.noColor {
		colour = term.IsTerminal(int(f.Fd()))
	}
	return newRenderer(out, colour)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
