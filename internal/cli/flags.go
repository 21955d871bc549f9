package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huetune/internal/anneal"
	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/theme"
)

// visionValue is a pflag.Value selecting one colour vision deficiency.
type visionValue struct {
	vision colour.Vision
	set    bool
}

func (v *visionValue) String() string {
	if !v.set {
		return ""
	}
	return v.vision.String()
}

func (v *visionValue) Set(s string) error {
	parsed, err := colour.ParseVision(s)
	if err != nil {
		return err
	}
	v.vision = parsed
	v.set = true
	return nil
}

func (v *visionValue) Type() string {
	return "vision"
}

// addThemeFlags registers the flags that select a theme variant. Their values
// reach the command through the loaded config.
func addThemeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("theme", "t", "", fmt.Sprintf("theme name (default %q)", theme.DefaultName))
	cmd.Flags().StringP("mode", "m", "", "theme mode: light or dark (default \"light\")")
}

// resolveTheme returns the configured theme variant.
func (a *app) resolveTheme() (theme.Input, error) {
	cat, err := theme.Builtin()
	if err != nil {
		return theme.Input{}, err
	}
	mode, err := a.cfg.ThemeMode()
	if err != nil {
		return theme.Input{}, err
	}
	return cat.Resolve(a.cfg.Theme, mode)
}

// seed returns the configured seed, or fresh entropy when none is set.
func (a *app) seed() ([anneal.SeedSize]byte, error) {
	if a.cfg.Seed != "" {
		if len(a.cfg.Seed) > anneal.SeedSize {
			a.logger.Warn("seed truncated", "bytes", anneal.SeedSize)
		}
		return anneal.SeedFromString(a.cfg.Seed), nil
	}
	return anneal.RandomSeed()
}
