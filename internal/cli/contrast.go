package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huetune/internal/palette"
)

func newContrastCmd(a *app) *cobra.Command {
	var sortRows bool

	cmd := &cobra.Command{
		Use:   "contrast",
		Short: "Print contrast tables of a theme",
		Long: `Print the background and background/foreground contrast tables of a theme
variant without optimising it. Ratios below 3:1 between backgrounds or 4.5:1
between text and background are flagged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.resolveTheme()
			if err != nil {
				return err
			}
			snap := palette.Snapshot{
				Active:      in.Backgrounds.Active,
				Foregrounds: in.Foregrounds,
			}
			for _, role := range in.Backgrounds.Active {
				snap.Backgrounds = append(snap.Backgrounds, palette.Slot{Role: role, Color: in.Backgrounds.Get(role)})
			}
			a.renderer(cmd).printContrast(fmt.Sprintf("%s %s", in.Theme, in.Mode), snap, sortRows)
			return nil
		},
	}

	addThemeFlags(cmd)
	cmd.Flags().BoolVar(&sortRows, "sort", false, "sort table rows by lowest contrast")

	return cmd
}
