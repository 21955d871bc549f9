package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huetune/internal/theme"
)

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in themes and brand colour groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := theme.Builtin()
			if err != nil {
				return err
			}
			r := a.renderer(cmd)

			themes := NewTable([]string{"THEME", "DESCRIPTION", "LIGHT", "DARK"})
			themes.SetColumnMaxWidth(1, 48)
			for _, name := range cat.Names() {
				t := cat.Themes[name]
				themes.AddRow([]string{
					name,
					t.Description,
					strings.Join(t.Light.Brand, "+"),
					strings.Join(t.Dark.Brand, "+"),
				})
			}
			r.printf("%s\n", themes.Render())

			groups := NewTable([]string{"BRAND", "COLOURS"})
			for _, g := range cat.BrandGroups() {
				colors, err := cat.BrandColors(g)
				if err != nil {
					return err
				}
				groups.AddRow([]string{g, r.swatches(colors)})
			}
			r.printf("%s", groups.Render())
			return nil
		},
	}
}
