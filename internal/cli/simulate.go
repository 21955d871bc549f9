package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huetune/internal/colour"
)

func newSimulateCmd(a *app) *cobra.Command {
	vision := &visionValue{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Show theme colours under colour vision deficiencies",
		Long: `Show every colour of a theme variant next to its simulation under each
colour vision deficiency. With --vision only that one is shown, along with
the perceptual distance between each colour and its simulation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.resolveTheme()
			if err != nil {
				return err
			}
			visions := colour.Visions()[1:]
			if vision.set {
				visions = []colour.Vision{vision.vision}
			}
			r := a.renderer(cmd)
			r.printf("%s", simulationTable(r, in.Colors(), visions))
			return nil
		},
	}

	addThemeFlags(cmd)
	cmd.Flags().Var(vision, "vision", "only simulate this vision (e.g. protanopia, tritanomaly)")

	return cmd
}

// simulationTable renders one row per colour and one column per vision. A
// single vision also gets a distance column.
func simulationTable(r renderer, colors []colour.Color, visions []colour.Vision) string {
	headers := []string{"colour"}
	for _, v := range visions {
		headers = append(headers, v.String())
	}
	single := len(visions) == 1
	if single {
		headers = append(headers, "distance")
	}

	t := NewTable(headers)
	if single {
		t.SetRightAlign(len(headers) - 1)
	}
	for _, c := range colors {
		row := []string{r.swatch(c)}
		for _, v := range visions {
			row = append(row, r.swatch(colour.Simulate(c, v)))
		}
		if single {
			row = append(row, fmt.Sprintf("%.1f", colour.Distance(c, colour.Simulate(c, visions[0]))))
		}
		t.AddRow(row)
	}
	return t.Render()
}
