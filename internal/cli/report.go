package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huetune/internal/export"
)

func newReportCmd(a *app) *cobra.Command {
	var sortRows bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Re-render a saved optimisation report",
		Long: `Load a report written by "huetune optimize --save-report" and print its
contrast tables and cost summary without re-running the optimisation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.LoadReport(args[0])
			if err != nil {
				return err
			}
			report := f.Report()

			r := a.renderer(cmd)
			r.printf("Run %s  %s/%s  %s\n", f.RunID, f.Theme, f.Mode, f.CreatedAt.Format(time.RFC3339))
			if f.Seed != "" {
				r.printf("Seed %s\n", f.Seed)
			}
			r.printf("\n")
			r.printContrast("Start", report.Start, sortRows)
			r.printContrast("Final", report.Final, sortRows)
			r.printf("%s\n", report)

			if swatchPath := a.cfg.Output.Swatch; swatchPath != "" {
				if err := export.WriteSwatch(swatchPath, swatchRows(report)); err != nil {
					return err
				}
				a.logger.Info("saved swatch", "path", swatchPath)
			}
			return nil
		},
	}

	cmd.Flags().String("swatch", "", "write a PNG swatch sheet of the start and final palettes")
	cmd.Flags().BoolVar(&sortRows, "sort", false, "sort table rows by lowest contrast")

	return cmd
}
