package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huetune/internal/anneal"
	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/export"
	"github.com/jmylchreest/huetune/internal/palette"
)

type optimizeOptions struct {
	vision   visionValue
	sortRows bool
}

func newOptimizeCmd(a *app) *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:     "optimize",
		Aliases: []string{"optimise", "run"},
		Short:   "Anneal a theme's palette",
		Long: `Anneal the foreground colours and modifiable backgrounds of a theme.

The contrast tables of the reference palette are printed first, then the
tables of the optimised palette and a cost report. Runs are reproducible
when --seed is given.`,
		Example: `  huetune optimize
  huetune optimize --theme sourcegraph-diff --mode dark --seed hello
  huetune optimize --vision deuteranopia --swatch out.png --save-report run.json.xz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOptimize(cmd, opts)
		},
	}

	addThemeFlags(cmd)
	cmd.Flags().StringP("seed", "s", "", "seed string; the first 32 bytes are used (default random)")
	cmd.Flags().Var(&opts.vision, "vision", "also print the optimised colours as seen with this vision")
	cmd.Flags().String("swatch", "", "write a PNG swatch sheet of the start and final palettes")
	cmd.Flags().String("save-report", "", "save the report as JSON (.xz suffix compresses)")
	cmd.Flags().BoolVar(&opts.sortRows, "sort", false, "sort table rows by lowest contrast")

	return cmd
}

func (a *app) runOptimize(cmd *cobra.Command, opts *optimizeOptions) error {
	in, err := a.resolveTheme()
	if err != nil {
		return err
	}
	w, err := a.cfg.InitializedWeights()
	if err != nil {
		return err
	}
	p, err := palette.New(in.Backgrounds, in.Foregrounds, w)
	if err != nil {
		return fmt.Errorf("failed to build palette: %w", err)
	}
	seed, err := a.seed()
	if err != nil {
		return err
	}
	a.logger.Debug("resolved run", "theme", in.Theme, "mode", in.Mode, "seed", hex.EncodeToString(seed[:]))

	r := a.renderer(cmd)
	r.printContrast(fmt.Sprintf("Reference %s", in.Mode), p.Snapshot(), opts.sortRows)

	opt := anneal.New(anneal.NewRand(seed),
		anneal.WithLogger(a.logger.Named("anneal")),
		anneal.WithSchedule(a.schedule),
	)
	sched := opt.Schedule()
	a.logger.Debug("cooling schedule", "initial", sched.Initial, "rate", sched.CoolingRate,
		"cutoff", sched.Cutoff, "sweeps", sched.Sweeps())
	report := opt.Optimize(p)

	r.printContrast(fmt.Sprintf("Optimised %s", in.Mode), report.Final, opts.sortRows)
	r.printf("%s\n", report)

	if opts.vision.set {
		r.printf("\n%s\n", r.heading("As seen with "+opts.vision.vision.String()))
		r.printf("%s", simulationTable(r, report.Final.Colors(), []colour.Vision{opts.vision.vision}))
	}

	if path := a.cfg.Output.Report; path != "" {
		f := export.NewReportFile(report, export.Meta{Theme: in.Theme, Mode: string(in.Mode), Seed: seed[:]})
		if err := export.SaveReport(path, f); err != nil {
			return err
		}
		a.logger.Info("saved report", "path", path, "run_id", f.RunID)
	}
	if path := a.cfg.Output.Swatch; path != "" {
		if err := export.WriteSwatch(path, swatchRows(report)); err != nil {
			return err
		}
		a.logger.Info("saved swatch", "path", path)
	}
	return nil
}

// swatchRows lays out the start and final palettes of a report.
func swatchRows(r anneal.Report) []export.SwatchRow {
	return []export.SwatchRow{
		{Label: "start", Colors: r.Start.Colors()},
		{Label: "final", Colors: r.Final.Colors()},
	}
}
