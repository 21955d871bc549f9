package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/huetune/internal/anneal"
	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/export"
)

// quickSchedule keeps command tests to a handful of sweeps.
var quickSchedule = anneal.Schedule{Initial: 10, CoolingRate: 0.5, Cutoff: 0.1}

// runCLI executes the command tree against an empty config directory and
// returns what it wrote to stdout and stderr.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"CONFIG", "THEME", "MODE", "SEED", "LOG_LEVEL", "OUTPUT_SWATCH", "OUTPUT_REPORT"} {
		t.Setenv("HUETUNE_"+key, "")
		os.Unsetenv("HUETUNE_" + key)
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(quickSchedule)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{
			name: "version",
			args: []string{"version"},
			want: []string{"huetune version"},
		},
		{
			name: "themes",
			args: []string{"themes"},
			want: []string{"sourcegraph", "sourcegraph-diff", "mist", "medium+dark", "light+medium"},
		},
		{
			name: "contrast",
			args: []string{"contrast"},
			want: []string{"sourcegraph light background contrast", "background/foreground contrast", "!1.00:1"},
		},
		{
			name: "contrast dark diff",
			args: []string{"contrast", "--theme", "sourcegraph-diff", "-m", "dark", "--sort"},
			want: []string{"sourcegraph-diff dark background contrast"},
		},
		{
			name: "simulate all",
			args: []string{"simulate"},
			want: []string{"protanopia", "tritanomaly", "achromatopsia"},
		},
		{
			name: "simulate one",
			args: []string{"simulate", "--vision", "Deuteranopia"},
			want: []string{"deuteranopia", "distance"},
		},
		{
			name:    "unknown vision",
			args:    []string{"simulate", "--vision", "tetrachromacy"},
			wantErr: "invalid vision",
		},
		{
			name:    "unknown theme",
			args:    []string{"contrast", "--theme", "nope"},
			wantErr: "unknown theme",
		},
		{
			name:    "unknown mode",
			args:    []string{"contrast", "--mode", "sepia"},
			wantErr: "invalid mode",
		},
		{
			name:    "bad log level",
			args:    []string{"themes", "--log-level", "loud"},
			wantErr: "invalid log level",
		},
		{
			name:    "report needs a file",
			args:    []string{"report"},
			wantErr: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Execute() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestOptimizeWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "run.json.xz")
	swatchPath := filepath.Join(dir, "run.png")

	out, logs, err := runCLI(t, "optimize", "--seed", "fixed", "--vision", "protanopia",
		"--save-report", reportPath, "--swatch", swatchPath)
	if err != nil {
		t.Fatalf("optimize error = %v", err)
	}

	for _, w := range []string{"Reference light", "Optimised light", "Cost:", "sweeps", "As seen with protanopia"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q", w)
		}
	}
	for _, w := range []string{"starting optimisation", "saved report", "saved swatch"} {
		if !strings.Contains(logs, w) {
			t.Errorf("logs missing %q:\n%s", w, logs)
		}
	}

	f, err := export.LoadReport(reportPath)
	if err != nil {
		t.Fatalf("LoadReport() error = %v", err)
	}
	if f.Theme != "sourcegraph" || f.Mode != "light" {
		t.Errorf("report theme/mode = %s/%s", f.Theme, f.Mode)
	}
	if f.Sweeps != quickSchedule.Sweeps() {
		t.Errorf("report sweeps = %d, want %d", f.Sweeps, quickSchedule.Sweeps())
	}
	if want := "6669786564"; !strings.HasPrefix(f.Seed, want) {
		t.Errorf("report seed = %s, want prefix %s", f.Seed, want)
	}
	if _, err := os.Stat(swatchPath); err != nil {
		t.Errorf("swatch not written: %v", err)
	}

	out, _, err = runCLI(t, "report", reportPath)
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	for _, w := range []string{"Run " + f.RunID, "Final background contrast", "Foreground colours:"} {
		if !strings.Contains(out, w) {
			t.Errorf("report output missing %q", w)
		}
	}
}

func TestOptimizeSeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	var finals [2][]colour.Color
	for i := range finals {
		path := filepath.Join(dir, "run"+string(rune('a'+i))+".json")
		if _, _, err := runCLI(t, "optimize", "-s", "same seed", "--save-report", path, "-q"); err != nil {
			t.Fatalf("optimize error = %v", err)
		}
		f, err := export.LoadReport(path)
		if err != nil {
			t.Fatalf("LoadReport() error = %v", err)
		}
		finals[i] = f.Final.Colors()
	}

	a, b := colour.HexList(finals[0]), colour.HexList(finals[1])
	if strings.Join(a, " ") != strings.Join(b, " ") {
		t.Errorf("same seed gave different palettes:\n%v\n%v", a, b)
	}
}

func TestOptimizeRejectsBadWeights(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[weights]\ndistance_bg_bg = 0.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "optimize", "--config", cfg)
	if err == nil || !strings.Contains(err.Error(), "weights") {
		t.Fatalf("Execute() error = %v, want weights error", err)
	}
}

func TestVerboseLogsProgress(t *testing.T) {
	_, logs, err := runCLI(t, "optimize", "-s", "x", "-v")
	if err != nil {
		t.Fatalf("optimize error = %v", err)
	}
	if !strings.Contains(logs, "[DEBUG] huetune: resolved run") {
		t.Errorf("expected debug output with -v:\n%s", logs)
	}
	for _, want := range []string{"cooling schedule", fmt.Sprintf("sweeps=%d", quickSchedule.Sweeps())} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}

func TestVisionValue(t *testing.T) {
	var v visionValue
	if v.String() != "" || v.Type() != "vision" {
		t.Fatalf("zero visionValue = %q/%q", v.String(), v.Type())
	}
	if err := v.Set(" TRITANOPIA "); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !v.set || v.vision != colour.Tritanopia || v.String() != "tritanopia" {
		t.Errorf("after Set: %+v", v)
	}
	if err := v.Set("mauve"); err == nil {
		t.Error("Set(mauve) should fail")
	}
}

func TestContrastTableFlagsAndSorts(t *testing.T) {
	r := newRenderer(&bytes.Buffer{}, false)
	white := colour.MustParseHex("#ffffff")
	grey := colour.MustParseHex("#767676")
	black := colour.MustParseHex("#000000")

	got := r.contrastTable([]colour.Color{black, grey}, []colour.Color{white}, cost.Text, true)
	lines := strings.Split(got, "\n")
	if len(lines) < 4 {
		t.Fatalf("unexpected table:\n%s", got)
	}
	// Grey on white is 4.54:1, above the text need, and sorts before black.
	if !strings.HasPrefix(lines[2], "#767676") || strings.Contains(lines[2], "!") {
		t.Errorf("row 1 = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "#000000") || !strings.Contains(lines[3], "21.00:1") {
		t.Errorf("row 2 = %q", lines[3])
	}

	dark := colour.MustParseHex("#333333")
	flagged := r.contrastTable([]colour.Color{dark}, []colour.Color{black}, cost.Background, false)
	if !strings.Contains(flagged, "!1.") {
		t.Errorf("expected dark grey on black flagged as a background pair:\n%s", flagged)
	}
}
