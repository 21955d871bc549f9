package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/huetune/internal/anneal"
	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/palette"
)

func sampleReport() anneal.Report {
	start := palette.Snapshot{
		Backgrounds: []palette.Slot{
			{Role: palette.RoleMain, Color: colour.MustParseHex("#ffffff")},
			{Role: palette.RoleLineSelection, Color: colour.MustParseHex("#e6ebf2")},
		},
		Active:      []palette.Role{palette.RoleMain, palette.RoleLineSelection},
		Modifiable:  []palette.Role{palette.RoleLineSelection},
		Foregrounds: []colour.Color{colour.MustParseHex("#ed2e20"), colour.MustParseHex("#17ab52")},
	}
	final := palette.Snapshot{
		Backgrounds: []palette.Slot{
			{Role: palette.RoleMain, Color: colour.MustParseHex("#ffffff")},
			{Role: palette.RoleLineSelection, Color: colour.MustParseHex("#dde4ee")},
		},
		Active:      start.Active,
		Modifiable:  start.Modifiable,
		Foregrounds: []colour.Color{colour.MustParseHex("#e0261c"), colour.MustParseHex("#12a04e")},
	}
	return anneal.Report{
		StartCost: cost.TotalCost{Contrast: 10, Distance: 40, Range: 30, Target: 0, Protanopia: 50, Deuteranopia: 52, Tritanopia: 41},
		FinalCost: cost.TotalCost{Contrast: 9, Distance: 35, Range: 22, Target: 3, Protanopia: 44, Deuteranopia: 45, Tritanopia: 38},
		Start:     start,
		Final:     final,
		Duration:  1500 * time.Millisecond,
		Sweeps:    1604,
		Weights:   cost.DefaultWeights(),
	}
}

func TestNewReportFile(t *testing.T) {
	r := sampleReport()
	f := NewReportFile(r, Meta{Theme: "sourcegraph", Mode: "light", Seed: []byte{0xab, 0x01}})

	_, err := uuid.Parse(f.RunID)
	require.NoError(t, err)
	assert.Equal(t, "ab01", f.Seed)
	assert.Equal(t, r.StartTotal(), f.StartTotal)
	assert.Equal(t, r.FinalTotal(), f.FinalTotal)
	assert.Equal(t, r, f.Report())

	other := NewReportFile(r, Meta{})
	assert.NotEqual(t, f.RunID, other.RunID)
	assert.Empty(t, other.Seed)
}

func TestSaveLoadReport(t *testing.T) {
	for _, name := range []string{"report.json", "report.json.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := NewReportFile(sampleReport(), Meta{Theme: "sourcegraph", Mode: "light"})

			require.NoError(t, SaveReport(path, want))
			got, err := LoadReport(path)
			require.NoError(t, err)

			assert.Equal(t, want.RunID, got.RunID)
			assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
			assert.Equal(t, want.Report(), got.Report())
			assert.Equal(t, "sourcegraph", got.Theme)
		})
	}
}

func TestSaveReportCompresses(t *testing.T) {
	dir := t.TempDir()
	f := NewReportFile(sampleReport(), Meta{})
	plain := filepath.Join(dir, "r.json")
	packed := filepath.Join(dir, "r.json.xz")
	require.NoError(t, SaveReport(plain, f))
	require.NoError(t, SaveReport(packed, f))

	raw, err := os.ReadFile(packed)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, raw[:6])

	text, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Contains(t, string(text), `"run_id"`)
	assert.Contains(t, string(text), `"#e6ebf2"`)
}

func TestLoadReportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReport(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))
	_, err = LoadReport(garbage)
	assert.Error(t, err)

	badID := filepath.Join(dir, "bad-id.json")
	require.NoError(t, os.WriteFile(badID, []byte(`{"run_id": "nope"}`), 0o644))
	_, err = LoadReport(badID)
	assert.ErrorContains(t, err, "invalid run id")

	notXZ := filepath.Join(dir, "plain.json.xz")
	require.NoError(t, os.WriteFile(notXZ, []byte(`{"run_id": "nope"}`), 0o644))
	_, err = LoadReport(notXZ)
	assert.Error(t, err)
}

func TestSaveReportRejectsDirectory(t *testing.T) {
	err := SaveReport(t.TempDir(), NewReportFile(sampleReport(), Meta{}))
	assert.Error(t, err)
}

func TestRenderSwatch(t *testing.T) {
	red := colour.MustParseHex("#ed2e20")
	rows := []SwatchRow{
		{Label: "start", Colors: []colour.Color{colour.MustParseHex("#ffffff"), red}},
		{Label: "final", Colors: []colour.Color{colour.MustParseHex("#000000")}},
	}
	img := RenderSwatch(rows)

	b := img.Bounds()
	assert.Equal(t, 2*sheetPadding+labelWidth+2*(swatchSize+swatchGap), b.Dx())
	assert.Equal(t, 2*sheetPadding+2*(swatchSize+swatchGap), b.Dy())

	// Top-left corner of the second swatch in the first row.
	x := sheetPadding + labelWidth + swatchSize + swatchGap
	assert.Equal(t, color.RGBA{R: 0xed, G: 0x2e, B: 0x20, A: 0xff}, img.RGBAAt(x+1, sheetPadding+1))

	// The black swatch has a white label somewhere along its bottom edge.
	found := false
	y0 := sheetPadding + swatchSize + swatchGap
	for y := y0 + swatchSize/2; y < y0+swatchSize; y++ {
		for x := sheetPadding + labelWidth; x < sheetPadding+labelWidth+swatchSize; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{A: 0xff}) {
				found = true
			}
		}
	}
	assert.True(t, found, "expected label pixels on the black swatch")
}

func TestWriteSwatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swatch.png")
	rows := []SwatchRow{{Label: "start", Colors: []colour.Color{colour.MustParseHex("#5033e1")}}}
	require.NoError(t, WriteSwatch(path, rows))

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()
	img, err := png.Decode(in)
	require.NoError(t, err)
	assert.Equal(t, RenderSwatch(rows).Bounds(), img.Bounds())
}

func TestLabelColor(t *testing.T) {
	assert.Equal(t, color.Black, labelColor(colour.MustParseHex("#ffffff")))
	assert.Equal(t, color.White, labelColor(colour.MustParseHex("#000000")))
}
