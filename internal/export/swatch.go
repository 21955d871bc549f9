package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/security"
)

// Swatch sheet geometry, in pixels.
const (
	swatchSize   = 72
	swatchGap    = 4
	labelWidth   = 56
	sheetPadding = 8
)

// SwatchRow is one labelled strip of colours.
type SwatchRow struct {
	Label  string
	Colors []colour.Color
}

// RenderSwatch draws one row per SwatchRow: the label on the left, then a
// square per colour with its hex code printed in whichever of black or white
// contrasts more.
func RenderSwatch(rows []SwatchRow) *image.RGBA {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r.Colors))
	}
	width := 2*sheetPadding + labelWidth + cols*(swatchSize+swatchGap)
	height := 2*sheetPadding + len(rows)*(swatchSize+swatchGap)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for i, row := range rows {
		y := sheetPadding + i*(swatchSize+swatchGap)
		drawText(img, face, row.Label, sheetPadding, y+swatchSize/2, color.Black)

		for j, c := range row.Colors {
			x := sheetPadding + labelWidth + j*(swatchSize+swatchGap)
			rect := image.Rect(x, y, x+swatchSize, y+swatchSize)
			draw.Draw(img, rect, image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)

			label := c.Hex()
			textWidth := font.MeasureString(face, label).Ceil()
			drawText(img, face, label, x+(swatchSize-textWidth)/2, y+swatchSize-swatchGap, labelColor(c))
		}
	}
	return img
}

// WriteSwatch renders rows and writes them to path as a PNG.
func WriteSwatch(path string, rows []SwatchRow) (err error) {
	if err := security.ValidateOutputPath(path); err != nil {
		return err
	}
	out, err := os.Create(path) // #nosec G304 - Output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close swatch file: %w", closeErr)
		}
	}()

	if err := png.Encode(out, RenderSwatch(rows)); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}

func drawText(img draw.Image, face font.Face, text string, x, baseline int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

func labelColor(c colour.Color) color.Color {
	black, white := colour.New(0, 0, 0), colour.New(1, 1, 1)
	if colour.ContrastRatio(c, black) >= colour.ContrastRatio(c, white) {
		return color.Black
	}
	return color.White
}

func toRGBA(c colour.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
