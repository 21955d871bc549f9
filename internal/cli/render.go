package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/cost"
	"github.com/jmylchreest/huetune/internal/palette"
)

// renderer writes tables and colour swatches. With color off every cell is
// plain text.
type renderer struct {
	out   io.Writer
	color bool
	lg    *lipgloss.Renderer
}

func newRenderer(out io.Writer, color bool) renderer {
	return renderer{out: out, color: color, lg: lipgloss.NewRenderer(out)}
}

// swatch renders c as its hex code, on a background of c when colouring.
func (r renderer) swatch(c colour.Color) string {
	hex := c.Hex()
	if !r.color {
		return hex
	}
	fg := "#000000"
	if colour.ContrastRatio(c, colour.New(1, 1, 1)) > colour.ContrastRatio(c, colour.New(0, 0, 0)) {
		fg = "#ffffff"
	}
	return r.lg.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(fg)).
		Render(hex)
}

// swatches renders colors space separated.
func (r renderer) swatches(colors []colour.Color) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = r.swatch(c)
	}
	return strings.Join(parts, " ")
}

// attention marks a cell that fails its contrast need.
func (r renderer) attention(s string) string {
	if !r.color {
		return "!" + s
	}
	return r.lg.NewStyle().Reverse(true).Render(s)
}

func (r renderer) heading(s string) string {
	if !r.color {
		return s
	}
	return r.lg.NewStyle().Bold(true).Render(s)
}

func (r renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// contrastRow is one row colour and its ratio against every column.
type contrastRow struct {
	color  colour.Color
	ratios []float32
}

func (c contrastRow) worst() float32 {
	if len(c.ratios) == 0 {
		return 0
	}
	return slices.Min(c.ratios)
}

// contrastTable renders the ratio of every row colour against every column
// colour. Ratios below need are flagged. With sortRows the rows are ordered
// worst first by their lowest ratio.
func (r renderer) contrastTable(rows, cols []colour.Color, need cost.ContrastNeed, sortRows bool) string {
	data := make([]contrastRow, len(rows))
	for i, rc := range rows {
		data[i] = contrastRow{color: rc, ratios: make([]float32, len(cols))}
		for j, cc := range cols {
			data[i].ratios[j] = colour.ContrastRatio(rc, cc)
		}
	}
	if sortRows {
		slices.SortStableFunc(data, func(a, b contrastRow) int {
			return cmp.Compare(a.worst(), b.worst())
		})
	}

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "contrast")
	for _, c := range cols {
		headers = append(headers, r.swatch(c))
	}
	t := NewTable(headers)
	for i := range cols {
		t.SetRightAlign(i + 1)
	}

	minRatio := need.MinRatio()
	for _, row := range data {
		cells := make([]string, 0, len(cols)+1)
		cells = append(cells, r.swatch(row.color))
		for _, ratio := range row.ratios {
			cell := fmt.Sprintf("%.2f:1", ratio)
			if ratio < minRatio {
				cell = r.attention(cell)
			}
			cells = append(cells, cell)
		}
		t.AddRow(cells)
	}
	return t.Render()
}

// printContrast writes the background and background/foreground tables of s.
func (r renderer) printContrast(label string, s palette.Snapshot, sortRows bool) {
	bgs := s.ActiveBackgrounds()
	r.printf("%s\n", r.heading(label+" background contrast"))
	r.printf("%s\n", r.contrastTable(bgs, bgs, cost.Background, sortRows))
	r.printf("%s\n", r.heading(label+" background/foreground contrast"))
	r.printf("%s\n", r.contrastTable(s.Foregrounds, bgs, cost.Text, sortRows))
}
