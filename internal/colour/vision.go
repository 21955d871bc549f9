package colour

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Vision identifies a kind of colour vision, normal or deficient.
type Vision int

// Supported vision variants. The "-opia" variants are full deficiencies and
// the "-omaly" variants their partial (anomalous) forms.
const (
	Normal Vision = iota
	Protanopia
	Protanomaly
	Deuteranopia
	Deuteranomaly
	Tritanopia
	Tritanomaly
	Achromatopsia
	Achromatomaly
)

var visionNames = [...]string{
	Normal:        "normal",
	Protanopia:    "protanopia",
	Protanomaly:   "protanomaly",
	Deuteranopia:  "deuteranopia",
	Deuteranomaly: "deuteranomaly",
	Tritanopia:    "tritanopia",
	Tritanomaly:   "tritanomaly",
	Achromatopsia: "achromatopsia",
	Achromatomaly: "achromatomaly",
}

// String returns the lowercase name of the variant.
func (v Vision) String() string {
	if v < 0 || int(v) >= len(visionNames) {
		return fmt.Sprintf("vision(%d)", int(v))
	}
	return visionNames[v]
}

// Visions returns every variant in declaration order.
func Visions() []Vision {
	out := make([]Vision, len(visionNames))
	for i := range visionNames {
		out[i] = Vision(i)
	}
	return out
}

// ParseVision converts a variant name (case-insensitive) into a Vision.
func ParseVision(s string) (Vision, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range visionNames {
		if n == name {
			return Vision(i), nil
		}
	}
	return Normal, fmt.Errorf("invalid vision: %s (valid: %s)", s, strings.Join(visionNames[:], ", "))
}

type strategy int

const (
	strategyIdentity strategy = iota
	strategyMonochrome
	strategyDichromacy
)

// dichromacy holds the Brettel/Viénot projection for one cone family: two
// half-plane projections in linear RGB and the normal of the plane that
// separates them. Matrices are row-major.
type dichromacy struct {
	cvdFromRGB1 [9]float32
	cvdFromRGB2 [9]float32
	planeNormal [3]float32
}

var (
	protan = dichromacy{
		cvdFromRGB1: [9]float32{0.1451, 1.20165, -0.34675, 0.10447, 0.85316, 0.04237, 0.00429, -0.00603, 1.00174},
		cvdFromRGB2: [9]float32{0.14115, 1.16782, -0.30897, 0.10495, 0.8573, 0.03776, 0.00431, -0.00586, 1.00155},
		planeNormal: [3]float32{0.00048, 0.00416, -0.00464},
	}
	deutan = dichromacy{
		cvdFromRGB1: [9]float32{0.36198, 0.86755, -0.22953, 0.26099, 0.64512, 0.09389, -0.01975, 0.02686, 0.99289},
		cvdFromRGB2: [9]float32{0.37009, 0.8854, -0.25549, 0.25767, 0.63782, 0.10451, -0.0195, 0.02741, 0.99209},
		planeNormal: [3]float32{-0.00293, -0.00645, 0.00938},
	}
	tritan = dichromacy{
		cvdFromRGB1: [9]float32{1.01354, 0.14268, -0.15622, -0.01181, 0.87561, 0.13619, 0.07707, 0.81208, 0.11085},
		cvdFromRGB2: [9]float32{0.93337, 0.19999, -0.13336, 0.05809, 0.82565, 0.11626, -0.37923, 1.13825, 0.24098},
		planeNormal: [3]float32{0.0396, -0.02831, -0.01129},
	}
)

const (
	fullSeverity    float32 = 1.0
	partialSeverity float32 = 0.6
)

type visionModel struct {
	strategy strategy
	severity float32
	params   *dichromacy
}

var visionModels = [...]visionModel{
	Normal:        {strategy: strategyIdentity},
	Protanopia:    {strategy: strategyDichromacy, severity: fullSeverity, params: &protan},
	Protanomaly:   {strategy: strategyDichromacy, severity: partialSeverity, params: &protan},
	Deuteranopia:  {strategy: strategyDichromacy, severity: fullSeverity, params: &deutan},
	Deuteranomaly: {strategy: strategyDichromacy, severity: partialSeverity, params: &deutan},
	Tritanopia:    {strategy: strategyDichromacy, severity: fullSeverity, params: &tritan},
	Tritanomaly:   {strategy: strategyDichromacy, severity: partialSeverity, params: &tritan},
	Achromatopsia: {strategy: strategyMonochrome, severity: fullSeverity},
	Achromatomaly: {strategy: strategyMonochrome, severity: partialSeverity},
}

// Simulate returns c as perceived under vision v. The result is not clamped:
// the dichromacy projection can leave the sRGB gamut slightly.
func Simulate(c Color, v Vision) Color {
	if v < 0 || int(v) >= len(visionModels) {
		panic(fmt.Sprintf("colour: unknown vision %d", int(v)))
	}
	m := visionModels[v]
	switch m.strategy {
	case strategyMonochrome:
		return monochrome(c, m.severity)
	case strategyDichromacy:
		return m.params.project(c, m.severity)
	default:
		return c
	}
}

// monochrome blends each channel towards the colour's luma, quantised to the
// nearest 8-bit level.
func monochrome(c Color, severity float32) Color {
	z := c.R*0.299 + c.G*0.587 + c.B*0.114
	z = math32.Round(z*255) / 255
	return Color{
		R: z*severity + (1-severity)*c.R,
		G: z*severity + (1-severity)*c.G,
		B: z*severity + (1-severity)*c.B,
	}
}

func (d *dichromacy) project(c Color, severity float32) Color {
	lin := c.Linear()
	rgb := [3]float32{lin.R, lin.G, lin.B}

	// Pick the half-plane the colour falls on.
	dot := rgb[0]*d.planeNormal[0] + rgb[1]*d.planeNormal[1] + rgb[2]*d.planeNormal[2]
	m := &d.cvdFromRGB2
	if dot >= 0 {
		m = &d.cvdFromRGB1
	}

	var cvd [3]float32
	for row := 0; row < 3; row++ {
		cvd[row] = m[row*3]*rgb[0] + m[row*3+1]*rgb[1] + m[row*3+2]*rgb[2]
		// Severity is a linear interpolation; equivalent in LMS since the
		// projection is linear.
		cvd[row] = cvd[row]*severity + rgb[row]*(1-severity)
	}

	return LinearColor{R: cvd[0], G: cvd[1], B: cvd[2]}.Encode()
}
