package colour

import "math"

// go-colorful reports CIEDE2000 on a 0..1 lightness scale; the cost model
// works in the conventional 0..100 units.
const deltaEScale = 100

// Distance returns the CIEDE2000 difference between two colours, computed in
// CIE Lab/LCh under a D65 white point. It is symmetric and zero for identical
// input. Black against white is 100.
func Distance(a, b Color) float32 {
	d := a.toColorful().DistanceCIEDE2000(b.toColorful()) * deltaEScale
	if math.IsNaN(d) {
		return float32(math.Inf(1))
	}
	return float32(d)
}

// Closest returns the candidate with the smallest Distance to c. Ties go to the
// earliest candidate. It panics if candidates is empty.
func Closest(c Color, candidates []Color) Color {
	if len(candidates) == 0 {
		panic("colour: Closest called with no candidates")
	}
	best := candidates[0]
	bestDist := Distance(c, best)
	for _, candidate := range candidates[1:] {
		if d := Distance(c, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
