package colour

// Luminance calculates the relative luminance of a colour according to WCAG 2.x.
// Returns a value between 0 (darkest) and 1 (lightest) for in-gamut colours.
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance.
func Luminance(c Color) float32 {
	l := c.Linear()
	return 0.2126*l.R + 0.7152*l.G + 0.0722*l.B
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// The order of the arguments does not matter.
func ContrastRatio(a, b Color) float32 {
	l1 := Luminance(a)
	l2 := Luminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// NormalizeRatio maps a ratio computed in either direction onto [1, ∞) by
// taking the reciprocal of values below one.
func NormalizeRatio(r float32) float32 {
	if r < 1 {
		return 1 / r
	}
	return r
}
