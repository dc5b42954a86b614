package contour

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Weight returns how far along the edge from the active corner towards the
// inactive one the isolevel is crossed: 1 - (iso - inactive)/(active - inactive).
// When the two samples cannot be separated (equal, or NaN) the crossing is
// pinned to the active corner.
func Weight(isolevel, active, inactive float64) float64 {
	den := active - inactive
	if !(den > 0 || den < 0) {
		return 0
	}
	return 1 - (isolevel-inactive)/den
}
