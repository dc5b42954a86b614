// Package contour extracts isolines from a sampled grid with marching squares.
//
// Each lattice cell is classified by which of its four corners are active
// (sample >= isolevel). The resulting 4-bit case selects the cell edges that
// the isoline crosses, and a vertex is placed on each crossed edge either at
// its midpoint or by linear interpolation of the corner samples.
//
// The output is an unordered list of segment endpoints: points 2k and 2k+1
// form one segment. The two saddle cases (5 and 10) always emit two separate
// segments, so callers must not assume the points form a connected polyline.
//
// # Example
//
//	g, _ := grid.New(768, 768, 150, src)
//	ex := contour.New(0.5, true, g)
//	for range ticks {
//		g.Refresh(src, t)
//		ex.March()
//		draw(ex.Coords())
//	}
package contour
