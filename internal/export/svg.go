package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/grid"
)

// SVGOptions controls ContourToSVG output.
type SVGOptions struct {
	Scale       float64
	Background  string
	Stroke      string
	StrokeWidth float64
	// ShowLattice draws every lattice node, filled when it is active.
	ShowLattice bool
	Isolevel    float64
	Active      string
	Inactive    string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Scale:       1,
		Background:  "#0a0a0a",
		Stroke:      "#00ff00",
		StrokeWidth: 1.5,
		Active:      "#ff8800",
		Inactive:    "#333333",
	}
}

// ContourToSVG draws the contour segments over the grid's domain, one
// <line> per segment. Domain coordinates map directly to SVG user units
// times opt.Scale.
func ContourToSVG(g *grid.Grid, pts []geom.Position, opt SVGOptions) string {
	if opt.Scale <= 0 {
		opt.Scale = 1
	}
	width := g.Width() * opt.Scale
	height := g.Height() * opt.Scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, opt.Background))

	if opt.ShowLattice {
		dx, _ := g.Spacing()
		r := dx * opt.Scale * 0.15
		sb.WriteString("<g>\n")
		for i, p := range g.Positions() {
			fill := opt.Inactive
			if g.Value(i) >= opt.Isolevel {
				fill = opt.Active
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, p.X*opt.Scale, p.Y*opt.Scale, r, fill))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="%.2f" stroke-linecap="round">
`, opt.Stroke, opt.StrokeWidth))
	for _, s := range geom.Pairs(pts) {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, s.A.X*opt.Scale, s.A.Y*opt.Scale, s.B.X*opt.Scale, s.B.Y*opt.Scale))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG renders ys against xs as a single polyline fitted to a
// width × height canvas with 10% padding.
func SeriesToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	n := min(len(xs), len(ys))
	if n < 2 {
		return ""
	}

	lo, hi, ok := geom.Bounds(seriesPoints(xs[:n], ys[:n]))
	if !ok {
		return ""
	}
	minX, maxX, minY, maxY := lo.X, hi.X, lo.Y, hi.Y

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func seriesPoints(xs, ys []float64) []geom.Position {
	pts := make([]geom.Position, len(xs))
	for i := range xs {
		pts[i] = geom.Pos(xs[i], ys[i])
	}
	return pts
}
