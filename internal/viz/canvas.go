package viz

import (
	"math"
	"strings"

	"github.com/san-kum/isocontour/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2×4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize returns the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set turns on the sub-pixel at (x, y); out-of-range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Viewport maps a width × height domain onto a canvas.
type Viewport struct {
	canvas        *Canvas
	width, height float64
}

func (c *Canvas) Viewport(width, height float64) Viewport {
	return Viewport{canvas: c, width: width, height: height}
}

func (v Viewport) project(p geom.Position) (int, int) {
	pw, ph := v.canvas.PixelSize()
	x := int(math.Round(p.X / v.width * float64(pw-1)))
	y := int(math.Round(p.Y / v.height * float64(ph-1)))
	return x, y
}

// DrawSegments draws consecutive point pairs as line segments.
func (v Viewport) DrawSegments(pts []geom.Position) {
	for _, s := range geom.Pairs(pts) {
		x0, y0 := v.project(s.A)
		x1, y1 := v.project(s.B)
		v.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// DrawCircle outlines a disc of domain radius r around centre.
func (v Viewport) DrawCircle(centre geom.Position, r float64) {
	const steps = 24
	prevX, prevY := v.project(geom.Pos(centre.X+r, centre.Y))
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		x, y := v.project(geom.Pos(centre.X+r*math.Cos(a), centre.Y+r*math.Sin(a)))
		v.canvas.DrawLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
