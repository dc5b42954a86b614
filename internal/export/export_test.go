package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/grid"
	"github.com/san-kum/isocontour/internal/sim"
)

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.NewAnalytic(10, 10, 3, func(p geom.Position) float64 { return p.X / 10 })
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestContourToSVG(t *testing.T) {
	g := testGrid(t)
	pts := []geom.Position{geom.Pos(5, 0), geom.Pos(5, 5), geom.Pos(5, 5), geom.Pos(5, 10)}

	opt := DefaultSVGOptions()
	opt.Scale = 2
	svg := ContourToSVG(g, pts, opt)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not a complete svg document")
	}
	if !strings.Contains(svg, `width="20" height="20"`) {
		t.Error("scale not applied to canvas size")
	}
	if n := strings.Count(svg, "<line"); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
	if !strings.Contains(svg, `x1="10.00" y1="0.00" x2="10.00" y2="10.00"`) {
		t.Error("first segment not scaled")
	}
	if strings.Contains(svg, "<circle") {
		t.Error("lattice drawn without ShowLattice")
	}
}

func TestContourToSVG_Lattice(t *testing.T) {
	g := testGrid(t)
	opt := DefaultSVGOptions()
	opt.ShowLattice = true
	opt.Isolevel = 0.5
	svg := ContourToSVG(g, nil, opt)

	if n := strings.Count(svg, "<circle"); n != 9 {
		t.Errorf("expected 9 lattice nodes, got %d", n)
	}
	// columns x=5 and x=10 are active
	if n := strings.Count(svg, opt.Active); n != 6 {
		t.Errorf("expected 6 active nodes, got %d", n)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, []float64{1}, 100, 50, "#fff") != "" {
		t.Error("a single point should not produce a chart")
	}

	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{3, 3, 3}, 100, 50, "#fff")
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line commands: %s", svg)
	}
	if !strings.Contains(svg, `stroke="#fff"`) {
		t.Error("stroke colour missing")
	}
}

func TestWriteJSON(t *testing.T) {
	result := &sim.Result{
		Frames:     []sim.Stats{{Time: 0, Segments: 1, Length: 2}, {Time: 0.5, Segments: 2, Length: 3}},
		Contour:    []geom.Position{geom.Pos(1, 2), geom.Pos(3, 4)},
		Metrics:    map[string]float64{"segments": 1.5},
		StepsTaken: 1,
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, config.DefaultConfig(), result); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Source != "particles" || data.Steps != 1 {
		t.Errorf("unexpected header: %+v", data)
	}
	if len(data.Contour) != 4 || data.Contour[3] != 4 {
		t.Errorf("contour not flattened: %v", data.Contour)
	}
	if len(data.Times) != 2 || data.Lengths[1] != 3 {
		t.Errorf("series mismatch: %+v", data)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteContourCSV(&buf, []geom.Position{geom.Pos(1, 2), geom.Pos(3, 4)}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "segment,x,y" || lines[2] != "0,3,4" {
		t.Errorf("unexpected contour csv: %q", lines)
	}

	buf.Reset()
	if err := WriteFramesCSV(&buf, []sim.Stats{{Step: 2, Segments: 7}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "step,time,segments,length,energy") {
		t.Errorf("missing header: %q", buf.String())
	}
}
