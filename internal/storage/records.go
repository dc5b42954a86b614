package storage

import (
	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/sim"
)

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Step     int     `csv:"step"`
	Time     float64 `csv:"time"`
	Segments int     `csv:"segments"`
	Length   float64 `csv:"length"`
	Energy   float64 `csv:"energy"`
}

// PointRecord is one contour vertex in contour.csv; consecutive rows with
// the same segment index form one segment.
type PointRecord struct {
	Segment int     `csv:"segment"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
}

func FrameRecords(frames []sim.Stats) []FrameRecord {
	out := make([]FrameRecord, len(frames))
	for i, f := range frames {
		out[i] = FrameRecord{Step: f.Step, Time: f.Time, Segments: f.Segments, Length: f.Length, Energy: f.Energy}
	}
	return out
}

func PointRecords(pts []geom.Position) []PointRecord {
	out := make([]PointRecord, len(pts))
	for i, p := range pts {
		out[i] = PointRecord{Segment: i / 2, X: p.X, Y: p.Y}
	}
	return out
}

// Points converts contour rows back into positions.
func Points(records []PointRecord) []geom.Position {
	out := make([]geom.Position, len(records))
	for i, r := range records {
		out[i] = geom.Pos(r.X, r.Y)
	}
	return out
}
