package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/sim"
	"github.com/san-kum/isocontour/internal/storage"
)

// WriteContourCSV writes one row per contour vertex with its segment index.
func WriteContourCSV(w io.Writer, pts []geom.Position) error {
	return gocsv.Marshal(storage.PointRecords(pts), w)
}

// WriteFramesCSV writes the per-frame stats of a run.
func WriteFramesCSV(w io.Writer, frames []sim.Stats) error {
	return gocsv.Marshal(storage.FrameRecords(frames), w)
}
