package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/sim"
)

type ExportData struct {
	Source     string             `json:"source"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Resolution int                `json:"resolution"`
	Isolevel   float64            `json:"isolevel"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Segments   []float64          `json:"segments"`
	Lengths    []float64          `json:"lengths"`
	Contour    []float64          `json:"contour"`
	Metrics    map[string]float64 `json:"metrics"`
}

// WriteJSON encodes a run summary with the final contour flattened as
// [x0, y0, x1, y1, ...].
func WriteJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	data := ExportData{
		Source:     cfg.Source,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Resolution: cfg.Resolution,
		Isolevel:   cfg.Isolevel,
		Dt:         cfg.Dt,
		Steps:      result.StepsTaken,
		Times:      result.Times(),
		Segments:   result.Series("segments"),
		Lengths:    result.Series("length"),
		Contour:    geom.Flatten(result.Contour),
		Metrics:    result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
