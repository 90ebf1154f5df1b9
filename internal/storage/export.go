package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/posecam/internal/driver"
)

type ExportData struct {
	Take         TakeMetadata       `json:"take"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	Positions    [][3]float64       `json:"positions"`
	Orientations [][4]float64       `json:"orientations"`
	Progress     []float64          `json:"progress"`
	Metrics      map[string]float64 `json:"metrics"`
}

// ExportJSON writes a take as a single JSON document. Orientations are
// w, x, y, z.
func ExportJSON(w io.Writer, meta TakeMetadata, track *driver.Track) error {
	if track == nil {
		return ErrNoTrack
	}

	n := len(track.Samples)
	data := ExportData{
		Take:         meta,
		Steps:        track.Steps,
		Times:        track.Times(),
		Positions:    make([][3]float64, n),
		Orientations: make([][4]float64, n),
		Progress:     make([]float64, n),
		Metrics:      track.Metrics,
	}

	for i, s := range track.Samples {
		data.Positions[i] = [3]float64(s.Position)
		q := s.Orientation
		data.Orientations[i] = [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
		data.Progress[i] = s.Progress
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
