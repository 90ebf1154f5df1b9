package driver

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/transition"
)

var (
	ErrInvalidDt       = errors.New("driver: dt must be positive and finite")
	ErrInvalidDuration = errors.New("driver: max duration must be positive and finite")
	ErrNoController    = errors.New("driver: no controller")
	ErrNoPose          = errors.New("driver: no destination pose")
)

// Sample is the target transform observed after a tick.
type Sample struct {
	Time        float64
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Progress    float64
	Pose        string
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(c *transition.Controller, t float64)
}

type Config struct {
	Dt          float64 `yaml:"dt"`
	MaxDuration float64 `yaml:"max_duration"`
}

func DefaultConfig() Config {
	return Config{
		Dt:          1.0 / 60.0,
		MaxDuration: 30.0,
	}
}

type Track struct {
	Samples   []Sample
	Metrics   map[string]float64
	Steps     int
	Completed bool
}

func (tr *Track) Times() []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = s.Time
	}
	return out
}

// Axis extracts one position component (0=x, 1=y, 2=z) over time.
func (tr *Track) Axis(i int) []float64 {
	out := make([]float64, len(tr.Samples))
	for j, s := range tr.Samples {
		out[j] = s.Position[i]
	}
	return out
}

func (tr *Track) Final() Sample {
	if len(tr.Samples) == 0 {
		return Sample{Orientation: mgl64.QuatIdent()}
	}
	return tr.Samples[len(tr.Samples)-1]
}
