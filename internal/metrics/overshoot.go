package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/driver"
)

// Overshoot records how far the target got past the destination, measured
// along the start-to-destination direction.
type Overshoot struct {
	name string
	end  mgl64.Vec3
	dir  mgl64.Vec3
	max  float64
}

func NewOvershoot(start, end mgl64.Vec3) *Overshoot {
	o := &Overshoot{name: "max_overshoot", end: end}
	if d := end.Sub(start); d.Len() > 0 {
		o.dir = d.Normalize()
	}
	return o
}

func (o *Overshoot) Name() string {
	return o.name
}

func (o *Overshoot) Observe(s driver.Sample) {
	beyond := s.Position.Sub(o.end).Dot(o.dir)
	o.max = math.Max(o.max, beyond)
}

func (o *Overshoot) Value() float64 {
	return o.max
}

func (o *Overshoot) Reset() {
	o.max = 0
}
