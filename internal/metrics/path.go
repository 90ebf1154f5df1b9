package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/driver"
	"github.com/san-kum/posecam/internal/spatial"
)

// PathLength sums the distance the target travels between samples.
type PathLength struct {
	name  string
	last  mgl64.Vec3
	seen  bool
	total float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string {
	return p.name
}

func (p *PathLength) Observe(s driver.Sample) {
	if p.seen {
		p.total += s.Position.Sub(p.last).Len()
	}
	p.last = s.Position
	p.seen = true
}

func (p *PathLength) Value() float64 {
	return p.total
}

func (p *PathLength) Reset() {
	p.total = 0
	p.seen = false
}

// AngularTravel sums the rotation in radians between samples.
type AngularTravel struct {
	name  string
	last  mgl64.Quat
	seen  bool
	total float64
}

func NewAngularTravel() *AngularTravel {
	return &AngularTravel{name: "angular_travel"}
}

func (a *AngularTravel) Name() string {
	return a.name
}

func (a *AngularTravel) Observe(s driver.Sample) {
	if a.seen {
		a.total += spatial.AngleBetween(a.last, s.Orientation)
	}
	a.last = s.Orientation
	a.seen = true
}

func (a *AngularTravel) Value() float64 {
	return a.total
}

func (a *AngularTravel) Reset() {
	a.total = 0
	a.seen = false
}
