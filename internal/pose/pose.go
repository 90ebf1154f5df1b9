package pose

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/curve"
	"github.com/san-kum/posecam/internal/spatial"
)

const (
	DefaultTransitionDuration = 1.0
	DefaultColor              = "#ffffff"
)

type Pose struct {
	Name        string
	Description string
	Color       string
	ShowPreview bool

	Position    mgl64.Vec3
	Orientation mgl64.Quat

	// TransitionDuration is the length in seconds of a transition that
	// ends at this pose. Zero or less completes on the first tick.
	TransitionDuration float64
	// Curve shapes transitions into this pose. Nil means linear.
	Curve curve.Curve
}

func New(name string) *Pose {
	return &Pose{
		Name:               name,
		Color:              DefaultColor,
		ShowPreview:        true,
		Orientation:        mgl64.QuatIdent(),
		TransitionDuration: DefaultTransitionDuration,
		Curve:              curve.EaseInOut,
	}
}

// CaptureFrom copies the target's current transform into p.
func (p *Pose) CaptureFrom(t spatial.Target) {
	if p == nil || t == nil {
		return
	}
	p.Position = t.Position()
	p.Orientation = t.Orientation()
}

// ApplyTo writes p's transform onto the target without interpolation.
func (p *Pose) ApplyTo(t spatial.Target) {
	if p == nil || t == nil {
		return
	}
	t.SetPosition(p.Position)
	t.SetOrientation(p.Orientation)
}

// EffectiveCurve returns the curve a transition into p should follow.
func (p *Pose) EffectiveCurve() curve.Curve {
	if p.Curve == nil {
		return curve.Linear
	}
	return p.Curve
}
