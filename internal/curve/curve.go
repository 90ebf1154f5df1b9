package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownCurve indicates a preset name that is not registered.
var ErrUnknownCurve = errors.New("curve: unknown curve")

type Curve interface {
	Evaluate(t float64) float64
}

// Func adapts a plain function to Curve.
type Func func(t float64) float64

func (f Func) Evaluate(t float64) float64 { return f(t) }

const (
	backOvershoot = 1.70158
	bounceN       = 7.5625
	bounceD       = 2.75
)

var (
	Linear = Func(func(t float64) float64 { return t })

	// EaseInOut is the smoothstep polynomial, the shape of a Hermite curve
	// with flat tangents at (0,0) and (1,1).
	EaseInOut = Func(func(t float64) float64 { return t * t * (3 - 2*t) })

	EaseIn  = Func(func(t float64) float64 { return t * t })
	EaseOut = Func(func(t float64) float64 { return 1 - (1-t)*(1-t) })

	EaseInOutCubic = Func(func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	})

	// EaseOutBack overshoots past 1 near the end and settles back.
	EaseOutBack = Func(func(t float64) float64 {
		c3 := backOvershoot + 1
		u := t - 1
		return 1 + c3*u*u*u + backOvershoot*u*u
	})

	Bounce = Func(bounceOut)

	// Elastic oscillates around 1 with decaying amplitude.
	Elastic = Func(func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		c4 := (2 * math.Pi) / 3
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
	})
)

func bounceOut(t float64) float64 {
	switch {
	case t < 1/bounceD:
		return bounceN * t * t
	case t < 2/bounceD:
		t -= 1.5 / bounceD
		return bounceN*t*t + 0.75
	case t < 2.5/bounceD:
		t -= 2.25 / bounceD
		return bounceN*t*t + 0.9375
	default:
		t -= 2.625 / bounceD
		return bounceN*t*t + 0.984375
	}
}

var presets = map[string]Curve{
	"linear":            Linear,
	"ease_in_out":       EaseInOut,
	"ease_in":           EaseIn,
	"ease_out":          EaseOut,
	"ease_in_out_cubic": EaseInOutCubic,
	"ease_out_back":     EaseOutBack,
	"bounce":            Bounce,
	"elastic":           Elastic,
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Curve, error) {
	c, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return c, nil
}

// Names lists the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
