package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const planMargin = 2.0

// Plan maps the world x/z plane onto canvas dots, +z pointing up the
// screen and +x to the right. Both axes share one scale.
type Plan struct {
	centerX, centerZ float64
	scale            float64
	w, h             int
}

// FitPlan frames every point on a canvas of w by h dots.
func FitPlan(points []mgl64.Vec3, w, h int) Plan {
	minX, maxX, minZ, maxZ := -1.0, 1.0, -1.0, 1.0
	if len(points) > 0 {
		minX, maxX = math.Inf(1), math.Inf(-1)
		minZ, maxZ = math.Inf(1), math.Inf(-1)
		for _, p := range points {
			minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
			minZ, maxZ = math.Min(minZ, p.Z()), math.Max(maxZ, p.Z())
		}
	}

	spanX := maxX - minX + 2*planMargin
	spanZ := maxZ - minZ + 2*planMargin
	scale := math.Min(float64(w-1)/spanX, float64(h-1)/spanZ)

	return Plan{
		centerX: (minX + maxX) / 2,
		centerZ: (minZ + maxZ) / 2,
		scale:   scale,
		w:       w,
		h:       h,
	}
}

// Project returns the dot coordinates of a world point.
func (p Plan) Project(v mgl64.Vec3) (int, int) {
	x := float64(p.w-1)/2 + (v.X()-p.centerX)*p.scale
	y := float64(p.h-1)/2 - (v.Z()-p.centerZ)*p.scale
	return int(math.Round(x)), int(math.Round(y))
}

// Heading returns the dot offset of a unit step along the forward vector's
// horizontal component, scaled to length dots.
func (p Plan) Heading(forward mgl64.Vec3, length float64) (int, int) {
	flat := mgl64.Vec3{forward.X(), 0, forward.Z()}
	if flat.Len() < 1e-9 {
		return 0, 0
	}
	flat = flat.Normalize().Mul(length)
	return int(math.Round(flat.X())), int(math.Round(-flat.Z()))
}
