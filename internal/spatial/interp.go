package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Above this cosine the arc is too short for a stable sin() division and
// Slerp falls back to a normalized linear blend.
const nlerpThreshold = 0.9995

// Lerp blends a toward b by w. Weights outside [0, 1] extrapolate along the
// same line.
func Lerp(a, b mgl64.Vec3, w float64) mgl64.Vec3 {
	return mgl64.Vec3{
		a[0] + (b[0]-a[0])*w,
		a[1] + (b[1]-a[1])*w,
		a[2] + (b[2]-a[2])*w,
	}
}

// Slerp rotates from a toward b by w along the shortest great-circle arc.
// Weights outside [0, 1] continue along the same circle instead of being
// clamped. Both inputs are expected to be unit quaternions.
func Slerp(a, b mgl64.Quat, w float64) mgl64.Quat {
	dot := a.Dot(b)
	if dot < 0 {
		b = b.Scale(-1)
		dot = -dot
	}

	if dot > nlerpThreshold {
		return a.Add(b.Sub(a).Scale(w)).Normalize()
	}

	theta := math.Acos(mgl64.Clamp(dot, -1, 1))
	sinTheta := math.Sin(theta)
	s0 := math.Sin((1-w)*theta) / sinTheta
	s1 := math.Sin(w*theta) / sinTheta
	return a.Scale(s0).Add(b.Scale(s1))
}

// AngleBetween returns the rotation angle in radians taking a to b.
func AngleBetween(a, b mgl64.Quat) float64 {
	dot := math.Abs(a.Dot(b))
	return 2 * math.Acos(mgl64.Clamp(dot, 0, 1))
}

// Euler builds an orientation from yaw, pitch and roll in degrees, applied
// in the order a camera rig is usually authored: yaw about Y, then pitch
// about X, then roll about Z.
func Euler(yaw, pitch, roll float64) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(yaw),
		mgl64.DegToRad(pitch),
		mgl64.DegToRad(roll),
		mgl64.YXZ,
	)
}
