package spatial

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLerp(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{10, -4, 2}

	tests := []struct {
		name     string
		w        float64
		expected mgl64.Vec3
	}{
		{"start", 0, mgl64.Vec3{0, 0, 0}},
		{"midpoint", 0.5, mgl64.Vec3{5, -2, 1}},
		{"end", 1, mgl64.Vec3{10, -4, 2}},
		{"overshoot", 1.5, mgl64.Vec3{15, -6, 3}},
		{"undershoot", -0.5, mgl64.Vec3{-5, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lerp(a, b, tt.w); got != tt.expected {
				t.Errorf("Lerp(w=%v) = %v, want %v", tt.w, got, tt.expected)
			}
		})
	}
}

func TestSlerpMidpoint(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	got := Slerp(a, b, 0.5)
	want := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})

	if !got.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("Slerp midpoint = %v, want %v", got, want)
	}
	if math.Abs(got.Len()-1) > 1e-12 {
		t.Errorf("Slerp result not unit length: %v", got.Len())
	}
}

func TestSlerpExtrapolates(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})

	tests := []struct {
		w     float64
		angle float64
	}{
		{1.5, 1.5 * math.Pi / 4},
		{-0.5, -0.5 * math.Pi / 4},
	}

	for _, tt := range tests {
		got := Slerp(a, b, tt.w)
		want := mgl64.QuatRotate(tt.angle, mgl64.Vec3{0, 0, 1})
		if !got.ApproxEqualThreshold(want, 1e-12) {
			t.Errorf("Slerp(w=%v) = %v, want %v", tt.w, got, want)
		}
	}
}

func TestSlerpShortestArc(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}).Scale(-1)

	got := Slerp(a, b, 0.5)
	want := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})

	if !got.OrientationEqualThreshold(want, 1e-12) {
		t.Errorf("Slerp took the long way round: %v, want %v", got, want)
	}
}

func TestSlerpNearlyEqual(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(1e-4, mgl64.Vec3{1, 0, 0})

	got := Slerp(a, b, 0.5)
	if math.Abs(got.Len()-1) > 1e-12 {
		t.Errorf("nlerp fallback not normalized: %v", got.Len())
	}
	if AngleBetween(a, got) > 1e-4 {
		t.Errorf("nlerp fallback left the arc: %v", got)
	}
}

func TestAngleBetween(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 1, 0})

	if got := AngleBetween(a, b); math.Abs(got-math.Pi/3) > 1e-12 {
		t.Errorf("AngleBetween = %v, want %v", got, math.Pi/3)
	}
	if got := AngleBetween(b, b.Scale(-1)); got > 1e-6 {
		t.Errorf("antipodal quaternions should be the same rotation, got %v", got)
	}
}

func TestRigBasis(t *testing.T) {
	r := NewRigAt(mgl64.Vec3{1, 2, 3}, Euler(90, 0, 0))

	fwd := r.Forward()
	if !fwd.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("Forward after 90 deg yaw = %v, want +X", fwd)
	}
	if !r.Up().ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("Up changed under pure yaw: %v", r.Up())
	}

	r.Translate(mgl64.Vec3{1, 0, 0})
	if r.Position() != (mgl64.Vec3{2, 2, 3}) {
		t.Errorf("Translate = %v", r.Position())
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		yaw, pitch float64
	}{
		{0, 0},
		{90, 0},
		{-45, 0},
		{30, 20},
		{-120, -35},
	}

	for _, tt := range tests {
		yaw, pitch := Heading(Euler(tt.yaw, tt.pitch, 0))
		if math.Abs(yaw-tt.yaw) > 1e-9 || math.Abs(pitch-tt.pitch) > 1e-9 {
			t.Errorf("Heading(Euler(%v, %v, 0)) = %v, %v", tt.yaw, tt.pitch, yaw, pitch)
		}
	}
}
