package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Target is a camera-like object whose world transform can be read and driven.
type Target interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Orientation() mgl64.Quat
	SetOrientation(q mgl64.Quat)
}

var (
	worldForward = mgl64.Vec3{0, 0, 1}
	worldUp      = mgl64.Vec3{0, 1, 0}
)

// Rig is a free-floating camera transform.
type Rig struct {
	pos mgl64.Vec3
	rot mgl64.Quat
}

func NewRig() *Rig {
	return &Rig{rot: mgl64.QuatIdent()}
}

// NewRigAt returns a rig placed at p looking along q.
func NewRigAt(p mgl64.Vec3, q mgl64.Quat) *Rig {
	return &Rig{pos: p, rot: q}
}

func (r *Rig) Position() mgl64.Vec3        { return r.pos }
func (r *Rig) SetPosition(p mgl64.Vec3)    { r.pos = p }
func (r *Rig) Orientation() mgl64.Quat     { return r.rot }
func (r *Rig) SetOrientation(q mgl64.Quat) { r.rot = q }
func (r *Rig) Forward() mgl64.Vec3         { return r.rot.Rotate(worldForward) }
func (r *Rig) Up() mgl64.Vec3              { return r.rot.Rotate(worldUp) }
func (r *Rig) Translate(d mgl64.Vec3)      { r.pos = r.pos.Add(d) }
func (r *Rig) Rotate(q mgl64.Quat)         { r.rot = q.Mul(r.rot).Normalize() }

// Heading returns the yaw and pitch in degrees of the direction q looks
// along. Positive pitch looks down, matching Euler.
func Heading(q mgl64.Quat) (yaw, pitch float64) {
	f := q.Rotate(worldForward)
	yaw = mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
	pitch = mgl64.RadToDeg(math.Asin(mgl64.Clamp(-f.Y(), -1, 1)))
	return yaw, pitch
}
