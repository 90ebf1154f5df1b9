package transition

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/spatial"
)

type State int

const (
	Idle State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// Observer is told whenever the controller settles on a pose, by snap or by
// a completed transition.
type Observer interface {
	PoseReached(p *pose.Pose)
}

type ObserverFunc func(p *pose.Pose)

func (f ObserverFunc) PoseReached(p *pose.Pose) { f(p) }

type Controller struct {
	target     spatial.Target
	collection *pose.Collection
	policy     Policy
	observers  []Observer

	state   State
	current *pose.Pose

	to       *pose.Pose
	startPos mgl64.Vec3
	startRot mgl64.Quat
	elapsed  float64
}

// New binds a controller to its target and collection. Either may be nil;
// operations that need them become no-ops until they are set.
func New(target spatial.Target, collection *pose.Collection) *Controller {
	return &Controller{
		target:     target,
		collection: collection,
		observers:  make([]Observer, 0),
	}
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }
func (c *Controller) SetPolicy(p Policy)     { c.policy = p }
func (c *Controller) Policy() Policy         { return c.policy }

func (c *Controller) SetCollection(coll *pose.Collection) { c.collection = coll }
func (c *Controller) Collection() *pose.Collection        { return c.collection }

// SetTarget rebinds the driven target and cancels any active transition,
// whose start transform belonged to the old target.
func (c *Controller) SetTarget(t spatial.Target) {
	c.cancel()
	c.target = t
}

func (c *Controller) Target() spatial.Target { return c.target }

func (c *Controller) State() State              { return c.state }
func (c *Controller) IsTransitioning() bool     { return c.state == Transitioning }
func (c *Controller) CurrentPose() *pose.Pose   { return c.current }
func (c *Controller) Destination() *pose.Pose   { return c.to }
func (c *Controller) Elapsed() float64          { return c.elapsed }
func (c *Controller) StartPosition() mgl64.Vec3 { return c.startPos }

// Progress is the normalized time of the active transition, 0 when idle.
func (c *Controller) Progress() float64 {
	if c.state != Transitioning {
		return 0
	}
	return c.normalizedTime()
}

// SnapTo cancels any active transition and places the target exactly at p.
func (c *Controller) SnapTo(p *pose.Pose) {
	if p == nil || c.target == nil {
		return
	}
	c.cancel()
	p.ApplyTo(c.target)
	c.current = p
	c.notify(p)
}

func (c *Controller) SnapToName(name string) {
	c.SnapTo(c.collection.FindByName(name))
}

// TransitionTo arms a transition from the target's present transform to p.
// The target is not moved until the next Advance.
func (c *Controller) TransitionTo(p *pose.Pose) {
	if p == nil || c.target == nil {
		return
	}
	c.cancel()
	c.startPos = c.target.Position()
	c.startRot = c.target.Orientation()
	c.to = p
	c.state = Transitioning
}

func (c *Controller) TransitionToName(name string) {
	c.TransitionTo(c.collection.FindByName(name))
}

// Advance moves the active transition forward by dt seconds. Negative and
// non-finite steps count as zero.
func (c *Controller) Advance(dt float64) {
	if c.state != Transitioning {
		return
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	c.elapsed += dt

	to := c.to
	if to.TransitionDuration <= 0 || c.elapsed >= to.TransitionDuration {
		c.complete()
		return
	}

	w := to.EffectiveCurve().Evaluate(c.normalizedTime())
	if c.policy == Clamp {
		w = mgl64.Clamp(w, 0, 1)
	}
	c.target.SetPosition(spatial.Lerp(c.startPos, to.Position, w))
	c.target.SetOrientation(spatial.Slerp(c.startRot, to.Orientation, w))
}

func (c *Controller) normalizedTime() float64 {
	d := c.to.TransitionDuration
	if d <= 0 {
		return 1
	}
	return mgl64.Clamp(c.elapsed/d, 0, 1)
}

func (c *Controller) complete() {
	p := c.to
	p.ApplyTo(c.target)
	c.cancel()
	c.current = p
	c.notify(p)
}

func (c *Controller) cancel() {
	c.to = nil
	c.elapsed = 0
	c.startPos = mgl64.Vec3{}
	c.startRot = mgl64.Quat{}
	c.state = Idle
}

func (c *Controller) notify(p *pose.Pose) {
	for _, o := range c.observers {
		o.PoseReached(p)
	}
}
