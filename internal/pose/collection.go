package pose

import (
	"slices"

	"github.com/san-kum/posecam/internal/curve"
)

type Collection struct {
	Name        string
	Description string

	// Defaults seed poses created through NewPose.
	DefaultTransitionDuration float64
	DefaultCurve              curve.Curve

	poses []*Pose
}

func NewCollection(name string) *Collection {
	return &Collection{
		Name:                      name,
		DefaultTransitionDuration: DefaultTransitionDuration,
		DefaultCurve:              curve.EaseInOut,
	}
}

// FindByName returns the first pose named name in insertion order.
func (c *Collection) FindByName(name string) *Pose {
	if c == nil {
		return nil
	}
	for _, p := range c.poses {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Add appends p unless it is nil or the same pose is already present.
func (c *Collection) Add(p *Pose) {
	if p == nil || slices.Contains(c.poses, p) {
		return
	}
	c.poses = append(c.poses, p)
}

func (c *Collection) Remove(p *Pose) {
	if p == nil {
		return
	}
	c.RemoveAt(slices.Index(c.poses, p))
}

func (c *Collection) RemoveAt(i int) {
	if i < 0 || i >= len(c.poses) {
		return
	}
	c.poses = slices.Delete(c.poses, i, i+1)
}

// NewPose creates a pose seeded with the collection defaults and adds it.
func (c *Collection) NewPose(name string) *Pose {
	p := New(name)
	if c.DefaultTransitionDuration > 0 {
		p.TransitionDuration = c.DefaultTransitionDuration
	}
	if c.DefaultCurve != nil {
		p.Curve = c.DefaultCurve
	}
	c.Add(p)
	return p
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.poses)
}

func (c *Collection) At(i int) *Pose {
	if i < 0 || i >= c.Len() {
		return nil
	}
	return c.poses[i]
}

// Poses returns a copy of the ordered pose list.
func (c *Collection) Poses() []*Pose {
	out := make([]*Pose, c.Len())
	if c != nil {
		copy(out, c.poses)
	}
	return out
}

func (c *Collection) Names() []string {
	names := make([]string, 0, c.Len())
	for _, p := range c.Poses() {
		names = append(names, p.Name)
	}
	return names
}
