package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/curve"
	"github.com/san-kum/posecam/internal/driver"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/spatial"
	"github.com/san-kum/posecam/internal/transition"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0 / 60.0
	DefaultMaxDuration = 30.0
	DefaultOvershoot   = "extrapolate"
	DefaultCurve       = "ease_in_out"
)

var (
	ErrInvalidDt      = errors.New("config: dt must be positive and finite")
	ErrInvalidMax     = errors.New("config: max_duration must be positive and finite")
	ErrEmptyPoseName  = errors.New("config: pose without a name")
	ErrDuplicatePose  = errors.New("config: duplicate pose name")
	ErrBadQuaternion  = errors.New("config: quaternion must have 4 components (w x y z)")
	ErrUnknownStart   = errors.New("config: start pose not in collection")
	ErrNegativeLength = errors.New("config: duration must be finite and not negative")
)

type Config struct {
	Dt          float64          `yaml:"dt"`
	MaxDuration float64          `yaml:"max_duration"`
	Overshoot   string           `yaml:"overshoot"`
	Start       string           `yaml:"start,omitempty"`
	Collection  CollectionConfig `yaml:"collection"`
}

type CollectionConfig struct {
	Name            string       `yaml:"name"`
	Description     string       `yaml:"description,omitempty"`
	DefaultDuration float64      `yaml:"default_duration"`
	DefaultCurve    curve.Spec   `yaml:"default_curve"`
	Poses           []PoseConfig `yaml:"poses"`
}

type PoseConfig struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Color       string     `yaml:"color,omitempty"`
	Position    [3]float64 `yaml:"position,flow"`
	// Rotation is yaw, pitch, roll in degrees.
	Rotation [3]float64 `yaml:"rotation,flow"`
	// Quaternion (w x y z) overrides Rotation when present.
	Quaternion []float64  `yaml:"quaternion,omitempty,flow"`
	Duration   *float64   `yaml:"duration,omitempty"`
	Curve      curve.Spec `yaml:"curve,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:          DefaultDt,
		MaxDuration: DefaultMaxDuration,
		Overshoot:   DefaultOvershoot,
		Start:       "MainMenu",
		Collection:  menuCollection(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Start = ""
	cfg.Collection.Poses = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !finite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidDt, c.Dt)
	}
	if !finite(c.MaxDuration) || c.MaxDuration <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidMax, c.MaxDuration)
	}
	if _, err := transition.ParsePolicy(c.Overshoot); err != nil {
		return err
	}
	if _, err := c.Collection.DefaultCurve.Curve(); err != nil {
		return fmt.Errorf("default_curve: %w", err)
	}
	if d := c.Collection.DefaultDuration; !finite(d) || d < 0 {
		return fmt.Errorf("default_duration: %w", ErrNegativeLength)
	}

	seen := make(map[string]bool, len(c.Collection.Poses))
	for i, p := range c.Collection.Poses {
		if p.Name == "" {
			return fmt.Errorf("%w (index %d)", ErrEmptyPoseName, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicatePose, p.Name)
		}
		seen[p.Name] = true

		if len(p.Quaternion) != 0 && len(p.Quaternion) != 4 {
			return fmt.Errorf("pose %q: %w", p.Name, ErrBadQuaternion)
		}
		if p.Duration != nil && (!finite(*p.Duration) || *p.Duration < 0) {
			return fmt.Errorf("pose %q: %w", p.Name, ErrNegativeLength)
		}
		if _, err := p.Curve.Curve(); err != nil {
			return fmt.Errorf("pose %q: %w", p.Name, err)
		}
	}

	if c.Start != "" && !seen[c.Start] {
		return fmt.Errorf("%w: %q", ErrUnknownStart, c.Start)
	}
	return nil
}

func (c *Config) Policy() (transition.Policy, error) {
	return transition.ParsePolicy(c.Overshoot)
}

func (c *Config) DriverConfig() driver.Config {
	return driver.Config{Dt: c.Dt, MaxDuration: c.MaxDuration}
}

// Collection builds the pose collection described by the configuration.
func (c *Config) Collection() (*pose.Collection, error) {
	cc := c.Collection
	coll := pose.NewCollection(cc.Name)
	coll.Description = cc.Description
	if cc.DefaultDuration > 0 {
		coll.DefaultTransitionDuration = cc.DefaultDuration
	}

	def, err := cc.DefaultCurve.Curve()
	if err != nil {
		return nil, fmt.Errorf("default_curve: %w", err)
	}
	if def != nil {
		coll.DefaultCurve = def
	}

	for _, pc := range cc.Poses {
		p := coll.NewPose(pc.Name)
		p.Description = pc.Description
		if pc.Color != "" {
			p.Color = pc.Color
		}
		p.Position = mgl64.Vec3(pc.Position)
		p.Orientation = pc.orientation()
		if pc.Duration != nil {
			p.TransitionDuration = *pc.Duration
		}

		cv, err := pc.Curve.Curve()
		if err != nil {
			return nil, fmt.Errorf("pose %q: %w", pc.Name, err)
		}
		if cv != nil {
			p.Curve = cv
		}
	}
	return coll, nil
}

func (pc PoseConfig) orientation() mgl64.Quat {
	if len(pc.Quaternion) == 4 {
		q := mgl64.Quat{W: pc.Quaternion[0], V: mgl64.Vec3{pc.Quaternion[1], pc.Quaternion[2], pc.Quaternion[3]}}
		return q.Normalize()
	}
	return spatial.Euler(pc.Rotation[0], pc.Rotation[1], pc.Rotation[2])
}

// PoseFrom captures a live target into a pose entry, stored as a quaternion
// so the transform survives a save/load cycle unchanged.
func PoseFrom(name string, t spatial.Target) PoseConfig {
	p := pose.New(name)
	p.CaptureFrom(t)
	pos := p.Position
	q := p.Orientation
	return PoseConfig{
		Name:       name,
		Position:   [3]float64{pos[0], pos[1], pos[2]},
		Quaternion: []float64{q.W, q.V[0], q.V[1], q.V[2]},
	}
}

func ptr(v float64) *float64 { return &v }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
