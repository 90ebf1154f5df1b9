package driver

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/transition"
)

// Driver is the tick source for a controller: it advances it in fixed steps
// of Config.Dt and records what the target does.
type Driver struct {
	metrics   []Metric
	observers []Observer
}

func New() *Driver {
	return &Driver{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Run ticks ctrl until it goes idle or cfg.MaxDuration seconds have been
// simulated. The initial transform is recorded as the first sample.
func (d *Driver) Run(ctx context.Context, ctrl *transition.Controller, cfg Config) (*Track, error) {
	if err := validate(ctrl, cfg); err != nil {
		return nil, err
	}

	capHint := 4096
	if n := cfg.MaxDuration / cfg.Dt; n < float64(capHint) {
		capHint = int(n) + 1
	}
	track := &Track{
		Samples: make([]Sample, 0, capHint),
		Metrics: make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	t := 0.0
	d.record(track, sample(ctrl, t))

	for ctrl.IsTransitioning() && t < cfg.MaxDuration {
		select {
		case <-ctx.Done():
			return track, ctx.Err()
		default:
		}

		ctrl.Advance(cfg.Dt)
		t += cfg.Dt
		track.Steps++

		d.record(track, sample(ctrl, t))
		for _, obs := range d.observers {
			obs.OnTick(ctrl, t)
		}
	}

	track.Completed = !ctrl.IsTransitioning()
	for _, m := range d.metrics {
		track.Metrics[m.Name()] = m.Value()
	}

	return track, nil
}

// RunFunc ticks ctrl for cfg.MaxDuration seconds whatever its state, calling
// fn after every tick. It stops early when fn returns false.
func (d *Driver) RunFunc(ctx context.Context, ctrl *transition.Controller, cfg Config, fn func(Sample) bool) error {
	if err := validate(ctrl, cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.MaxDuration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ctrl.Advance(cfg.Dt)
		t += cfg.Dt

		for _, obs := range d.observers {
			obs.OnTick(ctrl, t)
		}
		if !fn(sample(ctrl, t)) {
			return nil
		}
	}

	return nil
}

func (d *Driver) record(track *Track, s Sample) {
	track.Samples = append(track.Samples, s)
	for _, m := range d.metrics {
		m.Observe(s)
	}
}

func validate(ctrl *transition.Controller, cfg Config) error {
	if ctrl == nil {
		return ErrNoController
	}
	if !finite(cfg.Dt) || cfg.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidDt, cfg.Dt)
	}
	if !finite(cfg.MaxDuration) || cfg.MaxDuration <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidDuration, cfg.MaxDuration)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sample(ctrl *transition.Controller, t float64) Sample {
	s := Sample{Time: t, Orientation: mgl64.QuatIdent(), Progress: ctrl.Progress()}
	if target := ctrl.Target(); target != nil {
		s.Position = target.Position()
		s.Orientation = target.Orientation()
	}
	if p := ctrl.Destination(); p != nil {
		s.Pose = p.Name
	} else if p := ctrl.CurrentPose(); p != nil {
		s.Pose = p.Name
	}
	return s
}
