package driver

import (
	"context"
	"sync"

	"github.com/san-kum/posecam/internal/curve"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/spatial"
	"github.com/san-kum/posecam/internal/transition"
)

// Variant is one curve to try in an Ensemble.
type Variant struct {
	Name  string
	Curve curve.Curve
}

// Ensemble replays the same from/to transition under several curves, each
// on its own rig, controller and driver.
type Ensemble struct {
	from, to *pose.Pose
	policy   transition.Policy
	metrics  func() []Metric
}

// NewEnsemble prepares runs from one pose to another. metrics builds a fresh
// metric set per run and may be nil.
func NewEnsemble(from, to *pose.Pose, policy transition.Policy, metrics func() []Metric) *Ensemble {
	return &Ensemble{from: from, to: to, policy: policy, metrics: metrics}
}

// Run drives every variant concurrently. Tracks come back in variant order.
// A nil from pose starts each run at the origin.
func (e *Ensemble) Run(ctx context.Context, variants []Variant, cfg Config) ([]*Track, error) {
	if e.to == nil {
		return nil, ErrNoPose
	}
	tracks := make([]*Track, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()
			tracks[idx], errs[idx] = e.run(ctx, v, cfg)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tracks, nil
}

func (e *Ensemble) run(ctx context.Context, v Variant, cfg Config) (*Track, error) {
	dest := *e.to
	dest.Curve = v.Curve

	ctrl := transition.New(spatial.NewRig(), nil)
	ctrl.SetPolicy(e.policy)
	ctrl.SnapTo(e.from)
	ctrl.TransitionTo(&dest)

	d := New()
	if e.metrics != nil {
		for _, m := range e.metrics() {
			d.AddMetric(m)
		}
	}
	return d.Run(ctx, ctrl, cfg)
}
