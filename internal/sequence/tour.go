// Package sequence plays scripted camera tours: ordered pose changes with
// optional holds between them.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/posecam/internal/driver"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/transition"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyTour    = errors.New("sequence: tour has no steps")
	ErrUnknownPose  = errors.New("sequence: unknown pose")
	ErrNegativeHold = errors.New("sequence: hold must not be negative")
)

type Tour struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step moves the camera to Pose, by transition unless Snap is set, then
// keeps ticking for Hold seconds.
type Step struct {
	Pose string  `yaml:"pose"`
	Snap bool    `yaml:"snap,omitempty"`
	Hold float64 `yaml:"hold,omitempty"`
}

func LoadTour(path string) (*Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tour, err := ParseTour(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tour, nil
}

func ParseTour(data []byte) (*Tour, error) {
	var tour Tour
	if err := yaml.Unmarshal(data, &tour); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (t *Tour) Validate(c *pose.Collection) error {
	if len(t.Steps) == 0 {
		return ErrEmptyTour
	}
	for i, step := range t.Steps {
		if c.FindByName(step.Pose) == nil {
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownPose, step.Pose)
		}
		if step.Hold < 0 {
			return fmt.Errorf("step %d: %w", i+1, ErrNegativeHold)
		}
	}
	return nil
}

// Play runs every step against the controller's collection and returns one
// track per step. Hold samples are appended to their step's track.
func (t *Tour) Play(ctx context.Context, ctrl *transition.Controller, drv *driver.Driver, cfg driver.Config) ([]*driver.Track, error) {
	if ctrl == nil {
		return nil, driver.ErrNoController
	}
	if err := t.Validate(ctrl.Collection()); err != nil {
		return nil, err
	}

	tracks := make([]*driver.Track, 0, len(t.Steps))
	for i, step := range t.Steps {
		slog.Info("tour step", "tour", t.Name, "step", i+1, "of", len(t.Steps), "pose", step.Pose, "snap", step.Snap)

		if step.Snap {
			ctrl.SnapToName(step.Pose)
		} else {
			ctrl.TransitionToName(step.Pose)
		}

		track, err := drv.Run(ctx, ctrl, cfg)
		if err != nil {
			return tracks, fmt.Errorf("step %d: %w", i+1, err)
		}
		if !track.Completed {
			slog.Warn("tour step did not settle", "pose", step.Pose, "max_duration", cfg.MaxDuration)
		}

		if step.Hold > 0 {
			if err := hold(ctx, ctrl, drv, cfg, step.Hold, track); err != nil {
				return tracks, fmt.Errorf("step %d hold: %w", i+1, err)
			}
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

func hold(ctx context.Context, ctrl *transition.Controller, drv *driver.Driver, cfg driver.Config, seconds float64, track *driver.Track) error {
	offset := track.Final().Time
	holdCfg := driver.Config{Dt: cfg.Dt, MaxDuration: seconds}

	return drv.RunFunc(ctx, ctrl, holdCfg, func(s driver.Sample) bool {
		s.Time += offset
		track.Samples = append(track.Samples, s)
		return true
	})
}
