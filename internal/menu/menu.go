// Package menu drives a camera between the poses of a front-end menu.
package menu

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/transition"
)

var ErrUnknownState = errors.New("menu: unknown state")

type State int

const (
	Main State = iota
	Options
	Settings
	Credits
)

func (s State) String() string {
	switch s {
	case Main:
		return "main"
	case Options:
		return "options"
	case Settings:
		return "settings"
	case Credits:
		return "credits"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func ParseState(s string) (State, error) {
	switch strings.ToLower(s) {
	case "main", "back":
		return Main, nil
	case "options":
		return Options, nil
	case "settings":
		return Settings, nil
	case "credits":
		return Credits, nil
	default:
		return Main, fmt.Errorf("%w: %q", ErrUnknownState, s)
	}
}

// Names maps each menu state to the pose it shows.
type Names struct {
	Main     string
	Options  string
	Settings string
	Credits  string
}

func DefaultNames() Names {
	return Names{
		Main:     "MainMenu",
		Options:  "Options",
		Settings: "Settings",
		Credits:  "Credits",
	}
}

func (n Names) For(s State) string {
	switch s {
	case Options:
		return n.Options
	case Settings:
		return n.Settings
	case Credits:
		return n.Credits
	default:
		return n.Main
	}
}

type Menu struct {
	ctrl       *transition.Controller
	collection *pose.Collection
	names      Names
	log        *slog.Logger
}

func New(ctrl *transition.Controller, collection *pose.Collection, log *slog.Logger) *Menu {
	if log == nil {
		log = slog.Default()
	}
	return &Menu{
		ctrl:       ctrl,
		collection: collection,
		names:      DefaultNames(),
		log:        log,
	}
}

func (m *Menu) SetNames(n Names) { m.names = n }
func (m *Menu) Names() Names     { return m.names }

// Start hands the menu collection to the controller and heads for the main
// menu pose.
func (m *Menu) Start() {
	if m.ctrl == nil {
		return
	}
	if m.collection != nil {
		m.ctrl.SetCollection(m.collection)
	}
	m.Show(Main)
}

func (m *Menu) Show(s State) bool {
	return m.TransitionTo(m.names.For(s))
}

func (m *Menu) TransitionTo(name string) bool {
	p := m.resolve(name)
	if p == nil {
		return false
	}
	m.ctrl.TransitionTo(p)
	m.log.Info("camera transition", "pose", name, "duration", p.TransitionDuration)
	return true
}

func (m *Menu) SnapTo(name string) bool {
	p := m.resolve(name)
	if p == nil {
		return false
	}
	m.ctrl.SnapTo(p)
	m.log.Info("camera snap", "pose", name)
	return true
}

func (m *Menu) IsTransitioning() bool {
	return m.ctrl != nil && m.ctrl.IsTransitioning()
}

func (m *Menu) CurrentPose() *pose.Pose {
	if m.ctrl == nil {
		return nil
	}
	return m.ctrl.CurrentPose()
}

// Status is a one-line summary suitable for an on-screen overlay.
func (m *Menu) Status() string {
	name := "None"
	if p := m.CurrentPose(); p != nil {
		name = p.Name
	}
	if m.IsTransitioning() {
		return fmt.Sprintf("Current Pose: %s (Transitioning...)", name)
	}
	return fmt.Sprintf("Current Pose: %s", name)
}

func (m *Menu) resolve(name string) *pose.Pose {
	if m.ctrl == nil {
		m.log.Warn("camera controller not set", "pose", name)
		return nil
	}
	p := m.ctrl.Collection().FindByName(name)
	if p == nil {
		m.log.Warn("camera pose not found", "pose", name)
	}
	return p
}
