package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/curve"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/spatial"
	"github.com/san-kum/posecam/internal/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreview(t *testing.T) (Model, *spatial.Rig) {
	t.Helper()
	coll := pose.NewCollection("Preview")
	coll.DefaultCurve = curve.Linear
	coll.NewPose("Left").Position = mgl64.Vec3{-5, 1, -5}
	coll.NewPose("Right").Position = mgl64.Vec3{5, 1, -5}
	top := coll.NewPose("Top")
	top.Position = mgl64.Vec3{0, 10, 0}
	top.TransitionDuration = 0

	rig := spatial.NewRig()
	return NewModel(transition.New(rig, coll)), rig
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func tickN(m Model, n int) Model {
	for range n {
		next, cmd := m.Update(TickMsg(time.Now()))
		if cmd == nil {
			panic("tick did not reschedule")
		}
		m = next.(Model)
	}
	return m
}

func TestDigitTransitions(t *testing.T) {
	m, rig := newPreview(t)

	m = press(m, "2")
	require.True(t, m.ctrl.IsTransitioning())
	assert.Equal(t, "Right", m.ctrl.Destination().Name)
	assert.Equal(t, mgl64.Vec3{}, rig.Position(), "nothing moves before a tick")

	m = tickN(m, 30)
	assert.True(t, m.ctrl.IsTransitioning())
	assert.InDelta(t, 2.5, rig.Position().X(), 1e-9)

	m = tickN(m, 31)
	assert.False(t, m.ctrl.IsTransitioning())
	assert.Equal(t, mgl64.Vec3{5, 1, -5}, rig.Position())
	assert.Equal(t, "Right", m.reached.name)
	assert.Len(t, m.distance, 61)
	assert.Equal(t, 0.0, m.distance[len(m.distance)-1])
}

func TestShiftedDigitSnaps(t *testing.T) {
	m, rig := newPreview(t)

	m = press(m, "!")
	assert.False(t, m.ctrl.IsTransitioning())
	assert.Equal(t, mgl64.Vec3{-5, 1, -5}, rig.Position())
	assert.Equal(t, 1, m.reached.count)

	m = press(m, "#")
	assert.Equal(t, mgl64.Vec3{0, 10, 0}, rig.Position())
	assert.Equal(t, "Top", m.ctrl.CurrentPose().Name)
}

func TestOutOfRangeDigitIgnored(t *testing.T) {
	m, _ := newPreview(t)

	m = press(m, "9")
	m = press(m, "(")
	assert.False(t, m.ctrl.IsTransitioning())
	assert.Nil(t, m.ctrl.CurrentPose())
}

func TestZeroDurationPoseLandsOnFirstTick(t *testing.T) {
	m, rig := newPreview(t)

	m = press(m, "3")
	m = tickN(m, 1)
	assert.False(t, m.ctrl.IsTransitioning())
	assert.Equal(t, mgl64.Vec3{0, 10, 0}, rig.Position())
}

func TestCaptureAddsReachablePose(t *testing.T) {
	m, rig := newPreview(t)
	rig.SetPosition(mgl64.Vec3{2, 3, 4})
	rig.SetOrientation(spatial.Euler(90, 0, 0))

	var got []*pose.Pose
	m = m.WithCapture(func(p *pose.Pose) error {
		got = append(got, p)
		return nil
	})
	m = press(m, "s")

	require.Len(t, got, 1)
	assert.Equal(t, "Capture 4", got[0].Name)
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, got[0].Position)
	require.Len(t, m.poses, 4)
	assert.Same(t, got[0], m.ctrl.Collection().FindByName("Capture 4"))
	assert.Contains(t, m.View(), "captured Capture 4")

	m = press(m, "!")
	m = tickN(m, 1)
	require.NotEqual(t, mgl64.Vec3{2, 3, 4}, rig.Position())

	m = press(m, "4")
	for i := 0; i < 600 && m.ctrl.IsTransitioning(); i++ {
		m = tickN(m, 1)
	}
	assert.False(t, m.ctrl.IsTransitioning())
	assert.InDelta(t, 0, rig.Position().Sub(mgl64.Vec3{2, 3, 4}).Len(), 1e-9)
}

func TestCaptureWithoutHookIgnored(t *testing.T) {
	m, _ := newPreview(t)

	m = press(m, "s")
	assert.Len(t, m.poses, 3)
	assert.Equal(t, 3, m.ctrl.Collection().Len())
}

func TestCaptureErrorShown(t *testing.T) {
	m, _ := newPreview(t)
	m = m.WithCapture(func(*pose.Pose) error { return errors.New("disk full") })

	m = press(m, "s")
	assert.Contains(t, m.View(), "capture failed: disk full")
}

func TestTabTogglesPolicy(t *testing.T) {
	m, _ := newPreview(t)
	require.Equal(t, transition.Extrapolate, m.ctrl.Policy())

	m = press(m, "tab")
	assert.Equal(t, transition.Clamp, m.ctrl.Policy())
	m = press(m, "tab")
	assert.Equal(t, transition.Extrapolate, m.ctrl.Policy())
}

func TestQuit(t *testing.T) {
	m, _ := newPreview(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestThemeCycle(t *testing.T) {
	m, _ := newPreview(t)
	first := m.theme.Name

	m = press(m, "t")
	assert.NotEqual(t, first, m.theme.Name)
	assert.Equal(t, "ocean", m.WithTheme("ocean").theme.Name)
	assert.Equal(t, Themes[0].Name, ThemeByName("nope").Name)
}

func TestView(t *testing.T) {
	m, _ := newPreview(t)
	m = press(m, "1")
	m = tickN(m, 10)

	v := m.View()
	assert.Contains(t, v, "PREVIEW")
	assert.Contains(t, v, "TRANSITIONING")
	assert.Contains(t, v, "Left")
	assert.Contains(t, v, "Right")
	assert.Contains(t, v, "distance to pose")
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	w, h := c.Dots()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, "⠀⠀", c.String())

	c.Set(0, 0)
	c.Set(3, 3)
	assert.Equal(t, "⠁⢀", c.String())
	assert.True(t, c.IsSet(3, 3))

	c.Unset(0, 0)
	assert.False(t, c.IsSet(0, 0))
	c.Set(-1, 0)
	c.Set(4, 0)
	assert.Equal(t, "⠀⢀", c.String())

	c.Clear()
	c.Line(0, 0, 3, 0)
	for x := range 4 {
		assert.True(t, c.IsSet(x, 0))
	}
	assert.Len(t, c.Lines(), 1)
}

func TestPlan(t *testing.T) {
	pts := []mgl64.Vec3{{-4, 0, -4}, {4, 0, 4}}
	plan := FitPlan(pts, 41, 41)

	x, y := plan.Project(mgl64.Vec3{0, 5, 0})
	assert.Equal(t, 20, x)
	assert.Equal(t, 20, y)

	x0, y0 := plan.Project(pts[0])
	x1, y1 := plan.Project(pts[1])
	assert.Less(t, x0, x1)
	assert.Greater(t, y0, y1, "+z is up the screen")
	assert.True(t, x0 >= 0 && x1 < 41 && y1 >= 0 && y0 < 41)

	dx, dy := plan.Heading(mgl64.Vec3{0, 0, 1}, 4)
	assert.Equal(t, 0, dx)
	assert.Equal(t, -4, dy)

	dx, dy = plan.Heading(mgl64.Vec3{0, -1, 0}, 4)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", ProgressBar(0.5, 10))
	assert.Equal(t, strings.Repeat("█", 10), ProgressBar(1.5, 10))
	assert.Equal(t, strings.Repeat("░", 10), ProgressBar(-1, 10))
}
