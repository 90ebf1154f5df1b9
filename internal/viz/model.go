package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/spatial"
	"github.com/san-kum/posecam/internal/transition"
)

const (
	mapCols         = 60
	mapRows         = 22
	historyCapacity = 240
	trailCapacity   = 400
	tickRate        = time.Second / 60
)

// snapKeys are the shifted digits on a US layout.
const snapKeys = "!@#$%^&*("

type TickMsg time.Time

// reached is shared between copies of Model so the controller observer,
// registered once, keeps reporting into the live model.
type reached struct {
	name  string
	count int
}

type Model struct {
	ctrl   *transition.Controller
	poses  []*pose.Pose
	dt     float64
	canvas *Canvas
	plan   Plan
	theme  Theme
	styles styles

	trail    []mgl64.Vec3
	distance []float64
	reached  *reached
	capture  CaptureFunc
	message  string
	quitting bool
}

// CaptureFunc receives a pose just captured from the live camera and added
// to the collection.
type CaptureFunc func(p *pose.Pose) error

// NewModel builds a previewer over ctrl and its collection. The controller
// is advanced by a fixed 1/60 s per tick.
//
// NewModel registers an observer on ctrl that is never removed, so build
// one model per controller.
func NewModel(ctrl *transition.Controller) Model {
	poses := ctrl.Collection().Poses()
	canvas := NewCanvas(mapCols, mapRows)
	w, h := canvas.Dots()

	points := make([]mgl64.Vec3, 0, len(poses)+1)
	for _, p := range poses {
		points = append(points, p.Position)
	}
	if t := ctrl.Target(); t != nil {
		points = append(points, t.Position())
	}

	r := &reached{}
	ctrl.AddObserver(transition.ObserverFunc(func(p *pose.Pose) {
		r.name = p.Name
		r.count++
	}))

	theme := Themes[0]
	return Model{
		ctrl:     ctrl,
		poses:    poses,
		dt:       tickRate.Seconds(),
		canvas:   canvas,
		plan:     FitPlan(points, w, h),
		theme:    theme,
		styles:   newStyles(theme),
		trail:    make([]mgl64.Vec3, 0, trailCapacity),
		distance: make([]float64, 0, historyCapacity),
		reached:  r,
	}
}

func (m Model) WithTheme(name string) Model {
	m.theme = ThemeByName(name)
	m.styles = newStyles(m.theme)
	return m
}

// WithCapture enables the s key, which records the camera into a new pose
// and hands it to fn.
func (m Model) WithCapture(fn CaptureFunc) Model {
	m.capture = fn
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.ctrl.Policy() == transition.Clamp {
				m.ctrl.SetPolicy(transition.Extrapolate)
			} else {
				m.ctrl.SetPolicy(transition.Clamp)
			}
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "c":
			m.trail = m.trail[:0]
		case "s":
			m.captureCurrent()
		default:
			if len(key) != 1 {
				break
			}
			if i := strings.IndexByte("123456789", key[0]); i >= 0 {
				if i < len(m.poses) {
					m.ctrl.TransitionTo(m.poses[i])
				}
			} else if i := strings.IndexByte(snapKeys, key[0]); i >= 0 {
				if i < len(m.poses) {
					m.ctrl.SnapTo(m.poses[i])
				}
			}
		}
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m *Model) captureCurrent() {
	coll := m.ctrl.Collection()
	target := m.ctrl.Target()
	if m.capture == nil || coll == nil || target == nil {
		return
	}
	name := ""
	for i := coll.Len() + 1; ; i++ {
		name = fmt.Sprintf("Capture %d", i)
		if coll.FindByName(name) == nil {
			break
		}
	}
	p := coll.NewPose(name)
	p.CaptureFrom(target)
	m.poses = coll.Poses()
	if err := m.capture(p); err != nil {
		m.message = "capture failed: " + err.Error()
		return
	}
	m.message = "captured " + name
}

func (m *Model) step() {
	m.ctrl.Advance(m.dt)

	target := m.ctrl.Target()
	if target == nil {
		return
	}
	pos := target.Position()

	if len(m.trail) == 0 || m.trail[len(m.trail)-1] != pos {
		m.trail = append(m.trail, pos)
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}

	var d float64
	if dest := m.destination(); dest != nil {
		d = dest.Position.Sub(pos).Len()
	}
	m.distance = append(m.distance, d)
	if len(m.distance) > historyCapacity {
		m.distance = m.distance[1:]
	}
}

func (m Model) destination() *pose.Pose {
	if p := m.ctrl.Destination(); p != nil {
		return p
	}
	return m.ctrl.CurrentPose()
}

func (m Model) draw() {
	c := m.canvas
	c.Clear()

	for _, p := range m.poses {
		x, y := m.plan.Project(p.Position)
		c.Cross(x, y, 2)
		fwd := p.Orientation.Rotate(mgl64.Vec3{0, 0, 1})
		dx, dy := m.plan.Heading(fwd, 4)
		c.Line(x, y, x+dx, y+dy)
	}

	for _, v := range m.trail {
		c.Set(m.plan.Project(v))
	}

	target := m.ctrl.Target()
	if target == nil {
		return
	}
	x, y := m.plan.Project(target.Position())
	c.Box(x, y, 1)
	dx, dy := m.plan.Heading(target.Orientation().Rotate(mgl64.Vec3{0, 0, 1}), 7)
	c.Line(x, y, x+dx, y+dy)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	st := m.styles

	var s strings.Builder
	name := ""
	if coll := m.ctrl.Collection(); coll != nil {
		name = coll.Name
	}
	if name == "" {
		name = "camera poses"
	}
	s.WriteString(st.title.Render(strings.ToUpper(name)) + "\n")

	status := st.value.Render("IDLE")
	if m.ctrl.IsTransitioning() {
		status = st.active.Render("TRANSITIONING")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	current := "None"
	if p := m.ctrl.CurrentPose(); p != nil {
		current = p.Name
	}
	row("Current", current)
	if m.ctrl.IsTransitioning() {
		row("Heading to", m.ctrl.Destination().Name)
		row("Progress", ProgressBar(m.ctrl.Progress(), 20)+fmt.Sprintf(" %3.0f%%", 100*m.ctrl.Progress()))
	}
	if target := m.ctrl.Target(); target != nil {
		p := target.Position()
		yaw, pitch := spatial.Heading(target.Orientation())
		row("Position", fmt.Sprintf("%6.2f %6.2f %6.2f", p.X(), p.Y(), p.Z()))
		row("Yaw/Pitch", fmt.Sprintf("%6.1f° %6.1f°", yaw, pitch))
	}
	policy := m.ctrl.Policy().String()
	if m.ctrl.Policy() == transition.Extrapolate {
		policy = st.warning.Render(policy)
	}
	s.WriteString(st.label.Render("Overshoot") + policy + "\n")
	if m.reached.count > 0 {
		row("Reached", fmt.Sprintf("%s (%d)", m.reached.name, m.reached.count))
	}
	if m.message != "" {
		s.WriteString(st.muted.Render(m.message) + "\n")
	}

	if len(m.distance) > 1 {
		chart := asciigraph.Plot(m.distance,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption("distance to pose"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString("\nPOSES\n")
	for i, p := range m.poses {
		line := fmt.Sprintf("%d  %-12s %4.1fs", i+1, p.Name, p.TransitionDuration)
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		if p == m.destination() {
			s.WriteString(marker + " " + st.active.Render(line) + "\n")
		} else {
			s.WriteString(marker + " " + st.muted.Render(line) + "\n")
		}
	}
	s.WriteString(st.muted.Render("\n1-9:Go  ⇧1-9:Snap  Tab:Overshoot\nT:Theme  C:Clear  S:Capture  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.canvas.Render(m.canvas.String()),
		st.panel.Render(s.String()))
}

// Run starts the previewer on the alternate screen and blocks until the
// user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
