package transition_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/posecam/internal/curve"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/spatial"
	"github.com/san-kum/posecam/internal/transition"
)

func newPose(name string, pos mgl64.Vec3, duration float64, c curve.Curve) *pose.Pose {
	p := pose.New(name)
	p.Position = pos
	p.TransitionDuration = duration
	p.Curve = c
	return p
}

func quatClose(a, b mgl64.Quat) bool {
	return a.ApproxEqualThreshold(b, 1e-12)
}

var _ = Describe("Controller", func() {
	var (
		rig     *spatial.Rig
		coll    *pose.Collection
		ctrl    *transition.Controller
		a, b    *pose.Pose
		reached []*pose.Pose
	)

	BeforeEach(func() {
		rig = spatial.NewRig()
		coll = pose.NewCollection("menu")
		a = newPose("A", mgl64.Vec3{0, 0, 0}, 1, curve.Linear)
		b = newPose("B", mgl64.Vec3{10, 0, 0}, 2, curve.Linear)
		b.Orientation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
		coll.Add(a)
		coll.Add(b)

		reached = nil
		ctrl = transition.New(rig, coll)
		ctrl.AddObserver(transition.ObserverFunc(func(p *pose.Pose) {
			reached = append(reached, p)
		}))
	})

	It("starts idle with no current pose", func() {
		Expect(ctrl.IsTransitioning()).To(BeFalse())
		Expect(ctrl.CurrentPose()).To(BeNil())
		Expect(ctrl.Progress()).To(BeZero())
	})

	Describe("SnapTo", func() {
		It("copies the pose transform exactly", func() {
			b.Position = mgl64.Vec3{0.1, 0.2, 0.30000000000000004}
			ctrl.SnapTo(b)

			Expect(rig.Position()).To(Equal(b.Position))
			Expect(rig.Orientation()).To(Equal(b.Orientation))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(b))
			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(reached).To(ConsistOf(b))
		})

		It("gives the same state when repeated", func() {
			ctrl.SnapTo(b)
			pos, rot, cur := rig.Position(), rig.Orientation(), ctrl.CurrentPose()

			ctrl.SnapTo(b)
			Expect(rig.Position()).To(Equal(pos))
			Expect(rig.Orientation()).To(Equal(rot))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(cur))
			Expect(ctrl.IsTransitioning()).To(BeFalse())
		})

		It("cancels an active transition without reporting it", func() {
			ctrl.TransitionTo(b)
			ctrl.Advance(0.5)
			ctrl.SnapTo(a)

			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(ctrl.Destination()).To(BeNil())
			Expect(rig.Position()).To(Equal(a.Position))
			Expect(reached).To(ConsistOf(a))

			ctrl.Advance(5)
			Expect(rig.Position()).To(Equal(a.Position))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(a))
		})

		It("resolves poses by name", func() {
			ctrl.SnapToName("B")
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(b))
		})
	})

	Describe("TransitionTo", func() {
		It("arms the state machine without moving the target", func() {
			rig.SetPosition(mgl64.Vec3{1, 1, 1})
			ctrl.TransitionTo(b)

			Expect(ctrl.IsTransitioning()).To(BeTrue())
			Expect(ctrl.State()).To(Equal(transition.Transitioning))
			Expect(ctrl.Destination()).To(BeIdenticalTo(b))
			Expect(ctrl.StartPosition()).To(Equal(mgl64.Vec3{1, 1, 1}))
			Expect(rig.Position()).To(Equal(mgl64.Vec3{1, 1, 1}))
			Expect(ctrl.CurrentPose()).To(BeNil())
		})

		It("reaches the midpoint and then lands exactly", func() {
			ctrl.SnapTo(a)
			ctrl.TransitionToName("B")

			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(mgl64.Vec3{5, 0, 0}))
			Expect(ctrl.Progress()).To(Equal(0.5))
			Expect(quatClose(rig.Orientation(), mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0}))).To(BeTrue())
			Expect(ctrl.IsTransitioning()).To(BeTrue())

			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(mgl64.Vec3{10, 0, 0}))
			Expect(rig.Orientation()).To(Equal(b.Orientation))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(b))
			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(reached).To(Equal([]*pose.Pose{a, b}))
		})

		It("converges exactly for any tick split summing past the duration", func() {
			b.Curve = curve.EaseInOutCubic
			b.Position = mgl64.Vec3{3.3, -7.1, 0.7}
			steps := []float64{0.016, 0.3, 0.001, 0.7, 0.25, 0.9}

			ctrl.TransitionTo(b)
			total := 0.0
			for _, dt := range steps {
				ctrl.Advance(dt)
				total += dt
			}

			Expect(total).To(BeNumerically(">=", b.TransitionDuration))
			Expect(rig.Position()).To(Equal(b.Position))
			Expect(rig.Orientation()).To(Equal(b.Orientation))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(b))
		})

		It("starts from where the target actually is", func() {
			ctrl.SnapTo(a)
			rig.SetPosition(mgl64.Vec3{0, 4, 0})

			ctrl.TransitionTo(b)
			ctrl.Advance(1)

			Expect(rig.Position()).To(Equal(mgl64.Vec3{5, 2, 0}))
		})

		It("completes a zero-duration transition on the first tick", func() {
			b.TransitionDuration = 0
			ctrl.TransitionTo(b)
			Expect(ctrl.IsTransitioning()).To(BeTrue())

			ctrl.Advance(0)
			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(rig.Position()).To(Equal(b.Position))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(b))
		})

		It("treats negative and non-finite ticks as zero", func() {
			ctrl.TransitionTo(b)
			ctrl.Advance(-3)
			ctrl.Advance(math.NaN())
			ctrl.Advance(math.Inf(1))

			Expect(ctrl.Elapsed()).To(BeZero())
			Expect(ctrl.IsTransitioning()).To(BeTrue())
			Expect(rig.Position()).To(Equal(mgl64.Vec3{0, 0, 0}))
		})

		It("ignores ticks while idle", func() {
			ctrl.SnapTo(a)
			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(a.Position))
			Expect(reached).To(HaveLen(1))
		})

		It("falls back to linear when a pose has no curve", func() {
			b.Curve = nil
			ctrl.TransitionTo(b)
			ctrl.Advance(0.5)
			Expect(rig.Position()).To(Equal(mgl64.Vec3{2.5, 0, 0}))
		})
	})

	Describe("supersession", func() {
		It("blends from the interrupted transform toward the new pose", func() {
			c := newPose("C", mgl64.Vec3{0, 10, 0}, 2, curve.Linear)
			coll.Add(c)

			ctrl.TransitionTo(b)
			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(mgl64.Vec3{5, 0, 0}))

			ctrl.TransitionTo(c)
			Expect(ctrl.Destination()).To(BeIdenticalTo(c))
			Expect(ctrl.Elapsed()).To(BeZero())

			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(mgl64.Vec3{2.5, 5, 0}))

			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(c.Position))
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(c))
			Expect(reached).To(ConsistOf(c))
		})

		It("restarts when the same pose is requested again", func() {
			ctrl.TransitionTo(b)
			ctrl.Advance(1)
			ctrl.TransitionTo(b)

			Expect(ctrl.StartPosition()).To(Equal(mgl64.Vec3{5, 0, 0}))
			ctrl.Advance(1)
			Expect(rig.Position()).To(Equal(mgl64.Vec3{7.5, 0, 0}))
		})

		It("cancels when the target is rebound", func() {
			ctrl.TransitionTo(b)
			ctrl.Advance(1)

			other := spatial.NewRig()
			ctrl.SetTarget(other)
			Expect(ctrl.IsTransitioning()).To(BeFalse())

			ctrl.Advance(5)
			Expect(other.Position()).To(Equal(mgl64.Vec3{}))
			Expect(reached).To(BeEmpty())
		})
	})

	Describe("absent references", func() {
		It("ignores unknown pose names", func() {
			ctrl.SnapTo(a)
			rig.SetPosition(mgl64.Vec3{3, 3, 3})

			ctrl.TransitionToName("NoSuchPose")
			ctrl.SnapToName("NoSuchPose")
			ctrl.Advance(1)

			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(a))
			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(rig.Position()).To(Equal(mgl64.Vec3{3, 3, 3}))
		})

		It("does nothing by name without a collection", func() {
			ctrl.SetCollection(nil)
			ctrl.TransitionToName("B")
			ctrl.SnapToName("B")

			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(ctrl.CurrentPose()).To(BeNil())
		})

		It("still accepts pose references without a collection", func() {
			ctrl.SetCollection(nil)
			ctrl.SnapTo(b)
			Expect(ctrl.CurrentPose()).To(BeIdenticalTo(b))
		})

		It("does nothing without a target", func() {
			ctrl.SetTarget(nil)
			ctrl.SnapTo(b)
			ctrl.TransitionTo(b)
			ctrl.Advance(1)

			Expect(ctrl.CurrentPose()).To(BeNil())
			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(reached).To(BeEmpty())
		})

		It("ignores nil poses", func() {
			ctrl.TransitionTo(nil)
			ctrl.SnapTo(nil)
			Expect(ctrl.IsTransitioning()).To(BeFalse())
			Expect(ctrl.CurrentPose()).To(BeNil())
		})
	})

	Describe("overshoot", func() {
		var peakX float64

		run := func() {
			b.Curve = curve.EaseOutBack
			b.TransitionDuration = 1
			ctrl.SnapTo(a)
			ctrl.TransitionTo(b)
			peakX = 0
			for ctrl.IsTransitioning() {
				ctrl.Advance(0.01)
				peakX = math.Max(peakX, rig.Position().X())
			}
		}

		It("extrapolates past the destination by default", func() {
			Expect(ctrl.Policy()).To(Equal(transition.Extrapolate))
			run()

			Expect(peakX).To(BeNumerically(">", 10))
			Expect(rig.Position()).To(Equal(b.Position))
			Expect(rig.Orientation()).To(Equal(b.Orientation))
		})

		It("extrapolates the orientation along the same arc", func() {
			b.Curve = curve.Func(func(t float64) float64 { return 1.5 * t })
			ctrl.SnapTo(a)
			ctrl.TransitionTo(b)
			ctrl.Advance(1.6)

			want := mgl64.QuatRotate(1.2*math.Pi/2, mgl64.Vec3{0, 1, 0})
			Expect(quatClose(rig.Orientation(), want)).To(BeTrue())
			Expect(rig.Position().X()).To(BeNumerically("~", 12, 1e-12))
		})

		It("stays within the segment under the clamp policy", func() {
			ctrl.SetPolicy(transition.Clamp)
			run()

			Expect(peakX).To(BeNumerically("<=", 10))
			Expect(rig.Position()).To(Equal(b.Position))
		})
	})
})

var _ = Describe("Policy", func() {
	DescribeTable("ParsePolicy",
		func(in string, want transition.Policy, ok bool) {
			got, err := transition.ParsePolicy(in)
			if ok {
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			} else {
				Expect(err).To(MatchError(transition.ErrUnknownPolicy))
			}
		},
		Entry("default", "", transition.Extrapolate, true),
		Entry("extrapolate", "extrapolate", transition.Extrapolate, true),
		Entry("clamp", "clamp", transition.Clamp, true),
		Entry("unknown", "wrap", transition.Extrapolate, false),
	)

	It("round-trips through String", func() {
		for _, p := range []transition.Policy{transition.Extrapolate, transition.Clamp} {
			got, err := transition.ParsePolicy(p.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(p))
		}
	})
})
