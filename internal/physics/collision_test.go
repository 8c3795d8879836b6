package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
)

var _ = Describe("ResolveOverlaps", func() {
	var (
		tn    physics.Tuning
		balls dynamo.Balls
	)

	BeforeEach(func() {
		tn = physics.DefaultTuning()
		balls = dynamo.Balls{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 20, Color: dynamo.Red},
			{Pos: dynamo.Vec2{X: 130, Y: 100}, Radius: 20, Color: dynamo.Blue},
		}
	})

	It("pushes only the ball being processed", func() {
		physics.ResolveOverlaps(balls, 0, tn)

		// target is (140,100); push = (140-130)*0.1 = 1; vx = (0-1)*0.9
		Expect(balls[0].Vel.X).To(BeNumerically("~", -0.9, 1e-12))
		Expect(balls[0].Vel.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(balls[1].Vel).To(Equal(dynamo.Vec2{}))
		Expect(balls[1].Pos).To(Equal(dynamo.Vec2{X: 130, Y: 100}))
	})

	It("leaves separated balls alone", func() {
		balls[1].Pos.X = 140
		balls[0].Vel = dynamo.Vec2{X: 0.3, Y: 0.1}

		physics.ResolveOverlaps(balls, 0, tn)

		Expect(balls[0].Vel).To(Equal(dynamo.Vec2{X: 0.3, Y: 0.1}))
	})

	It("compounds damping once per overlapping partner", func() {
		balls = dynamo.Balls{
			{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 0, Y: 1}, Radius: 20},
			{Pos: dynamo.Vec2{X: 139, Y: 100}, Radius: 20},
			{Pos: dynamo.Vec2{X: 61, Y: 100}, Radius: 20},
		}

		physics.ResolveOverlaps(balls, 0, tn)

		// vx: (0-0.1)*0.9 = -0.09, then (-0.09+0.1)*0.9 = 0.009.
		// vy only sees damping: 1 * 0.9 * 0.9.
		Expect(balls[0].Vel.X).To(BeNumerically("~", 0.009, 1e-9))
		Expect(balls[0].Vel.Y).To(BeNumerically("~", 0.81, 1e-12))
	})

	It("does not produce NaN for coincident centers", func() {
		balls[1].Pos = balls[0].Pos

		physics.ResolveOverlaps(balls, 0, tn)

		Expect(balls.IsValid()).To(BeTrue())
		// angle 0: target = (140,100), push = (40,0)*0.1, vx = -4*0.9
		Expect(balls[0].Vel.X).To(BeNumerically("~", -3.6, 1e-12))
		Expect(balls[0].Vel.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("still compares distinct balls that share a position", func() {
		balls[1].Pos = balls[0].Pos
		physics.ResolveOverlaps(balls, 1, tn)

		Expect(balls[1].Vel).NotTo(Equal(dynamo.Vec2{}))
	})
})

var _ = Describe("Step", func() {
	It("separates two overlapping balls over time", func() {
		bounds := dynamo.Bounds{Width: 10000, Height: 10000}
		balls := dynamo.Balls{
			{Pos: dynamo.Vec2{X: 5000, Y: 5000}, Radius: 20},
			{Pos: dynamo.Vec2{X: 5030, Y: 5000}, Radius: 20},
		}

		physics.Step(balls, bounds, physics.DefaultTuning())
		Expect(balls[0].Vel).NotTo(Equal(dynamo.Vec2{}))
		Expect(balls[1].Vel).NotTo(Equal(dynamo.Vec2{}))

		for i := 0; i < 60; i++ {
			physics.Step(balls, bounds, physics.DefaultTuning())
		}
		Expect(balls[0].Pos.Dist(balls[1].Pos)).To(BeNumerically(">=", 40-1e-9))
		Expect(physics.OverlappingPairs(balls)).To(Equal(0))
	})

	It("counts overlapping pairs once", func() {
		balls := dynamo.Balls{
			{Pos: dynamo.Vec2{X: 0, Y: 0}, Radius: 10},
			{Pos: dynamo.Vec2{X: 5, Y: 0}, Radius: 10},
			{Pos: dynamo.Vec2{X: 100, Y: 0}, Radius: 10},
		}
		Expect(physics.OverlappingPairs(balls)).To(Equal(1))
	})

	It("reports kinetic energy with unit mass", func() {
		balls := dynamo.Balls{
			{Vel: dynamo.Vec2{X: 3, Y: 4}, Radius: 1},
			{Vel: dynamo.Vec2{X: 0, Y: 2}, Radius: 1},
		}
		Expect(physics.KineticEnergy(balls)).To(BeNumerically("~", 14.5, 1e-12))
		Expect(math.IsNaN(physics.KineticEnergy(nil))).To(BeFalse())
	})
})
