package scenario_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/scenario"
)

const (
	cx = 400.0
	cy = 300.0
	R  = 200.0
	G  = 500.0
)

// faulty wraps a real generator and lets a test break one array.
type faulty struct {
	scenario.Generator
	positions  int
	velocities int
	mass       float64
	radii      int
}

func (f faulty) Masses(n int) []float64 {
	m := f.Generator.Masses(n)
	if f.mass != 0 {
		m[len(m)-1] = f.mass
	}
	return m
}

func (f faulty) Radii(n int) []float64 {
	r := f.Generator.Radii(n)
	if f.radii != 0 {
		return r[:f.radii]
	}
	return r
}

func (f faulty) Positions(g scenario.Geometry, n int) []r2.Vec {
	p := f.Generator.Positions(g, n)
	if f.positions != 0 {
		return p[:f.positions]
	}
	return p
}

func (f faulty) Velocities(base float64, n int) []r2.Vec {
	v := f.Generator.Velocities(base, n)
	if f.velocities != 0 {
		return append(v, r2.Vec{})
	}
	return v
}

func ringGenerator() scenario.Generator {
	def, err := scenario.Default.Lookup("N")
	Expect(err).NotTo(HaveOccurred())
	return def.Generator
}

var _ = Describe("InitializeMasses", func() {
	Context("ring of N", func() {
		It("places n equal bodies on the orbit", func() {
			bodies, err := scenario.InitializeMasses(cx, cy, R, "N", 6, G)
			Expect(err).NotTo(HaveOccurred())
			Expect(bodies).To(HaveLen(6))

			for _, b := range bodies {
				d := r2.Norm(r2.Sub(b.Pos, r2.Vec{X: cx, Y: cy}))
				Expect(d).To(BeNumerically("~", R, 1e-9))
				Expect(b.Mass).To(Equal(bodies[0].Mass))
				Expect(b.Radius).To(Equal(bodies[0].Radius))
			}
		})

		It("spaces hues 60 degrees apart for six bodies", func() {
			bodies, err := scenario.InitializeMasses(cx, cy, R, "N", 6, G)
			Expect(err).NotTo(HaveOccurred())

			for i, b := range bodies {
				h, err := scenario.Hue(b.Color)
				Expect(err).NotTo(HaveOccurred())
				Expect(h).To(BeNumerically("~", float64(i)*60, 1e-9))
			}
		})

		It("gives tangential velocities of equal magnitude", func() {
			bodies, err := scenario.InitializeMasses(cx, cy, R, "N", 5, G)
			Expect(err).NotTo(HaveOccurred())

			want := math.Sqrt(G*1000/R) * 0.2
			for _, b := range bodies {
				radial := r2.Sub(b.Pos, r2.Vec{X: cx, Y: cy})
				Expect(r2.Norm(b.Vel)).To(BeNumerically("~", want, 1e-9))
				Expect(r2.Dot(radial, b.Vel)).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("uses the schema default for n = 0", func() {
			bodies, err := scenario.InitializeMasses(cx, cy, R, "N", 0, G)
			Expect(err).NotTo(HaveOccurred())
			Expect(bodies).To(HaveLen(scenario.DefaultN))
		})

		It("builds exactly the requested count outside the recommended range", func() {
			for _, n := range []int{1, 1500} {
				bodies, err := scenario.InitializeMasses(cx, cy, R, "N", n, G)
				Expect(err).NotTo(HaveOccurred())
				Expect(bodies).To(HaveLen(n))
			}
		})

		It("fails on a negative n", func() {
			bodies, err := scenario.InitializeMasses(cx, cy, R, "N", -2, G)
			Expect(err).To(MatchError(dynamo.ErrInvalidScenarioData))
			Expect(bodies).To(BeNil())
		})
	})

	Context("solar", func() {
		It("always returns six bodies with a resting center", func() {
			for _, n := range []int{0, 2, 6, 40} {
				bodies, err := scenario.InitializeMasses(cx, cy, R, "solar", n, G)
				Expect(err).NotTo(HaveOccurred())
				Expect(bodies).To(HaveLen(6))
				Expect(bodies[0].Pos).To(Equal(r2.Vec{X: cx, Y: cy}))
				Expect(bodies[0].Vel).To(Equal(r2.Vec{}))
			}
		})

		It("keeps every body on the horizontal axis moving along +Y", func() {
			bodies, err := scenario.InitializeMasses(cx, cy, R, "solar", 6, G)
			Expect(err).NotTo(HaveOccurred())

			Expect(bodies[0].Mass).To(Equal(3000.0))
			Expect(bodies[3].Pos.X).To(BeNumerically("~", cx+0.35*R+35, 1e-9))
			for _, b := range bodies[1:] {
				Expect(b.Pos.Y).To(Equal(cy))
				Expect(b.Vel.X).To(BeZero())
				Expect(b.Vel.Y).To(BeNumerically(">", 0))
			}
		})
	})

	Context("physics-tagged rings", func() {
		It("shares the ring geometry", func() {
			for _, key := range []string{"einstein", "quantum"} {
				bodies, err := scenario.InitializeMasses(cx, cy, R, key, 4, G)
				Expect(err).NotTo(HaveOccurred())
				Expect(bodies).To(HaveLen(4))
				for _, b := range bodies {
					d := r2.Norm(r2.Sub(b.Pos, r2.Vec{X: cx, Y: cy}))
					Expect(d).To(BeNumerically("~", R, 1e-9))
				}
			}
		})
	})

	Context("invalid arguments", func() {
		DescribeTable("fails before building",
			func(x, y, r float64, key string, g float64, want error) {
				bodies, err := scenario.InitializeMasses(x, y, r, key, 3, g)
				Expect(err).To(MatchError(want))
				Expect(bodies).To(BeNil())
			},
			Entry("NaN center", math.NaN(), cy, R, "N", G, dynamo.ErrInvalidCanvasDimensions),
			Entry("infinite radius", cx, cy, math.Inf(1), "N", G, dynamo.ErrInvalidCanvasDimensions),
			Entry("zero radius", cx, cy, 0.0, "N", G, dynamo.ErrInvalidOrbitRadius),
			Entry("negative radius", cx, cy, -5.0, "N", G, dynamo.ErrInvalidOrbitRadius),
			Entry("zero gravity", cx, cy, R, "N", 0.0, dynamo.ErrInvalidGravity),
			Entry("unknown scenario", cx, cy, R, "unknown-scenario", G, dynamo.ErrUnknownScenario),
		)
	})

	Context("broken generators", func() {
		var reg *scenario.Registry

		BeforeEach(func() {
			reg = scenario.NewRegistry()
		})

		register := func(key string, gen scenario.Generator) {
			Expect(reg.Register(&scenario.Definition{
				Key:        key,
				RequiresN:  true,
				Parameters: []scenario.Parameter{{Name: "n", Default: 3, Min: 2, Max: 10}},
				Generator:  gen,
			})).To(Succeed())
		}

		DescribeTable("reports the contract violation",
			func(gen func() scenario.Generator, want error) {
				register("broken", gen())
				bodies, err := reg.Build(scenario.Geometry{CenterX: cx, CenterY: cy, OrbitRadius: R}, "broken", 4, G)
				Expect(err).To(MatchError(want))
				Expect(bodies).To(BeNil())
			},
			Entry("short positions", func() scenario.Generator {
				return faulty{Generator: ringGenerator(), positions: 2}
			}, dynamo.ErrPositionLengthMismatch),
			Entry("long velocities", func() scenario.Generator {
				return faulty{Generator: ringGenerator(), velocities: 1}
			}, dynamo.ErrVelocityLengthMismatch),
			Entry("non-positive mass", func() scenario.Generator {
				return faulty{Generator: ringGenerator(), mass: -1}
			}, dynamo.ErrInvalidMass),
			Entry("short radii", func() scenario.Generator {
				return faulty{Generator: ringGenerator(), radii: 1}
			}, dynamo.ErrInvalidScenarioData),
		)

		It("classifies length mismatches as scenario data errors", func() {
			register("broken", faulty{Generator: ringGenerator(), positions: 1})
			_, err := reg.Build(scenario.Geometry{CenterX: cx, CenterY: cy, OrbitRadius: R}, "broken", 3, G)
			Expect(err).To(MatchError(dynamo.ErrInvalidScenarioData))
		})
	})
})
