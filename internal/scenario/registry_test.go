package scenario_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/scenario"
)

var _ = Describe("Registry", func() {
	It("lists the built-in scenarios in order", func() {
		Expect(scenario.NewRegistry().Keys()).To(Equal([]string{"N", "einstein", "quantum", "solar"}))
	})

	It("fails hard on unknown keys", func() {
		_, err := scenario.Default.Lookup("warp")
		Expect(err).To(MatchError(dynamo.ErrUnknownScenario))
	})

	It("rejects duplicates and incomplete definitions", func() {
		reg := scenario.NewRegistry()
		def, err := reg.Lookup("N")
		Expect(err).NotTo(HaveOccurred())

		Expect(reg.Register(def)).NotTo(Succeed())
		Expect(reg.Register(&scenario.Definition{Key: "empty"})).To(MatchError(dynamo.ErrInvalidScenarioData))
		Expect(reg.Register(nil)).To(MatchError(dynamo.ErrInvalidScenarioData))
	})

	DescribeTable("resolves the body count without clamping",
		func(key string, requested, want int) {
			def, err := scenario.Default.Lookup(key)
			Expect(err).NotTo(HaveOccurred())

			n, err := def.BodyCount(requested)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(want))
		},
		Entry("zero selects the default", "N", 0, scenario.DefaultN),
		Entry("below the schema minimum", "N", 1, 1),
		Entry("inside the schema", "N", 50, 50),
		Entry("above the schema maximum", "N", 5000, 5000),
		Entry("fixed scenario ignores n", "solar", 40, 6),
		Entry("fixed scenario ignores negative n", "solar", -1, 6),
	)

	It("rejects a negative body count", func() {
		def, err := scenario.Default.Lookup("N")
		Expect(err).NotTo(HaveOccurred())

		_, err = def.BodyCount(-3)
		Expect(err).To(MatchError(dynamo.ErrInvalidScenarioData))
	})
})

var _ = Describe("GetScenarioMetadata", func() {
	DescribeTable("describes each scenario",
		func(key string, requiresN bool, model physics.Name, params force.Params) {
			meta, err := scenario.GetScenarioMetadata(key)
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.Key).To(Equal(key))
			Expect(meta.RequiresN).To(Equal(requiresN))
			Expect(meta.PhysicsModel).To(Equal(model))
			Expect(meta.ModelParams).To(Equal(params))
			Expect(meta.Parameters).NotTo(BeEmpty())
		},
		Entry("ring", "N", true, physics.Name(""), force.Params{}),
		Entry("solar", "solar", false, physics.Name(""), force.Params{}),
		Entry("einstein", "einstein", true, physics.Relativistic, force.Params{RelativisticFactor: 0.0002}),
		Entry("quantum", "quantum", true, physics.Quantum, force.Params{QuantumUncertainty: 0.2, TunnelingProbability: 0.3}),
	)

	It("fixes the solar body count at six", func() {
		meta, err := scenario.GetScenarioMetadata("solar")
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Parameters).To(ConsistOf(scenario.Parameter{Name: "n", Default: 6, Min: 6, Max: 6}))
	})

	It("fails without a parameter schema", func() {
		reg := scenario.NewRegistry()
		def, err := reg.Lookup("N")
		Expect(err).NotTo(HaveOccurred())
		Expect(reg.Register(&scenario.Definition{Key: "bare", Generator: def.Generator})).To(Succeed())

		_, err = reg.Metadata("bare")
		Expect(err).To(MatchError(dynamo.ErrMissingParameterSchema))
	})

	It("fails on unknown scenarios", func() {
		_, err := scenario.GetScenarioMetadata("nope")
		Expect(err).To(MatchError(dynamo.ErrUnknownScenario))
	})
})
