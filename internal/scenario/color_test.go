package scenario_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/scenario"
)

var _ = Describe("Colors", func() {
	It("parses hex labels", func() {
		c, err := scenario.ParseColor("#ffd700")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Hex()).To(Equal("#ffd700"))
	})

	It("parses hsl labels", func() {
		c, err := scenario.ParseColor("hsl(120, 70%, 60%)")
		Expect(err).NotTo(HaveOccurred())
		h, s, l := c.Hsl()
		Expect(h).To(BeNumerically("~", 120, 1e-6))
		Expect(s).To(BeNumerically("~", 0.7, 1e-6))
		Expect(l).To(BeNumerically("~", 0.6, 1e-6))
	})

	It("reads fractional hues exactly", func() {
		h, err := scenario.Hue("hsl(51.42857142857143, 70%, 60%)")
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(Equal(51.42857142857143))
	})

	It("derives the hue of hex labels", func() {
		h, err := scenario.Hue("#ff0000")
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(BeNumerically("~", 0, 1e-6))
	})

	DescribeTable("rejects malformed labels",
		func(label string) {
			_, err := scenario.ParseColor(label)
			Expect(err).To(HaveOccurred())
		},
		Entry("plain word", "gold"),
		Entry("missing paren", "hsl(10, 20%, 30%"),
		Entry("two components", "hsl(10, 20%)"),
		Entry("bad number", "hsl(x, 20%, 30%)"),
		Entry("bad hex", "#zzzzzz"),
	)
})
