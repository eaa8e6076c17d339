package contour_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/maxwell/internal/contour"
	"github.com/san-kum/maxwell/internal/diag"
	"github.com/san-kum/maxwell/internal/direct"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/geometry"
)

var _ = Describe("Equipotentials of a dipole", func() {
	var (
		geom    geometry.Geometry
		charges []dynamo.Charge
		tracer  *contour.Tracer
		sink    *diag.Collector
	)

	BeforeEach(func() {
		var err error
		geom, err = geometry.New(10, 10, 64, 64, 8)
		Expect(err).NotTo(HaveOccurred())

		charges = []dynamo.Charge{
			{X: 3, Y: 5, Strength: 1},
			{X: 7, Y: 5, Strength: -1},
		}
		sink = &diag.Collector{}
		tracer = contour.New(geom, direct.New(charges), charges)
		tracer.Options = contour.DefaultOptions().Scale(0.02)
		tracer.Diagnostics = sink
	})

	It("finds a closed loop around each charge that stays off the boundary", func() {
		contours := tracer.AtLevels([]float64{-3000, 3000})
		Expect(contours).NotTo(BeEmpty())

		closed := 0
		for _, c := range contours {
			if !c.Closed(0.05) {
				continue
			}
			closed++
			for _, p := range c {
				Expect(geom.InPhysicalRegion(p.X, p.Y)).To(BeTrue(), "point %v touches the padding", p)
			}
		}
		Expect(closed).To(BeNumerically(">=", 2))
	})

	It("puts every sampled point on its level", func() {
		for _, level := range []float64{-3000, 3000} {
			for _, c := range tracer.AtLevel(level) {
				for _, p := range c {
					Expect(direct.Potential(charges, p.X, p.Y)).To(BeNumerically("~", level, 0.1))
				}
			}
		}
	})

	It("is deterministic", func() {
		first := tracer.AtLevels([]float64{-3000, -1000, 1000, 3000})
		second := tracer.AtLevels([]float64{-3000, -1000, 1000, 3000})
		Expect(second).To(Equal(first))
	})

	It("traces the zero level as an open curve splitting the charges", func() {
		contours := tracer.AtLevel(0)
		Expect(contours).NotTo(BeEmpty())

		c := contours[0]
		Expect(geom.InPaddingRegion(c[0].X, c[0].Y)).To(BeFalse())
		Expect(geom.InPaddingRegion(c[len(c)-1].X, c[len(c)-1].Y)).To(BeFalse())
		for _, p := range c[1 : len(c)-1] {
			Expect(math.Abs(p.X-5)).To(BeNumerically("<", 1e-3))
		}
	})

	Context("when refining a seed", func() {
		It("leaves a point already on the level untouched", func() {
			x, y := tracer.FindCrossingPoint(0, 5, 2)
			Expect(x).To(Equal(5.0))
			Expect(y).To(Equal(2.0))
		})

		It("lands within tolerance of the level", func() {
			x, y := tracer.FindCrossingPoint(-2000, 1, 1)
			Expect(direct.Potential(charges, x, y)).To(BeNumerically("~", -2000, 1e-4))
			Expect(sink.Len()).To(BeZero())
		})
	})
})
