package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/maxwell/internal/contour"
	"github.com/san-kum/maxwell/internal/diag"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

var _ = Describe("Configuration", func() {
	var (
		cfg  *field.Configuration
		sink *diag.Collector
	)

	BeforeEach(func() {
		var err error
		sink = &diag.Collector{}
		cfg, err = field.New(10, 10, 64, 64,
			field.WithDiagnostics(sink),
			field.WithContourOptions(contour.DefaultOptions().Scale(0.02)))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("a single positive charge at the centre", func() {
		BeforeEach(func() {
			cfg.SetCharges([]dynamo.Charge{{X: 5, Y: 5, Strength: 1}})
		})

		It("initializes lazily on the first query", func() {
			Expect(cfg.State()).To(Equal(field.Uninitialized))
			cfg.ElecInterpolated(5, 5)
			Expect(cfg.State()).To(Equal(field.Initialized))
		})

		It("has an electric field pointing radially outward", func() {
			g := cfg.Grids()
			ic, jc, ok := cfg.Geometry().PositionToCell(5, 5)
			Expect(ok).To(BeTrue())

			for i := ic - 12; i <= ic+12; i++ {
				for j := jc - 12; j <= jc+12; j++ {
					d := max(abs(i-ic), abs(j-jc))
					if d < 2 {
						continue
					}
					rx, ry := float64(i-ic)+0.5, float64(j-jc)+0.5
					radial := g.ElecX.At(i, j)*rx + g.ElecY.At(i, j)*ry
					Expect(radial).To(BeNumerically(">", 0), "cell (%d,%d)", i, j)
				}
			}
		})

		It("agrees with the interpolated query along the axis", func() {
			ex, _ := cfg.ElecInterpolated(7, 5)
			exLeft, _ := cfg.ElecInterpolated(3, 5)
			Expect(ex).To(BeNumerically(">", 0))
			Expect(exLeft).To(BeNumerically("<", 0))
		})
	})

	Describe("a change in the number of charges between ticks", func() {
		a := dynamo.Charge{X: 4, Y: 5, Strength: 1}
		b := dynamo.Charge{X: 6.5, Y: 4, Strength: -1}

		It("matches a fresh initialization followed by one tick", func() {
			cfg.SetCharges([]dynamo.Charge{a})
			cfg.Tick(0.02)
			cfg.SetCharges([]dynamo.Charge{a, b})
			Expect(func() { cfg.Tick(0.02) }).NotTo(Panic())

			fresh, err := field.New(10, 10, 64, 64)
			Expect(err).NotTo(HaveOccurred())
			fresh.SetCharges([]dynamo.Charge{a, b})
			fresh.Tick(0.02)

			Expect(cfg.Grids().Equal(fresh.Grids())).To(BeTrue())
			Expect(cfg.Grids().CurrentX.MaxAbs()).To(BeZero())
		})
	})

	Describe("a moving charge", func() {
		It("radiates a magnetic field", func() {
			cfg.SetCharges([]dynamo.Charge{{X: 4, Y: 5, Strength: 1}})
			cfg.Tick(0.02)
			Expect(cfg.Grids().MagZ.MaxAbs()).To(BeNumerically("<", 1e-6))

			for k := 1; k <= 10; k++ {
				cfg.SetCharges([]dynamo.Charge{{X: 4 + 0.1*float64(k), Y: 5, Strength: 1}})
				cfg.Tick(0.02)
			}
			Expect(cfg.Grids().MagZ.MaxAbs()).To(BeNumerically(">", 1e-3))
			Expect(sink.Len()).To(BeZero())
		})
	})

	Describe("contour queries", func() {
		BeforeEach(func() {
			cfg.SetCharges([]dynamo.Charge{{X: 3, Y: 5, Strength: 1}, {X: 7, Y: 5, Strength: -1}})
		})

		It("produce identical output for identical histories", func() {
			other, err := field.New(10, 10, 64, 64, field.WithContourOptions(contour.DefaultOptions().Scale(0.02)))
			Expect(err).NotTo(HaveOccurred())
			other.SetCharges(cfg.Charges())

			for _, c := range []*field.Configuration{cfg, other} {
				c.Tick(0.02)
				c.Tick(0.02)
			}

			levels := []float64{-3000, -1500, 1500, 3000}
			c1, a1 := cfg.ContoursAndArrowsAtLevels(levels)
			c2, a2 := other.ContoursAndArrowsAtLevels(levels)
			Expect(c2).To(Equal(c1))
			Expect(a2).To(Equal(a1))
		})

		It("include a closed loop clear of the boundary", func() {
			contours := cfg.ContoursAtLevel(-3000)
			Expect(contours).NotTo(BeEmpty())
			Expect(contours[0].Closed(0.05)).To(BeTrue())
			for _, p := range contours[0] {
				Expect(cfg.Geometry().InPhysicalRegion(p.X, p.Y)).To(BeTrue())
			}
		})
	})
})

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
