package stencil_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/geometry"
	"github.com/san-kum/maxwell/internal/stencil"
)

var _ = Describe("Softened point deposition", func() {
	var e *stencil.Engine

	BeforeEach(func() {
		geom, err := geometry.New(10, 10, 64, 64, 8)
		Expect(err).NotTo(HaveOccurred())
		e = stencil.New(geom)
	})

	It("deposits onto a grid of the engine's shape", func() {
		g := dynamo.NewGrid(64, 64)
		Expect(e.AddSoftenedPoint(g, 32, 32, 1)).To(Succeed())
		Expect(g.Sum()).To(BeNumerically("~", 1, 1e-3))
	})

	DescribeTable("rejects a grid of another shape without touching it",
		func(nx, ny int) {
			g := dynamo.NewGrid(nx, ny)
			err := e.AddSoftenedPoint(g, nx/2, ny/2, 1)
			Expect(err).To(MatchError(dynamo.ErrDimensionMismatch))

			var ge *dynamo.GridError
			Expect(err).To(BeAssignableToTypeOf(ge))
			Expect(g.MaxAbs()).To(BeZero())
		},
		Entry("larger", 80, 80),
		Entry("smaller", 16, 16),
		Entry("narrower in y", 64, 32),
	)
})
