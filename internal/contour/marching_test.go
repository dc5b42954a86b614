package contour_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isocontour/internal/contour"
	"github.com/san-kum/isocontour/internal/geom"
	"github.com/san-kum/isocontour/internal/grid"
)

var _ = Describe("Marching squares", func() {
	var g *grid.Grid

	BeforeEach(func() {
		var err error
		g, err = grid.New(4, 4, 5, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("on a constant field", func() {
		It("emits nothing below the isolevel", func() {
			g.Fill(0.1)
			Expect(contour.Extract(g, 0.5, true)).To(BeEmpty())
		})

		It("emits nothing at or above the isolevel", func() {
			g.Fill(0.5)
			Expect(contour.Extract(g, 0.5, true)).To(BeEmpty())
			g.Fill(3)
			Expect(contour.Extract(g, 0.5, false)).To(BeEmpty())
		})
	})

	Context("with a single active row", func() {
		BeforeEach(func() {
			for xi := 0; xi < g.Resolution(); xi++ {
				Expect(g.SetValue(g.Index(xi, 2), 1)).To(Succeed())
			}
		})

		It("emits two points per boundary-crossing cell", func() {
			pts := contour.Extract(g, 0.5, true)
			crossing := 2 * (g.Resolution() - 1)
			Expect(pts).To(HaveLen(2 * crossing))
		})

		It("places every vertex halfway between rows", func() {
			for _, p := range contour.Extract(g, 0.5, true) {
				Expect(p.Y).To(Or(BeNumerically("~", 1.5, 1e-12), BeNumerically("~", 2.5, 1e-12)))
			}
		})

		It("produces the same contour on every pass", func() {
			ex := contour.New(0.5, true, g)
			first := append([]geom.Position(nil), ex.Points()...)
			for i := 0; i < 3; i++ {
				ex.March()
				Expect(ex.Points()).To(Equal(first))
			}
		})

		It("does not reuse the previous pass's storage", func() {
			ex := contour.New(0.5, true, g)
			held := ex.Points()
			snapshot := append([]geom.Position(nil), held...)

			g.Fill(0)
			ex.March()
			Expect(ex.Points()).To(BeEmpty())
			Expect(held).To(Equal(snapshot))
		})
	})

	Context("when the isolevel changes", func() {
		It("rebuilds the contour on the next march", func() {
			for i := 0; i < g.Size(); i++ {
				p := g.Position(i)
				Expect(g.SetValue(i, p.X/4)).To(Succeed())
			}
			ex := contour.New(0.25, true, g)
			Expect(ex.SegmentCount()).To(Equal(4))
			for _, p := range ex.Points() {
				Expect(p.X).To(BeNumerically("~", 1, 1e-12))
			}

			ex.SetIsolevel(0.75)
			ex.March()
			for _, p := range ex.Points() {
				Expect(p.X).To(BeNumerically("~", 3, 1e-12))
			}
		})
	})
})
