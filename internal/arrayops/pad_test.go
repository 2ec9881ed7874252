package arrayops_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/radiotk/internal/arrayops"
)

var _ = Describe("PadAlongAxis", func() {
	It("appends zero rows at the end", func() {
		m := ramp(4, 3)
		out, err := arrayops.PadAlongAxis(m, 6, arrayops.AxisTime, arrayops.WithLocation(arrayops.PadEnd))
		Expect(err).NotTo(HaveOccurred())

		r, c := out.Dims()
		Expect(r).To(Equal(6))
		Expect(c).To(Equal(3))
		for i := 0; i < 4; i++ {
			Expect(rowOf(out, i)).To(Equal(rowOf(m, i)))
		}
		Expect(rowOf(out, 4)).To(Equal([]float64{0, 0, 0}))
		Expect(rowOf(out, 5)).To(Equal([]float64{0, 0, 0}))
	})

	It("pads zeros((4,3)) to six rows", func() {
		out, err := arrayops.PadAlongAxis(mat.NewDense(4, 3, nil), 6, arrayops.AxisTime)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(6, 3, nil))).To(BeTrue())
	})

	It("prepends rows at the start", func() {
		m := ramp(2, 2)
		out, err := arrayops.PadAlongAxis(m, 4, arrayops.AxisTime, arrayops.WithLocation(arrayops.PadStart))
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(4, 2, []float64{0, 0, 0, 0, 1, 2, 3, 4}))).To(BeTrue())
	})

	It("puts one fewer sample at the start for an odd centred pad", func() {
		out, err := arrayops.PadAlongAxis(row(1, 2, 3, 4), 7, arrayops.AxisFreq, arrayops.WithLocation(arrayops.PadCentered))
		Expect(err).NotTo(HaveOccurred())
		Expect(rowOf(out, 0)).To(Equal([]float64{0, 1, 2, 3, 4, 0, 0}))
	})

	It("treats an unknown location as centred", func() {
		out, err := arrayops.PadAlongAxis(row(1, 2), 4, arrayops.AxisFreq, arrayops.WithLocation("middle"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rowOf(out, 0)).To(Equal([]float64{0, 1, 2, 0}))
	})

	It("returns the input when it is already long enough", func() {
		m := ramp(3, 5)
		same, err := arrayops.PadAlongAxis(m, 5, arrayops.AxisFreq)
		Expect(err).NotTo(HaveOccurred())
		Expect(same).To(BeIdenticalTo(m))

		shorter, err := arrayops.PadAlongAxis(m, 2, arrayops.AxisTime)
		Expect(err).NotTo(HaveOccurred())
		Expect(shorter).To(BeIdenticalTo(m))
	})

	It("leaves the other axis untouched", func() {
		out, err := arrayops.PadAlongAxis(ramp(3, 5), 8, arrayops.AxisFreq)
		Expect(err).NotTo(HaveOccurred())
		r, c := out.Dims()
		Expect(r).To(Equal(3))
		Expect(c).To(Equal(8))
	})

	DescribeTable("fill modes",
		func(loc arrayops.PadLocation, opts []arrayops.PadOption, want []float64) {
			opts = append(opts, arrayops.WithLocation(loc))
			out, err := arrayops.PadAlongAxis(row(1, 2, 3), 5, arrayops.AxisFreq, opts...)
			Expect(err).NotTo(HaveOccurred())
			Expect(rowOf(out, 0)).To(Equal(want))
		},
		Entry("constant value", arrayops.PadEnd,
			[]arrayops.PadOption{arrayops.WithConstant(9)}, []float64{1, 2, 3, 9, 9}),
		Entry("edge", arrayops.PadEnd,
			[]arrayops.PadOption{arrayops.WithMode(arrayops.ModeEdge)}, []float64{1, 2, 3, 3, 3}),
		Entry("reflect", arrayops.PadStart,
			[]arrayops.PadOption{arrayops.WithMode(arrayops.ModeReflect)}, []float64{3, 2, 1, 2, 3}),
		Entry("symmetric", arrayops.PadStart,
			[]arrayops.PadOption{arrayops.WithMode(arrayops.ModeSymmetric)}, []float64{2, 1, 1, 2, 3}),
		Entry("wrap", arrayops.PadStart,
			[]arrayops.PadOption{arrayops.WithMode(arrayops.ModeWrap)}, []float64{2, 3, 1, 2, 3}),
	)

	It("rejects unknown modes and axes", func() {
		_, err := arrayops.PadAlongAxis(row(1), 3, arrayops.AxisFreq, arrayops.WithMode("median"))
		Expect(err).To(MatchError(arrayops.ErrInvalidArgument))

		_, err = arrayops.PadAlongAxis(row(1), 3, arrayops.Axis(2))
		Expect(err).To(MatchError(arrayops.ErrInvalidAxis))
	})

	It("parses mode names", func() {
		mode, err := arrayops.ParsePadMode(" Edge ")
		Expect(err).NotTo(HaveOccurred())
		Expect(mode).To(Equal(arrayops.ModeEdge))

		mode, err = arrayops.ParsePadMode("")
		Expect(err).NotTo(HaveOccurred())
		Expect(mode).To(Equal(arrayops.ModeConstant))

		_, err = arrayops.ParsePadMode("linear_ramp")
		Expect(err).To(MatchError(arrayops.ErrInvalidArgument))
	})
})
