package arrayops_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/radiotk/internal/arrayops"
)

var _ = Describe("Decimate", func() {
	It("averages pairs of channels", func() {
		out, err := arrayops.Decimate(ramp(2, 6), 2, arrayops.AxisFreq, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(2, 3, []float64{
			1.5, 3.5, 5.5,
			7.5, 9.5, 11.5,
		}))).To(BeTrue())
	})

	It("averages groups of spectra", func() {
		out, err := arrayops.Decimate(ramp(6, 2), 3, arrayops.AxisTime, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(2, 2, []float64{3, 4, 9, 10}))).To(BeTrue())
	})

	It("matches the mean of each contiguous group", func() {
		m := ramp(8, 12)
		for _, f := range []int{1, 2, 3, 4, 6, 12} {
			out, err := arrayops.Decimate(m, f, arrayops.AxisFreq, false)
			Expect(err).NotTo(HaveOccurred())
			r, c := out.Dims()
			Expect(r).To(Equal(8))
			Expect(c).To(Equal(12 / f))
			for i := 0; i < r; i++ {
				for g := 0; g < c; g++ {
					var sum float64
					for k := g * f; k < (g+1)*f; k++ {
						sum += m.At(i, k)
					}
					Expect(out.At(i, g)).To(BeNumerically("~", sum/float64(f), 1e-12))
				}
			}
		}
	})

	It("fails on a non-dividing factor without padding", func() {
		_, err := arrayops.Decimate(ramp(2, 5), 2, arrayops.AxisFreq, false)
		Expect(err).To(MatchError(arrayops.ErrNotMultiple))
		Expect(err.Error()).To(ContainSubstring("multiple of decimate_factor"))
	})

	It("pads to the next multiple when asked", func() {
		out, err := arrayops.Decimate(row(1, 2, 3, 4, 5), 2, arrayops.AxisFreq, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(rowOf(out, 0)).To(Equal([]float64{1.5, 3.5, 2.5}))
	})

	It("forwards padding options", func() {
		out, err := arrayops.Decimate(row(1, 2, 3, 4, 5), 2, arrayops.AxisFreq, true,
			arrayops.WithMode(arrayops.ModeEdge))
		Expect(err).NotTo(HaveOccurred())
		Expect(rowOf(out, 0)).To(Equal([]float64{1.5, 3.5, 5}))
	})

	It("rejects bad factors and axes", func() {
		_, err := arrayops.Decimate(ramp(2, 2), 0, arrayops.AxisFreq, false)
		Expect(err).To(MatchError(arrayops.ErrInvalidFactor))

		_, err = arrayops.Decimate(ramp(2, 2), 2, arrayops.Axis(-1), false)
		Expect(err).To(MatchError(arrayops.ErrInvalidAxis))
	})
})

var _ = DescribeTable("ClosestNumber",
	func(n, m, want int) {
		Expect(arrayops.ClosestNumber(n, m)).To(Equal(want))
	},
	Entry("already a multiple", 8, 4, 0),
	Entry("two short", 10, 4, 2),
	Entry("one short", 5, 3, 1),
	Entry("smaller than factor", 3, 8, 5),
)
