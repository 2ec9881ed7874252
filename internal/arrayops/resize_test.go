package arrayops_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/radiotk/internal/arrayops"
)

var _ = Describe("Resize", func() {
	It("is the identity at the same size", func() {
		m := ramp(3, 4)
		out, err := arrayops.Resize(m, 4, arrayops.AxisFreq)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.EqualApprox(out, m, 1e-12)).To(BeTrue())
	})

	It("interpolates linearly when upsampling", func() {
		out, err := arrayops.Resize(row(0, 1), 4, arrayops.AxisFreq)
		Expect(err).NotTo(HaveOccurred())
		got := rowOf(out, 0)
		for i, want := range []float64{0.25, 0.25, 0.75, 0.75} {
			Expect(got[i]).To(BeNumerically("~", want, 1e-12))
		}
	})

	It("picks nearest samples with order 0", func() {
		out, err := arrayops.Resize(row(0, 1, 2, 3), 2, arrayops.AxisFreq,
			arrayops.WithOrder(0), arrayops.WithAntiAliasing(false))
		Expect(err).NotTo(HaveOccurred())
		Expect(rowOf(out, 0)).To(Equal([]float64{1, 3}))
	})

	It("keeps a constant signal constant when shrinking", func() {
		m := mat.NewDense(8, 2, nil)
		for i := 0; i < 8; i++ {
			m.Set(i, 0, 5)
			m.Set(i, 1, -2)
		}
		out, err := arrayops.Resize(m, 3, arrayops.AxisTime)
		Expect(err).NotTo(HaveOccurred())
		r, c := out.Dims()
		Expect(r).To(Equal(3))
		Expect(c).To(Equal(2))
		for i := 0; i < r; i++ {
			Expect(out.At(i, 0)).To(BeNumerically("~", 5, 1e-9))
			Expect(out.At(i, 1)).To(BeNumerically("~", -2, 1e-9))
		}
	})

	It("smooths an alternating signal when anti-aliasing", func() {
		m := row(1, -1, 1, -1, 1, -1, 1, -1)
		smooth, err := arrayops.Resize(m, 2, arrayops.AxisFreq, arrayops.WithOrder(0))
		Expect(err).NotTo(HaveOccurred())
		raw, err := arrayops.Resize(m, 2, arrayops.AxisFreq, arrayops.WithOrder(0), arrayops.WithAntiAliasing(false))
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Norm(smooth, 2)).To(BeNumerically("<", mat.Norm(raw, 2)))
	})

	It("rejects unusable sizes and orders", func() {
		_, err := arrayops.Resize(ramp(2, 2), 0, arrayops.AxisFreq)
		Expect(err).To(MatchError(arrayops.ErrInvalidArgument))

		_, err = arrayops.Resize(ramp(2, 2), 3, arrayops.AxisFreq, arrayops.WithOrder(3))
		Expect(err).To(MatchError(arrayops.ErrUnsupportedOrder))

		_, err = arrayops.Resize(ramp(2, 2), 3, arrayops.Axis(5))
		Expect(err).To(MatchError(arrayops.ErrInvalidAxis))
	})
})
