package arrayops_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/radiotk/internal/arrayops"
)

var _ = Describe("Crop", func() {
	It("returns a window of spectra", func() {
		out, err := arrayops.Crop(ramp(5, 2), 1, 2, arrayops.AxisTime)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(2, 2, []float64{3, 4, 5, 6}))).To(BeTrue())
	})

	It("returns a window of channels as a view", func() {
		m := ramp(2, 5)
		out, err := arrayops.Crop(m, 2, 2, arrayops.AxisFreq)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(2, 2, []float64{3, 4, 8, 9}))).To(BeTrue())

		m.Set(0, 2, -1)
		Expect(out.At(0, 0)).To(Equal(-1.0))
	})

	It("returns the input unchanged for a full-length crop", func() {
		m := ramp(4, 3)
		out, err := arrayops.Crop(m, 0, 4, arrayops.AxisTime)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeIdenticalTo(m))

		out, err = arrayops.Crop(m, 2, 3, arrayops.AxisFreq)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeIdenticalTo(m))
	})

	It("fails when the window overruns the data", func() {
		_, err := arrayops.Crop(ramp(5, 2), 3, 4, arrayops.AxisTime)
		Expect(err).To(MatchError(arrayops.ErrLengthExceedsData))
	})

	It("fails on a window ending exactly on the last sample", func() {
		_, err := arrayops.Crop(ramp(5, 2), 1, 4, arrayops.AxisTime)
		Expect(err).To(MatchError(arrayops.ErrLengthExceedsData))
	})

	It("copies when the input cannot be sliced", func() {
		m := ramp(3, 4)
		out, err := arrayops.Crop(m.T(), 0, 2, arrayops.AxisTime)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(out, mat.NewDense(2, 3, []float64{1, 5, 9, 2, 6, 10}))).To(BeTrue())
	})

	It("rejects negative starts and empty windows", func() {
		_, err := arrayops.Crop(ramp(3, 3), -1, 1, arrayops.AxisTime)
		Expect(err).To(MatchError(arrayops.ErrInvalidArgument))

		_, err = arrayops.Crop(ramp(3, 3), 0, 0, arrayops.AxisTime)
		Expect(err).To(MatchError(arrayops.ErrInvalidArgument))
	})
})
