package eligibility_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/eligibility"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
)

func floats(values ...float64) []*float64 {
	result := make([]*float64, 0, len(values))
	for _, v := range values {
		result = append(result, pointer.FromAny(v))
	}
	return result
}

var _ = Describe("Statistics", func() {
	Describe("MedianOf", func() {
		It("averages the two middle values of an even count", func() {
			median, ok := eligibility.MedianOf(floats(1, 2, 3, 4))
			Expect(ok).To(BeTrue())
			Expect(median).To(Equal(2.5))
		})

		It("returns the middle value of an odd count", func() {
			median, ok := eligibility.MedianOf(floats(9, 1, 5))
			Expect(ok).To(BeTrue())
			Expect(median).To(Equal(5.0))
		})

		It("does not reorder its input", func() {
			values := floats(3, 1, 2)
			_, _ = eligibility.MedianOf(values)
			Expect(*values[0]).To(Equal(3.0))
		})

		It("ignores nil values", func() {
			median, ok := eligibility.MedianOf(append(floats(1, 3), nil))
			Expect(ok).To(BeTrue())
			Expect(median).To(Equal(2.0))
		})

		It("is undefined without values", func() {
			_, ok := eligibility.MedianOf([]*float64{nil})
			Expect(ok).To(BeFalse())
		})
	})

	Describe("MeanOf", func() {
		It("is the arithmetic mean", func() {
			mean, ok := eligibility.MeanOf(append(floats(48, 52, 62), nil))
			Expect(ok).To(BeTrue())
			Expect(mean).To(BeNumerically("~", 54.0))
		})

		It("is undefined without values", func() {
			_, ok := eligibility.MeanOf(nil)
			Expect(ok).To(BeFalse())
		})
	})
})
