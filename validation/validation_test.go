package validation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/validation"
)

var _ = Describe("Outcome", func() {
	It("is valid when nothing was added", func() {
		o := validation.NewOutcome()
		Expect(o.Valid).To(BeTrue())
		Expect(o.Fields()).To(BeEmpty())
	})

	It("collects codes per field without duplicates", func() {
		o := validation.NewOutcome()
		o.Add("hba1c", validation.ErrorCodeValueWithoutDate)
		o.Add("hba1c", validation.ErrorCodeValueWithoutDate)
		o.Add("dateOfBirth", validation.ErrorCodeDateInFuture)

		Expect(o.Valid).To(BeFalse())
		Expect(o.FieldErrors["hba1c"]).To(ConsistOf(validation.ErrorCodeValueWithoutDate))
		Expect(o.Has("dateOfBirth", validation.ErrorCodeDateInFuture)).To(BeTrue())
		Expect(o.Fields()).To(Equal([]string{"dateOfBirth", "hba1c"}))
	})
})
