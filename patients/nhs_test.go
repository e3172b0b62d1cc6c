package patients_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients"
	patientsTest "github.com/rcpch/national-paediatric-diabetes-audit-sub001/patients/test"
)

var _ = Describe("NHS numbers", func() {
	DescribeTable("IsValidNhsNumber",
		func(value string, valid bool) {
			Expect(patients.IsValidNhsNumber(value)).To(Equal(valid))
		},
		Entry("a valid number", "9434765919", true),
		Entry("a valid number with spaces", "943 476 5919", true),
		Entry("a valid number with dashes", "943-476-5919", true),
		Entry("a check digit of 11", "9434765870", true),
		Entry("a wrong check digit", "9434765918", false),
		Entry("too short", "943476591", false),
		Entry("too long", "94347659190", false),
		Entry("letters", "94347A5919", false),
		Entry("empty", "", false),
	)

	It("computes check digits", func() {
		check, ok := patients.NhsNumberCheckDigit("943476591")
		Expect(ok).To(BeTrue())
		Expect(check).To(Equal(9))
	})

	It("can't issue numbers with a check digit of 10", func() {
		_, ok := patients.NhsNumberCheckDigit("000000040")
		Expect(ok).To(BeFalse())
	})

	It("generates valid and invalid fixtures", func() {
		for i := 0; i < 20; i++ {
			Expect(patients.IsValidNhsNumber(patientsTest.RandomNhsNumber())).To(BeTrue())
			Expect(patients.IsValidNhsNumber(patientsTest.InvalidNhsNumber())).To(BeFalse())
		}
	})
})
