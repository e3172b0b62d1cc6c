package audit_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/audit"
	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/pointer"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("Audit", func() {
	Describe("WindowForDate", func() {
		It("returns the window starting in the same year on and after 1 April", func() {
			expected := audit.Window{Start: day(2023, time.April, 1), End: day(2024, time.March, 31)}
			for d := day(2023, time.April, 1); !d.After(day(2024, time.March, 31)); d = d.AddDate(0, 0, 1) {
				w, err := audit.WindowForDate(d)
				Expect(err).ToNot(HaveOccurred())
				Expect(w).To(Equal(expected), d.String())
			}
		})

		It("rolls back one year before 1 April", func() {
			w, err := audit.WindowForDate(day(2023, time.March, 31))
			Expect(err).ToNot(HaveOccurred())
			Expect(w.Start).To(Equal(day(2022, time.April, 1)))
			Expect(w.End).To(Equal(day(2023, time.March, 31)))
		})

		It("ignores the time of day and the location", func() {
			bst := time.FixedZone("BST", 60*60)

			w, err := audit.WindowForDate(time.Date(2023, time.April, 1, 0, 30, 0, 0, bst))
			Expect(err).ToNot(HaveOccurred())
			Expect(w.Start).To(Equal(day(2023, time.April, 1)))
		})

		It("fails for a zero date", func() {
			_, err := audit.WindowForDate(time.Time{})
			Expect(err).To(MatchError(audit.ErrInvalidReferenceDate))
		})
	})

	Describe("Window", func() {
		var w audit.Window

		BeforeEach(func() {
			w, _ = audit.WindowForDate(day(2023, time.June, 1))
		})

		It("contains both bounds", func() {
			Expect(w.Contains(pointer.FromAny(day(2023, time.April, 1)))).To(BeTrue())
			Expect(w.Contains(pointer.FromAny(day(2024, time.March, 31)))).To(BeTrue())
			Expect(w.Contains(pointer.FromAny(day(2024, time.March, 31).Add(23 * time.Hour)))).To(BeTrue())
		})

		It("does not contain days outside the bounds", func() {
			Expect(w.Contains(pointer.FromAny(day(2023, time.March, 31)))).To(BeFalse())
			Expect(w.Contains(pointer.FromAny(day(2024, time.April, 1)))).To(BeFalse())
		})

		It("does not contain nil", func() {
			Expect(w.Contains(nil)).To(BeFalse())
		})

		It("counts days with a leap year", func() {
			Expect(w.Days()).To(Equal(365))

			w, _ = audit.WindowForDate(day(2022, time.June, 1))
			Expect(w.Days()).To(Equal(364))
		})
	})

	Describe("Quarter", func() {
		DescribeTable("resolves calendar quarters of the audit year",
			func(d time.Time, expected int) {
				q, err := audit.Quarter(d)
				Expect(err).ToNot(HaveOccurred())
				Expect(q).To(Equal(expected))
			},
			Entry("1 April", day(2023, time.April, 1), 1),
			Entry("30 June", day(2023, time.June, 30), 1),
			Entry("1 July", day(2023, time.July, 1), 2),
			Entry("30 September", day(2023, time.September, 30), 2),
			Entry("1 October", day(2023, time.October, 1), 3),
			Entry("31 December", day(2023, time.December, 31), 3),
			Entry("1 January", day(2024, time.January, 1), 4),
			Entry("31 March", day(2024, time.March, 31), 4),
		)
	})

	Describe("CohortBucket", func() {
		DescribeTable("uses the fraction of the audit year elapsed",
			func(d time.Time, expected int) {
				b, err := audit.CohortBucket(d)
				Expect(err).ToNot(HaveOccurred())
				Expect(b).To(Equal(expected))
			},
			Entry("start of the year", day(2023, time.April, 1), 1),
			Entry("just under a quarter", day(2023, time.June, 30), 1),
			Entry("a quarter elapsed", day(2023, time.July, 2), 2),
			Entry("just under half", day(2023, time.September, 30), 2),
			Entry("half elapsed", day(2023, time.October, 1), 3),
			Entry("three quarters elapsed", day(2023, time.December, 31), 4),
			Entry("before 1 April measures from the previous year", day(2024, time.February, 1), 4),
			Entry("end of the year", day(2024, time.March, 31), 4),
		)

		It("fails for a zero date", func() {
			_, err := audit.CohortBucket(time.Time{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("PeriodForDate", func() {
		It("bundles the window, quarter and cohort", func() {
			p, err := audit.PeriodForDate(day(2024, time.January, 15))
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Start).To(Equal(day(2023, time.April, 1)))
			Expect(p.End).To(Equal(day(2024, time.March, 31)))
			Expect(p.Quarter).To(Equal(4))
			Expect(p.CohortBucket).To(Equal(4))
		})
	})

	Describe("ParseDate", func() {
		It("parses ISO dates", func() {
			d, err := audit.ParseDate("2024-02-29")
			Expect(err).ToNot(HaveOccurred())
			Expect(d).To(Equal(day(2024, time.February, 29)))
		})

		It("fails fast on malformed dates", func() {
			for _, value := range []string{"", "2023-02-29", "31/03/2024", "2024-13-01"} {
				_, err := audit.ParseDate(value)
				Expect(err).To(MatchError(audit.ErrInvalidReferenceDate), value)
			}
		})
	})
})
