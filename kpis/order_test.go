package kpis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/rcpch/national-paediatric-diabetes-audit-sub001/kpis"
)

func numbers(definitions []kpis.Definition) []int {
	result := make([]int, 0, len(definitions))
	for _, d := range definitions {
		result = append(result, d.Number)
	}
	return result
}

var _ = Describe("Definitions", func() {
	It("evaluates the table in declared order", func() {
		engine, err := kpis.NewEngine(zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		ordered := numbers(engine.Definitions())
		Expect(ordered).To(HaveLen(51))
		Expect(ordered[:5]).To(Equal([]int{1, 2, 3, 4, 5}))
		Expect(ordered[31:35]).To(Equal([]int{32, 322, 323, 33}))
		Expect(ordered[len(ordered)-1]).To(Equal(49))
	})

	It("marks counts as unit level", func() {
		for _, d := range kpis.Definitions() {
			Expect(d.UnitLevel()).To(Equal(d.Number <= 12), "kpi %d", d.Number)
		}
	})

	It("evaluates a kpi after its denominator", func() {
		engine, err := kpis.NewEngineWithDefinitions([]kpis.Definition{
			{Number: 3, Denominator: 2},
			{Number: 1},
			{Number: 2, Denominator: 1},
			{Number: 4},
		}, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		Expect(numbers(engine.Definitions())).To(Equal([]int{1, 2, 3, 4}))
	})

	It("places a kpi as soon as its denominator is placed", func() {
		engine, err := kpis.NewEngineWithDefinitions([]kpis.Definition{
			{Number: 10, Denominator: 30},
			{Number: 20},
			{Number: 30},
			{Number: 40, Denominator: 20},
			{Number: 50},
		}, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		Expect(numbers(engine.Definitions())).To(Equal([]int{20, 30, 10, 40, 50}))
	})

	It("keeps the declared table order", func() {
		engine, err := kpis.NewEngine(zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
		Expect(numbers(engine.Definitions())).To(Equal(numbers(kpis.Definitions())))
	})

	DescribeTable("rejects an invalid table",
		func(definitions []kpis.Definition) {
			engine, err := kpis.NewEngineWithDefinitions(definitions, zap.NewNop().Sugar())
			Expect(err).To(MatchError(kpis.ErrInvalidTable))
			Expect(engine).To(BeNil())
		},
		Entry("with an unknown denominator", []kpis.Definition{{Number: 1}, {Number: 2, Denominator: 7}}),
		Entry("with a cycle", []kpis.Definition{{Number: 1, Denominator: 2}, {Number: 2, Denominator: 1}}),
		Entry("with a self reference", []kpis.Definition{{Number: 1, Denominator: 1}}),
		Entry("with a duplicate", []kpis.Definition{{Number: 1}, {Number: 1}}),
		Entry("with the cohort number", []kpis.Definition{{Number: kpis.Cohort}}),
	)
})
