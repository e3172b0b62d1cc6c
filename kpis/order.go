package kpis

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"
)

var ErrInvalidTable = errors.New("invalid kpi table")

// order returns the definitions so that every KPI follows its denominator. Among the
// KPIs whose denominator has been placed, the one declared first comes next.
func order(definitions []Definition) ([]Definition, error) {
	g := graph.New(graph.IntHash, graph.Directed(), graph.PreventCycles())
	position := make(map[int]int, len(definitions))
	byNumber := make(map[int]Definition, len(definitions))

	for i, d := range definitions {
		if d.Number == Cohort {
			return nil, fmt.Errorf("%w: kpi number %d is reserved for the cohort", ErrInvalidTable, Cohort)
		}
		if err := g.AddVertex(d.Number); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, fmt.Errorf("%w: kpi %d is declared twice", ErrInvalidTable, d.Number)
			}
			return nil, err
		}
		position[d.Number] = i
		byNumber[d.Number] = d
	}

	for _, d := range definitions {
		if d.Denominator == Cohort {
			continue
		}
		if _, ok := byNumber[d.Denominator]; !ok {
			return nil, fmt.Errorf("%w: kpi %d has unknown denominator %d", ErrInvalidTable, d.Number, d.Denominator)
		}
		if err := g.AddEdge(d.Denominator, d.Number); err != nil {
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return nil, fmt.Errorf("%w: denominator of kpi %d creates a cycle", ErrInvalidTable, d.Number)
			}
			return nil, err
		}
	}

	numbers, err := declaredTopologicalOrder(g, position)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	ordered := make([]Definition, 0, len(numbers))
	for _, number := range numbers {
		ordered = append(ordered, byNumber[number])
	}
	return ordered, nil
}

// declaredTopologicalOrder is Kahn's algorithm with the whole ready set ordered by
// declared position at every step.
func declaredTopologicalOrder(g graph.Graph[int, int], position map[int]int) ([]int, error) {
	successors, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	pending := make(map[int]int, len(predecessors))
	ready := make([]int, 0, len(predecessors))
	for number, edges := range predecessors {
		pending[number] = len(edges)
		if len(edges) == 0 {
			ready = append(ready, number)
		}
	}

	numbers := make([]int, 0, len(predecessors))
	for len(ready) > 0 {
		slices.SortFunc(ready, func(a, b int) int {
			return position[a] - position[b]
		})
		next := ready[0]
		ready = ready[1:]
		numbers = append(numbers, next)

		for successor := range successors[next] {
			pending[successor]--
			if pending[successor] == 0 {
				ready = append(ready, successor)
			}
		}
	}

	if len(numbers) != len(predecessors) {
		return nil, fmt.Errorf("denominators form a cycle")
	}
	return numbers, nil
}
