package resolver

import (
	"sort"

	"github.com/lucid-lang/lucidc/internal/diag"
)

// TopoSortPackages orders packages by Kahn's algorithm over the
// "depends on" edge direction, so that a package always precedes its
// dependencies in the result: packages nothing else depends on come
// first, leaves (widely depended-upon packages) come last. Ties are
// broken alphabetically for determinism.
func TopoSortPackages(deps map[string][]string) ([]string, error) {
	inDegree := make(map[string]int, len(deps))
	for name := range deps {
		if _, ok := inDegree[name]; !ok {
			inDegree[name] = 0
		}
	}
	for _, ds := range deps {
		for _, d := range ds {
			inDegree[d]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		var freed []string
		for _, d := range deps[n] {
			inDegree[d]--
			if inDegree[d] == 0 {
				freed = append(freed, d)
			}
		}
		sort.Strings(freed)
		queue = append(queue, freed...)
		sort.Strings(queue)
	}

	if len(order) != len(deps) {
		cycle := remainingCycle(inDegree)
		return nil, &diag.PackageDependencyCycleError{Cycle: cycle}
	}
	return order, nil
}

// remainingCycle returns the names still holding a positive in-degree
// after Kahn's algorithm has drained everything it can — the packages
// participating in (or reachable only through) a cycle.
func remainingCycle(inDegree map[string]int) []string {
	var names []string
	for name, degree := range inDegree {
		if degree > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
