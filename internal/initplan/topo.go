package initplan

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports a dependency cycle found while computing the init
// order; §4.12 gives no recovery path for a cyclic eager-dependency
// graph, so the caller treats this as fatal.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// TopoSort computes the deterministic initialization order for every
// module registered in g: a topological sort of the eager-dependency
// graph (dependencies before dependents), with ties broken by module
// path per §4.12. Uses Kahn's algorithm over the in-degree graph (edges
// reversed from AddEdge's module->dependsOn direction) so that, at each
// step, the lexicographically-smallest module with no unresolved
// dependency is chosen next — independent of map iteration order.
func (g *Graph) TopoSort() ([]string, error) {
	indegree := map[string]int{}
	forward := map[string]map[string]bool{} // dependsOn -> set of modules waiting on it
	for _, m := range g.Modules() {
		indegree[m] = 0
		forward[m] = map[string]bool{}
	}
	for _, m := range g.Modules() {
		for _, dep := range g.DependsOn(m) {
			forward[dep][m] = true
			indegree[m]++
		}
	}

	var ready []string
	for m, d := range indegree {
		if d == 0 {
			ready = append(ready, m)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		var unlocked []string
		for dependent := range forward[next] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				unlocked = append(unlocked, dependent)
			}
		}
		sort.Strings(unlocked)
		ready = append(ready, unlocked...)
		sort.Strings(ready)
	}

	if len(order) != len(g.nodes) {
		return nil, &CycleError{Cycle: remaining(indegree, order)}
	}
	return order, nil
}

// remaining returns, sorted, every module TopoSort could not place —
// exactly the modules participating in (or hanging off) a cycle.
func remaining(indegree map[string]int, placed []string) []string {
	done := map[string]bool{}
	for _, m := range placed {
		done[m] = true
	}
	var out []string
	for m := range indegree {
		if !done[m] {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
