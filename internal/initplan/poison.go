package initplan

import "sort"

// PoisonSet computes every module that becomes poisoned when failed's
// static initializer panics: failed itself, plus every module reachable
// by following dependent edges outward (i.e. every module that eagerly
// depends on failed, directly or transitively), per §4.10's poisoning
// rule and §4.12's propagation.
func (g *Graph) PoisonSet(failed string) []string {
	seen := map[string]bool{failed: true}
	queue := []string{failed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dependent := range g.dependents(cur) {
			if seen[dependent] {
				continue
			}
			seen[dependent] = true
			queue = append(queue, dependent)
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// IsPoisoned reports whether target appears in the poison set of any
// module in failed.
func (g *Graph) IsPoisoned(target string, failed []string) bool {
	for _, f := range failed {
		for _, p := range g.PoisonSet(f) {
			if p == target {
				return true
			}
		}
	}
	return false
}
