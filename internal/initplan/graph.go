// Package initplan implements C12: the module dependency graph, its
// deterministic topological sort into an initialization order, and
// poison-set propagation when a module's static initializer panics.
package initplan

import "sort"

// Graph is a directed graph of eager module dependencies: an edge from
// module to dependsOn means module's static initializers reference a
// value defined in dependsOn, so dependsOn must initialize first.
type Graph struct {
	nodes map[string]bool
	deps  map[string]map[string]bool // module -> set of modules it depends on
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{nodes: map[string]bool{}, deps: map[string]map[string]bool{}}
}

// AddModule registers module even if it has no dependencies, so it still
// appears in the init order.
func (g *Graph) AddModule(module string) {
	g.nodes[module] = true
	if g.deps[module] == nil {
		g.deps[module] = map[string]bool{}
	}
}

// AddEdge records that module's static initializers reference a value in
// dependsOn.
func (g *Graph) AddEdge(module, dependsOn string) {
	g.AddModule(module)
	g.AddModule(dependsOn)
	g.deps[module][dependsOn] = true
}

// Modules returns every registered module path, sorted.
func (g *Graph) Modules() []string {
	out := make([]string, 0, len(g.nodes))
	for m := range g.nodes {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// DependsOn returns the modules module directly depends on, sorted.
func (g *Graph) DependsOn(module string) []string {
	set := g.deps[module]
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// dependents returns every module with a direct edge to target (i.e.
// every module that directly depends on target), sorted.
func (g *Graph) dependents(target string) []string {
	var out []string
	for m, set := range g.deps {
		if set[target] {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
