package cleanup

// StaticBinding is the cleanup-relevant state of one module-level static,
// keyed by the module path it belongs to.
type StaticBinding struct {
	Module string
	Name   string
	Resp   Responsibility
}

// ComputeDeinitPlan orders the statics that must be dropped at process
// end: per §4.11, exactly the reverse of the init order internal/initplan
// computed for §4.12, restricted to statics with Resp responsibility (an
// Alias static never owned the value it names and so never drops).
//
// initOrder lists module paths in the order C12 initializes them;
// byModule groups each module's statics in their declared (init) order
// within that module.
func ComputeDeinitPlan(initOrder []string, byModule map[string][]StaticBinding) []StaticBinding {
	var out []StaticBinding
	for i := len(initOrder) - 1; i >= 0; i-- {
		mod := initOrder[i]
		statics := byModule[mod]
		for j := len(statics) - 1; j >= 0; j-- {
			s := statics[j]
			if s.Resp != Resp {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}
