// Package pipeline sequences the analysis phases of §7: parse (out of
// scope here — callers supply its outcome), resolve+typecheck per
// module, and emit, with the gating and no-short-circuit-within-a-phase
// discipline §7 specifies.
package pipeline

import (
	"github.com/cursivelang/cursive0/internal/diag"
	"github.com/cursivelang/cursive0/internal/initplan"
	"github.com/cursivelang/cursive0/internal/typedir"
)

// ModuleInput is one module as phase 1 (parsing, out of scope per §1)
// left it: either it parsed cleanly, or it failed and phase 3 must be
// skipped for it entirely, per §7's gating rule.
type ModuleInput struct {
	Path        string
	ParseFailed bool
	ParseDiags  []diag.Diagnostic
}

// Analyzer runs phase 3 (resolve + type check, C4–C10) for one module
// that parsed successfully, returning its typed output, any diagnostics
// raised while checking it, and whether checking succeeded (no error
// diagnostic). The pipeline never short-circuits across modules: every
// parsed module is analyzed regardless of another module's outcome,
// matching §7's "does not short-circuit... continues within the current
// item" rule applied at module granularity.
type Analyzer func(mod ModuleInput) (typedir.TypedModule, []diag.Diagnostic, bool)

// DepsOf reports the modules mod's static initializers eagerly depend
// on, for init-graph construction (C12).
type DepsOf func(mod ModuleInput) []string

// Result is the pipeline's final output: the typed-IR program (only
// populated if phase 4 ran), the full diagnostic stream, and whether
// phase 4 (emit) was skipped because phase 3 failed anywhere in the
// project.
type Result struct {
	Program     *typedir.Program
	Diags       *diag.Stream
	EmitSkipped bool
}

// Run executes phases 3 and 4 over modules (phase 1 having already run,
// per ModuleInput.ParseFailed). analyze performs one module's
// resolve+typecheck pass; depsOf supplies its eager static-init
// dependencies for C12. Modules are processed in the order given —
// callers are expected to have already sorted them deterministically
// (moduledisc.Discover does this upstream).
func Run(modules []ModuleInput, depsOf DepsOf, analyze Analyzer) *Result {
	stream := &diag.Stream{}
	graph := initplan.NewGraph()

	var typedModules []typedir.TypedModule
	phase3Failed := false

	for _, mod := range modules {
		for _, d := range mod.ParseDiags {
			stream.Add(d)
		}
		if mod.ParseFailed {
			continue // phase 3 skipped for this module only, per §7
		}

		graph.AddModule(mod.Path)
		for _, dep := range depsOf(mod) {
			graph.AddEdge(mod.Path, dep)
		}

		tm, diags, ok := analyze(mod)
		for _, d := range diags {
			stream.Add(d)
		}
		if !ok {
			phase3Failed = true
			continue
		}
		typedModules = append(typedModules, tm)
	}

	if phase3Failed {
		return &Result{Diags: stream, EmitSkipped: true} // phase 4 skipped project-wide
	}

	order, err := graph.TopoSort()
	if err != nil {
		stream.Add(diag.Diagnostic{
			Code:     diag.EModDuplicate,
			Severity: diag.SeverityError,
			Message:  err.Error(),
		})
		return &Result{Diags: stream, EmitSkipped: true}
	}

	poison := map[string][]string{}
	for _, m := range order {
		poison[m] = graph.PoisonSet(m)
	}

	return &Result{
		Program: &typedir.Program{
			Modules:    typedModules,
			InitOrder:  order,
			PoisonSets: poison,
		},
		Diags: stream,
	}
}
