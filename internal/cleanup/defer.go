package cleanup

import "github.com/cursivelang/cursive0/internal/ast"

// DeferPlan is the ordered list of `defer { ... }` bodies registered in
// one function body, in source (registration) order.
type DeferPlan struct {
	bodies []*ast.BlockExpr
}

// NewDeferPlan creates an empty defer plan.
func NewDeferPlan() *DeferPlan { return &DeferPlan{} }

// Add registers one defer body, in the order `defer` statements are
// encountered while walking the function body.
func (d *DeferPlan) Add(body *ast.BlockExpr) { d.bodies = append(d.bodies, body) }

// ExecutionOrder returns the defer bodies in the reverse of their
// registration order — last registered, first run, per §4.11.
func (d *DeferPlan) ExecutionOrder() []*ast.BlockExpr {
	out := make([]*ast.BlockExpr, len(d.bodies))
	for i, b := range d.bodies {
		out[len(d.bodies)-1-i] = b
	}
	return out
}

// Outcome tags how a single cleanup step (a drop or a defer body)
// completed, for panic containment bookkeeping during unwind.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomePanicked
)

// UnwindResult accumulates the outcome of running a reverse-order cleanup
// sequence: the first panic is recorded and every remaining step still
// runs (cleanup is never skipped), but a second panic during that same
// unwind escalates to an abort rather than being silently dropped, since
// there is no well-defined value to propagate two competing panics as.
type UnwindResult struct {
	FirstPanic  error
	Escalated   bool
	StepsRun    int
}

// RunUnwind is the compile-time model of executing steps during a panic
// unwind: it never actually runs anything (this package only plans
// cleanup; codegen executes it) but gives internal/check a way to reason
// about escalation when proving a cleanup sequence well-formed. step
// returns a non-nil error to simulate that step panicking.
func RunUnwind(n int, step func(i int) error) UnwindResult {
	var res UnwindResult
	for i := 0; i < n; i++ {
		if err := step(i); err != nil {
			res.StepsRun++
			if res.FirstPanic == nil {
				res.FirstPanic = err
			} else {
				res.Escalated = true
			}
			continue
		}
		res.StepsRun++
	}
	return res
}
