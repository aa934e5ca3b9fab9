package region

import (
	"fmt"

	"github.com/cursivelang/cursive0/internal/diag"
)

// CheckAssignment applies §4.10's escape rule: assigning a value of
// provenance rhs into a place of provenance lhs is only sound when rhs
// outlives (or equals) lhs in the active stack — assigning a
// shorter-lived value into a longer-lived place would leave a dangling
// reference once the shorter-lived region closes.
func CheckAssignment(stack *Stack, lhs, rhs Tag) *diag.Diagnostic {
	if ProvLeq(rhs, lhs) {
		return nil
	}
	if rhs.Kind == TagRegion && lhs.Kind == TagRegion && stack.Outlives(rhs.Region, lhs.Region) {
		return nil
	}
	if rhs.Kind == TagGlobal {
		return nil
	}
	return &diag.Diagnostic{
		Code:     diag.ProvEscapeErr,
		Severity: diag.SeverityError,
		Message:  fmt.Sprintf("value with provenance %s does not live long enough to be assigned into a place with provenance %s", rhs, lhs),
	}
}

// CheckAsyncCapture applies §4.11's async-capture rule: a value captured
// by a `spawn`/`race` body must outlive the spawning frame, since the
// task may run after the frame that created it returns. Region- or
// stack-provenance captures are rejected; Global and Heap survive.
func CheckAsyncCapture(captured Tag) *diag.Diagnostic {
	switch captured.Kind {
	case TagGlobal, TagHeap, TagBottom:
		return nil
	case TagStack:
		return &diag.Diagnostic{
			Code:     diag.AsyncCaptureErr,
			Severity: diag.SeverityError,
			Message:  "async body captures a stack-provenance value that may not outlive the spawning frame",
		}
	case TagRegion:
		return &diag.Diagnostic{
			Code:     diag.ProvAsyncEscapeErr,
			Severity: diag.SeverityError,
			Message:  fmt.Sprintf("async body captures a value scoped to region %q, which may close before the task completes", captured.Region),
		}
	default:
		return &diag.Diagnostic{
			Code:     diag.AsyncCaptureErr,
			Severity: diag.SeverityError,
			Message:  "async body captures a value whose provenance cannot be shown to outlive the task",
		}
	}
}
