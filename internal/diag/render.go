package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// RenderPlain writes one line per diagnostic to w, colorizing the severity
// label the way the teacher's CLI colors pass/fail output. Rendering is
// deterministic: diagnostics are printed in stream order, never sorted or
// deduplicated.
func RenderPlain(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		label := warnLabel("warning")
		if d.IsError() {
			label = errorLabel("error")
		}
		if d.Span != nil {
			fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n", d.Span.File, d.Span.StartLine, d.Span.StartCol, label, d.Code, d.Message)
		} else {
			fmt.Fprintf(w, "%s[%s]: %s\n", label, d.Code, d.Message)
		}
	}
}
