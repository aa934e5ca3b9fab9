package diag

import "encoding/json"

// jsonSpan is the §6 wire shape for a diagnostic's span.
type jsonSpan struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	StartCol  int    `json:"start_col"`
	EndLine   int    `json:"end_line"`
	EndCol    int    `json:"end_col"`
}

type jsonDiagnostic struct {
	Code     string    `json:"code"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Span     *jsonSpan `json:"span"`
}

type jsonDocument struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// EncodeJSON renders diags as the §6 {"diagnostics":[...]} document. Field
// order and key set are fixed by the struct tags above so the same input
// always serializes byte-identically, satisfying the §8 determinism
// invariant for diagnostic rendering.
func EncodeJSON(diags []Diagnostic) ([]byte, error) {
	doc := jsonDocument{Diagnostics: make([]jsonDiagnostic, 0, len(diags))}
	for _, d := range diags {
		jd := jsonDiagnostic{Code: d.Code, Severity: d.Severity.String(), Message: d.Message}
		if d.Span != nil {
			jd.Span = &jsonSpan{
				File:      d.Span.File,
				StartLine: d.Span.StartLine,
				StartCol:  d.Span.StartCol,
				EndLine:   d.Span.EndLine,
				EndCol:    d.Span.EndCol,
			}
		}
		doc.Diagnostics = append(doc.Diagnostics, jd)
	}
	return json.Marshal(doc)
}
