package diag

// Stream is an append-only diagnostic sequence. Compile status is OK iff
// no error-severity diagnostic was appended, per §2.
type Stream struct {
	diags []Diagnostic
}

// Add appends d to the stream.
func (s *Stream) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Errorf appends an error-severity diagnostic built from code/locale/args.
func (s *Stream) Errorf(code string, span *Span, locale string, args map[string]string) {
	s.Add(Diagnostic{Code: code, Severity: SeverityError, Span: span, Message: Message(locale, code, args)})
}

// Warnf appends a warning-severity diagnostic built from code/locale/args.
func (s *Stream) Warnf(code string, span *Span, locale string, args map[string]string) {
	s.Add(Diagnostic{Code: code, Severity: SeverityWarning, Span: span, Message: Message(locale, code, args)})
}

// All returns the diagnostics recorded so far, in emission order.
func (s *Stream) All() []Diagnostic {
	return s.diags
}

// OK reports whether no error-severity diagnostic has been recorded.
func (s *Stream) OK() bool {
	for _, d := range s.diags {
		if d.IsError() {
			return false
		}
	}
	return true
}

// HasErrors is the negation of OK, spelled out for call sites that read
// more naturally as a positive check.
func (s *Stream) HasErrors() bool {
	return !s.OK()
}

// Merge appends every diagnostic from other onto s, preserving order.
func (s *Stream) Merge(other *Stream) {
	if other == nil {
		return
	}
	s.diags = append(s.diags, other.diags...)
}
