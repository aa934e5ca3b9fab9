// Package cleanup implements C11: movability/responsibility tracking,
// drop-at-scope-exit planning with partial-move awareness, defer
// execution-order planning, and deinit ordering.
package cleanup

// Movability is the binding-kind half of the drop rule in IsLive: only an
// Immov binding that is also Resp is scheduled for a scope-exit drop.
// internal/check marks a let binding Immov when its type resolves a
// `drop` method and Mov otherwise; it does not distinguish `=` from `:=`
// bindings, since ast.LetStmt records no binding operator. Bindings of
// either kind can be moved out of, in whole or by field.
type Movability int

const (
	Mov Movability = iota
	Immov
)

// Responsibility tags whether a binding owns the value it names (Resp) or
// merely observes one owned elsewhere (Alias, e.g. a `&`/`&mut` binding,
// or a function parameter passed by reference). Only Resp bindings are
// ever scheduled for a scope-exit drop.
type Responsibility int

const (
	Resp Responsibility = iota
	Alias
)

// Binding is the cleanup-relevant state of one local variable, updated as
// internal/check walks a function body: which fields (if any) have been
// moved out of it, and whether the whole binding has been moved.
type Binding struct {
	Name        string
	Mov         Movability
	Resp        Responsibility
	MovedWhole  bool
	MovedFields map[string]bool
}

// NewBinding creates tracking state for a freshly declared binding.
func NewBinding(name string, mov Movability, resp Responsibility) *Binding {
	return &Binding{Name: name, Mov: mov, Resp: resp, MovedFields: map[string]bool{}}
}

// MarkMovedWhole records that the entire binding was consumed by a
// `move` expression.
func (b *Binding) MarkMovedWhole() { b.MovedWhole = true }

// MarkFieldMoved records that one field was moved out of a record-typed
// binding, leaving the rest of the binding intact (§4.11 partial move).
func (b *Binding) MarkFieldMoved(field string) {
	if b.MovedFields == nil {
		b.MovedFields = map[string]bool{}
	}
	b.MovedFields[field] = true
}

// IsLive reports whether b still owns any value worth dropping at scope
// exit: per §4.11 a binding drops iff Movability = Immov ∧ Responsibility
// = Resp, so an alias never is, a Mov binding never is, and a
// wholly-moved binding never is regardless of its declared Movability.
func (b *Binding) IsLive() bool {
	return b.Mov == Immov && b.Resp == Resp && !b.MovedWhole
}

// RemainingFields returns fields, excluding any already marked moved —
// the set of fields a partial-move-aware drop must still clean up.
func (b *Binding) RemainingFields(fields []string) []string {
	if len(b.MovedFields) == 0 {
		return fields
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if !b.MovedFields[f] {
			out = append(out, f)
		}
	}
	return out
}
