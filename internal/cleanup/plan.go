package cleanup

// DropStep is one scheduled cleanup action at scope exit: drop the whole
// binding, or (when a record/enum value was partially moved) drop only
// the fields that remain.
type DropStep struct {
	Name          string
	PartialFields []string // nil means "drop the whole value"
}

// FieldLister supplies a binding's declared field names, when it has any
// (records, enum-variant payloads, modal states); cleanup does not decide
// a type's shape itself.
type FieldLister func(name string) []string

// ComputeDropPlan builds the ordered cleanup sequence for one block's
// local bindings, in declaration order. Per §4.11, drops run in strict
// reverse declaration order — the last-declared live binding is dropped
// first — and aliases and fully-moved bindings are skipped entirely.
func ComputeDropPlan(bindings []*Binding, fields FieldLister) []DropStep {
	var steps []DropStep
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		if !b.IsLive() {
			continue
		}
		if len(b.MovedFields) == 0 {
			steps = append(steps, DropStep{Name: b.Name})
			continue
		}
		all := fields(b.Name)
		remaining := b.RemainingFields(all)
		if len(remaining) == 0 {
			continue // every field was moved out; nothing left to drop
		}
		steps = append(steps, DropStep{Name: b.Name, PartialFields: remaining})
	}
	return steps
}
