package form

import "sort"

// Errors maps an error name to its metadata. Flags use true; richer errors
// carry a map such as {"requiredLength": 6, "actualLength": 3}.
type Errors map[string]any

// Clone returns a shallow copy. A nil or empty receiver yields nil.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for name, meta := range e {
		out[name] = meta
	}
	return out
}

// Names returns the error names in sorted order.
func (e Errors) Names() []string {
	if len(e) == 0 {
		return nil
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorBag is the mutable set of errors attached to a field. A field is valid
// iff its bag is empty.
type ErrorBag struct {
	errs Errors
}

// HasErrors reports whether the bag holds at least one error.
func (b *ErrorBag) HasErrors() bool {
	return b != nil && len(b.errs) > 0
}

// HasError reports whether the named error is present.
func (b *ErrorBag) HasError(name string) bool {
	if b == nil || len(b.errs) == 0 {
		return false
	}
	_, ok := b.errs[name]
	return ok
}

// SetErrors replaces the bag contents. Passing nil or an empty map clears it.
func (b *ErrorBag) SetErrors(errs Errors) {
	b.errs = errs.Clone()
}

// ClearErrors empties the bag.
func (b *ErrorBag) ClearErrors() {
	b.errs = nil
}

// Errors returns a copy of the bag contents.
func (b *ErrorBag) Errors() Errors {
	if b == nil {
		return nil
	}
	return b.errs.Clone()
}

func (b *ErrorBag) add(name string, meta any) {
	if b.errs == nil {
		b.errs = make(Errors)
	}
	b.errs[name] = meta
}

func (b *ErrorBag) remove(name string) {
	if len(b.errs) == 0 {
		return
	}
	delete(b.errs, name)
	if len(b.errs) == 0 {
		b.errs = nil
	}
}
