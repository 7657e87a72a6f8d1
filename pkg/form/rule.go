package form

// View is the read-only form state handed to rules.
type View interface {
	Field(name string) (FieldView, bool)
}

// FieldView is the read-only projection of a Field.
type FieldView interface {
	Name() string
	Value() string
	HasErrors() bool
	HasError(name string) bool
	Errors() Errors
}

// Change describes edits to a single field's error bag. The form applies
// ClearAll first, then Clear, then Set.
type Change struct {
	Field    string
	Set      Errors
	Clear    []string
	ClearAll bool
}

// Diff is the ordered list of changes a rule asks the form to apply. An empty
// diff means the rule has nothing to say.
type Diff []Change

// Rule inspects form state and reports the error edits it wants applied.
// Rules must not retain state between calls.
type Rule interface {
	Evaluate(View) Diff
}

// RuleFunc adapts a function into a Rule.
type RuleFunc func(View) Diff

// Evaluate delegates to the underlying function.
func (fn RuleFunc) Evaluate(v View) Diff {
	return fn(v)
}

// Claim names an error on a field that exactly one rule may set or clear.
type Claim struct {
	Field string
	Error string
}

// Owner is implemented by rules that own specific errors.
type Owner interface {
	Owns() []Claim
}

func claimsOf(r Rule) []Claim {
	owner, ok := r.(Owner)
	if !ok {
		return nil
	}
	return owner.Owns()
}

type view struct {
	fields map[string]*Field
}

func (v view) Field(name string) (FieldView, bool) {
	f, ok := v.fields[name]
	if !ok {
		return nil, false
	}
	return f, true
}
