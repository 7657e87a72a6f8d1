package form

import "strings"

// Validator inspects a single field value and returns the errors it finds, or
// nil when the value is acceptable.
type Validator interface {
	Validate(value string) Errors
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(value string) Errors

// Validate delegates to the underlying function.
func (fn ValidatorFunc) Validate(value string) Errors {
	return fn(value)
}

// Normalizer rewrites a raw value before it is stored and validated.
type Normalizer func(string) string

// Field is a named slot holding a current value and an error bag.
type Field struct {
	name       string
	label      string
	format     string
	value      string
	bag        ErrorBag
	validators []Validator
	normalize  Normalizer
}

// FieldOption configures a field when it is added to a form.
type FieldOption func(*Field)

// WithValue seeds the initial value.
func WithValue(value string) FieldOption {
	return func(f *Field) {
		f.value = value
	}
}

// WithValidators appends per-field validators. Nil entries are skipped.
func WithValidators(validators ...Validator) FieldOption {
	return func(f *Field) {
		for _, v := range validators {
			if v != nil {
				f.validators = append(f.validators, v)
			}
		}
	}
}

// WithNormalizer installs a normalizer applied on every value change.
func WithNormalizer(fn Normalizer) FieldOption {
	return func(f *Field) {
		f.normalize = fn
	}
}

// WithLabel sets the human-readable label used in messages and prompts.
func WithLabel(label string) FieldOption {
	return func(f *Field) {
		f.label = strings.TrimSpace(label)
	}
}

// WithFormat records the value format hint (for example "email" or
// "password").
func WithFormat(format string) FieldOption {
	return func(f *Field) {
		f.format = strings.ToLower(strings.TrimSpace(format))
	}
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Value returns the current value.
func (f *Field) Value() string { return f.value }

// Format returns the format hint, lower-cased.
func (f *Field) Format() string { return f.format }

// Label returns the configured label, falling back to the field name.
func (f *Field) Label() string {
	if f.label != "" {
		return f.label
	}
	return f.name
}

// Bag exposes the field's error bag.
func (f *Field) Bag() *ErrorBag { return &f.bag }

// HasErrors reports whether the field currently carries any error.
func (f *Field) HasErrors() bool { return f.bag.HasErrors() }

// HasError reports whether the named error is present on the field.
func (f *Field) HasError(name string) bool { return f.bag.HasError(name) }

// Errors returns a copy of the field's errors.
func (f *Field) Errors() Errors { return f.bag.Errors() }

// Check runs the field's own validators against value without touching the
// stored state.
func (f *Field) Check(value string) Errors {
	if f.normalize != nil {
		value = f.normalize(value)
	}
	return f.runValidators(value)
}

func (f *Field) runValidators(value string) Errors {
	var merged Errors
	for _, v := range f.validators {
		errs := v.Validate(value)
		if len(errs) == 0 {
			continue
		}
		if merged == nil {
			merged = make(Errors, len(errs))
		}
		for name, meta := range errs {
			merged[name] = meta
		}
	}
	return merged
}

func (f *Field) assign(value string) {
	if f.normalize != nil {
		value = f.normalize(value)
	}
	f.value = value
}

func (f *Field) revalidate() {
	f.bag.SetErrors(f.runValidators(f.value))
}
