package rules

import (
	"strings"

	"github.com/goliatone/go-formrules/pkg/form"
)

// MismatchError is the error name recorded on a confirmation field whose value
// differs from its primary field.
const MismatchError = "mismatch"

// MatchOption configures a MatchRule.
type MatchOption func(*MatchRule)

// WithMismatchOnly makes a successful match remove only MismatchError from the
// confirmation field, leaving any other error in place.
func WithMismatchOnly() MatchOption {
	return func(r *MatchRule) {
		r.mismatchOnly = true
	}
}

// MatchRule requires the confirmation field to hold exactly the same value as
// the primary field. It owns MismatchError on the confirmation field. On a
// match it clears the confirmation field's errors; errors claimed by other
// rules survive because the form engine refuses to touch them.
type MatchRule struct {
	primary      string
	confirm      string
	mismatchOnly bool
}

var (
	_ form.Rule  = (*MatchRule)(nil)
	_ form.Owner = (*MatchRule)(nil)
)

// Match builds a rule comparing primary against confirm.
func Match(primary, confirm string, opts ...MatchOption) *MatchRule {
	r := &MatchRule{
		primary: strings.TrimSpace(primary),
		confirm: strings.TrimSpace(confirm),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Primary returns the name of the field being confirmed.
func (r *MatchRule) Primary() string { return r.primary }

// Confirm returns the name of the confirmation field.
func (r *MatchRule) Confirm() string { return r.confirm }

// Owns implements form.Owner.
func (r *MatchRule) Owns() []form.Claim {
	return []form.Claim{{Field: r.confirm, Error: MismatchError}}
}

// Evaluate implements form.Rule. Missing fields, or a confirmation field that
// already fails some other check, produce an empty diff.
func (r *MatchRule) Evaluate(v form.View) form.Diff {
	if v == nil {
		return nil
	}
	primary, ok := v.Field(r.primary)
	if !ok {
		return nil
	}
	confirm, ok := v.Field(r.confirm)
	if !ok {
		return nil
	}

	if confirm.HasErrors() && !confirm.HasError(MismatchError) {
		return nil
	}

	if primary.Value() != confirm.Value() {
		return form.Diff{{
			Field: r.confirm,
			Set:   form.Errors{MismatchError: true},
		}}
	}

	if r.mismatchOnly {
		return form.Diff{{Field: r.confirm, Clear: []string{MismatchError}}}
	}
	return form.Diff{{Field: r.confirm, ClearAll: true}}
}

// Apply evaluates rule against f and applies the resulting diff in place.
func Apply(f *form.Form, rule form.Rule) {
	if f == nil || rule == nil {
		return
	}
	f.Apply(rule)
}
