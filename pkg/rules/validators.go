package rules

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formrules/pkg/form"
)

// Canonical per-field error names.
const (
	RequiredError  = "required"
	MinLengthError = "minlength"
	MaxLengthError = "maxlength"
	EmailError     = "email"
	PatternError   = "pattern"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func sharedValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Required fails when the value is empty. Whitespace counts as a value; pair
// the field with the trim normaliser to reject blank input.
func Required() form.Validator {
	return form.ValidatorFunc(func(value string) form.Errors {
		if value == "" {
			return form.Errors{RequiredError: true}
		}
		return nil
	})
}

// MinLength fails when a non-empty value has fewer than n runes. Empty values
// are left to Required.
func MinLength(n int) form.Validator {
	return form.ValidatorFunc(func(value string) form.Errors {
		if value == "" {
			return nil
		}
		if length := utf8.RuneCountInString(value); length < n {
			return form.Errors{MinLengthError: lengthMeta(n, length)}
		}
		return nil
	})
}

// MaxLength fails when the value has more than n runes.
func MaxLength(n int) form.Validator {
	return form.ValidatorFunc(func(value string) form.Errors {
		if length := utf8.RuneCountInString(value); length > n {
			return form.Errors{MaxLengthError: lengthMeta(n, length)}
		}
		return nil
	})
}

// Email fails when a non-empty value is not a valid address.
func Email() form.Validator {
	return form.ValidatorFunc(func(value string) form.Errors {
		if value == "" {
			return nil
		}
		if err := sharedValidator().Var(value, "email"); err != nil {
			return form.Errors{EmailError: true}
		}
		return nil
	})
}

// Pattern fails when a non-empty value does not fully match expr. The
// expression is wrapped in a group anchored at both ends, so anchors already
// present in expr are harmless.
func Pattern(expr string) (form.Validator, error) {
	anchored := "^(?:" + expr + ")$"
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, err
	}
	return form.ValidatorFunc(func(value string) form.Errors {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return form.Errors{PatternError: map[string]any{
				"requiredPattern": expr,
				"actualValue":     value,
			}}
		}
		return nil
	}), nil
}

func lengthMeta(required, actual int) map[string]any {
	return map[string]any{
		"requiredLength": required,
		"actualLength":   actual,
	}
}
