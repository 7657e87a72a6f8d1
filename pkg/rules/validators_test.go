package rules_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/rules"
)

func TestFieldValidators(t *testing.T) {
	pattern, err := rules.Pattern(`[a-z]+\d`)
	if err != nil {
		t.Fatalf("compile pattern: %v", err)
	}

	tests := []struct {
		name      string
		validator form.Validator
		value     string
		want      form.Errors
	}{
		{name: "required empty", validator: rules.Required(), value: "", want: form.Errors{rules.RequiredError: true}},
		{name: "required blank is a value", validator: rules.Required(), value: "   "},
		{name: "required ok", validator: rules.Required(), value: "x"},
		{name: "minlength short", validator: rules.MinLength(4), value: "abc", want: form.Errors{
			rules.MinLengthError: map[string]any{"requiredLength": 4, "actualLength": 3},
		}},
		{name: "minlength counts runes", validator: rules.MinLength(4), value: "äöüß"},
		{name: "minlength empty passes", validator: rules.MinLength(4), value: ""},
		{name: "maxlength long", validator: rules.MaxLength(2), value: "abc", want: form.Errors{
			rules.MaxLengthError: map[string]any{"requiredLength": 2, "actualLength": 3},
		}},
		{name: "maxlength ok", validator: rules.MaxLength(20), value: "Jane Doe"},
		{name: "email ok", validator: rules.Email(), value: "jane@example.com"},
		{name: "email bad", validator: rules.Email(), value: "jane@", want: form.Errors{rules.EmailError: true}},
		{name: "email empty passes", validator: rules.Email(), value: ""},
		{name: "pattern ok", validator: pattern, value: "abc1"},
		{name: "pattern anchored", validator: pattern, value: "abc1x", want: form.Errors{
			rules.PatternError: map[string]any{"requiredPattern": `[a-z]+\d`, "actualValue": "abc1x"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.validator.Validate(tt.value)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPattern_Anchoring(t *testing.T) {
	tests := []struct {
		expr    string
		matches []string
		rejects []string
	}{
		{expr: `price\$`, matches: []string{"price$"}, rejects: []string{"price", "xprice$"}},
		{expr: `^[a-z]+$`, matches: []string{"abc"}, rejects: []string{"abc1"}},
		{expr: `a|b`, matches: []string{"a", "b"}, rejects: []string{"ab", "xa"}},
		{expr: `\d+\.`, matches: []string{"12."}, rejects: []string{"12.3"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := rules.Pattern(tt.expr)
			if err != nil {
				t.Fatalf("compile %q: %v", tt.expr, err)
			}
			for _, value := range tt.matches {
				if errs := v.Validate(value); errs != nil {
					t.Fatalf("%q should match, got %#v", value, errs)
				}
			}
			for _, value := range tt.rejects {
				if errs := v.Validate(value); errs == nil {
					t.Fatalf("%q should not match", value)
				}
			}
		})
	}
}

func TestPattern_InvalidExpression(t *testing.T) {
	if _, err := rules.Pattern("(["); err == nil {
		t.Fatalf("expected compile error")
	}
}
