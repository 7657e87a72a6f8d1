// Package builder turns declarative model.FormModel definitions into live
// form.Form instances wired with validators, normalisers, and rules.
package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/model"
	"github.com/goliatone/go-formrules/pkg/rules"
	"github.com/goliatone/go-formrules/pkg/sanitize"
)

// Option configures Build.
type Option func(*options)

type options struct {
	decorators  []model.Decorator
	formOptions []form.Option
	narrowClear bool
	skipInitial bool
}

// WithDecorators runs the decorators, in order, after the default label
// decorator and before the definition is checked.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *options) {
		for _, d := range decorators {
			if d != nil {
				o.decorators = append(o.decorators, d)
			}
		}
	}
}

// WithFormOptions forwards options to form.New.
func WithFormOptions(opts ...form.Option) Option {
	return func(o *options) {
		o.formOptions = append(o.formOptions, opts...)
	}
}

// WithMismatchOnlyClear builds match rules with rules.WithMismatchOnly.
func WithMismatchOnlyClear() Option {
	return func(o *options) {
		o.narrowClear = true
	}
}

// WithoutInitialValidation leaves every error bag empty after construction.
func WithoutInitialValidation() Option {
	return func(o *options) {
		o.skipInitial = true
	}
}

// Build decorates, checks, and assembles def into a form. Unless
// WithoutInitialValidation is passed, the form is validated once so error
// bags reflect the default values.
func Build(def model.FormModel, opts ...Option) (*form.Form, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	def = cloneModel(def)
	decorators := append([]model.Decorator{model.LabelDecorator(nil)}, cfg.decorators...)
	for _, decorator := range decorators {
		if err := decorator.Decorate(&def); err != nil {
			return nil, fmt.Errorf("builder: decorate %q: %w", def.ID, err)
		}
	}
	if err := model.Check(def); err != nil {
		return nil, fmt.Errorf("builder: %w", err)
	}

	f := form.New(cfg.formOptions...)
	for _, field := range def.Fields {
		fieldOpts, err := fieldOptions(field)
		if err != nil {
			return nil, fmt.Errorf("builder: field %q: %w", field.Name, err)
		}
		if _, err := f.AddField(field.Name, fieldOpts...); err != nil {
			return nil, fmt.Errorf("builder: %w", err)
		}
	}

	for _, rule := range def.Rules {
		built, err := formRule(rule, cfg)
		if err != nil {
			return nil, fmt.Errorf("builder: form %q: %w", def.ID, err)
		}
		if err := f.AddRule(built); err != nil {
			return nil, fmt.Errorf("builder: form %q: %w", def.ID, err)
		}
	}

	if !cfg.skipInitial {
		f.Validate()
	}
	return f, nil
}

func fieldOptions(field model.Field) ([]form.FieldOption, error) {
	validators, err := fieldValidators(field)
	if err != nil {
		return nil, err
	}
	normalizer, err := sanitize.FromNames(field.Sanitize)
	if err != nil {
		return nil, err
	}

	opts := []form.FieldOption{
		form.WithValue(field.Default),
		form.WithLabel(field.Label),
		form.WithFormat(field.Format),
		form.WithValidators(validators...),
	}
	if normalizer != nil {
		opts = append(opts, form.WithNormalizer(normalizer))
	}
	return opts, nil
}

func fieldValidators(field model.Field) ([]form.Validator, error) {
	var out []form.Validator
	if field.Required {
		out = append(out, rules.Required())
	}

	hasEmail := false
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			n, err := intParam(rule)
			if err != nil {
				return nil, err
			}
			out = append(out, rules.MinLength(n))
		case model.ValidationRuleMaxLength:
			n, err := intParam(rule)
			if err != nil {
				return nil, err
			}
			out = append(out, rules.MaxLength(n))
		case model.ValidationRulePattern:
			expr := rule.Params["pattern"]
			if strings.TrimSpace(expr) == "" {
				return nil, errors.New("pattern rule requires params.pattern")
			}
			v, err := rules.Pattern(expr)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", expr, err)
			}
			out = append(out, v)
		case model.ValidationRuleEmail:
			hasEmail = true
		default:
			return nil, fmt.Errorf("unknown validation kind %q", rule.Kind)
		}
	}
	if hasEmail || strings.EqualFold(strings.TrimSpace(field.Format), model.FormatEmail) {
		out = append(out, rules.Email())
	}
	return out, nil
}

func intParam(rule model.ValidationRule) (int, error) {
	raw := strings.TrimSpace(rule.Params["value"])
	if raw == "" {
		return 0, fmt.Errorf("%s rule requires params.value", rule.Kind)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s rule: invalid value %q", rule.Kind, raw)
	}
	return n, nil
}

func formRule(rule model.FormRule, cfg options) (form.Rule, error) {
	switch rule.Kind {
	case model.FormRuleMatch:
		var matchOpts []rules.MatchOption
		if cfg.narrowClear {
			matchOpts = append(matchOpts, rules.WithMismatchOnly())
		}
		return rules.Match(rule.Params["field"], rule.Params["confirm"], matchOpts...), nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
}

func cloneModel(def model.FormModel) model.FormModel {
	out := def
	out.Fields = append([]model.Field(nil), def.Fields...)
	out.Rules = append([]model.FormRule(nil), def.Rules...)
	return out
}
