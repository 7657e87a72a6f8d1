// Package prompt fills a form interactively, one field at a time, and asks
// again for fields that form-level rules reject.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/model"
	"github.com/goliatone/go-formrules/pkg/render"
)

const defaultMaxAttempts = 3

// Option configures Fill.
type Option func(*filler)

// WithMaxAttempts caps the number of correction rounds after the first pass.
func WithMaxAttempts(n int) Option {
	return func(p *filler) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithMessageOptions controls how error messages are rendered.
func WithMessageOptions(opts render.MessageOptions) Option {
	return func(p *filler) {
		p.messages = opts
	}
}

type filler struct {
	driver      Driver
	maxAttempts int
	messages    render.MessageOptions
}

// Fill asks for every field of f in order. Answers are checked against the
// field's own validators while typing; once all fields are set, fields still
// carrying errors (for example a confirmation mismatch) are asked again.
func Fill(ctx context.Context, f *form.Form, driver Driver, opts ...Option) error {
	if f == nil {
		return errors.New("prompt: form is nil")
	}
	if driver == nil {
		driver = NewSurveyDriver()
	}
	p := &filler{driver: driver, maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	for _, name := range f.FieldNames() {
		if err := p.ask(ctx, f, name); err != nil {
			return err
		}
	}

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		invalid := invalidFields(f)
		if len(invalid) == 0 {
			return nil
		}
		for _, name := range invalid {
			if err := p.report(ctx, f, name); err != nil {
				return err
			}
			if err := p.ask(ctx, f, name); err != nil {
				return err
			}
		}
	}

	if f.Valid() {
		return nil
	}
	return fmt.Errorf("%w after %d attempts", ErrStillInvalid, p.maxAttempts)
}

func (p *filler) ask(ctx context.Context, f *form.Form, name string) error {
	field, ok := f.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", form.ErrUnknownField, name)
	}

	cfg := InputConfig{
		Message: field.Label() + ":",
		Validator: func(value string) error {
			errs := field.Check(value)
			if len(errs) == 0 {
				return nil
			}
			messages := make([]string, 0, len(errs))
			for _, errName := range errs.Names() {
				messages = append(messages, render.Message(f, field, errName, errs[errName], p.messages))
			}
			return errors.New(strings.Join(messages, "; "))
		},
	}

	var (
		value string
		err   error
	)
	if field.Format() == model.FormatPassword {
		value, err = p.driver.Password(ctx, cfg)
	} else {
		cfg.Default = field.Value()
		value, err = p.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	return f.SetValue(name, value)
}

func (p *filler) report(ctx context.Context, f *form.Form, name string) error {
	field, ok := f.Field(name)
	if !ok {
		return nil
	}
	errs := field.Errors()
	for _, errName := range errs.Names() {
		msg := fmt.Sprintf("%s: %s", field.Label(), render.Message(f, field, errName, errs[errName], p.messages))
		if err := p.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func invalidFields(f *form.Form) []string {
	errs := f.Errors()
	var out []string
	for _, name := range f.FieldNames() {
		if _, bad := errs[name]; bad {
			out = append(out, name)
		}
	}
	return out
}
