// Package render turns form error bags into human-readable messages.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/rules"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves message keys such as "errors.required" for a locale.
// args carries the error metadata followed by the field label.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. fallback is the built-in English message.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// MessageOptions configures Messages.
type MessageOptions struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// FormErrors are appended as form-level messages.
	FormErrors []string
}

// Messages renders the current errors of f. Field messages are ordered by
// error name; fields without errors are omitted.
func Messages(f *form.Form, opts MessageOptions) ErrorMapping {
	mapping := ErrorMapping{Form: normalizeMessages(opts.FormErrors)}
	if f == nil {
		return mapping
	}

	for name, errs := range f.Errors() {
		field, ok := f.Field(name)
		if !ok {
			continue
		}
		var messages []string
		for _, errName := range errs.Names() {
			messages = append(messages, Message(f, field, errName, errs[errName], opts))
		}
		if messages = normalizeMessages(messages); len(messages) > 0 {
			if mapping.Fields == nil {
				mapping.Fields = make(map[string][]string)
			}
			mapping.Fields[name] = messages
		}
	}
	return mapping
}

// Message renders a single error on field.
func Message(f *form.Form, field *form.Field, errName string, meta any, opts MessageOptions) string {
	fallback := defaultMessage(f, field, errName, meta)
	key := "errors." + errName

	if opts.Translator == nil {
		if opts.OnMissing != nil {
			return opts.OnMissing(opts.Locale, key, fallback, ErrMissingTranslator)
		}
		return fallback
	}

	result, err := opts.Translator.Translate(opts.Locale, key, meta, field.Label())
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if opts.OnMissing != nil {
		return opts.OnMissing(opts.Locale, key, fallback, err)
	}
	return fallback
}

func defaultMessage(f *form.Form, field *form.Field, errName string, meta any) string {
	switch errName {
	case rules.RequiredError:
		return "This field is required"
	case rules.MinLengthError:
		return fmt.Sprintf("Must be at least %d characters", requiredLength(meta))
	case rules.MaxLengthError:
		return fmt.Sprintf("Must be at most %d characters", requiredLength(meta))
	case rules.EmailError:
		return "Must be a valid email address"
	case rules.PatternError:
		return "Has an invalid format"
	case rules.MismatchError:
		if label := primaryLabel(f, field); label != "" {
			return "Does not match " + label
		}
		return "Values do not match"
	default:
		return errName
	}
}

func requiredLength(meta any) int {
	values, ok := meta.(map[string]any)
	if !ok {
		return 0
	}
	n, _ := values["requiredLength"].(int)
	return n
}

// primaryLabel returns the label of the field a confirmation must match, as
// declared by the form's Match rule for that field.
func primaryLabel(f *form.Form, field *form.Field) string {
	if f == nil || field == nil {
		return ""
	}
	for _, rule := range f.Rules() {
		match, ok := rule.(*rules.MatchRule)
		if !ok || match.Confirm() != field.Name() {
			continue
		}
		if primary, ok := f.Field(match.Primary()); ok {
			return primary.Label()
		}
	}
	return ""
}
