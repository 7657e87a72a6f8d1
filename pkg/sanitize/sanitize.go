// Package sanitize provides value normalisers applied to form input before it
// is stored and validated.
package sanitize

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formrules/pkg/form"
)

// Normaliser names accepted by Lookup.
const (
	NameTrim      = "trim"
	NameStripTags = "strip_tags"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func strict() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Trim removes leading and trailing whitespace.
func Trim(value string) string {
	return strings.TrimSpace(value)
}

const maxStripPasses = 8

// StripTags removes every HTML element from value and returns plain text.
// Entity-encoded markup is decoded and stripped again until the text stops
// changing, so the result never decodes into an element. Input that does not
// settle within maxStripPasses is returned in its escaped, sanitised form.
func StripTags(value string) string {
	if value == "" || !strings.ContainsAny(value, "<>&") {
		return value
	}
	current := value
	for range maxStripPasses {
		next := html.UnescapeString(strict().Sanitize(html.UnescapeString(current)))
		if next == current {
			return current
		}
		current = next
	}
	return strict().Sanitize(current)
}

// Chain composes normalisers left to right. Nil entries are skipped.
func Chain(fns ...form.Normalizer) form.Normalizer {
	var active []form.Normalizer
	for _, fn := range fns {
		if fn != nil {
			active = append(active, fn)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(value string) string {
		for _, fn := range active {
			value = fn(value)
		}
		return value
	}
}

// Lookup resolves a normaliser by name.
func Lookup(name string) (form.Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameTrim:
		return Trim, nil
	case NameStripTags, "striptags", "strip-tags":
		return StripTags, nil
	default:
		return nil, fmt.Errorf("sanitize: unknown normaliser %q", name)
	}
}

// FromNames resolves and chains the named normalisers in order.
func FromNames(names []string) (form.Normalizer, error) {
	fns := make([]form.Normalizer, 0, len(names))
	for _, name := range names {
		fn, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return Chain(fns...), nil
}
