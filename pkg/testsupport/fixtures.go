// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrules/pkg/builder"
	"github.com/goliatone/go-formrules/pkg/definition"
	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/model"
)

// MustDefinition returns a bundled form definition by id.
func MustDefinition(t *testing.T, id string) model.FormModel {
	t.Helper()

	store, err := definition.LoadFS(definition.EmbeddedFS())
	if err != nil {
		t.Fatalf("load bundled definitions: %v", err)
	}
	def, ok := store.Form(id)
	if !ok {
		t.Fatalf("bundled definition %q not found", id)
	}
	return def
}

// MustBuild builds a bundled form definition.
func MustBuild(t *testing.T, id string, opts ...builder.Option) *form.Form {
	t.Helper()

	f, err := builder.Build(MustDefinition(t, id), opts...)
	if err != nil {
		t.Fatalf("build %s: %v", id, err)
	}
	return f
}

// SignupForm builds the bundled signup form.
func SignupForm(t *testing.T, opts ...builder.Option) *form.Form {
	t.Helper()
	return MustBuild(t, "signup", opts...)
}

// SetValues assigns values in sorted field order, failing the test on the
// first error.
func SetValues(t *testing.T, f *form.Form, values map[string]string) {
	t.Helper()

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := f.SetValue(name, values[name]); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

// ErrorNames summarises the form's errors as sorted error names per field.
func ErrorNames(f *form.Form) map[string][]string {
	out := make(map[string][]string)
	for field, errs := range f.Errors() {
		out[field] = errs.Names()
	}
	return out
}

// MustLoadFormModel loads a JSON golden file into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) model.FormModel {
	t.Helper()

	def, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return def
}

// LoadFormModel reads a JSON fixture into a FormModel, returning an error for
// callers managing setup outside of *testing.T.
func LoadFormModel(path string) (model.FormModel, error) {
	if path == "" {
		return model.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out model.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
