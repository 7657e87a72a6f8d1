package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/render"
	"github.com/goliatone/go-formrules/pkg/testsupport"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func signup(t *testing.T) *form.Form {
	t.Helper()
	f := testsupport.SignupForm(t)
	testsupport.SetValues(t, f, map[string]string{
		"fullname":        "Jo",
		"email":           "jane@",
		"password":        "secret1",
		"confirmPassword": "secret2",
	})
	return f
}

func TestMessages_Defaults(t *testing.T) {
	mapping := render.Messages(signup(t), render.MessageOptions{FormErrors: []string{" Try again ", "Try again"}})

	want := render.ErrorMapping{
		Fields: map[string][]string{
			"fullname":        {"Must be at least 4 characters"},
			"email":           {"Must be a valid email address"},
			"confirmPassword": {"Does not match Password"},
		},
		Form: []string{"Try again"},
	}
	if diff := cmp.Diff(want, mapping); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMessages_Translator(t *testing.T) {
	var missing []string
	mapping := render.Messages(signup(t), render.MessageOptions{
		Locale:     "fr",
		Translator: stubTranslator{"errors.mismatch": "Les mots de passe ne correspondent pas"},
		OnMissing: func(_ string, key, fallback string, _ error) string {
			missing = append(missing, key)
			return fallback
		},
	})

	if got := mapping.Fields["confirmPassword"]; len(got) != 1 || got[0] != "Les mots de passe ne correspondent pas" {
		t.Fatalf("unexpected translated mismatch message %#v", got)
	}
	if len(missing) != 2 {
		t.Fatalf("expected two missing keys, got %v", missing)
	}
}

func TestMessages_ValidForm(t *testing.T) {
	f := form.New()
	if _, err := f.AddField("name", form.WithValue("x")); err != nil {
		t.Fatal(err)
	}
	if mapping := render.Messages(f, render.MessageOptions{}); !mapping.Empty() {
		t.Fatalf("expected empty mapping, got %#v", mapping)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
