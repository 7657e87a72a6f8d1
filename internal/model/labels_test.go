package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"confirmPassword": "Confirm Password",
		"fullname":        "Fullname",
		"first_name":      "First Name",
		"address-line2":   "Address Line 2",
		"userID":          "User ID",
		"HTTPServer":      "HTTP Server",
		"  email  ":       "Email",
		"":                "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCheck(t *testing.T) {
	valid := Definition{
		ID: "signup",
		Fields: []FieldDecl{
			{Name: "password", Kinds: []string{"minLength"}},
			{Name: "confirmPassword"},
		},
		Rules: []RuleDecl{{Kind: "match", Params: map[string]string{"field": "password", "confirm": "confirmPassword"}}},
	}
	if err := Check(valid); err != nil {
		t.Fatalf("expected valid definition, got %v", err)
	}

	broken := []Definition{
		{Fields: valid.Fields},
		{ID: "empty"},
		{ID: "dup", Fields: []FieldDecl{{Name: "a"}, {Name: "a"}}},
		{ID: "kind", Fields: []FieldDecl{{Name: "a", Kinds: []string{"uppercase"}}}},
		{ID: "ref", Fields: valid.Fields, Rules: []RuleDecl{{Kind: "match", Params: map[string]string{"field": "password", "confirm": "nope"}}}},
		{ID: "self", Fields: valid.Fields, Rules: []RuleDecl{{Kind: "match", Params: map[string]string{"field": "password", "confirm": "password"}}}},
		{ID: "rule", Fields: valid.Fields, Rules: []RuleDecl{{Kind: "sum"}}},
	}
	for _, def := range broken {
		if err := Check(def); err == nil {
			t.Fatalf("expected error for definition %q", def.ID)
		}
	}
}
