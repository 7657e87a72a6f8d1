package model

// Definition is the minimal shape Check needs from a public form model.
type Definition struct {
	ID     string
	Fields []FieldDecl
	Rules  []RuleDecl
}

// FieldDecl names a field and the validation kinds declared on it.
type FieldDecl struct {
	Name  string
	Kinds []string
}

// RuleDecl is a form-level rule declaration.
type RuleDecl struct {
	Kind   string
	Params map[string]string
}

var knownValidationKinds = map[string]struct{}{
	"minLength": {},
	"maxLength": {},
	"pattern":   {},
	"email":     {},
}
