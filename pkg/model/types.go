package model

import internalmodel "github.com/goliatone/go-formrules/internal/model"

// Field formats with dedicated handling.
const (
	FormatEmail    = "email"
	FormatPassword = "password"
)

// Canonical validation kinds accepted in definitions.
const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleEmail     = "email"
)

// Canonical form-level rule kinds.
const (
	FormRuleMatch = "match"
)

// ValidationRule is a single constraint on a field. Length limits carry their
// threshold in Params["value"]; pattern rules keep the expression in
// Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// FormRule is a cross-field constraint. Match rules name the primary field in
// Params["field"] and the confirmation field in Params["confirm"].
type FormRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field declares one input of a form.
type Field struct {
	Name        string           `json:"name" yaml:"name"`
	Format      string           `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string           `json:"default,omitempty" yaml:"default,omitempty"`
	Sanitize    []string         `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// FormModel is the declarative description of a form: ordered fields plus
// form-level rules.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Rules       []FormRule        `json:"rules,omitempty" yaml:"rules,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FieldByName returns the named field declaration.
func (m FormModel) FieldByName(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// DefaultLabeler converts a field name such as "confirmPassword" into
// "Confirm Password".
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// Check reports structural problems in a definition: missing id, empty or
// duplicate field names, unknown validation kinds, and form rules that
// reference undeclared fields.
func Check(m FormModel) error {
	return internalmodel.Check(toInternal(m))
}

func toInternal(m FormModel) internalmodel.Definition {
	def := internalmodel.Definition{ID: m.ID}
	for _, field := range m.Fields {
		kinds := make([]string, 0, len(field.Validations))
		for _, rule := range field.Validations {
			kinds = append(kinds, rule.Kind)
		}
		def.Fields = append(def.Fields, internalmodel.FieldDecl{Name: field.Name, Kinds: kinds})
	}
	for _, rule := range m.Rules {
		def.Rules = append(def.Rules, internalmodel.RuleDecl{Kind: rule.Kind, Params: rule.Params})
	}
	return def
}
