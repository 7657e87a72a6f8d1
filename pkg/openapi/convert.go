// Package openapi derives form definitions from the request bodies of OpenAPI
// 3 operations.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formrules/pkg/model"
)

// MatchExtension marks a property as the confirmation of another property.
// Its value is the name of the primary property.
const MatchExtension = "x-formrules-match"

// LabelExtension overrides the generated label for a property.
const LabelExtension = "x-formrules-label"

// SanitizeExtension lists normaliser names applied to a property.
const SanitizeExtension = "x-formrules-sanitize"

var errNoRequestBody = errors.New("openapi: operation has no object request body")

// Load reads src and converts the named operation into a form definition.
func Load(ctx context.Context, src Source, operationID string) (model.FormModel, error) {
	raw, err := Read(ctx, src)
	if err != nil {
		return model.FormModel{}, err
	}
	return FormFromDocument(ctx, raw, operationID)
}

// FormFromDocument parses raw (JSON or YAML) and converts the request body of
// operationID into a form definition. Properties are emitted in sorted order.
func FormFromDocument(ctx context.Context, raw []byte, operationID string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if len(raw) == 0 {
		return model.FormModel{}, errors.New("openapi: document payload is empty")
	}
	operationID = strings.TrimSpace(operationID)
	if operationID == "" {
		return model.FormModel{}, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("openapi: load document: %w", err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return model.FormModel{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %q", errNoRequestBody, operationID)
	}

	def := model.FormModel{
		ID:          operationID,
		Title:       op.Summary,
		Description: op.Description,
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		_, isRequired := required[name]
		def.Fields = append(def.Fields, convertProperty(name, prop.Value, isRequired))

		if primary := extensionString(prop.Value.Extensions, MatchExtension); primary != "" {
			def.Rules = append(def.Rules, model.FormRule{
				Kind:   model.FormRuleMatch,
				Params: map[string]string{"field": primary, "confirm": name},
			})
		}
	}

	return def, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperty(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Format:      strings.ToLower(src.Format),
		Required:    required,
		Label:       extensionString(src.Extensions, LabelExtension),
		Description: src.Description,
		Sanitize:    extensionStrings(src.Extensions, SanitizeExtension),
	}
	if value, ok := src.Default.(string); ok {
		field.Default = value
	}
	if src.MinLength != 0 {
		field.Validations = append(field.Validations, lengthRule(model.ValidationRuleMinLength, src.MinLength))
	}
	if src.MaxLength != nil {
		field.Validations = append(field.Validations, lengthRule(model.ValidationRuleMaxLength, *src.MaxLength))
	}
	if src.Pattern != "" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return field
}

func lengthRule(kind string, value uint64) model.ValidationRule {
	return model.ValidationRule{
		Kind:   kind,
		Params: map[string]string{"value": strconv.FormatUint(value, 10)},
	}
}

func extensionString(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	value, ok := ext[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func extensionStrings(ext map[string]any, key string) []string {
	if len(ext) == 0 {
		return nil
	}
	switch typed := ext[key].(type) {
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			return []string{trimmed}
		}
	case []any:
		var out []string
		for _, item := range typed {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}
