package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errFormIDMissing    = errors.New("model: form id is required")
	errFieldNameMissing = errors.New("model: field name is required")
	errNoFields         = errors.New("model: form declares no fields")
)

// Check validates a definition's structure.
func Check(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return errFormIDMissing
	}
	if len(def.Fields) == 0 {
		return fmt.Errorf("%w: %q", errNoFields, def.ID)
	}

	names := make(map[string]struct{}, len(def.Fields))
	for _, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return errFieldNameMissing
		}
		if _, exists := names[name]; exists {
			return fmt.Errorf("model: duplicate field %q in form %q", name, def.ID)
		}
		names[name] = struct{}{}

		for _, kind := range field.Kinds {
			if _, ok := knownValidationKinds[kind]; !ok {
				return fmt.Errorf("model: field %q: unknown validation kind %q", name, kind)
			}
		}
	}

	for _, rule := range def.Rules {
		if err := checkRule(rule, names); err != nil {
			return fmt.Errorf("model: form %q: %w", def.ID, err)
		}
	}
	return nil
}

func checkRule(rule RuleDecl, names map[string]struct{}) error {
	switch rule.Kind {
	case "match":
		primary := strings.TrimSpace(rule.Params["field"])
		confirm := strings.TrimSpace(rule.Params["confirm"])
		if primary == "" || confirm == "" {
			return errors.New("match rule requires field and confirm params")
		}
		if primary == confirm {
			return fmt.Errorf("match rule compares %q with itself", primary)
		}
		for _, name := range []string{primary, confirm} {
			if _, ok := names[name]; !ok {
				return fmt.Errorf("match rule references unknown field %q", name)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
}
