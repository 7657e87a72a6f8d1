// Package definition loads declarative form definitions from JSON or YAML
// files.
package definition

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formrules/pkg/model"
)

// Store holds the definitions loaded from a filesystem, keyed by form id.
type Store struct {
	forms map[string]model.FormModel
}

// documentFile accepts either a single form at the top level or a list under
// "forms".
type documentFile struct {
	Forms           []model.FormModel `json:"forms" yaml:"forms"`
	model.FormModel `yaml:",inline"`
}

// LoadFS walks fsys and parses every .json, .yaml, and .yml file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormModel)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		forms, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, def := range forms {
			id := strings.TrimSpace(def.ID)
			if id == "" {
				return fmt.Errorf("definition: file %s defines a form without id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("definition: duplicate form %q (file %s)", id, path)
			}
			def.ID = id
			store.forms[id] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a definition document, trying JSON first and YAML second.
// source is only used in error messages.
func Parse(data []byte, source string) ([]model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("definition: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("definition: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	if len(doc.Forms) > 0 {
		return doc.Forms, nil
	}
	if strings.TrimSpace(doc.ID) == "" && len(doc.Fields) == 0 {
		return nil, fmt.Errorf("definition: file %s contains no forms", source)
	}
	return []model.FormModel{doc.FormModel}, nil
}

// Form returns the definition with the given id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	def, ok := s.forms[strings.TrimSpace(id)]
	return def, ok
}

// IDs returns the loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
