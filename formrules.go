// Package formrules is the entry point for building headless forms from
// declarative definitions. Forms keep field values and per-field error bags;
// cross-field rules such as password confirmation are attached at the form
// level and re-evaluated on every change.
package formrules

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formrules/pkg/builder"
	"github.com/goliatone/go-formrules/pkg/definition"
	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/model"
	"github.com/goliatone/go-formrules/pkg/openapi"
)

// Option aliases builder.Option so callers can configure forms without
// importing the builder package.
type Option = builder.Option

// Form aliases form.Form.
type Form = form.Form

// New builds a form from a definition.
func New(def model.FormModel, opts ...Option) (*Form, error) {
	return builder.Build(def, opts...)
}

// Builtin builds one of the bundled definitions ("signup" or "login").
func Builtin(id string, opts ...Option) (*Form, error) {
	store, err := definition.LoadFS(definition.EmbeddedFS())
	if err != nil {
		return nil, err
	}
	def, ok := store.Form(id)
	if !ok {
		return nil, fmt.Errorf("formrules: unknown builtin form %q (available: %v)", id, store.IDs())
	}
	return builder.Build(def, opts...)
}

// FromOpenAPI builds a form from the request body of an OpenAPI operation.
func FromOpenAPI(ctx context.Context, src openapi.Source, operationID string, opts ...Option) (*Form, error) {
	def, err := openapi.Load(ctx, src, operationID)
	if err != nil {
		return nil, err
	}
	return builder.Build(def, opts...)
}
