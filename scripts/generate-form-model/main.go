package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formrules/pkg/builder"
	"github.com/goliatone/go-formrules/pkg/model"
	"github.com/goliatone/go-formrules/pkg/openapi"
)

func main() {
	var (
		schemaPath  = flag.String("schema", "pkg/openapi/testdata/accounts.yaml", "OpenAPI schema path")
		operationID = flag.String("operation", "createAccount", "operation ID to convert")
		outputPath  = flag.String("output", "", "output path for the form definition (.json, .yaml or .yml); stdout when empty")
		formID      = flag.String("id", "", "override the form id (defaults to the operation ID)")
	)
	flag.Parse()

	ctx := context.Background()

	def, err := openapi.Load(ctx, openapi.SourceFromFile(*schemaPath), *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to convert operation: %v\n", err)
		os.Exit(1)
	}
	if *formID != "" {
		def.ID = *formID
	}

	if _, err := builder.Build(def, builder.WithoutInitialValidation()); err != nil {
		fmt.Fprintf(os.Stderr, "converted definition is invalid: %v\n", err)
		os.Exit(1)
	}

	payload, err := encode(def, *outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode definition: %v\n", err)
		os.Exit(1)
	}
	if *outputPath == "" {
		if _, err := os.Stdout.Write(payload); err != nil {
			os.Exit(1)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write definition: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote form definition %q to %s\n", def.ID, *outputPath)
}

func encode(def model.FormModel, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(def)
	default:
		payload, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(payload, '\n'), nil
	}
}
