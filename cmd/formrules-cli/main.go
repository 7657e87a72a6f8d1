package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/goliatone/go-formrules/pkg/builder"
	"github.com/goliatone/go-formrules/pkg/definition"
	"github.com/goliatone/go-formrules/pkg/form"
	"github.com/goliatone/go-formrules/pkg/model"
	"github.com/goliatone/go-formrules/pkg/openapi"
	"github.com/goliatone/go-formrules/pkg/prompt"
	"github.com/goliatone/go-formrules/pkg/render"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

type setFlags map[string]string

func (s setFlags) String() string {
	pairs := make([]string, 0, len(s))
	for k, v := range s {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (s setFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	s[strings.TrimSpace(name)] = value
	return nil
}

type config struct {
	formID      string
	definitions string
	openapiPath string
	operation   string
	valuesPath  string
	sets        setFlags
	interactive bool
	format      string
	verbose     bool
	narrowClear bool
}

type result struct {
	Form   string              `json:"form"`
	Valid  bool                `json:"valid"`
	Errors render.ErrorMapping `json:"errors"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, prompt.NewSurveyDriver()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver prompt.Driver) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return exitError
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	def, err := loadDefinition(ctx, cfg)
	if err != nil {
		logger.Error("load definition", "error", err)
		return exitError
	}

	opts := []builder.Option{builder.WithFormOptions(form.WithLogger(logger))}
	if cfg.narrowClear {
		opts = append(opts, builder.WithMismatchOnlyClear())
	}
	f, err := builder.Build(def, opts...)
	if err != nil {
		logger.Error("build form", "form", def.ID, "error", err)
		return exitError
	}

	values, err := collectValues(cfg)
	if err != nil {
		logger.Error("read values", "error", err)
		return exitError
	}
	for _, name := range sortedKeys(values) {
		if err := f.SetValue(name, values[name]); err != nil {
			logger.Error("set value", "field", name, "error", err)
			return exitError
		}
	}

	if cfg.interactive {
		if err := prompt.Fill(ctx, f, driver); err != nil && !errors.Is(err, prompt.ErrStillInvalid) {
			logger.Error("interactive input", "error", err)
			return exitError
		}
	}

	valid := f.Validate()
	logger.Debug("form validated", "form", def.ID, "valid", valid)

	out := result{Form: def.ID, Valid: valid, Errors: render.Messages(f, render.MessageOptions{})}
	if err := writeResult(stdout, cfg.format, out); err != nil {
		logger.Error("write result", "error", err)
		return exitError
	}
	if !valid {
		return exitInvalid
	}
	return exitValid
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	cfg := config{sets: setFlags{}}
	fs := flag.NewFlagSet("formrules-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.formID, "form", "signup", "form id to load")
	fs.StringVar(&cfg.definitions, "definitions", "", "directory of JSON/YAML form definitions (bundled forms if empty)")
	fs.StringVar(&cfg.openapiPath, "openapi", "", "OpenAPI document to derive the form from")
	fs.StringVar(&cfg.operation, "operation", "", "operation id inside the OpenAPI document")
	fs.StringVar(&cfg.valuesPath, "values", "", "JSON file with field values")
	fs.Var(cfg.sets, "set", "field value as name=value (repeatable)")
	fs.BoolVar(&cfg.interactive, "interactive", false, "prompt for values in the terminal")
	fs.StringVar(&cfg.format, "format", "pretty", "output format: pretty or json")
	fs.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.narrowClear, "clear-mismatch-only", false, "on a match, clear only the mismatch error instead of every confirmation error")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if cfg.openapiPath != "" && cfg.operation == "" {
		fmt.Fprintln(stderr, "-operation is required with -openapi")
		return config{}, errors.New("missing operation")
	}
	switch cfg.format {
	case "pretty", "json":
	default:
		fmt.Fprintf(stderr, "unsupported format %q\n", cfg.format)
		return config{}, errors.New("bad format")
	}
	return cfg, nil
}

func loadDefinition(ctx context.Context, cfg config) (model.FormModel, error) {
	if cfg.openapiPath != "" {
		return openapi.Load(ctx, openapi.SourceFromFile(cfg.openapiPath), cfg.operation)
	}

	fsys := definition.EmbeddedFS()
	if cfg.definitions != "" {
		fsys = os.DirFS(cfg.definitions)
	}
	store, err := definition.LoadFS(fsys)
	if err != nil {
		return model.FormModel{}, err
	}
	def, ok := store.Form(cfg.formID)
	if !ok {
		return model.FormModel{}, fmt.Errorf("form %q not found (available: %s)", cfg.formID, strings.Join(store.IDs(), ", "))
	}
	return def, nil
}

func collectValues(cfg config) (map[string]string, error) {
	values := make(map[string]string)
	if cfg.valuesPath != "" {
		raw, err := os.ReadFile(cfg.valuesPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("decode %s: %w", cfg.valuesPath, err)
		}
	}
	for name, value := range cfg.sets {
		values[name] = value
	}
	return values, nil
}

func writeResult(w io.Writer, format string, out result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if out.Valid {
		_, err := fmt.Fprintf(w, "%s: valid\n", out.Form)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: invalid\n", out.Form); err != nil {
		return err
	}
	for _, name := range sortedKeys(out.Errors.Fields) {
		for _, msg := range out.Errors.Fields[name] {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", name, msg); err != nil {
				return err
			}
		}
	}
	for _, msg := range out.Errors.Form {
		if _, err := fmt.Fprintf(w, "  %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
