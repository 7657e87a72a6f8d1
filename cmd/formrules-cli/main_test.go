package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrules/pkg/prompt"
)

type nopDriver struct{}

func (nopDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", prompt.ErrAborted
}

func (nopDriver) Password(context.Context, prompt.InputConfig) (string, error) {
	return "", prompt.ErrAborted
}

func (nopDriver) Info(context.Context, string) error { return nil }

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, nopDriver{})
	return code, stdout.String(), stderr.String()
}

func TestRun_ValidSignup(t *testing.T) {
	code, stdout, stderr := runCLI(t,
		"-set", "fullname=Jane Doe",
		"-set", "email=jane@example.com",
		"-set", "password=secret1",
		"-set", "confirmPassword=secret1",
	)
	if code != exitValid {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if diff := cmp.Diff("signup: valid\n", stdout); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MismatchPretty(t *testing.T) {
	code, stdout, _ := runCLI(t,
		"-set", "fullname=Jane Doe",
		"-set", "email=jane@example.com",
		"-set", "password=secret1",
		"-set", "confirmPassword=secret2",
	)
	if code != exitInvalid {
		t.Fatalf("exit code = %d, want %d", code, exitInvalid)
	}
	want := "signup: invalid\n  confirmPassword: Does not match Password\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Fatalf("stdout mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(stdout, "secret") {
		t.Fatalf("output leaked a password value: %s", stdout)
	}
}

func TestRun_ValuesFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.json")
	values := `{"fullname": "Jane Doe", "email": "jane@example.com", "password": "secret1"}`
	if err := os.WriteFile(path, []byte(values), 0o600); err != nil {
		t.Fatal(err)
	}

	code, stdout, _ := runCLI(t, "-values", path, "-format", "json")
	if code != exitInvalid {
		t.Fatalf("exit code = %d, want %d", code, exitInvalid)
	}

	var got result
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	want := result{
		Form:  "signup",
		Valid: false,
	}
	want.Errors.Fields = map[string][]string{
		"confirmPassword": {"This field is required"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_LoginDefinition(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-form", "login", "-set", "email=  jane@example.com ")
	if code != exitValid {
		t.Fatalf("exit code = %d, stdout: %s stderr: %s", code, stdout, stderr)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown form", args: []string{"-form", "missing"}},
		{name: "bad set", args: []string{"-set", "novalue"}},
		{name: "unknown field", args: []string{"-set", "nickname=jd"}},
		{name: "openapi without operation", args: []string{"-openapi", "spec.yaml"}},
		{name: "bad format", args: []string{"-format", "xml"}},
		{name: "missing values file", args: []string{"-values", "does-not-exist.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != exitError {
				t.Fatalf("exit code = %d, want %d", code, exitError)
			}
			if stderr == "" {
				t.Fatalf("expected diagnostics on stderr")
			}
		})
	}
}

func TestRun_OpenAPI(t *testing.T) {
	spec := filepath.Join("..", "..", "pkg", "openapi", "testdata", "accounts.yaml")
	code, stdout, stderr := runCLI(t, "-openapi", spec, "-operation", "createAccount", "-format", "json")
	if code == exitError {
		t.Fatalf("unexpected error exit, stderr: %s", stderr)
	}
	var got result
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if got.Form != "createAccount" {
		t.Fatalf("form = %q, want createAccount", got.Form)
	}
}

func TestRun_InteractiveAbort(t *testing.T) {
	code, _, stderr := runCLI(t, "-interactive")
	if code != exitError {
		t.Fatalf("exit code = %d, want %d", code, exitError)
	}
	if !strings.Contains(stderr, "aborted") {
		t.Fatalf("stderr = %q, want abort diagnostic", stderr)
	}
}
