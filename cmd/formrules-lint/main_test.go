package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLintFiles_BundledDefinitionsAreClean(t *testing.T) {
	files, err := collectFiles([]string{filepath.Join("..", "..", "pkg", "definition", "forms")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatalf("expected bundled definition files")
	}
	if got := lintFiles(files); len(got) != 0 {
		t.Fatalf("unexpected violations: %+v", got)
	}
}

func TestLintFiles_ReportsViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", `
id: reset
fields:
  - name: password
    required: true
  - name: confirm
rules:
  - kind: match
    params: { field: password, confirm: confirm }
`)
	writeFile(t, dir, "bad-rule.yaml", `
id: broken
fields:
  - name: password
rules:
  - kind: match
    params: { field: password, confirm: missing }
`)
	writeFile(t, dir, "zz-dup.json", `{"id": "reset", "fields": [{"name": "a"}]}`)
	writeFile(t, dir, "garbage.yml", "::: [")
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := collectFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Fatalf("collected %d files, want 4: %v", len(files), files)
	}

	violations := lintFiles(files)
	sortViolations(violations)
	if len(violations) != 3 {
		t.Fatalf("got %d violations, want 3: %+v", len(violations), violations)
	}

	checks := []struct {
		file     string
		location string
		contains string
	}{
		{file: "bad-rule.yaml", location: "form broken", contains: "unknown field"},
		{file: "zz-dup.json", location: "form reset", contains: "duplicate form id"},
		{file: "garbage.yml", location: "file", contains: "invalid JSON or YAML"},
	}
	for i, want := range checks {
		got := violations[i]
		if filepath.Base(got.file) != want.file || got.location != want.location || !strings.Contains(got.message, want.contains) {
			t.Errorf("violation %d = %+v, want %s %s containing %q", i, got, want.file, want.location, want.contains)
		}
	}
}
