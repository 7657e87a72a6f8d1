package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formrules/pkg/builder"
	"github.com/goliatone/go-formrules/pkg/definition"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definition files (JSON or YAML) for invalid fields and rules.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"pkg/definition/forms"}
	}

	files, err := collectFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}

	violations := lintFiles(files)
	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(name string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() && isDefinitionFile(name) {
				files = append(files, name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func lintFiles(files []string) []violation {
	var (
		result []violation
		seen   = make(map[string]string)
	)
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			result = append(result, violation{file: file, location: "file", message: err.Error()})
			continue
		}
		forms, err := definition.Parse(raw, file)
		if err != nil {
			result = append(result, violation{file: file, location: "file", message: err.Error()})
			continue
		}
		for idx, def := range forms {
			id := strings.TrimSpace(def.ID)
			location := fmt.Sprintf("form[%d]", idx)
			if id != "" {
				location = "form " + id
				if prev, dup := seen[id]; dup {
					result = append(result, violation{file: file, location: location, message: "duplicate form id, first defined in " + prev})
				} else {
					seen[id] = file
				}
			}
			if _, err := builder.Build(def, builder.WithoutInitialValidation()); err != nil {
				result = append(result, violation{file: file, location: location, message: err.Error()})
			}
		}
	}
	return result
}

func sortViolations(violations []violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
