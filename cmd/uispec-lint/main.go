// Command uispec-lint validates UiSpec documents on disk and prints every
// issue with its path inside the document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-uispec/pkg/normalize"
	"github.com/goliatone/go-uispec/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	normalizeFirst := flag.Bool("normalize", false, "lint the document the pipeline would see after normalization")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-normalize] [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nValidate UiSpec documents against the document grammar.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	violations, err := lint(paths, *normalizeFirst)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if report(os.Stderr, violations) > 0 {
		os.Exit(1)
	}
}

func lint(paths []string, normalizeFirst bool) ([]violation, error) {
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path, normalizeFirst)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", path, err)
		}
		violations = append(violations, linted...)
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].file < violations[j].file
	})
	return violations, nil
}

func lintFile(path string, normalizeFirst bool) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	input := raw
	if normalizeFirst {
		var tree map[string]any
		if err := json.Unmarshal(raw, &tree); err == nil {
			normalized, err := json.Marshal(normalize.EnsureStage(tree))
			if err != nil {
				return nil, fmt.Errorf("encode normalized document: %w", err)
			}
			input = normalized
		}
	}

	_, result := validation.ValidateJSON(input)
	if result.Valid {
		return nil, nil
	}
	out := make([]violation, 0, len(result.Issues))
	for _, issue := range result.Issues {
		location := issue.Path
		if location == "" {
			location = "(document)"
		}
		out = append(out, violation{file: path, location: location, message: issue.Message})
	}
	return out, nil
}

func report(w io.Writer, violations []violation) int {
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return len(violations)
}
