// Package testsupport holds fixture and golden-file helpers shared by tests.
package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/validation"
)

// MustLoadSpec reads a JSON document fixture and validates it.
func MustLoadSpec(t *testing.T, path string) model.UiSpec {
	t.Helper()

	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("load spec: %v", err)
	}
	return spec
}

// LoadSpec reads and validates a JSON document fixture without requiring a
// testing.T, for setup code.
func LoadSpec(path string) (model.UiSpec, error) {
	if path == "" {
		return model.UiSpec{}, errors.New("testsupport: spec path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.UiSpec{}, fmt.Errorf("testsupport: read spec: %w", err)
	}
	spec, err := validation.Validate(data)
	if err != nil {
		return model.UiSpec{}, fmt.Errorf("testsupport: validate spec %s: %w", path, err)
	}
	return spec, nil
}

// MustLoadIntent reads a JSON intent fixture.
func MustLoadIntent(t *testing.T, path string) intent.Intent {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read intent: %v", err)
	}
	in, err := intent.Decode(data)
	if err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	return in
}

// MustReadCandidate returns raw candidate text from a fixture file.
func MustReadCandidate(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
