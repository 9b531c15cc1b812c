package validation

import (
	"fmt"
	"strings"
)

// SchemaIssue is one violation addressed by its path inside the candidate,
// e.g. "components[0].children[2].slots[0].text".
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (i SchemaIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// SchemaValidationResult captures validation outcomes for tooling that wants
// a report rather than an error.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// ValidationError is returned when a candidate does not satisfy the grammar.
type ValidationError struct {
	Issues []SchemaIssue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation: invalid document"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("validation: %d issue(s): %s", len(e.Issues), strings.Join(parts, "; "))
}

type issueList struct {
	issues []SchemaIssue
}

func (l *issueList) add(path, format string, args ...any) {
	l.issues = append(l.issues, SchemaIssue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (l *issueList) empty() bool {
	return len(l.issues) == 0
}

func field(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func index(parent string, idx int) string {
	return fmt.Sprintf("%s[%d]", parent, idx)
}
