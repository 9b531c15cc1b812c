package orchestrator

import "fmt"

// Recovery names the path the pipeline took to produce its document.
type Recovery string

const (
	RecoveryNone               Recovery = "none"
	RecoveryMalformedInput     Recovery = "malformed-input"
	RecoverySchemaViolation    Recovery = "schema-violation"
	RecoveryDegenerateDocument Recovery = "degenerate-document"
	RecoveryUpstreamFailure    Recovery = "upstream-failure"
)

// UpstreamError reports that no candidate text could be obtained from the
// content generator. Timeouts and cancellations are wrapped as well.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	if e == nil || e.Err == nil {
		return "orchestrator: upstream generation failed"
	}
	return fmt.Sprintf("orchestrator: upstream generation failed: %v", e.Err)
}

// Unwrap exposes the underlying cause.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
