package summary

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request errors detected before any model call.
var ErrInvalidInput = errors.New("invalid summarize request")

// UnprocessableError means the model answered but its output failed schema
// or semantic validation. Raw preserves the offending payload for
// diagnostics; it is never shown verbatim to end users. Distinct from a
// transport failure so operators can tell "model unreachable" apart from
// "model answered badly".
type UnprocessableError struct {
	Reason string
	Raw    string
}

func (e *UnprocessableError) Error() string {
	return fmt.Sprintf("unprocessable model output: %s", e.Reason)
}
