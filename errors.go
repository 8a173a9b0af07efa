package gohint

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnosis error kinds. A DiagnosisError always wraps exactly one of these,
// so callers branch with errors.Is.
var (
	// ErrUnsupportedHint reports a compliant hint whose sign has no registered
	// cause handler (or a bare sign without origin kinds).
	ErrUnsupportedHint = errors.New("gohint: unsupported hint")
	// ErrMalformedHint reports a subscripted sign that reached dispatch without
	// children.
	ErrMalformedHint = errors.New("gohint: malformed hint")
	// ErrUnrecognizedField reports a Derive override naming an unknown field.
	ErrUnrecognizedField = errors.New("gohint: unrecognized sleuth field")
	// ErrInvalidField reports a Derive override of the wrong type.
	ErrInvalidField = errors.New("gohint: invalid sleuth field value")
	// ErrNoCause reports a value rejected by the fast path for which
	// diagnosis found nothing wrong.
	ErrNoCause = errors.New("gohint: no cause found")
)

// DiagnosisError is returned when the engine cannot explain a failure. The
// underlying type-check failure is still real; only its explanation is lost.
type DiagnosisError struct {
	Kind  error  // One of the Err* sentinels above.
	Label string // Context label of the sleuth, e.g. "parameter x".
	Hint  string // Rendered hint, when relevant.
	Field string // Offending field name for Derive errors.
}

func (e *DiagnosisError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Kind.Error())
	switch {
	case e.Field != "":
		fmt.Fprintf(b, " %q", e.Field)
	case e.Hint != "":
		fmt.Fprintf(b, " %s", e.Hint)
	}
	if e.Label != "" {
		fmt.Fprintf(b, " (%s)", e.Label)
	}
	return b.String()
}

func (e *DiagnosisError) Unwrap() error { return e.Kind }

// AsDiagnosisError extracts a DiagnosisError from err using errors.As.
func AsDiagnosisError(err error) (*DiagnosisError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DiagnosisError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ViolationError reports a value that failed a hint, together with the
// diagnosed cause. When diagnosis itself failed, Cause is empty and Err holds
// the DiagnosisError; the violation is reported either way.
type ViolationError struct {
	Label string
	Hint  string
	Pith  string
	Cause string
	Err   error
}

func (e *ViolationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s violates hint %s, but the cause could not be determined: %v", e.Label, e.Pith, e.Hint, e.Err)
	}
	return fmt.Sprintf("%s violates hint %s, as %s", e.Label, e.Hint, e.Cause)
}

func (e *ViolationError) Unwrap() error { return e.Err }

// AsViolation extracts a ViolationError from err using errors.As.
func AsViolation(err error) (*ViolationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ViolationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
