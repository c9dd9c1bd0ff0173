package ai

import "fmt"

// FailureKind classifies why a gateway call produced no usable answer.
type FailureKind string

const (
	FailureTransport  FailureKind = "transport"
	FailureStatus     FailureKind = "status"
	FailureMalformed  FailureKind = "malformed"
	FailureEmptyReply FailureKind = "empty_reply"
)

// Failure is the typed error every gateway operation returns on a transport
// error, a non-2xx status, or an unusable body.
type Failure struct {
	Kind FailureKind
	// StatusCode is set for FailureStatus.
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case FailureStatus:
		return fmt.Sprintf("ai gateway: unexpected status %d", f.StatusCode)
	default:
		if f.Err != nil {
			return fmt.Sprintf("ai gateway: %s: %v", f.Kind, f.Err)
		}
		return fmt.Sprintf("ai gateway: %s", f.Kind)
	}
}

func (f *Failure) Unwrap() error { return f.Err }
