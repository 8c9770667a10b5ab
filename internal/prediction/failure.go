package prediction

import "errors"

// FailureKind says which step of a prediction went wrong.
type FailureKind string

const (
	FailureProvider      FailureKind = "provider_error"
	FailureEmptyResponse FailureKind = "empty_response"
	FailureParse         FailureKind = "parse_error"
	FailureSchema        FailureKind = "schema_violation"
)

// Failure is the classified cause of a fallback.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf returns the kind of the first Failure in err's chain, or "" if there is none.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
