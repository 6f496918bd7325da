// Package errors provides the structured error taxonomy shared across
// repoindex: a handful of named kinds instead of per-call ad hoc errors, so
// callers (the MCP handlers, the CLI) can map failures to a stable surface
// without string-matching messages.
package errors

import "fmt"

// Kind classifies a CoreError for dispatch by callers.
type Kind string

const (
	// KindInvalidArgument marks a malformed request the caller can fix and retry.
	KindInvalidArgument Kind = "invalid-argument"
	// KindNotFound marks an unknown index_id or unresolved chunk reference.
	KindNotFound Kind = "not-found"
	// KindChunkRefAmbiguous marks a ref prefix that matches more than one chunk.
	KindChunkRefAmbiguous Kind = "chunk-ref-ambiguous"
	// KindIOError marks a transient storage read/write failure.
	KindIOError Kind = "io-error"
	// KindCorruptState marks a checksum/parse failure on an on-disk artifact.
	KindCorruptState Kind = "corrupt-state"
	// KindBackendUnavailable marks an embedding backend that failed to initialize.
	KindBackendUnavailable Kind = "backend-unavailable"
	// KindCancelled marks a cooperative interruption with no state change.
	KindCancelled Kind = "cancelled"
	// KindDeadlineExceeded marks a soft-deadline timeout with no state change.
	KindDeadlineExceeded Kind = "deadline-exceeded"
	// KindInternal marks an invariant violation; the caller should abort loudly.
	KindInternal Kind = "internal"
)

// CoreError is the structured error type returned by every repoindex package.
type CoreError struct {
	Kind    Kind
	Message string
	Cause   error

	// Candidates lists conflicting chunk refs for KindChunkRefAmbiguous.
	Candidates []string
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Is reports equality by Kind so errors.Is(err, &CoreError{Kind: X}) works.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates a CoreError of the given kind.
func New(kind Kind, message string) *CoreError {
	return &CoreError{Kind: kind, Message: message}
}

// Wrap creates a CoreError of the given kind around an existing error.
func Wrap(kind Kind, message string, cause error) *CoreError {
	return &CoreError{Kind: kind, Message: message, Cause: cause}
}

// Ambiguous creates a KindChunkRefAmbiguous error listing the conflicting refs.
func Ambiguous(prefix string, candidates []string) *CoreError {
	return &CoreError{
		Kind:       KindChunkRefAmbiguous,
		Message:    fmt.Sprintf("chunk ref prefix %q matches %d chunks", prefix, len(candidates)),
		Candidates: candidates,
	}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that were not produced by this package.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ce *CoreError
	if As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// As is a thin re-export of errors.As specialised for *CoreError to avoid an
// import cycle at call sites that only need this one type assertion.
func As(err error, target **CoreError) bool {
	for err != nil {
		if ce, ok := err.(*CoreError); ok {
			*target = ce
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Retryable reports whether err is of KindIOError, the only kind the
// propagation policy allows to be retried once automatically. It does not
// tell a failed read from a failed write.
func Retryable(err error) bool {
	return KindOf(err) == KindIOError
}
