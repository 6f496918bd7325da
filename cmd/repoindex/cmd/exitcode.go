package cmd

import (
	coreerrors "github.com/repoindex/core/internal/errors"
)

// ExitCode maps a returned error to the process exit code of spec.md §6:
// 0 success, 2 invalid-argument, 3 not-found (including an ambiguous chunk
// ref, which the caller must disambiguate before retrying), 4 io-error or
// corrupt-state, 5 backend-unavailable, 1 anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch coreerrors.KindOf(err) {
	case coreerrors.KindInvalidArgument:
		return 2
	case coreerrors.KindNotFound, coreerrors.KindChunkRefAmbiguous:
		return 3
	case coreerrors.KindIOError, coreerrors.KindCorruptState:
		return 4
	case coreerrors.KindBackendUnavailable:
		return 5
	default:
		return 1
	}
}
