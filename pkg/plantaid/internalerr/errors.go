package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnsafeRule       = errors.New("unsafe rule")
	ErrNotStratified    = errors.New("rule set not stratifiable")
	ErrEvalInvariant    = errors.New("evaluation invariant violated")
	ErrStoreUnavailable = errors.New("store unavailable")
)
