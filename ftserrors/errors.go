// Package ftserrors declares the tiered error kinds shared across the
// query-compilation pipeline, following the same error-kind style the
// teacher engine uses throughout its sql package.
package ftserrors

import "gopkg.in/src-d/go-errors.v1"

// User-visible errors: the input was syntactically or semantically
// invalid. Callers should surface these to the client.
var (
	// ErrInvalidBulkParameter is raised when a bulk-load parameter string
	// cannot be parsed.
	ErrInvalidBulkParameter = errors.NewKind("invalid bulk parameter: %s")
	// ErrWrongParameter is raised for an unknown option name, an unknown
	// calculator/combiner name, or too many parameters passed to one.
	ErrWrongParameter = errors.NewKind("wrong parameter: %s")
	// ErrInvalidEscape is raised when a LIKE pattern's escape sequence is
	// malformed.
	ErrInvalidEscape = errors.NewKind("invalid escape sequence in pattern: %s")
	// ErrBadArgument is raised when a codec parameter or value is out of
	// its valid range.
	ErrBadArgument = errors.NewKind("bad argument: %s")
	// ErrTooLongConditionalPattern is raised when a LIKE pattern exceeds
	// the configured bulk maximum size.
	ErrTooLongConditionalPattern = errors.NewKind("conditional pattern too long: %d > %d")
)

// Fatal errors: a configuration or environment problem that the caller
// cannot work around by trying a different plan.
var (
	// ErrNotSupported is raised for a separator defined with non-ASCII
	// characters, a separator longer than 20 bytes, or overlapping
	// separators.
	ErrNotSupported = errors.NewKind("not supported: %s")
	// ErrFunctionNotFound is raised when an external calculator library
	// is missing one of its required entry points.
	ErrFunctionNotFound = errors.NewKind("function not found: %s")
	// ErrEntryNotFound is raised by BTreeDirectory.update when the old
	// key does not exist.
	ErrEntryNotFound = errors.NewKind("entry not found: %s")
	// ErrVerifyAborted is raised when BTreeDirectory.verify finds a
	// structural inconsistency.
	ErrVerifyAborted = errors.NewKind("verify aborted: %s")
	// ErrUnexpected wraps any error that indicates an internal
	// invariant was violated.
	ErrUnexpected = errors.NewKind("unexpected error: %s")
)
