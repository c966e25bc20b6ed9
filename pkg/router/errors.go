package router

import (
	"errors"
	"fmt"
)

// ErrTableFrozen is returned by Register once the table has served its
// first Resolve. Registration strictly precedes matching.
var ErrTableFrozen = errors.New("route table is frozen")

// InvalidPatternError reports a malformed route pattern at compile time.
// It is a programmer error; table construction fails fast on it.
type InvalidPatternError struct {
	// Pattern is the raw pattern string as passed to Compile.
	Pattern string

	// Reason describes what is wrong with the pattern.
	Reason string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q: %s", e.Pattern, e.Reason)
}

// DuplicateRouteError reports a pattern registered twice. Two patterns are
// duplicates when they compile to the same shape, so "/a/b" and "/a/b/"
// collide, as do "/p/:id" and "/p/:name".
type DuplicateRouteError struct {
	// Pattern is the raw pattern string of the rejected registration.
	Pattern string

	// Existing is the canonical form of the already-registered pattern.
	Existing string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("route pattern %q already registered as %q", e.Pattern, e.Existing)
}

// NotFoundError surfaces an unmatched path through the error-handler path.
// An unmatched Resolve is not an error by itself; this type exists so a
// fallback handler can distinguish "no route" from a failed page handler.
type NotFoundError struct {
	// Path is the canonicalized path that matched no route.
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no route matches %q", e.Path)
}
