package router

import "github.com/wayfind-dev/wayfind/pkg/routepath"

// CanonicalizeResult contains the result of path canonicalization.
type CanonicalizeResult = routepath.Result

// Path canonicalization errors.
var (
	ErrNotRelative  = routepath.ErrNotRelative
	ErrBackslash    = routepath.ErrBackslash
	ErrNullByte     = routepath.ErrNullByte
	ErrBadEscape    = routepath.ErrBadEscape
	ErrEscapesRoot  = routepath.ErrEscapesRoot
	ErrEncodedSlash = routepath.ErrEncodedSlash
)

// Canonicalize normalizes a URL path according to the routing contract.
func Canonicalize(input string) (CanonicalizeResult, error) {
	return routepath.Canonicalize(input)
}

// ValidateNavTarget canonicalizes and validates a navigation target.
func ValidateNavTarget(path string) (string, error) {
	return routepath.ValidateNavTarget(path)
}

// DecodeSegment percent-decodes a single bound parameter value.
func DecodeSegment(segment string, catchAll bool) (string, error) {
	return routepath.DecodeSegment(segment, catchAll)
}
