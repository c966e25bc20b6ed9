// Package routepath normalizes URL paths before they reach the route table.
//
// The matcher operates on canonical paths only: query string and fragment
// stripped, redundant slashes collapsed, dot segments resolved, no trailing
// slash except for the root. Canonicalization also rejects inputs that are
// never legitimate navigation targets (backslashes, NUL bytes, malformed
// percent escapes, paths that climb above the root).
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Result is the outcome of canonicalizing a raw path.
type Result struct {
	// Path is the canonical path, always starting with "/".
	Path string

	// Query is the query string without the leading "?", verbatim.
	Query string

	// Fragment is the fragment without the leading "#", verbatim.
	Fragment string

	// Changed reports whether canonicalization modified the path.
	Changed bool
}

// Canonicalization errors.
var (
	ErrNotRelative  = errors.New("path is not application-relative")
	ErrBackslash    = errors.New("path contains backslash")
	ErrNullByte     = errors.New("path contains null byte")
	ErrBadEscape    = errors.New("invalid percent escape sequence")
	ErrEscapesRoot  = errors.New("path escapes root via ..")
	ErrEncodedSlash = errors.New("encoded slash in single-segment parameter")
)

// Split separates a raw navigation target into path, query and fragment.
// Query and fragment are returned without their leading "?" and "#".
func Split(input string) (path, query, fragment string) {
	path, fragment, _ = strings.Cut(input, "#")
	path, query, _ = strings.Cut(path, "?")
	return path, query, fragment
}

// Canonicalize normalizes a raw path for matching.
//
// Transformations:
//   - strip query string and fragment (returned separately)
//   - ensure a leading "/"
//   - collapse repeated slashes
//   - drop "." segments, resolve ".." segments
//   - drop the trailing slash (root stays "/")
//
// Rejected inputs: backslash, NUL (literal or %00), malformed percent
// escapes, ".." that would climb above the root.
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	path, query, fragment := Split(input)

	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslash
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByte
	}
	if strings.Contains(path, "%") {
		if err := checkEscapes(path); err != nil {
			return Result{}, err
		}
	}

	original := path

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(kept) == 0 {
				return Result{}, ErrEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}
	path = "/" + strings.Join(kept, "/")

	return Result{
		Path:     path,
		Query:    query,
		Fragment: fragment,
		Changed:  path != original,
	}, nil
}

// Segments splits a canonical path into its path segments.
// The root path yields nil.
func Segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// DecodeSegment percent-decodes a single bound parameter value.
//
// Matching binds values verbatim; decoding is opt-in for callers. For
// single-segment parameters a decoded "/" means the client smuggled a path
// separator through an escape, which is rejected. Catch-all values keep
// their separators.
func DecodeSegment(segment string, catchAll bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrBadEscape
	}
	if !catchAll && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlash
	}
	return decoded, nil
}

// ValidateNavTarget canonicalizes a navigation target and confirms it is
// application-relative. Absolute URLs and scheme-relative URLs are rejected
// so a navigation event can never turn into an open redirect.
func ValidateNavTarget(path string) (string, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrNotRelative
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrNotRelative
	}

	result, err := Canonicalize(path)
	if err != nil {
		return "", err
	}
	if result.Query != "" {
		return result.Path + "?" + result.Query, nil
	}
	return result.Path, nil
}

// checkEscapes verifies every "%" starts a valid two-digit hex escape.
func checkEscapes(path string) error {
	for i := 0; i < len(path); {
		if path[i] != '%' {
			i++
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return ErrBadEscape
		}
		i += 3
	}
	return nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
