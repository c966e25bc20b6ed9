package router

import (
	"fmt"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// SegmentKind identifies what a pattern segment matches.
type SegmentKind int

const (
	// SegmentLiteral matches one path segment exactly, case-sensitively.
	SegmentLiteral SegmentKind = iota

	// SegmentParam matches any single non-empty path segment and binds it.
	SegmentParam

	// SegmentWildcard matches all remaining path segments, including none.
	SegmentWildcard
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentParam:
		return "param"
	case SegmentWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Segment is one compiled element of a pattern.
type Segment struct {
	// Kind is the segment kind.
	Kind SegmentKind

	// Text is the literal text for SegmentLiteral segments.
	Text string

	// Name is the binding name for SegmentParam and named SegmentWildcard
	// segments. A bare "*" wildcard has an empty Name and binds nothing.
	Name string
}

// Pattern is a compiled route pattern. Immutable once compiled.
type Pattern struct {
	raw      string
	segments []Segment
	wildcard bool
}

// Compile parses a route pattern string.
//
// The pattern is split on "/" after normalizing leading and trailing
// slashes, so "/a/b" and "/a/b/" compile identically. A segment starting
// with ":" is a parameter, "*" or "*name" is a catch-all, anything else is
// a literal.
//
// Compile fails with *InvalidPatternError when a catch-all is not the final
// segment, when a parameter name is empty, or when a binding name repeats.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{raw: pattern}

	raw := strings.Trim(pattern, "/")
	if raw == "" {
		// Root pattern: zero segments.
		return p, nil
	}

	seen := make(map[string]bool)
	parts := strings.Split(raw, "/")

	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "*"):
			if i != len(parts)-1 {
				return nil, &InvalidPatternError{Pattern: pattern, Reason: "catch-all must be the final segment"}
			}
			name := part[1:]
			if name != "" && seen[name] {
				return nil, &InvalidPatternError{Pattern: pattern, Reason: fmt.Sprintf("duplicate parameter name %q", name)}
			}
			p.segments = append(p.segments, Segment{Kind: SegmentWildcard, Name: name})
			p.wildcard = true

		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, &InvalidPatternError{Pattern: pattern, Reason: "empty parameter name"}
			}
			if seen[name] {
				return nil, &InvalidPatternError{Pattern: pattern, Reason: fmt.Sprintf("duplicate parameter name %q", name)}
			}
			seen[name] = true
			p.segments = append(p.segments, Segment{Kind: SegmentParam, Name: name})

		case part == "":
			// Produced by doubled slashes; skip like canonicalization does.
			continue

		default:
			p.segments = append(p.segments, Segment{Kind: SegmentLiteral, Text: part})
		}
	}

	return p, nil
}

// MustCompile is Compile that panics on error, for static route tables.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Raw returns the pattern string as passed to Compile.
func (p *Pattern) Raw() string {
	return p.raw
}

// Segments returns the compiled segments in order.
func (p *Pattern) Segments() []Segment {
	return p.segments
}

// HasWildcard reports whether the pattern ends in a catch-all.
func (p *Pattern) HasWildcard() bool {
	return p.wildcard
}

// ParamNames returns the binding names in pattern order, catch-all last.
func (p *Pattern) ParamNames() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.Kind != SegmentLiteral && seg.Name != "" {
			names = append(names, seg.Name)
		}
	}
	return names
}

// Canonical returns the normalized pattern string. Patterns with the same
// shape share a canonical form regardless of slashes or parameter names:
// "/p/:id/" and "p/:name" both canonicalize to "/p/:".
func (p *Pattern) Canonical() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		switch seg.Kind {
		case SegmentLiteral:
			b.WriteString(seg.Text)
		case SegmentParam:
			b.WriteByte(':')
		case SegmentWildcard:
			b.WriteByte('*')
		}
	}
	return b.String()
}

// Match reports whether a canonical path satisfies this single pattern and
// returns the bound parameters. The route table resolves against all
// patterns at once; Match exists for callers that hold one pattern, such as
// link-activity checks against a pattern prefix.
func (p *Pattern) Match(path string) (Params, bool) {
	segments := routepath.Segments(path)
	params := make(Params)

	for i, seg := range p.segments {
		switch seg.Kind {
		case SegmentWildcard:
			if seg.Name != "" {
				params[seg.Name] = strings.Join(segments[i:], "/")
			}
			return params, true
		case SegmentParam:
			if i >= len(segments) || segments[i] == "" {
				return nil, false
			}
			params[seg.Name] = segments[i]
		case SegmentLiteral:
			if i >= len(segments) || segments[i] != seg.Text {
				return nil, false
			}
		}
	}

	if len(segments) != len(p.segments) {
		return nil, false
	}
	return params, true
}
