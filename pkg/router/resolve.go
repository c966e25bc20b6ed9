package router

import "github.com/wayfind-dev/wayfind/pkg/routepath"

// Resolution is the read-only outcome of matching one path against the
// table: either a matched route with its bound parameters, or an unmatched
// path. Produced fresh per Resolve call and owned by the caller.
type Resolution struct {
	route  *Route
	params Params
	path   string
}

// Resolve matches a path against the table.
//
// The path is canonicalized first (query string and fragment stripped,
// slashes normalized), so "/profile/42" and "/profile/42/" resolve
// identically. Matching is pure and synchronous: it performs no I/O, never
// suspends, and allocates a fresh parameter map, so resolving the same
// path twice against an unchanged table yields identical results.
//
// Paths that fail canonicalization (NUL bytes, root escapes, malformed
// escapes) resolve to no match rather than an error; they can never name a
// registered route.
func (t *Table) Resolve(path string) *Resolution {
	t.Freeze()

	canon, err := routepath.Canonicalize(path)
	if err != nil {
		return &Resolution{path: path}
	}

	params := make(Params)
	route, ok := t.root.match(routepath.Segments(canon.Path), params)
	if !ok {
		return &Resolution{path: canon.Path}
	}

	return &Resolution{route: route, params: params, path: canon.Path}
}

// Matched reports whether a route was found.
func (r *Resolution) Matched() bool {
	return r.route != nil
}

// Path returns the canonicalized path that was resolved.
func (r *Resolution) Path() string {
	return r.path
}

// Route returns the matched route, or nil.
func (r *Resolution) Route() *Route {
	return r.route
}

// Handler returns the matched route's handler, or nil.
func (r *Resolution) Handler() Handler {
	if r.route == nil {
		return nil
	}
	return r.route.handler
}

// Params returns the bound parameters. Values are the path segments
// verbatim: they are not percent-decoded. Callers that need decoding use
// routepath.DecodeSegment. The map is a snapshot; mutating it does not
// affect the table or later resolutions.
func (r *Resolution) Params() Params {
	return r.params
}

// Param returns one bound parameter value.
func (r *Resolution) Param(name string) (string, bool) {
	v, ok := r.params[name]
	return v, ok
}

// Bind populates a struct from the bound parameters via `param` tags.
func (r *Resolution) Bind(target any) error {
	return r.params.Bind(target)
}
