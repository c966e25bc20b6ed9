package router

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// Property: a path built to satisfy a pattern's literal/param structure
// resolves to that pattern with the constructed values bound verbatim.
func TestResolveRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numSegments := rapid.IntRange(1, 4).Draw(t, "numSegments")
		patternSegs := make([]string, numSegments)
		pathSegs := make([]string, numSegments)
		wantParams := make(map[string]string)

		for i := 0; i < numSegments; i++ {
			if rapid.Bool().Draw(t, fmt.Sprintf("isParam_%d", i)) {
				// Suffix with the segment index so names never repeat
				// within one pattern.
				name := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, fmt.Sprintf("name_%d", i)) + fmt.Sprint(i)
				// First character excludes "." so "." and ".." segments,
				// which canonicalization treats specially, cannot occur.
				value := rapid.StringMatching(`[a-zA-Z0-9_~-][a-zA-Z0-9._~-]{0,11}`).Draw(t, fmt.Sprintf("value_%d", i))
				patternSegs[i] = ":" + name
				pathSegs[i] = value
				wantParams[name] = value
			} else {
				lit := rapid.StringMatching(`[a-z][a-z0-9-]{0,10}`).Draw(t, fmt.Sprintf("literal_%d", i))
				patternSegs[i] = lit
				pathSegs[i] = lit
			}
		}

		tbl := NewTable()
		pattern := "/" + strings.Join(patternSegs, "/")
		if err := tbl.Register(pattern, nopHandler); err != nil {
			t.Fatalf("Register(%q) error: %v", pattern, err)
		}

		path := "/" + strings.Join(pathSegs, "/")
		res := tbl.Resolve(path)
		if !res.Matched() {
			t.Fatalf("pattern %q did not match constructed path %q", pattern, path)
		}
		if res.Route().Pattern().Raw() != pattern {
			t.Fatalf("matched %q, want %q", res.Route().Pattern().Raw(), pattern)
		}

		for name, want := range wantParams {
			got, ok := res.Param(name)
			if !ok {
				t.Fatalf("parameter %q not bound", name)
			}
			if got != want {
				t.Fatalf("parameter %q = %q, want %q", name, got, want)
			}
		}
		if len(res.Params()) != len(wantParams) {
			t.Fatalf("bound %d params, want %d", len(res.Params()), len(wantParams))
		}
	})
}

// Property: resolving is idempotent; the same path against an unchanged
// table yields the same route, path and bindings every time.
func TestResolveIdempotentProperty(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/", nopHandler)
	tbl.MustRegister("/users/:id", nopHandler)
	tbl.MustRegister("/users/:id/posts/:postID", nopHandler)
	tbl.MustRegister("/files/*path", nopHandler)

	rapid.Check(t, func(t *rapid.T) {
		numSegments := rapid.IntRange(0, 5).Draw(t, "numSegments")
		segs := make([]string, numSegments)
		for i := 0; i < numSegments; i++ {
			segs[i] = rapid.StringMatching(`[a-zA-Z0-9._~-]{1,10}`).Draw(t, fmt.Sprintf("seg_%d", i))
		}
		path := "/" + strings.Join(segs, "/")

		first := tbl.Resolve(path)
		second := tbl.Resolve(path)

		if first.Matched() != second.Matched() {
			t.Fatalf("Resolve(%q) matched inconsistently", path)
		}
		if first.Route() != second.Route() {
			t.Fatalf("Resolve(%q) returned different routes", path)
		}
		if first.Path() != second.Path() {
			t.Fatalf("Resolve(%q) paths differ: %q vs %q", path, first.Path(), second.Path())
		}
		if len(first.Params()) != len(second.Params()) {
			t.Fatalf("Resolve(%q) bound different param counts", path)
		}
		for k, v := range first.Params() {
			if second.Params()[k] != v {
				t.Fatalf("Resolve(%q) params[%q] differ: %q vs %q", path, k, v, second.Params()[k])
			}
		}
	})
}

// Property: trailing slashes never change the resolution.
func TestResolveTrailingSlashProperty(t *testing.T) {
	tbl := NewTable()
	tbl.MustRegister("/", nopHandler)
	tbl.MustRegister("/users/:id", nopHandler)
	tbl.MustRegister("/files/*path", nopHandler)

	rapid.Check(t, func(t *rapid.T) {
		numSegments := rapid.IntRange(0, 4).Draw(t, "numSegments")
		segs := make([]string, numSegments)
		for i := 0; i < numSegments; i++ {
			segs[i] = rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(t, fmt.Sprintf("seg_%d", i))
		}
		path := "/" + strings.Join(segs, "/")

		plain := tbl.Resolve(path)
		slashed := tbl.Resolve(path + "/")

		if plain.Matched() != slashed.Matched() || plain.Route() != slashed.Route() {
			t.Fatalf("Resolve(%q) and Resolve(%q/) disagree", path, path)
		}
		if plain.Path() != slashed.Path() {
			t.Fatalf("canonical paths differ: %q vs %q", plain.Path(), slashed.Path())
		}
	})
}
