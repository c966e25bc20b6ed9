package middleware

import (
	"context"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func nopHandler(ctx context.Context, res *router.Resolution) error { return nil }

// resolveTest resolves path against a small fixed table, failing the
// test if the resolution does not match.
func resolveTest(t testing.TB, path string) *router.Resolution {
	t.Helper()
	tbl := router.NewTable()
	tbl.MustRegister("/", nopHandler)
	tbl.MustRegister("/projects/:id", nopHandler)
	tbl.MustRegister("/files/*path", nopHandler)

	res := tbl.Resolve(path)
	if !res.Matched() {
		t.Fatalf("Resolve(%q) did not match", path)
	}
	return res
}
