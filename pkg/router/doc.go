// Package router implements client-side route resolution for Wayfind.
//
// The router provides:
//   - Pattern compilation (literal, :param and trailing catch-all segments)
//   - A build-once, read-many route table backed by a radix tree
//   - Pure synchronous path resolution with parameter extraction
//   - A navigation dispatcher with per-route error boundaries
//
// # Patterns
//
// Route patterns are "/"-delimited templates:
//
//	/               root
//	/about          literal segments
//	/profile/:id    named parameter, binds one non-empty segment
//	/docs/*rest     catch-all, binds the remaining segments (may be empty)
//
// A catch-all must be the final segment, and parameter names may not repeat
// within one pattern.
//
// # Usage
//
//	tbl := router.NewTable()
//	tbl.Register("/", homePage)
//	tbl.Register("/profile/:id", profilePage,
//		router.WithErrorHandler(profileError))
//
//	res := tbl.Resolve("/profile/42")
//	if res.Matched() {
//	    // res.Params()["id"] == "42"
//	}
//
// The table freezes on first Resolve; registration strictly precedes
// matching. Resolve is safe for any number of concurrent callers.
//
// When two patterns could match the same path, the more specific one wins:
// literal segments beat parameters, parameters beat catch-alls.
// Registration order never affects priority.
//
// Navigation events are dispatched through a Navigator, which resolves the
// path, runs the matched handler through the middleware chain, and routes
// handler failures to the nearest error boundary.
package router
