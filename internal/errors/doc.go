// Package errors provides structured, coded errors for Wayfind.
//
// Every user-facing failure carries a stable code (e.g. "E001"), a
// category, a short message, and optionally a detail paragraph, a fix
// suggestion, a config file location, and a documentation link. The CLI
// renders them with Format(); the dev server returns them as JSON.
//
// Create errors from the registry:
//
//	return errors.New("E001").
//	    WithSuggestion(`parameters look like ":id", catch-alls like "*rest"`).
//	    Wrap(err)
//
// Codes are grouped by concern:
//
//	E001-E019  routing
//	E020-E039  configuration
//	E040-E049  dev server
//	E050-E059  deploy
//	E060-E069  CLI
package errors
