// Package middleware provides observability middleware for the Wayfind
// navigator: Prometheus metrics and OpenTelemetry tracing around page
// handler invocation.
//
// Both constructors return a router.Middleware, wired with
// Navigator.Use():
//
//	nav := router.NewNavigator(tbl)
//	nav.Use(
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	    middleware.OpenTelemetry(),
//	)
package middleware
