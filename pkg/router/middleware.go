package router

import "context"

// Middleware processes a navigation after resolution, before and after the
// page handler runs.
type Middleware interface {
	// Handle processes the navigation and optionally calls next.
	// Return an error to stop the chain and report a handler failure.
	// Return nil without calling next to stop the chain without error.
	Handle(ctx context.Context, res *Resolution, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx context.Context, res *Resolution, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, res *Resolution, next func() error) error {
	return f(ctx, res, next)
}
