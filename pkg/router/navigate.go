package router

import "context"

// Handler handles a resolved navigation: conceptually, it renders the page
// for the matched route. A handler may load data and fail; that failure is
// reported to the route's error boundary, never confused with an
// unmatched path.
type Handler func(ctx context.Context, res *Resolution) error

// ErrorHandler handles a navigation failure: an unmatched path (err is a
// *NotFoundError) or a handler error on a matched route.
type ErrorHandler func(ctx context.Context, res *Resolution, err error)

// Navigator dispatches navigation events against a route table. It is the
// single writer of the navigation state; links, programmatic calls and the
// initial page load all funnel through Navigate.
type Navigator struct {
	table      *Table
	notFound   Handler
	fallback   ErrorHandler
	middleware []Middleware
	state      *NavigationState
	onChange   []func(Snapshot)
}

// NewNavigator creates a navigator over a route table.
func NewNavigator(table *Table) *Navigator {
	return &Navigator{
		table: table,
		state: NewNavigationState(),
	}
}

// SetNotFound sets the handler invoked for unmatched paths. Without one,
// unmatched paths are delivered to the fallback error handler.
func (n *Navigator) SetNotFound(h Handler) {
	n.notFound = h
}

// SetFallback sets the process-wide default error handler. It receives
// handler failures from routes without their own boundary, and unmatched
// paths when no not-found handler is set.
func (n *Navigator) SetFallback(h ErrorHandler) {
	n.fallback = h
}

// Use appends middleware applied to every handler invocation.
func (n *Navigator) Use(mw ...Middleware) {
	n.middleware = append(n.middleware, mw...)
}

// OnChange registers an observer called after every state transition.
// Observers run on the navigating goroutine; keep them fast.
func (n *Navigator) OnChange(fn func(Snapshot)) {
	n.onChange = append(n.onChange, fn)
}

// State returns the navigation state for concurrent readers.
func (n *Navigator) State() *NavigationState {
	return n.state
}

// Current returns the latest navigation snapshot.
func (n *Navigator) Current() Snapshot {
	return n.state.Current()
}

// Navigate dispatches a navigation event for a path.
//
// The path is resolved before any handler runs. On a match, the handler is
// invoked through the middleware chain; a handler error goes to the
// route's error boundary if it has one, else to the fallback. An unmatched
// path goes to the not-found handler, else to the fallback as a
// *NotFoundError. Exactly one boundary sees each failure. When no boundary
// exists at any level the error is returned to the caller; it is never
// swallowed.
func (n *Navigator) Navigate(ctx context.Context, path string) error {
	// Matching is pure and synchronous, so resolving first is unobservable;
	// every snapshot then carries the same canonical spelling of the path.
	res := n.table.Resolve(path)
	n.transition(Snapshot{State: StateResolving, Path: res.Path()})

	if !res.Matched() {
		return n.fail(ctx, res, &NotFoundError{Path: res.Path()}, true)
	}

	if err := n.invoke(ctx, res, res.Handler()); err != nil {
		return n.fail(ctx, res, err, false)
	}

	n.transition(Snapshot{State: StateResolved, Path: res.Path(), Resolution: res})
	return nil
}

// fail routes a navigation failure to the nearest boundary.
func (n *Navigator) fail(ctx context.Context, res *Resolution, err error, notFound bool) error {
	n.transition(Snapshot{State: StateFailed, Path: res.Path(), Resolution: res, Err: err})

	if notFound && n.notFound != nil {
		if nfErr := n.invoke(ctx, res, n.notFound); nfErr != nil {
			// The not-found page itself failed; fall through to the
			// fallback with that error.
			return n.deliver(ctx, res, nfErr)
		}
		return nil
	}

	if !notFound {
		if boundary := res.Route().ErrorHandler(); boundary != nil {
			boundary(ctx, res, err)
			return nil
		}
	}

	return n.deliver(ctx, res, err)
}

// deliver hands an error to the fallback, or returns it when none exists.
func (n *Navigator) deliver(ctx context.Context, res *Resolution, err error) error {
	if n.fallback != nil {
		n.fallback(ctx, res, err)
		return nil
	}
	return err
}

// invoke runs a handler through the middleware chain.
func (n *Navigator) invoke(ctx context.Context, res *Resolution, h Handler) error {
	if h == nil {
		return nil
	}

	next := func() error {
		return h(ctx, res)
	}
	for i := len(n.middleware) - 1; i >= 0; i-- {
		mw := n.middleware[i]
		inner := next
		next = func() error {
			return mw.Handle(ctx, res, inner)
		}
	}
	return next()
}

// transition records a snapshot and notifies observers.
func (n *Navigator) transition(snap Snapshot) {
	n.state.set(snap)
	for _, fn := range n.onChange {
		fn(snap)
	}
}
