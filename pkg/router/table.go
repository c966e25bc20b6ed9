package router

import "sync"

// Route pairs a compiled pattern with its handler and optional error
// boundary. Routes are owned by the table and immutable after
// registration.
type Route struct {
	pattern    *Pattern
	handler    Handler
	errHandler ErrorHandler
	name       string
}

// Pattern returns the compiled pattern.
func (r *Route) Pattern() *Pattern {
	return r.pattern
}

// Handler returns the page handler.
func (r *Route) Handler() Handler {
	return r.handler
}

// ErrorHandler returns the per-route error boundary, or nil.
func (r *Route) ErrorHandler() ErrorHandler {
	return r.errHandler
}

// Name returns the route's display name. Defaults to the raw pattern.
func (r *Route) Name() string {
	if r.name != "" {
		return r.name
	}
	return r.pattern.Raw()
}

// RouteOption configures route registration.
type RouteOption func(*Route)

// WithErrorHandler attaches an error boundary to the route. A handler
// failure on this route is delivered here instead of the navigator's
// fallback.
func WithErrorHandler(h ErrorHandler) RouteOption {
	return func(r *Route) {
		r.errHandler = h
	}
}

// WithName sets a display name for the route, used in manifests and logs.
func WithName(name string) RouteOption {
	return func(r *Route) {
		r.name = name
	}
}

// Table is the route table: an ordered collection of routes built once at
// startup, then shared read-only across any number of concurrent Resolve
// calls. The first Resolve freezes the table.
type Table struct {
	root    *node
	routes  []*Route
	byCanon map[string]*Route

	freezeOnce sync.Once
	frozen     bool
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		root:    newNode(""),
		byCanon: make(map[string]*Route),
	}
}

// Register compiles the pattern and adds a route for it.
//
// It fails with *InvalidPatternError for malformed patterns, with
// *DuplicateRouteError when a pattern of the same shape is already
// registered, and with ErrTableFrozen once matching has begun.
// Registration happens single-threaded before the table is shared.
func (t *Table) Register(pattern string, handler Handler, opts ...RouteOption) error {
	if t.frozen {
		return ErrTableFrozen
	}

	p, err := Compile(pattern)
	if err != nil {
		return err
	}

	canon := p.Canonical()
	if existing, ok := t.byCanon[canon]; ok {
		return &DuplicateRouteError{Pattern: pattern, Existing: existing.pattern.Raw()}
	}

	route := &Route{pattern: p, handler: handler}
	for _, opt := range opts {
		opt(route)
	}

	terminal := t.root.insert(p)
	if terminal.route != nil {
		return &DuplicateRouteError{Pattern: pattern, Existing: terminal.route.pattern.Raw()}
	}
	terminal.route = route

	t.byCanon[canon] = route
	t.routes = append(t.routes, route)
	return nil
}

// MustRegister is Register that panics on error, for static route tables
// where a bad pattern is a programmer error.
func (t *Table) MustRegister(pattern string, handler Handler, opts ...RouteOption) {
	if err := t.Register(pattern, handler, opts...); err != nil {
		panic(err)
	}
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []*Route {
	return t.routes
}

// Lookup returns the route registered for the exact pattern shape, if any.
func (t *Table) Lookup(pattern string) (*Route, bool) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, false
	}
	route, ok := t.byCanon[p.Canonical()]
	return route, ok
}

// Freeze ends the registration phase. Idempotent; called implicitly by the
// first Resolve.
func (t *Table) Freeze() {
	t.freezeOnce.Do(func() {
		t.frozen = true
	})
}

// Frozen reports whether the table still accepts registrations.
func (t *Table) Frozen() bool {
	return t.frozen
}
