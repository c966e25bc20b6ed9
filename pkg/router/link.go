package router

// Link describes a navigation link for the UI layer: its target and how it
// reports activity against the current navigation state. The UI renders
// the anchor; the router only answers "is this link active".
type Link struct {
	// Href is the link target path.
	Href string

	// ActiveClass is the class name reported while the link is active.
	ActiveClass string

	// Exact requires the active path to equal Href. When false, a path
	// nested under Href also activates the link.
	Exact bool
}

// NavLink is a Link with common defaults: "active" class, exact matching.
func NavLink(href string) Link {
	return Link{Href: href, ActiveClass: "active", Exact: true}
}

// Active reports whether the link is active for the current state.
func (l Link) Active(state *NavigationState) bool {
	return state.IsActive(l.Href, l.Exact)
}

// ClassFor returns ActiveClass while the link is active, else "".
func (l Link) ClassFor(state *NavigationState) string {
	if l.Active(state) {
		return l.ActiveClass
	}
	return ""
}
