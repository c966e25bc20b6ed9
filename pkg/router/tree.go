package router

import "strings"

// node is a node in the matching tree.
type node struct {
	// segment is the literal text this node matches
	segment string

	// isParam indicates a parameter node (:id)
	isParam bool

	// isCatchAll indicates a catch-all node (* or *rest)
	isCatchAll bool

	// bindName is the binding name for param and named catch-all nodes
	bindName string

	// route is the route terminating at this node, if any
	route *Route

	// children are literal segment children
	children []*node

	// paramChild is the single parameter child
	paramChild *node

	// catchAllChild is the single catch-all child
	catchAllChild *node
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// findChild returns the literal child with an exact segment match.
func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves the literal child for a segment.
func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newNode(segment)
	n.children = append(n.children, child)
	return child
}

// addParamChild adds or retrieves the parameter child. The binding name of
// the first registration sticks; a second pattern reaching the same node
// with a different name terminates at the same place and is reported as a
// duplicate by the table.
func (n *node) addParamChild(name string) *node {
	if n.paramChild != nil {
		return n.paramChild
	}
	child := newNode("")
	child.isParam = true
	child.bindName = name
	n.paramChild = child
	return child
}

// addCatchAllChild adds or retrieves the catch-all child.
func (n *node) addCatchAllChild(name string) *node {
	if n.catchAllChild != nil {
		return n.catchAllChild
	}
	child := newNode("")
	child.isCatchAll = true
	child.bindName = name
	n.catchAllChild = child
	return child
}

// insert walks the compiled pattern from this node and returns the
// terminal node the route should attach to.
func (n *node) insert(p *Pattern) *node {
	current := n
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case SegmentWildcard:
			current = current.addCatchAllChild(seg.Name)
		case SegmentParam:
			current = current.addParamChild(seg.Name)
		default:
			current = current.addChild(seg.Text)
		}
	}
	return current
}

// match finds the route for the given path segments, binding parameters
// into params. Literal children are tried before the parameter child,
// which is tried before the catch-all, with backtracking between them.
// A catch-all matches an empty remainder.
func (n *node) match(segments []string, params Params) (*Route, bool) {
	if len(segments) == 0 {
		if n.route != nil {
			return n.route, true
		}
		if c := n.catchAllChild; c != nil && c.route != nil {
			if c.bindName != "" {
				params[c.bindName] = ""
			}
			return c.route, true
		}
		return nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if route, ok := child.match(remaining, params); ok {
			return route, true
		}
	}

	if n.paramChild != nil {
		params[n.paramChild.bindName] = segment
		if route, ok := n.paramChild.match(remaining, params); ok {
			return route, true
		}
		// Backtrack on failure
		delete(params, n.paramChild.bindName)
	}

	if c := n.catchAllChild; c != nil && c.route != nil {
		if c.bindName != "" {
			params[c.bindName] = strings.Join(segments, "/")
		}
		return c.route, true
	}

	return nil, false
}
