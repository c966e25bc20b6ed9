package router

import (
	"strings"
	"sync"
)

// NavState is the navigation state machine phase.
type NavState int

const (
	// StateIdle means no path is being processed.
	StateIdle NavState = iota

	// StateResolving means a path is being matched. Matching is
	// synchronous, so this state is only ever observed by OnChange hooks.
	StateResolving

	// StateResolved means the path matched and its handler completed.
	StateResolved

	// StateFailed means the path matched no route, or the handler failed.
	StateFailed
)

// String returns the state name.
func (s NavState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one observed navigation state: the active path, the
// resolution for it, and the machine phase. Read-only.
type Snapshot struct {
	// State is the navigation phase.
	State NavState

	// Path is the canonicalized active path. Empty while idle.
	Path string

	// Resolution is the match result for Path. Nil while idle or when the
	// path was rejected before matching.
	Resolution *Resolution

	// Err is the failure that put the machine into StateFailed, if any.
	Err error
}

// NavigationState holds the process-wide current navigation. It has a
// single writer, the Navigator, and any number of concurrent readers
// (links asking "am I active", the dev server mirroring state).
type NavigationState struct {
	mu      sync.RWMutex
	current Snapshot
}

// NewNavigationState creates an idle navigation state.
func NewNavigationState() *NavigationState {
	return &NavigationState{}
}

// Current returns the latest snapshot.
func (s *NavigationState) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Path returns the active path, or "" while idle.
func (s *NavigationState) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Path
}

// IsActive reports whether a link target is active for the current path.
// With exact set, the canonicalized href must equal the active path;
// otherwise the active path may extend it at a segment boundary, so
// "/docs" is active for "/docs/intro" but not for "/docsy".
func (s *NavigationState) IsActive(href string, exact bool) bool {
	canon, err := Canonicalize(href)
	if err != nil {
		return false
	}

	current := s.Path()
	if current == "" {
		return false
	}
	if canon.Path == current {
		return true
	}
	if exact {
		return false
	}
	if canon.Path == "/" {
		// Every path extends the root; prefix matching the root would mark
		// a home link active everywhere.
		return false
	}
	return strings.HasPrefix(current, canon.Path+"/")
}

// set records a new snapshot.
func (s *NavigationState) set(snap Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}
