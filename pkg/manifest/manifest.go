// Package manifest generates a JSON description of a route table.
//
// The manifest is the machine-readable view of the registered routes:
// the dev server exposes it at /api/routes, the CLI prints it, and
// deploy publishes it alongside the built app so hosting layers can
// pre-provision deep links.
package manifest

import (
	"encoding/json"
	"io"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Entry describes one registered route.
type Entry struct {
	// Pattern is the raw pattern the route was registered with.
	Pattern string `json:"pattern"`

	// Name is the route's name (defaults to the pattern).
	Name string `json:"name"`

	// Params lists the named parameters in pattern order, including a
	// named catch-all.
	Params []string `json:"params,omitempty"`

	// Wildcard reports whether the pattern ends in a catch-all.
	Wildcard bool `json:"wildcard,omitempty"`

	// Static reports whether the pattern has no parameters at all.
	// Static routes can be pre-rendered to fixed object keys on deploy.
	Static bool `json:"static"`
}

// Manifest is the serializable route manifest.
type Manifest struct {
	// Version is the manifest schema version.
	Version int `json:"version"`

	// App is the application name, if known.
	App string `json:"app,omitempty"`

	// Routes lists the registered routes in registration order.
	Routes []Entry `json:"routes"`
}

// Version is the current manifest schema version.
const Version = 1

// FromTable builds a manifest from the table's registered routes.
// Ordering follows registration order.
func FromTable(tbl *router.Table) *Manifest {
	routes := tbl.Routes()
	m := &Manifest{
		Version: Version,
		Routes:  make([]Entry, 0, len(routes)),
	}
	for _, rt := range routes {
		p := rt.Pattern()
		names := p.ParamNames()
		m.Routes = append(m.Routes, Entry{
			Pattern:  p.Raw(),
			Name:     rt.Name(),
			Params:   names,
			Wildcard: p.HasWildcard(),
			Static:   len(names) == 0 && !p.HasWildcard(),
		})
	}
	return m
}

// StaticPaths returns the concrete paths of all static routes. These
// are the deep links a deploy target can serve without rewriting.
func (m *Manifest) StaticPaths() []string {
	var paths []string
	for _, e := range m.Routes {
		if e.Static {
			paths = append(paths, e.Pattern)
		}
	}
	return paths
}

// WriteTo serializes the manifest as indented JSON.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// Parse reads a manifest from JSON.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
