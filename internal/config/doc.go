// Package config loads and validates wayfind.json, the project
// configuration file.
//
// The config declares the route table (pattern, page, optional error
// page), the dev server address, the build output directory, and the
// deploy target. The declarative route list is the only registration
// surface the CLI and dev server use.
package config
