package deploy

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/manifest"
)

// ManifestName is the key the route manifest is published under.
const ManifestName = "wayfind.manifest.json"

// IndexName is the app shell file every SPA build must contain.
const IndexName = "index.html"

var (
	// ErrNoIndex is returned when the build directory has no app shell.
	ErrNoIndex = errors.New("deploy: build directory has no index.html")

	// ErrEmptyBuild is returned when the build directory has no files.
	ErrEmptyBuild = errors.New("deploy: build directory is empty")
)

// Site is a built app ready to publish.
type Site struct {
	// BuildDir is the directory holding the build output.
	BuildDir string

	// Manifest is the route manifest to publish alongside the app.
	Manifest *manifest.Manifest
}

// Publisher writes a built site to a hosting target.
type Publisher interface {
	// Publish uploads every file under site.BuildDir, the manifest, and
	// a copy of the app shell for each static route.
	Publish(ctx context.Context, site Site) error
}

// file is one build output entry, keyed by its slash-separated path
// relative to the build dir.
type file struct {
	rel  string
	abs  string
	size int64
}

// collectFiles walks the build directory and returns its regular files.
// Returns ErrEmptyBuild or ErrNoIndex when the build is unusable.
func collectFiles(buildDir string) ([]file, error) {
	var files []file
	hasIndex := false

	err := filepath.WalkDir(buildDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(buildDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == IndexName {
			hasIndex = true
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, file{rel: rel, abs: p, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrEmptyBuild
	}
	if !hasIndex {
		return nil, ErrNoIndex
	}
	return files, nil
}

// shellCopies returns the relative destinations for per-route copies of
// the app shell, one per static route except the root (which is the
// shell itself).
func shellCopies(m *manifest.Manifest) []string {
	if m == nil {
		return nil
	}
	var dests []string
	for _, p := range m.StaticPaths() {
		if p == "/" {
			continue
		}
		dests = append(dests, path.Join(strings.TrimPrefix(p, "/"), IndexName))
	}
	return dests
}

// contentType guesses a Content-Type from the file extension.
func contentType(rel string) string {
	if ct := mime.TypeByExtension(path.Ext(rel)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
