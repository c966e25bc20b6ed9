package deploy

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskPublisher publishes a built site to a local directory.
type DiskPublisher struct {
	dir string
}

// NewDiskPublisher creates a publisher targeting dir. The directory is
// created if it does not exist.
func NewDiskPublisher(dir string) (*DiskPublisher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskPublisher{dir: dir}, nil
}

// Dir returns the target directory.
func (p *DiskPublisher) Dir() string {
	return p.dir
}

// Publish copies the build output, writes the manifest, and duplicates
// the app shell for each static route.
func (p *DiskPublisher) Publish(ctx context.Context, site Site) error {
	files, err := collectFiles(site.BuildDir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.copyFile(f.abs, filepath.Join(p.dir, filepath.FromSlash(f.rel))); err != nil {
			return err
		}
	}

	if site.Manifest != nil {
		mf, err := os.Create(filepath.Join(p.dir, ManifestName))
		if err != nil {
			return err
		}
		if _, err := site.Manifest.WriteTo(mf); err != nil {
			mf.Close()
			return err
		}
		if err := mf.Close(); err != nil {
			return err
		}
	}

	shell := filepath.Join(site.BuildDir, IndexName)
	for _, dest := range shellCopies(site.Manifest) {
		if err := p.copyFile(shell, filepath.Join(p.dir, filepath.FromSlash(dest))); err != nil {
			return err
		}
	}

	return nil
}

func (p *DiskPublisher) copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
