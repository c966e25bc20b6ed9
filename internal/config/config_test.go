package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	wferrors "github.com/wayfind-dev/wayfind/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "name": "demo",
  "routes": [
    {"pattern": "/", "page": "home"},
    {"pattern": "/profile/:id", "page": "profile", "errorPage": "profile-error"}
  ],
  "dev": {"port": 4000}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if len(cfg.Routes) != 2 {
		t.Fatalf("Routes = %d, want 2", len(cfg.Routes))
	}
	if cfg.Routes[1].ErrorPage != "profile-error" {
		t.Errorf("ErrorPage = %q", cfg.Routes[1].ErrorPage)
	}
	if cfg.Dev.Port != 4000 {
		t.Errorf("Dev.Port = %d, want 4000", cfg.Dev.Port)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want default", cfg.Dev.Host)
	}
	if cfg.Build.Output != DefaultBuildDir {
		t.Errorf("Build.Output = %q, want default", cfg.Build.Output)
	}
	if cfg.DevAddress() != "localhost:4000" {
		t.Errorf("DevAddress() = %q", cfg.DevAddress())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	var werr *wferrors.WayfindError
	if !stderrors.As(err, &werr) {
		t.Fatalf("error type %T", err)
	}
	if werr.Code != "E060" {
		t.Errorf("Code = %q, want E060", werr.Code)
	}
}

func TestLoadMalformedReportsLocation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "{\n  \"name\": \"demo\",\n  \"routes\": [,]\n}\n")

	_, err := Load(dir)
	var werr *wferrors.WayfindError
	if !stderrors.As(err, &werr) {
		t.Fatalf("error type %T", err)
	}
	if werr.Code != "E020" {
		t.Errorf("Code = %q, want E020", werr.Code)
	}
	if werr.Location == nil {
		t.Fatal("expected a location for the syntax error")
	}
	if werr.Location.Line != 3 {
		t.Errorf("Location.Line = %d, want 3", werr.Location.Line)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{
			name:     "bad port",
			mutate:   func(c *Config) { c.Dev.Port = 70000 },
			wantCode: "E022",
		},
		{
			name: "route without page",
			mutate: func(c *Config) {
				c.Routes = []RouteConfig{{Pattern: "/x"}}
			},
			wantCode: "E024",
		},
		{
			name: "deploy with no target",
			mutate: func(c *Config) {
				c.Deploy = &DeployConfig{}
			},
			wantCode: "E023",
		},
		{
			name: "deploy with both targets",
			mutate: func(c *Config) {
				c.Deploy = &DeployConfig{Dir: "out", S3: &S3Config{Bucket: "b"}}
			},
			wantCode: "E023",
		},
		{
			name: "s3 without bucket",
			mutate: func(c *Config) {
				c.Deploy = &DeployConfig{S3: &S3Config{}}
			},
			wantCode: "E023",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			var werr *wferrors.WayfindError
			if !stderrors.As(err, &werr) {
				t.Fatalf("error type %T", err)
			}
			if werr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", werr.Code, tt.wantCode)
			}
		})
	}

	cfg := New()
	cfg.Deploy = &DeployConfig{Dir: "out"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Name = "demo"
	cfg.Routes = []RouteConfig{{Pattern: "/", Page: "home"}}

	path := filepath.Join(dir, ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Name != "demo" || len(loaded.Routes) != 1 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{"routes": []}`)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	// Resolve symlinks so macOS /tmp vs /private/tmp compares equal.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindProjectRoot = %q, want %q", found, root)
	}
}

func TestBuildPath(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"routes": [], "build": {"output": "public"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := cfg.BuildPath(); got != filepath.Join(dir, "public") {
		t.Errorf("BuildPath() = %q", got)
	}
}
