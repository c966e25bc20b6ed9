package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wayfind.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultBuildDir is the default build output directory.
	DefaultBuildDir = "dist"
)

// Config represents the complete wayfind.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Routes is the declarative route table.
	Routes []RouteConfig `json:"routes"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Build contains build output configuration.
	Build BuildConfig `json:"build,omitempty"`

	// Deploy contains the deploy target, if any.
	Deploy *DeployConfig `json:"deploy,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouteConfig declares one route.
type RouteConfig struct {
	// Pattern is the route pattern (e.g., "/profile/:id").
	Pattern string `json:"pattern"`

	// Page is the page identifier the route renders.
	Page string `json:"page"`

	// ErrorPage is the page shown when this route's handler fails.
	ErrorPage string `json:"errorPage,omitempty"`

	// Name is an optional route name (defaults to the pattern).
	Name string `json:"name,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`
}

// BuildConfig contains build output settings.
type BuildConfig struct {
	// Output is the build output directory holding the app shell.
	Output string `json:"output,omitempty"`
}

// DeployConfig contains the deploy target. Exactly one of Dir or S3
// must be set.
type DeployConfig struct {
	// Dir is a local directory target.
	Dir string `json:"dir,omitempty"`

	// S3 is an object storage target.
	S3 *S3Config `json:"s3,omitempty"`

	// CacheControl sets the Cache-Control header for published objects.
	CacheControl string `json:"cacheControl,omitempty"`
}

// S3Config describes an S3 deploy target.
type S3Config struct {
	// Bucket is the bucket name.
	Bucket string `json:"bucket"`

	// Prefix is the key prefix (e.g., "app/").
	Prefix string `json:"prefix,omitempty"`

	// Region overrides the AWS region from the environment.
	Region string `json:"region,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version: "0.1.0",
		Dev: DevConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
		Build: BuildConfig{
			Output: DefaultBuildDir,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for wayfind.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E060").
				WithDetail("No wayfind.json found in " + filepath.Dir(path)).
				WithSuggestion("Create wayfind.json with a \"routes\" list")
		}
		return nil, errors.New("E020").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		werr := errors.New("E020").
			WithDetail("Failed to parse wayfind.json: " + err.Error()).
			WithSuggestion("Check that wayfind.json is valid JSON")
		if serr, ok := err.(*json.SyntaxError); ok {
			line, col := offsetPosition(data, serr.Offset)
			werr = werr.WithLocation(path, line, col)
		}
		return nil, werr
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E020").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E020").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultBuildDir
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E022").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Dev.Port))
	}

	for i, r := range c.Routes {
		if r.Pattern == "" || r.Page == "" {
			return errors.New("E024").
				WithDetail("Route entry " + strconv.Itoa(i) + " must set both \"pattern\" and \"page\"")
		}
	}

	if c.Deploy != nil {
		hasDir := c.Deploy.Dir != ""
		hasS3 := c.Deploy.S3 != nil
		if hasDir == hasS3 {
			return errors.New("E023").
				WithSuggestion("Configure either \"dir\" or \"s3\", not both")
		}
		if hasS3 && c.Deploy.S3.Bucket == "" {
			return errors.New("E023").
				WithDetail("The s3 target must set \"bucket\"")
		}
	}

	return nil
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// BuildPath returns the absolute path to the build output directory.
func (c *Config) BuildPath() string {
	if filepath.IsAbs(c.Build.Output) {
		return c.Build.Output
	}
	return filepath.Join(c.Dir(), c.Build.Output)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing wayfind.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E060").
				WithDetail("No wayfind.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// offsetPosition converts a byte offset into a 1-based line and column.
func offsetPosition(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
