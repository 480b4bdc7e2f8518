// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration for one packaging run. The command line
// fills in the run identity (source, build, version, platform,
// configuration); the YAML config file may override the tunables carrying
// yaml tags. A Config is immutable once the run starts.
type Config struct {
	// SourceDir is the root of the library checkout, containing src/
	SourceDir string
	// BuildDir contains one build output subdirectory per configuration
	BuildDir string
	// Version is the opaque version label, conventionally <date>_<revision>
	Version string
	// Platform is the target being packaged
	Platform Platform
	// Configuration is Debug, Release or Both
	Configuration Configuration

	// Product names the archive and the emitted manifest variables
	Product string `yaml:"product"`
	// Compression selects the archive codec, "gzip" (default) or "xz"
	Compression string `yaml:"compression"`
	// Jobs is the parallelism hint passed to the build executor
	Jobs int `yaml:"jobs"`
	// ExtraGNArgs are appended to the generated feature-flag list
	ExtraGNArgs []string `yaml:"extra_gn_args"`
	// ExtraTrimLibs are appended to the third_party trim allow-list
	ExtraTrimLibs []string `yaml:"extra_trim_libs"`
	// SystemTar prefers the host tar tool for gzip archives
	SystemTar bool `yaml:"system_tar"`
	// Debug enables debug logging
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SourceDir:     defaultSourceDir(),
		BuildDir:      mustGetwd(),
		Platform:      DefaultPlatform(),
		Configuration: ConfigurationBoth,
		Product:       "webrtc",
		Compression:   "gzip",
		Jobs:          5,
		SystemTar:     true,
	}
}

// LoadConfig loads tunable overrides from a YAML file on top of the
// defaults. An empty path falls back to the conventional location; a
// missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "rtcpack", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SrcDir returns the directory holding the library and dependency trees
func (c *Config) SrcDir() string {
	return filepath.Join(c.SourceDir, "src")
}

// OutDir returns the build output directory for one configuration
func (c *Config) OutDir(configuration Configuration) string {
	return filepath.Join(c.BuildDir, string(configuration))
}

// defaultSourceDir is the parent of the directory holding this executable.
// Matches the convention of running the tool from inside the checkout.
func defaultSourceDir() string {
	exe, err := os.Executable()
	if err != nil {
		return mustGetwd()
	}
	return filepath.Dir(filepath.Dir(exe))
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
