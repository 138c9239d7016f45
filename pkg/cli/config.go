package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/netbuf/pkg/buffer"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".netbuf"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config represents the main configuration structure for a CLI app
type Config struct {
	// AppName is the application name
	AppName string `json:"-" yaml:"-"`

	// CurrentProfile is the name of the currently active profile
	CurrentProfile string `json:"current_profile,omitempty" yaml:"current_profile,omitempty"`

	// Profiles is a map of profile name to buffer settings
	Profiles map[string]*Profile `json:"profiles,omitempty" yaml:"profiles,omitempty"`

	// configPath is the path to the config file
	configPath string
}

// Profile holds the settings used to create buffers.
type Profile struct {
	// Name is the profile name
	Name string `json:"name" yaml:"name"`

	// Initial is the initial writable size (0 means buffer.DefaultInitialSize)
	Initial int `json:"initial,omitempty" yaml:"initial,omitempty"`

	// Prepend is the prepend reserve (nil means buffer.DefaultPrependSize)
	Prepend *int `json:"prepend" yaml:"prepend"`

	// Output is the preferred output format for this profile (optional)
	Output OutputFormat `json:"output,omitempty" yaml:"output,omitempty"`
}

// DefaultProfile returns a profile with the buffer package defaults.
func DefaultProfile() *Profile {
	prepend := buffer.DefaultPrependSize
	return &Profile{
		Name:    "default",
		Initial: buffer.DefaultInitialSize,
		Prepend: &prepend,
	}
}

// InitialSize returns the effective initial writable size.
func (p *Profile) InitialSize() int {
	if p == nil || p.Initial <= 0 {
		return buffer.DefaultInitialSize
	}
	return p.Initial
}

// PrependSize returns the effective prepend reserve.
func (p *Profile) PrependSize() int {
	if p == nil || p.Prepend == nil || *p.Prepend < 0 {
		return buffer.DefaultPrependSize
	}
	return *p.Prepend
}

// Options converts the profile into buffer options.
func (p *Profile) Options() []buffer.Option {
	return []buffer.Option{
		buffer.WithInitialSize(p.InitialSize()),
		buffer.WithPrependSize(p.PrependSize()),
	}
}

// NewBuffer creates a buffer configured by the profile.
func (p *Profile) NewBuffer() *buffer.Buffer {
	return buffer.New(p.Options()...)
}

// LoadConfig loads or creates configuration for the specified app
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from a custom path
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	var configPath string

	if customPath != "" {
		configPath = customPath
	} else {
		paths, err := NewPaths(appName)
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	// Ensure config directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		Profiles:   make(map[string]*Profile),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config file
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	for name, p := range cfg.Profiles {
		if p == nil {
			p = &Profile{}
			cfg.Profiles[name] = p
		}
		p.Name = name
	}

	cfg.AppName = appName
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// AddProfile adds or replaces a profile
func (c *Config) AddProfile(name string, p *Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Initial < 0 {
		return fmt.Errorf("profile %q: initial size must not be negative", name)
	}
	if p.Prepend != nil && *p.Prepend < 0 {
		return fmt.Errorf("profile %q: prepend size must not be negative", name)
	}
	p.Name = name
	c.Profiles[name] = p
	return c.Save()
}

// DeleteProfile removes a profile
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile sets the current profile
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns a specific profile
func (c *Config) GetProfile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// ResolveProfile returns the profile by name. An empty name selects the
// current profile, and DefaultProfile when no current profile is set.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name != "" {
		return c.GetProfile(name)
	}
	if c.CurrentProfile == "" {
		return DefaultProfile(), nil
	}
	return c.GetProfile(c.CurrentProfile)
}

// ListProfiles returns all profile names, sorted
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
