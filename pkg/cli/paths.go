package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the netbuf directory structure
type Paths struct {
	// AppName is the application name
	AppName string

	// HomeDir is the user's home directory
	HomeDir string
}

// NewPaths creates a new Paths instance for the given app
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{
		AppName: appName,
		HomeDir: home,
	}, nil
}

// BaseDir returns the base directory (~/.netbuf)
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// AppDir returns the app-specific directory (~/.netbuf/<app>)
func (p *Paths) AppDir() string {
	return filepath.Join(p.BaseDir(), p.AppName)
}

// ConfigFile returns the config file path (~/.netbuf/<app>/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// ScriptDir returns the directory replay scripts are looked up in
// (~/.netbuf/<app>/scripts)
func (p *Paths) ScriptDir() string {
	return filepath.Join(p.AppDir(), "scripts")
}

// ScriptPath resolves a replay script name. Names containing a path
// separator or an extension are returned unchanged.
func (p *Paths) ScriptPath(name string) string {
	if filepath.Base(name) != name || filepath.Ext(name) != "" {
		return name
	}
	return filepath.Join(p.ScriptDir(), name+".yaml")
}
