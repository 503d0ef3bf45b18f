// FILE: lixenwraith/confreg/discovery.go
package confreg

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryOptions configures config file discovery.
type DiscoveryOptions struct {
	// Base name of the config file, without extension.
	Name string

	// Extensions to try, in order.
	Extensions []string

	// Custom search directories, checked before the defaults.
	Paths []string

	// Environment variable holding an explicit path.
	EnvVar string

	// CLI flag holding an explicit path, e.g. "--config".
	CLIFlag string

	// Search XDG config directories.
	UseXDG bool

	// Search the current directory.
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns discovery settings for an application
// name: a --config flag, a NAME_CONFIG environment variable, and a search
// of the current directory and XDG config directories.
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".toml", ".json", ".conf"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// Discover locates a config file. Explicit sources win and are returned
// without checking that the file exists: first the CLI flag in args, then
// the environment variable. After that the search directories are tried in
// order, custom paths first, and each candidate is stat-checked. A false
// result means no file was found, which callers normally treat as running
// on defaults.
func Discover(opts DiscoveryOptions, args []string) (string, bool) {
	if opts.CLIFlag != "" {
		for i, arg := range args {
			if arg == opts.CLIFlag && i+1 < len(args) {
				return args[i+1], true
			}
			if strings.HasPrefix(arg, opts.CLIFlag+"=") {
				return strings.TrimPrefix(arg, opts.CLIFlag+"="), true
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if _, err := os.Stat(path); err == nil {
				return path, true
			}
		}
	}

	return "", false
}

// xdgConfigPaths returns XDG-compliant config search directories.
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
