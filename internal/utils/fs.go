package utils

import (
	"os"
	"path/filepath"
)

// ConfigFileNames are the file names probed in each search directory.
var ConfigFileNames = []string{"backdrop.yaml", "backdrop.yml"}

// ConfigSearchDirs lists the directories probed for a config file, in order.
func ConfigSearchDirs() []string {
	dirs := []string{".", "config"}

	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "portfolio-backdrop"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".portfolio-backdrop"))
	}

	return append(dirs, "/etc/portfolio-backdrop")
}

// ResolveConfigPath picks the config file to load. An explicit path wins
// when it exists; otherwise the search directories are probed. It returns
// "" when nothing is found, which callers treat as "use defaults".
func ResolveConfigPath(customPath string) string {
	if customPath != "" {
		if FileExists(customPath) {
			return customPath
		}
		Warn("Config file NOT FOUND: %s", customPath)
		Info("Falling back to automatic discovery...")
	}

	for _, dir := range ConfigSearchDirs() {
		for _, name := range ConfigFileNames {
			p := filepath.Join(dir, name)
			if FileExists(p) {
				Debug("Discovered config at: %s", p)
				return p
			}
		}
	}

	return ""
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
