package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a ledger location from configuration or flags. A
// leading "~" or "~/" becomes the home directory, then $VAR and ${VAR}
// references are replaced. Other "~user" forms are left alone.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	return os.ExpandEnv(expandHome(path))
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
