// Package statedir names the files daily keeps under its state directory.
package statedir

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	// Dir is the name of the per-user state directory (inside $HOME).
	Dir = ".daily"

	// ConfigFile is the config file name, both in Dir and in a project.
	ConfigFile = "daily.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".daily.toml"

	// LogsDir holds the log file.
	LogsDir = "logs"

	// DBFile is the SQLite database used by the sqlite backend.
	DBFile = "daily.db"
)

// UserConfigPath returns the user config file inside home.
func UserConfigPath(home string) string {
	return filepath.Join(home, Dir, ConfigFile)
}

// LogDir returns the log directory of a state directory.
func LogDir(stateDir string) string {
	return filepath.Join(stateDir, LogsDir)
}

// MirrorPath describes where backend keeps key under stateDir.
func MirrorPath(stateDir, backend, key string) string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "sqlite":
		return filepath.Join(stateDir, DBFile) + "#" + key
	case "memory":
		return "(memory, not persisted)"
	default:
		return filepath.Join(stateDir, key+".json")
	}
}

var windowsVar = regexp.MustCompile(`%[^%]+%`)

// Expand resolves environment variables and a leading ~ in p. On Windows
// %VAR% references are expanded too; unknown ones are left as written.
func Expand(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = windowsVar.ReplaceAllStringFunc(p, func(ref string) string {
			if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return v
			}
			return ref
		})
	}
	return expandHome(p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// Resolve expands p and makes it absolute.
func Resolve(p string) (string, error) {
	p = Expand(p)
	if p == "" {
		return "", fmt.Errorf("state dir is empty")
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}
