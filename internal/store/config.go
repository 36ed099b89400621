package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	configFileName = "config.toml"
	localDirName   = ".checklist"

	DefaultWebAddr = "127.0.0.1:3336"
)

// Config is the optional ~/.checklist/config.toml.
type Config struct {
	Backend    string    `toml:"backend"`
	Dir        string    `toml:"dir"`
	DSN        string    `toml:"dsn"`
	IDAttempts int       `toml:"id_attempts"`
	LogLevel   string    `toml:"log_level"`
	Web        WebConfig `toml:"web"`
}

type WebConfig struct {
	Addr string `toml:"addr"`
}

func DefaultConfig() Config {
	return Config{
		Backend:    BackendSQLite,
		IDAttempts: DefaultIDAttempts,
		LogLevel:   "warn",
		Web:        WebConfig{Addr: DefaultWebAddr},
	}
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.checklist).
	if v := strings.TrimSpace(os.Getenv("CHECKLIST_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, localDirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig decodes path over DefaultConfig. A missing file is not an error.
// An empty path means ConfigPath().
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}

// DiscoverDir walks up from start looking for a project-local .checklist directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, localDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data directory when none is configured:
// a project-local .checklist if one exists, else <ConfigDir>/data.
func DefaultDir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		if found, ok := DiscoverDir(cwd); ok {
			return found, nil
		}
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}
