package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_DecodesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
backend = "file"
dir = "/tmp/lists"
id_attempts = 42

[web]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend != "file" || cfg.Dir != "/tmp/lists" || cfg.IDAttempts != 42 || cfg.Web.Addr != ":9000" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected default log level kept, got %q", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("backend = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestConfigPath_HonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHECKLIST_CONFIG_DIR", dir)
	p, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}
	if p != filepath.Join(dir, "config.toml") {
		t.Fatalf("unexpected path %q", p)
	}
}

func TestDiscoverDir_FindsAncestor(t *testing.T) {
	root := t.TempDir()
	local := filepath.Join(root, ".checklist")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(local, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok := DiscoverDir(nested)
	if !ok || got != local {
		t.Fatalf("expected %q, got %q (ok=%v)", local, got, ok)
	}
}
