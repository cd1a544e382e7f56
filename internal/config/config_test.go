package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME and the config path at a temp dir and clears the
// environment overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PROJECTOR_CONFIG", filepath.Join(home, "config.json"))
	for _, k := range []string{"PROJECTOR_DATA_DIR", "PROJECTOR_BACKEND", "PROJECTOR_VIEW", "PROJECTOR_LOG_LEVEL", "PROJECTOR_TOAST_TTL"} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoad_Default(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != filepath.Join(home, ".local", "share", "projector") {
		t.Errorf("unexpected default data dir %q", cfg.DataDir)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("expected file backend, got %q", cfg.Backend)
	}
	if cfg.DefaultView != "/dashboard" {
		t.Errorf("expected default view '/dashboard', got %q", cfg.DefaultView)
	}
	if cfg.ToastDuration().Seconds() != 4 {
		t.Errorf("expected 4s toast ttl, got %v", cfg.ToastDuration())
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.json"), `{"backend":"sqlite","default_view":"goals","toast_ttl":"2s"}`)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Backend)
	}
	if cfg.DefaultView != "/goals" {
		t.Errorf("expected /goals, got %q", cfg.DefaultView)
	}
	if cfg.SQLitePath() != filepath.Join(cfg.DataDir, "projector.db") {
		t.Errorf("unexpected sqlite path %q", cfg.SQLitePath())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.json"), `{"backend":"sqlite","data_dir":"/tmp/from-file"}`)
	t.Setenv("PROJECTOR_BACKEND", "memory")
	t.Setenv("PROJECTOR_DATA_DIR", "/tmp/from-env")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("expected memory, got %q", cfg.Backend)
	}
	if cfg.DataDir != "/tmp/from-env" {
		t.Errorf("expected /tmp/from-env, got %q", cfg.DataDir)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolate(t)
	t.Setenv("PROJECTOR_DATA_DIR", "/tmp/env-dir")

	cfg, err := Load(CLIFlags{DataDir: "/tmp/cli-dir", DefaultView: "/notes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.DataDir != "/tmp/cli-dir" {
		t.Errorf("expected /tmp/cli-dir, got %q", cfg.DataDir)
	}
	if cfg.DefaultView != "/notes" {
		t.Errorf("expected /notes, got %q", cfg.DefaultView)
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(CLIFlags{DataDir: "~/projector-data"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, "projector-data")
	if cfg.DataDir != expected {
		t.Errorf("expected %q, got %q", expected, cfg.DataDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags CLIFlags
		env   map[string]string
	}{
		{name: "unknown backend", flags: CLIFlags{Backend: "postgres"}},
		{name: "bad ttl", env: map[string]string{"PROJECTOR_TOAST_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.flags); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.json"), `{not json`)

	if _, err := Load(CLIFlags{}); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolate(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.json")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("expected file backend, got %q", cfg.Backend)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
