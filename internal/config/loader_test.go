package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	// Run from a temp dir so no local configs/ interferes.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Addr != ":3000" {
		t.Errorf("default addr = %q, want :3000", cfg.Server.Addr)
	}
	if cfg.Submission.WindowSeconds != 30 {
		t.Errorf("default window = %d, want 30", cfg.Submission.WindowSeconds)
	}
	if cfg.RateLimit.FetchPerMinute != 60 {
		t.Errorf("default fetch limit = %d, want 60", cfg.RateLimit.FetchPerMinute)
	}
	if cfg.Store.TimeoutSeconds != 5 {
		t.Errorf("default store timeout = %d, want 5", cfg.Store.TimeoutSeconds)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := []byte("server:\n  addr: \":9999\"\nsubmission:\n  secret: \"hunter2\"\n  window_seconds: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}

	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Submission.Secret != "hunter2" {
		t.Errorf("secret = %q, want hunter2", cfg.Submission.Secret)
	}
	if cfg.Submission.Window().Seconds() != 10 {
		t.Errorf("window = %v, want 10s", cfg.Submission.Window())
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load with missing explicit path should fail")
	}
}

func TestSecretEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCORE_SECRET", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Submission.Secret != "from-env" {
		t.Errorf("secret = %q, want env override", cfg.Submission.Secret)
	}
}
