package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRead_NoPathReturnsDefaults(t *testing.T) {
	c, err := Read("")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c != Default() {
		t.Fatalf("Read(\"\") = %+v, want Default()", c)
	}
}

func TestRead_MissingFileFails(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestRead_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"SkewSeconds": 60, "MaxRetries": 3}`), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	c, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.SkewSeconds != 60 {
		t.Fatalf("SkewSeconds = %d, want 60", c.SkewSeconds)
	}
	if c.MaxRetries != 3 {
		t.Fatalf("MaxRetries = %d, want 3", c.MaxRetries)
	}
	// Fields absent from the file keep their default value.
	if c.MaxPerClient != 100 {
		t.Fatalf("MaxPerClient = %d, want 100 (untouched default)", c.MaxPerClient)
	}
}

func TestRead_EnvOverridesFileAndDefaults(t *testing.T) {
	t.Setenv("NETAUTH_SKEW_SECONDS", "45")
	t.Setenv("NETAUTH_RETRY_COOLDOWN", "2s")

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"SkewSeconds": 60}`), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	c, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.SkewSeconds != 45 {
		t.Fatalf("SkewSeconds = %d, want 45 (env overrides file)", c.SkewSeconds)
	}
	if c.RetryCooldown != 2*time.Second {
		t.Fatalf("RetryCooldown = %v, want 2s (env overrides default)", c.RetryCooldown)
	}
}

func TestRead_InvalidJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}
