package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenv(t *testing.T) {
	const key = "LLMSETTINGS_TEST_DOTENV_VALUE"

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_PATH", path)

	// godotenv never overrides existing variables, so the key must be absent.
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	if err := loadDotenv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
}

func TestLoadDotenv_MissingFile(t *testing.T) {
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "missing.env"))

	if err := loadDotenv(); err != nil {
		t.Errorf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoadDotenv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BAD-KEY=value\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_PATH", path)

	if err := loadDotenv(); err == nil {
		t.Error("expected malformed file to fail")
	}
}
