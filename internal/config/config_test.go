package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Name       string
	Resolution int
	Radius     float32
	Nested     struct {
		Seed int64
	}
}

func TestOpenKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	err := os.WriteFile(path, []byte("Resolution = 42\n[Nested]\nSeed = 7\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig{Name: "default", Resolution: 1, Radius: 2.5}
	if err := Open(&cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "default" || cfg.Radius != 2.5 {
		t.Errorf("defaults overwritten: %+v", cfg)
	}
	if cfg.Resolution != 42 || cfg.Nested.Seed != 7 {
		t.Errorf("file values not loaded: %+v", cfg)
	}
}

func TestOpenUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	err := os.WriteFile(path, []byte("Resolutoin = 42\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}
	var cfg testConfig
	if err := Open(&cfg, path); err == nil {
		t.Error("expected error for misspelled key")
	}
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	want := testConfig{Name: "blobs", Resolution: 64, Radius: 0.5}
	want.Nested.Seed = -3
	if err := Save(want, path); err != nil {
		t.Fatal(err)
	}
	var got testConfig
	if err := Open(&got, path); err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
