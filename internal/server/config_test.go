package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("empty path changed the defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "addr: \":9000\"\nmin_players: 5\nfill_with_bots: false\ntrick_clear_delay: 1s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.MinPlayers != 5 || cfg.FillWithBots {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.TrickClearDelay != time.Second {
		t.Fatalf("trick_clear_delay = %v, want 1s", cfg.TrickClearDelay)
	}
	// Untouched keys keep their defaults.
	if cfg.WebDist != DefaultConfig().WebDist {
		t.Fatalf("web_dist lost its default: %q", cfg.WebDist)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
