package config

import "testing"

func TestApplyFlags_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	cfg := Load()

	opts, err := ApplyFlags(cfg, []string{"--storage=memory", "--sweeper=false", "--log-level", "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.MigrateOnly || opts.Help {
		t.Errorf("unexpected options: %+v", opts)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected memory storage, got %s", cfg.Storage.Driver)
	}
	if cfg.Sweeper.Enabled {
		t.Error("expected sweeper disabled")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %s", cfg.Log.Level)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected env port to survive, got %s", cfg.Server.Port)
	}
}

func TestApplyFlags_MigrateOnlyImpliesMigrate(t *testing.T) {
	cfg := Load()

	opts, err := ApplyFlags(cfg, []string{"--migrate-only"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.MigrateOnly || !cfg.Database.Migrate {
		t.Errorf("expected migrate-only to enable migrations, got %+v / %v", opts, cfg.Database.Migrate)
	}
}

func TestApplyFlags_Rejects(t *testing.T) {
	cases := [][]string{
		{"--no-such-flag"},
		{"serve"},
	}
	for _, args := range cases {
		if _, err := ApplyFlags(Load(), args); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestApplyFlags_Help(t *testing.T) {
	opts, err := ApplyFlags(Load(), []string{"-h"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.Help {
		t.Error("expected help to be requested")
	}
}
