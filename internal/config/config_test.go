package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DEFAULT_PLAYBACK_FPS", "")
	t.Setenv("MIGRATE_ON_START", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DefaultPlaybackFPS != 30 {
		t.Errorf("expected default playback 30, got %d", cfg.DefaultPlaybackFPS)
	}
	if cfg.MigrateOnStart {
		t.Error("migrate on start should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DEFAULT_PLAYBACK_FPS", "45")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("SESSION_TIMEOUT_MINUTES", "not-a-number")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.DefaultPlaybackFPS != 45 {
		t.Errorf("playback = %d", cfg.DefaultPlaybackFPS)
	}
	if !cfg.MigrateOnStart {
		t.Error("expected migrate on start")
	}
	if cfg.SessionTimeoutMin != 30 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.SessionTimeoutMin)
	}
}
