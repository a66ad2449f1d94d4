// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ArenaSize != 500 {
		t.Errorf("ArenaSize = %v, want 500", cfg.ArenaSize)
	}
	if cfg.MaxShots != 8 {
		t.Errorf("MaxShots = %d, want 8", cfg.MaxShots)
	}
	if cfg.MaxAsteroids != 64 {
		t.Errorf("MaxAsteroids = %d, want 64", cfg.MaxAsteroids)
	}
	if cfg.InitAsteroids != 32 {
		t.Errorf("InitAsteroids = %d, want 32", cfg.InitAsteroids)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	want := DefaultConfig()
	want.Seed = 42
	want.SpawnIntervalMS = 10000

	if err := SaveConfig(want, path); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if got.Seed != 42 {
		t.Errorf("Seed = %d, want 42", got.Seed)
	}
	if got.SpawnIntervalMS != 10000 {
		t.Errorf("SpawnIntervalMS = %v, want 10000", got.SpawnIntervalMS)
	}
	if len(got.Models) != len(want.Models) {
		t.Errorf("Models length = %d, want %d", len(got.Models), len(want.Models))
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("LoadConfig() on missing file succeeded")
		}
	})

	t.Run("malformed_json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig() on malformed file succeeded")
		}
	})

	t.Run("invalid_values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.json")
		cfg := DefaultConfig()
		cfg.InitAsteroids = 200 // exceeds MaxAsteroids
		if err := SaveConfig(cfg, path); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig() accepted initAsteroids > maxAsteroids")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr bool
	}{
		{name: "defaults_valid", mutate: func(c *GameConfig) {}},
		{name: "zero_arena", mutate: func(c *GameConfig) { c.ArenaSize = 0 }, wantErr: true},
		{name: "zero_shots", mutate: func(c *GameConfig) { c.MaxShots = 0 }, wantErr: true},
		{name: "zero_asteroids", mutate: func(c *GameConfig) { c.MaxAsteroids = 0 }, wantErr: true},
		{name: "negative_init", mutate: func(c *GameConfig) { c.InitAsteroids = -1 }, wantErr: true},
		{name: "zero_frame_time", mutate: func(c *GameConfig) { c.TargetFrameMS = 0 }, wantErr: true},
		{name: "zero_shot_speed", mutate: func(c *GameConfig) { c.ShotSpeed = 0 }, wantErr: true},
		{name: "zero_shot_range", mutate: func(c *GameConfig) { c.ShotRange = 0 }, wantErr: true},
		{name: "negative_shot_range", mutate: func(c *GameConfig) { c.ShotRange = -320 }, wantErr: true},
		{name: "zero_cooldown_allowed", mutate: func(c *GameConfig) { c.FireCooldownMS = 0 }},
		{name: "negative_cooldown", mutate: func(c *GameConfig) { c.FireCooldownMS = -1 }, wantErr: true},
		{name: "zero_spawn_interval", mutate: func(c *GameConfig) { c.SpawnIntervalMS = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
