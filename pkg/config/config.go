// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// GameConfig contains configuration for an Asteroids game
type GameConfig struct {
	ArenaSize       float32       `json:"arenaSize"`
	MaxShots        int           `json:"maxShots"`
	MaxAsteroids    int           `json:"maxAsteroids"`
	InitAsteroids   int           `json:"initAsteroids"`
	ShotSpeed       float32       `json:"shotSpeed"`
	ShotRange       float32       `json:"shotRange"`
	FireCooldownMS  float32       `json:"fireCooldownMS"`
	SpawnIntervalMS float32       `json:"spawnIntervalMS"`
	TargetFrameMS   float32       `json:"targetFrameMS"`
	Seed            uint64        `json:"seed"`
	Camera          CameraConfig  `json:"camera"`
	Models          []ModelConfig `json:"models"`
}

// CameraConfig contains camera control tunables
type CameraConfig struct {
	VelMod  float32 `json:"velMod"`
	RotMod  float32 `json:"rotMod"`
	RollMod float32 `json:"rollMod"`
	Sens    float32 `json:"sensitivity"`
	Drift   bool    `json:"drift"`
}

// ModelConfig names a model and the path prefix of its data file triplet
type ModelConfig struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks structural constraints that the engine depends on.
func (c *GameConfig) Validate() error {
	if c.ArenaSize <= 0 {
		return fmt.Errorf("arenaSize must be positive, got %v", c.ArenaSize)
	}
	if c.MaxShots <= 0 {
		return fmt.Errorf("maxShots must be positive, got %d", c.MaxShots)
	}
	if c.MaxAsteroids <= 0 {
		return fmt.Errorf("maxAsteroids must be positive, got %d", c.MaxAsteroids)
	}
	if c.InitAsteroids < 0 || c.InitAsteroids > c.MaxAsteroids {
		return fmt.Errorf("initAsteroids must be in [0, %d], got %d",
			c.MaxAsteroids, c.InitAsteroids)
	}
	if c.TargetFrameMS <= 0 {
		return fmt.Errorf("targetFrameMS must be positive, got %v", c.TargetFrameMS)
	}
	if c.ShotSpeed <= 0 {
		return fmt.Errorf("shotSpeed must be positive, got %v", c.ShotSpeed)
	}
	if c.ShotRange <= 0 {
		return fmt.Errorf("shotRange must be positive, got %v", c.ShotRange)
	}
	// Zero disables the fire rate limit; only negatives are rejected.
	if c.FireCooldownMS < 0 {
		return fmt.Errorf("fireCooldownMS must not be negative, got %v", c.FireCooldownMS)
	}
	if c.SpawnIntervalMS <= 0 {
		return fmt.Errorf("spawnIntervalMS must be positive, got %v", c.SpawnIntervalMS)
	}
	return nil
}

// DefaultConfig returns the classic game parameters
func DefaultConfig() *GameConfig {
	return &GameConfig{
		ArenaSize:       500,
		MaxShots:        8,
		MaxAsteroids:    64,
		InitAsteroids:   32,
		ShotSpeed:       5,
		ShotRange:       320,
		FireCooldownMS:  250,
		SpawnIntervalMS: 30000,
		TargetFrameMS:   50.0 / 3.0, // 60 Hz tick
		Camera: CameraConfig{
			VelMod:  0.008,
			RotMod:  0.005,
			RollMod: 7,
			Sens:    0.8,
			Drift:   true,
		},
		Models: []ModelConfig{
			{Name: "player", Prefix: "data/model/player1"},
			{Name: "projectile", Prefix: "data/model/projectile1"},
			{Name: "asteroid", Prefix: "data/model/asteroid1"},
			{Name: "blast", Prefix: "data/model/blast2"},
		},
	}
}
