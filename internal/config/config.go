// Package config provides YAML-based game configuration loading,
// validation and difficulty presets for the snake game.
package config

import (
	"errors"
	"fmt"
)

// Boundary selects what happens when the head leaves the grid.
type Boundary string

const (
	BoundaryWall Boundary = "wall" // Leaving the grid is fatal
	BoundaryWrap Boundary = "wrap" // Coordinates fold onto the opposite edge
)

// Metric names a simulation quantity a trophy threshold is compared against.
type Metric string

const (
	MetricScore    Metric = "score"
	MetricSpeed    Metric = "speed"
	MetricLength   Metric = "length"
	MetricSurvival Metric = "survival" // Seconds alive
)

// Config contains all static configuration for one run of the application.
type Config struct {
	Grid        GridConfig        `yaml:"grid"`
	Snake       SnakeConfig       `yaml:"snake"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	UI          UIConfig          `yaml:"ui"`
	Trophies    []TrophyConfig    `yaml:"trophies"`
}

// GridConfig defines the playfield dimensions in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeConfig defines movement, growth and speed tuning.
type SnakeConfig struct {
	StartLength    int      `yaml:"start_length"`
	StartSpeed     float64  `yaml:"start_speed"`     // Cells per second
	SpeedIncrement float64  `yaml:"speed_increment"` // Added per food eaten
	SpeedCeiling   float64  `yaml:"speed_ceiling"`
	TurnQueueCap   int      `yaml:"turn_queue_cap"`
	Boundary       Boundary `yaml:"boundary"`
}

// LeaderboardConfig defines the session leaderboard bounds.
type LeaderboardConfig struct {
	Capacity    int    `yaml:"capacity"`
	DefaultName string `yaml:"default_name"`
	NameMaxLen  int    `yaml:"name_max_len"`
}

// UIConfig defines presentation parameters the core still needs to know about.
type UIConfig struct {
	PopupTTL float64 `yaml:"popup_ttl"` // Seconds a trophy popup stays visible
	Vibes    bool    `yaml:"vibes"`     // Initial visual-style flag
	FPS      int     `yaml:"fps"`
}

// TrophyConfig defines one achievement and its unlock threshold.
type TrophyConfig struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Metric      Metric  `yaml:"metric"`
	Threshold   float64 `yaml:"threshold"`
}

// Wrap reports whether the boundary policy is wrap-around.
func (c Config) Wrap() bool {
	return c.Snake.Boundary == BoundaryWrap
}

// Validate checks that the configuration can drive a simulation.
// Returns the first violated rule.
func (c Config) Validate() error {
	switch {
	case c.Grid.Width < 4:
		return fmt.Errorf("config: grid width must be >= 4, got %d", c.Grid.Width)
	case c.Grid.Height < 4:
		return fmt.Errorf("config: grid height must be >= 4, got %d", c.Grid.Height)
	case c.Snake.StartLength < 1:
		return fmt.Errorf("config: start_length must be >= 1, got %d", c.Snake.StartLength)
	case c.Snake.StartLength > c.Grid.Width/2:
		return fmt.Errorf("config: start_length %d does not fit left of the grid centre", c.Snake.StartLength)
	case c.Snake.StartSpeed <= 0:
		return fmt.Errorf("config: start_speed must be > 0, got %g", c.Snake.StartSpeed)
	case c.Snake.SpeedIncrement < 0:
		return fmt.Errorf("config: speed_increment must be >= 0, got %g", c.Snake.SpeedIncrement)
	case c.Snake.SpeedCeiling < c.Snake.StartSpeed:
		return fmt.Errorf("config: speed_ceiling %g is below start_speed %g", c.Snake.SpeedCeiling, c.Snake.StartSpeed)
	case c.Snake.TurnQueueCap < 1:
		return fmt.Errorf("config: turn_queue_cap must be >= 1, got %d", c.Snake.TurnQueueCap)
	case c.Snake.Boundary != BoundaryWall && c.Snake.Boundary != BoundaryWrap:
		return fmt.Errorf("config: unknown boundary %q (want wall or wrap)", c.Snake.Boundary)
	case c.Leaderboard.Capacity < 1:
		return fmt.Errorf("config: leaderboard capacity must be >= 1, got %d", c.Leaderboard.Capacity)
	case c.Leaderboard.NameMaxLen < 1:
		return fmt.Errorf("config: name_max_len must be >= 1, got %d", c.Leaderboard.NameMaxLen)
	case c.UI.PopupTTL <= 0:
		return fmt.Errorf("config: popup_ttl must be > 0, got %g", c.UI.PopupTTL)
	case c.UI.FPS < 1:
		return fmt.Errorf("config: fps must be >= 1, got %d", c.UI.FPS)
	}
	return c.validateTrophies()
}

func (c Config) validateTrophies() error {
	seen := make(map[string]bool, len(c.Trophies))
	for _, t := range c.Trophies {
		if t.ID == "" {
			return errors.New("config: trophy with empty id")
		}
		if seen[t.ID] {
			return fmt.Errorf("config: duplicate trophy id %q", t.ID)
		}
		seen[t.ID] = true
		switch t.Metric {
		case MetricScore, MetricSpeed, MetricLength, MetricSurvival:
		default:
			return fmt.Errorf("config: trophy %q has unknown metric %q", t.ID, t.Metric)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ApplyPreset adjusts speed tuning for a difficulty preset.
// Normal and the empty preset leave the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) error {
	switch preset {
	case "", DifficultyNormal:
	case DifficultyEasy:
		cfg.Snake.StartSpeed = 6
		cfg.Snake.SpeedIncrement = 0.15
		cfg.Snake.SpeedCeiling = 14
	case DifficultyHard:
		cfg.Snake.StartSpeed = 11
		cfg.Snake.SpeedIncrement = 0.30
		cfg.Snake.SpeedCeiling = 24
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", preset)
	}
	return nil
}
