package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/snake.yaml
// and is used when the embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:  32,
			Height: 24,
		},
		Snake: SnakeConfig{
			StartLength:    4,
			StartSpeed:     8,
			SpeedIncrement: 0.20,
			SpeedCeiling:   18,
			TurnQueueCap:   4,
			Boundary:       BoundaryWall,
		},
		Leaderboard: LeaderboardConfig{
			Capacity:    10,
			DefaultName: "CAT",
			NameMaxLen:  8,
		},
		UI: UIConfig{
			PopupTTL: 2.4,
			Vibes:    true,
			FPS:      60,
		},
		Trophies: DefaultTrophies(),
	}
}

// DefaultTrophies returns the built-in trophy set.
func DefaultTrophies() []TrophyConfig {
	return []TrophyConfig{
		{ID: "FIRST_BITE", Name: "First Bite", Description: "Eat your first snack", Metric: MetricScore, Threshold: 1},
		{ID: "EAT_5", Name: "Snack Attack", Description: "Eat 5 snacks", Metric: MetricScore, Threshold: 5},
		{ID: "EAT_10", Name: "Gourmet", Description: "Eat 10 snacks", Metric: MetricScore, Threshold: 10},
		{ID: "SPEED_12", Name: "Zoomer", Description: "Reach speed 12.0+", Metric: MetricSpeed, Threshold: 12},
		{ID: "LEN_20", Name: "Long Boi", Description: "Reach length 20", Metric: MetricLength, Threshold: 20},
		{ID: "ZEN_60", Name: "Just Vibes", Description: "Survive 60 seconds", Metric: MetricSurvival, Threshold: 60},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}
