// snake is a terminal snake game with a session leaderboard and trophies.
//
// Usage:
//
//	snake                    - Play (same as "snake play")
//	snake play               - Play in this terminal
//	snake serve              - Start SSH server for remote play
//	snake config             - Print the effective configuration
//	snake trophies           - List trophy definitions
//
// Global flags:
//
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - easy, normal or hard
//	--wrap               - Wrap around the edges instead of dying on walls
//	--fps <rate>         - Frame rate
//	--seed <value>       - RNG seed for reproducible food placement
//	--debug              - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagWrap       bool
	flagFPS        int
	flagSeed       int64
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic, in your terminal",
	Long: `Snake is the classic arcade game for the terminal: eat, grow, speed up,
and do not bite yourself.

Available commands:
  play      - Play in this terminal (default)
  serve     - Start SSH server for remote play
  config    - Print the effective configuration as YAML
  trophies  - List the trophies and how to unlock them

Examples:
  snake
  snake --difficulty hard --wrap
  snake serve --ssh :2222
  snake config > ~/.snake/config.yaml`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagWrap, "wrap", false, "Wrap around the edges instead of dying on walls")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frames per second (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(trophiesCmd)
}

// loadConfig resolves the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("wrap") {
		cfg.Snake.Boundary = config.BoundaryWall
		if flagWrap {
			cfg.Snake.Boundary = config.BoundaryWrap
		}
	}
	if flagFPS > 0 {
		cfg.UI.FPS = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func logLevel() log.Level {
	if flagDebug {
		return log.DebugLevel
	}
	return log.InfoLevel
}
