package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/app"
	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSound   bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal.

Controls:
  WASD/Arrows  - Move / menu selection
  Enter/Space  - Select
  P            - Pause
  R            - Restart
  V            - Toggle vibes
  Esc/M        - Back to menu
  Q/Ctrl+C     - Quit

The leaderboard and trophies last until the program exits.

Examples:
  snake play
  snake play --difficulty easy
  snake play --sound --log-file /tmp/snake.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues (needs a build with -tags sound)")
		c.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("snake: play needs an interactive terminal")
	}
	if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
		bw, bh := tui.BoardSize(cfg.Grid.Width, cfg.Grid.Height)
		if w < bw || h < bh+1 {
			fmt.Fprintf(os.Stderr, "warning: terminal is %dx%d, the board needs %dx%d\n", w, h, bw, bh+1)
		}
	}

	logger, closeLog, err := newPlayLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	var player audio.Player = audio.Nop{}
	if flagSound {
		synth, synthErr := audio.NewSynth()
		if synthErr != nil {
			logger.Warn("sound disabled", "err", synthErr)
		} else {
			player = synth
		}
	}
	defer player.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", seed, "grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"boundary", cfg.Snake.Boundary, "speed", cfg.Snake.StartSpeed)

	a := app.New(cfg, leaderboard.New(cfg.Leaderboard.Capacity), rand.New(rand.NewSource(seed)))
	return tui.Run(a, player, logger)
}

// newPlayLogger logs to --log-file, or nowhere: the terminal belongs to
// the game.
func newPlayLogger() (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           logLevel(),
	})
	return logger, closeFn, nil
}
