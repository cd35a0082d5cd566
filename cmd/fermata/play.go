package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/platform/tui"
	"github.com/vovakirdan/fermata/internal/registry"
	"github.com/vovakirdan/fermata/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run with the configured pitch source.

Controls:
  1-9        - Sing a pitch (keys source)
  0/Space    - Fall silent (keys source)
  Arrows     - Move the dialog focus after death
  Enter      - Confirm the focused option
  Esc/B      - Back to the menu
  Q/Ctrl+C   - Quit

Examples:
  fermata play
  fermata play --source tone --immortal
  fermata play --wav ./take1.wav
  fermata play --config ./fermata.toml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !registry.Exists(cfg.Pitch.Source) {
		return fmt.Errorf("unknown pitch source %q (run 'fermata sources' to see available sources)", cfg.Pitch.Source)
	}

	logger, closeLog, err := openLogger(cfg.DebugMode)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the run still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	_, runErr := tui.Run(tui.Options{
		Config:   cfg,
		Runtime:  rt,
		SourceID: cfg.Pitch.Source,
		Store:    store,
		Logger:   logger,
	})
	if runErr != nil {
		logger.Error("run failed", "err", runErr)
		return runErr
	}
	return nil
}
