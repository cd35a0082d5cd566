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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Fermata with a source picker menu",
	Long: `Start Fermata in interactive menu mode.

Use arrow keys or j/k to pick a pitch source, Enter to start a run.
Choosing "Main Menu" after a run returns here.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select source
  Tab          - Scoreboard
  Q            - Quit

Examples:
  fermata menu
  fermata menu --fps 30
  fermata menu --wav ./take1.wav`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg.DebugMode)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	sources := menuSources(cfg.Pitch.WavPath)

	for {
		menuResult, err := tui.RunMenu(store, rt, sources)
		if err != nil {
			return err
		}
		rt = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return nil
			}
			continue
		}

		runCfg := cfg
		runCfg.Pitch.Source = menuResult.SourceID

		result, runErr := tui.Run(tui.Options{
			Config:   runCfg,
			Runtime:  rt,
			SourceID: menuResult.SourceID,
			Store:    store,
			Logger:   logger,
		})
		if runErr != nil {
			logger.Error("run failed", "source", menuResult.SourceID, "err", runErr)
			fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
			continue
		}
		if !result.BackToMenu {
			return nil
		}
	}
}

// menuSources lists the registered sources, hiding wav when no file is set.
func menuSources(wavPath string) []registry.SourceInfo {
	all := registry.List()
	sources := make([]registry.SourceInfo, 0, len(all))
	for _, s := range all {
		if s.ID == "wav" && wavPath == "" {
			continue
		}
		sources = append(sources, s)
	}
	return sources
}
