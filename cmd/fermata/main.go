// fermata is a pitch-controlled side-scroller for the terminal.
//
// Usage:
//
//	fermata sources           - List available pitch sources
//	fermata play              - Start a run with the selected source
//	fermata menu              - Pick a source interactively
//	fermata scores            - Show the best runs
//	fermata analyze <wav>     - Print the pitch track of a WAV file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible obstacles
//	--db <path>         - Set database path (default: ~/.fermata/runs.db)
//	--config <path>     - Load a YAML or TOML session config
//	--log-level <level> - Log level for ~/.fermata/fermata.log
//
// FERMATA_SOURCE, FERMATA_WAV, FERMATA_DEBUG and FERMATA_IMMORTAL, from the
// environment or a ./.env file, override the config file; flags override both.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/platform/tui"

	// Register pitch sources
	_ "github.com/vovakirdan/fermata/internal/pitch"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogPath  string
	flagDebug    bool
	flagImmortal bool
	flagSource   string
	flagWav      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fermata",
	Short: "Fermata - steer with your voice",
	// main prints the error once; usage is only for flag mistakes
	SilenceErrors: true,
	SilenceUsage:  true,
	Long: `Fermata is a side-scroller controlled by pitch. Sing (or press the
digit keys) to move the player up and down, dodge the red bars, and touch
the rests to breathe.

Available commands:
  sources  - Show all pitch sources
  play     - Start a run directly
  menu     - Interactive source picker
  scores   - View the best runs
  analyze  - Print the pitch track of a WAV file

Examples:
  fermata sources
  fermata play --source keys
  fermata play --source wav --wav ./take1.wav --debug
  fermata menu
  fermata scores
  fermata analyze ./take1.wav`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fermata/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to session config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", tui.DefaultLogPath, "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Show pitch readouts and report contract violations")
	rootCmd.PersistentFlags().BoolVar(&flagImmortal, "immortal", false, "Disable the silence death")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Pitch source id (see 'fermata sources')")
	rootCmd.PersistentFlags().StringVar(&flagWav, "wav", "", "WAV file for the wav source")

	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// loadConfig reads the session config and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (config.FermataConfig, error) {
	cfg, err := config.LoadFermata(flagConfig)
	if err != nil {
		return cfg, err
	}

	// Environment sits between the config file and the flags
	if err := config.LoadDotEnv(""); err != nil {
		return cfg, err
	}
	if cfg, err = config.ApplyEnv(cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.DebugMode = flagDebug
	}
	if flags.Changed("immortal") {
		cfg.Immortal = flagImmortal
	}
	if flags.Changed("source") {
		cfg.Pitch.Source = flagSource
	}
	if flags.Changed("wav") {
		cfg.Pitch.WavPath = flagWav
		if !flags.Changed("source") {
			cfg.Pitch.Source = "wav"
		}
	}
	if cfg.Pitch.Source == "" {
		cfg.Pitch.Source = "keys"
	}
	return cfg, nil
}

// openLogger opens the log file. The returned close func is never nil.
func openLogger(debug bool) (*log.Logger, func(), error) {
	level := flagLogLevel
	if debug {
		level = "debug"
	}

	f, err := tui.OpenLogFile(flagLogPath)
	if err != nil {
		return nil, func() {}, err
	}
	logger, err := tui.NewLogger(f, level)
	if err != nil {
		f.Close()
		return nil, func() {}, err
	}
	return logger, func() { f.Close() }, nil
}
