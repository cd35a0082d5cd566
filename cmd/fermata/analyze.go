package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fermata/internal/pitch"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav>",
	Short: "Print the pitch track of a WAV file",
	Long: `Run a recording through the pitch detector as fast as possible and
print one line per analysis frame. Useful for checking a take before
playing it with --wav, or for tuning the detector threshold.

Examples:
  fermata analyze ./take1.wav
  fermata analyze ./take1.wav --config ./fermata.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Pitch.WavPath = args[0]

	closer, src, err := pitch.NewWavSource(cfg.Pitch).Open()
	if err != nil {
		return err
	}
	defer closer.Close()

	d := pitch.NewDetector(cfg.Pitch)
	samples := pitch.Analyze(src, d)
	frameMS := float64(d.FrameSize()) * 1000 / float64(d.SampleRate())

	out := cmd.OutOrStdout()
	voiced := 0
	for i, p := range samples {
		at := float64(i) * frameMS
		if p.IsSilence() {
			fmt.Fprintf(out, "%9.1f ms  --\n", at)
			continue
		}
		voiced++
		fmt.Fprintf(out, "%9.1f ms  %8.2f Hz\n", at, p.Hz())
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d frames, %d voiced\n", len(samples), voiced)
	return nil
}
