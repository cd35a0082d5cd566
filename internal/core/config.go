package core

// RuntimeConfig contains configuration passed to a session at initialization.
// The platform fills in the terminal size; the session works in view units
// and the renderer scales them to cells.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the tick loop
	Seed     int64 // RNG seed for obstacle kinds and heights
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the session for the platform.
type GameState struct {
	Score    int    // Accumulated playing time in milliseconds
	GameOver bool   // Whether the death dialog is showing
	State    string // Name of the active session state
}

// StepResult is returned by Session.Step after each frame.
type StepResult struct {
	State GameState
}
