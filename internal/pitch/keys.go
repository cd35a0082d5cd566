package pitch

import (
	"context"
	"time"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
)

// repeatEvery is how often a held note is sung again. It stays well under
// the session's silence limit.
const repeatEvery = 50 * time.Millisecond

// KeyVoice is a pitch source played from the keyboard: digits 1-9 sing
// BaseHz, BaseHz+StepHz, ... and 0 or space are silence. The last note is
// held until a silence key releases it.
type KeyVoice struct {
	cfg     config.KeysConfig
	presses chan core.PitchSample
}

// NewKeyVoice creates a keyboard voice.
func NewKeyVoice(cfg config.KeysConfig) *KeyVoice {
	return &KeyVoice{
		cfg:     cfg,
		presses: make(chan core.PitchSample, 64),
	}
}

// ID returns the registry id.
func (k *KeyVoice) ID() string { return "keys" }

// Title returns the display name.
func (k *KeyVoice) Title() string { return "Keyboard voice (keys 1-9)" }

// PitchForKey maps a key to a sample. ok is false for unrelated keys.
func (k *KeyVoice) PitchForKey(key string) (core.PitchSample, bool) {
	switch key {
	case "0", " ", "space":
		return core.Silence, true
	}
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return core.Silence, false
	}
	step := float64(key[0] - '1')
	return core.Pitch(k.cfg.BaseHz + step*k.cfg.StepHz), true
}

// HandleKey records a key press. Presses beyond the buffer are dropped.
func (k *KeyVoice) HandleKey(key string) bool {
	s, ok := k.PitchForKey(key)
	if !ok {
		return false
	}
	select {
	case k.presses <- s:
	default:
	}
	return true
}

// Run forwards key presses and repeats the held note every repeatEvery
// until ctx is canceled.
func (k *KeyVoice) Run(ctx context.Context, emit func(core.PitchSample)) error {
	ticker := time.NewTicker(repeatEvery)
	defer ticker.Stop()

	held := core.Silence
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-k.presses:
			held = s
			emit(s)
			ticker.Reset(repeatEvery)
		case <-ticker.C:
			if !held.IsSilence() {
				emit(held)
			}
		}
	}
}
