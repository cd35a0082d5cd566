package pitch

import (
	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/registry"
)

// Register the sources with the registry
func init() {
	registry.Register("keys", func(cfg config.FermataConfig) registry.Source {
		return NewKeyVoice(cfg.Keys)
	})
	registry.Register("wav", func(cfg config.FermataConfig) registry.Source {
		return NewWavSource(cfg.Pitch)
	})
	registry.Register("tone", func(cfg config.FermataConfig) registry.Source {
		return NewToneSource(cfg.Pitch)
	})
}
