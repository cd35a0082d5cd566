// Package registry provides a global registry for pitch source factories.
// Sources register themselves in init() functions, allowing the platform
// to discover and instantiate them by name without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
)

// Source is the interface all pitch sources implement.
// A source observes some audio input and reports one PitchSample per
// analysis frame; the platform marshals samples onto the game loop.
type Source interface {
	// ID returns a unique identifier for this source (e.g., "keys", "wav").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run produces samples until ctx is canceled or the input ends.
	// emit may be called from Run's goroutine only.
	Run(ctx context.Context, emit func(core.PitchSample)) error
}

// KeyHandler is implemented by sources that are fed from the terminal.
type KeyHandler interface {
	// HandleKey consumes a key press and reports whether it was used.
	HandleKey(key string) bool
}

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	ID    string
	Title string
}

// Factory creates a new source from the pitch and key settings.
type Factory func(cfg config.FermataConfig) Source

// ErrUnknownSource is returned by Create for unregistered ids.
var ErrUnknownSource = errors.New("registry: unknown source")

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a source factory to the registry.
// Typically called from a source's init() function.
// Panics if a source with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(config.DefaultFermataConfig()).Title()
}

// List returns information about all registered sources, sorted by ID.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SourceInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a source by its ID.
func Create(id string, cfg config.FermataConfig) (Source, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, id)
	}

	return f(cfg), nil
}

// Exists checks if a source with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
