// Package assets loads the sprite catalog: named images with their
// dimensions in view units and their terminal art.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
)

// Sprite names the session requires.
const (
	Background = "bg"
	StartBar   = "start_bar"
	EndBar     = "end_bar"
	Rest       = "rest"
	Player     = "player"
)

// Required lists every sprite a session loads at construction.
var Required = []string{Background, StartBar, EndBar, Rest, Player}

// ErrMissingSprite is returned when a requested sprite is not in the catalog.
var ErrMissingSprite = errors.New("assets: missing sprite")

//go:embed sprites.yaml
var defaultCatalogYAML []byte

// Provider hands out images by name.
type Provider interface {
	Image(name string) (*scene.Image, error)
}

type spriteFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
}

type spriteDef struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Tile   bool       `yaml:"tile"`
	Color  string     `yaml:"color"`
	Frames [][]string `yaml:"frames"`
}

// Catalog is a Provider backed by a YAML sprite file.
type Catalog struct {
	images map[string]*scene.Image
}

// LoadDefault parses the embedded catalog.
func LoadDefault() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads a catalog file. An empty path loads the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog and validates each sprite.
func Parse(data []byte) (*Catalog, error) {
	var f spriteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: failed to parse catalog: %w", err)
	}

	c := &Catalog{images: make(map[string]*scene.Image, len(f.Sprites))}
	for name, def := range f.Sprites {
		if def.Width <= 0 || def.Height <= 0 {
			return nil, fmt.Errorf("assets: sprite %q has invalid size %gx%g", name, def.Width, def.Height)
		}
		if len(def.Frames) == 0 {
			return nil, fmt.Errorf("assets: sprite %q has no frames", name)
		}
		color, ok := core.ParseColor(def.Color)
		if !ok {
			return nil, fmt.Errorf("assets: sprite %q has unknown color %q", name, def.Color)
		}
		c.images[name] = &scene.Image{
			Name:   name,
			Width:  def.Width,
			Height: def.Height,
			Frames: def.Frames,
			Color:  color,
			Tile:   def.Tile,
		}
	}
	return c, nil
}

// Image returns the named sprite.
func (c *Catalog) Image(name string) (*scene.Image, error) {
	img, ok := c.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingSprite, name)
	}
	return img, nil
}

// Images resolves every name, failing on the first missing sprite.
func Images(p Provider, names ...string) (map[string]*scene.Image, error) {
	out := make(map[string]*scene.Image, len(names))
	for _, name := range names {
		img, err := p.Image(name)
		if err != nil {
			return nil, err
		}
		out[name] = img
	}
	return out, nil
}
