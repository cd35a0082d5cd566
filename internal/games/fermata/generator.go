package fermata

import (
	"github.com/vovakirdan/fermata/internal/scene"
	"github.com/vovakirdan/fermata/internal/signal"
)

// Rand is the random source for obstacle kinds and heights.
type Rand interface {
	Float64() float64
}

// Generator spawns one obstacle at the right edge every SpawnPeriodMS.
type Generator struct {
	// OnGenerate fires with each new obstacle after it is attached.
	OnGenerate *signal.Signal[*Obstacle]

	untilNext int
	rng       Rand
	scene     *scene.Scene
	build     func(Kind) *Obstacle
}

// NewGenerator creates a generator that attaches obstacles made by build
// to sc.
func NewGenerator(sc *scene.Scene, rng Rand, build func(Kind) *Obstacle) *Generator {
	return &Generator{
		OnGenerate: signal.New[*Obstacle](),
		untilNext:  SpawnPeriodMS,
		rng:        rng,
		scene:      sc,
		build:      build,
	}
}

// Update advances the spawn countdown, spawning once per elapsed period.
// The countdown accumulates so variable frame times do not drift.
func (g *Generator) Update(deltaMS int) {
	g.untilNext -= deltaMS
	for g.untilNext <= 0 {
		g.untilNext += SpawnPeriodMS
		g.spawn()
	}
}

// UntilNext returns the milliseconds left before the next spawn. During
// OnGenerate it already counts towards the following obstacle.
func (g *Generator) UntilNext() int {
	return g.untilNext
}

func (g *Generator) spawn() {
	kind := Deadly
	if g.rng.Float64() < 0.5 {
		kind = Rest
	}
	w, h := g.scene.Size()
	y := g.rng.Float64() * h

	o := g.build(kind)
	g.scene.AddAt(o.node, w, y)
	g.OnGenerate.Emit(o)
}
