package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fermata/internal/core"
)

func testImage() *Image {
	return &Image{
		Name:   "block",
		Width:  20,
		Height: 20,
		Frames: [][]string{{"##", "##"}},
	}
}

func TestSceneAddRemove(t *testing.T) {
	s := New(100, 100)
	a := s.AddAt(NewImageNode(testImage()), 10, 20)
	b := s.Add(NewTextNode("hi", 10, 10))

	require.True(t, s.Contains(a))
	assert.Equal(t, 10.0, a.X)
	assert.Equal(t, 20.0, a.Y)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, s.Len())

	s.Add(a) // already attached
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove(a))
	assert.Zero(t, a.ID())
	assert.False(t, s.Contains(a))
	assert.False(t, s.Remove(a), "second removal must report false")
	assert.Equal(t, 1, s.Len())
}

func TestSceneDrawOrder(t *testing.T) {
	s := New(10, 10)
	var texts []string
	s.Add(NewTextNode("a", 1, 1))
	mid := s.Add(NewTextNode("b", 1, 1))
	s.Add(NewTextNode("c", 1, 1))
	s.Remove(mid)
	s.Add(mid)

	s.Each(func(n *Node) { texts = append(texts, n.Text) })
	assert.Equal(t, []string{"a", "c", "b"}, texts)
}

func TestAddCenterAt(t *testing.T) {
	s := New(800, 600)
	n := s.AddCenterAt(NewTextNode("Breathe!", 200, 50), 400, 300)

	assert.Equal(t, 300.0, n.X)
	assert.Equal(t, 275.0, n.Y)
}

func TestRenderScalesToCells(t *testing.T) {
	s := New(100, 100)
	s.AddAt(NewImageNode(testImage()), 50, 50)

	dst := core.NewScreen(10, 10)
	s.Render(dst)

	assert.Equal(t, '#', dst.Get(5, 5))
	assert.Equal(t, '#', dst.Get(6, 6))
	assert.Equal(t, ' ', dst.Get(4, 5))
}

func TestRenderHiddenAndFaded(t *testing.T) {
	s := New(10, 10)
	hidden := s.AddAt(NewImageNode(testImage()), 0, 0)
	hidden.Visible = false
	faded := s.AddAt(NewTextNode("x", 2, 2), 4, 4)
	faded.Alpha = 0.1

	dst := core.NewScreen(10, 10)
	s.Render(dst)
	assert.Equal(t, strings.Repeat(" ", 10), dst.Row(0))
	assert.Equal(t, ' ', dst.Get(5, 5))

	faded.Alpha = 0.4
	s.Render(dst)
	assert.Equal(t, 'x', dst.Get(5, 5))
	assert.Equal(t, core.ColorGray, dst.GetCell(5, 5).Color)
}

func TestRenderRotationFrames(t *testing.T) {
	img := &Image{Width: 1, Height: 1, Frames: [][]string{{">"}, {"v"}, {"<"}, {"^"}}}
	s := New(10, 10)
	n := s.AddAt(NewImageNode(img), 0, 0)

	for _, tc := range []struct {
		rotation float64
		want     rune
	}{
		{0, '>'},
		{math.Pi / 2, 'v'},
		{math.Pi, '<'},
		{3 * math.Pi / 2, '^'},
		{2 * math.Pi, '>'},
	} {
		n.Rotation = tc.rotation
		dst := core.NewScreen(10, 10)
		s.Render(dst)
		assert.Equal(t, tc.want, dst.Get(0, 0), "rotation %v", tc.rotation)
	}
}

func TestRenderPanel(t *testing.T) {
	s := New(20, 10)
	s.AddAt(NewPanelNode([]string{"Now", "OK"}, 20, 10), 0, 0)

	dst := core.NewScreen(20, 10)
	s.Render(dst)

	assert.Contains(t, dst.String(), "Now")
	assert.Contains(t, dst.String(), "┌")
}

func TestRenderTiledImage(t *testing.T) {
	bg := &Image{Width: 10, Height: 10, Frames: [][]string{{". "}}, Tile: true}
	s := New(10, 10)
	n := NewImageNode(bg)
	s.Add(n)

	dst := core.NewScreen(4, 2)
	s.Render(dst)
	assert.Equal(t, ". . ", dst.Row(0))
	assert.Equal(t, ". . ", dst.Row(1))
}
