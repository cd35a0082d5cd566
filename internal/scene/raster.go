package scene

import (
	"math"

	"github.com/vovakirdan/fermata/internal/core"
)

// Alpha thresholds for terminal output, which cannot blend.
const (
	alphaHidden = 0.2
	alphaDim    = 0.6
)

// Render rasterizes every visible node into dst, scaling view units to cells.
func (s *Scene) Render(dst *core.Screen) {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	sx := float64(dst.Width()) / s.width
	sy := float64(dst.Height()) / s.height

	s.Each(func(n *Node) {
		if !n.Visible || n.Alpha < alphaHidden {
			return
		}
		color := n.Color
		if n.Alpha < alphaDim {
			color = core.ColorGray
		}

		switch n.Kind {
		case KindImage:
			drawImage(dst, n, color, sx, sy)
		case KindText:
			cx, cy := centerCell(n, sx, sy)
			if n.Bold && color == core.ColorDefault {
				color = core.ColorBrightWhite
			}
			dst.DrawTextColored(cx-core.TextWidth(n.Text)/2, cy, n.Text, color)
		case KindPanel:
			drawPanel(dst, n, color, sx, sy)
		}
	})
}

// cell converts a view coordinate to a cell index.
func cell(v, scale float64) int {
	return int(math.Floor(v * scale))
}

func centerCell(n *Node, sx, sy float64) (int, int) {
	return cell(n.X+n.W/2, sx), cell(n.Y+n.H/2, sy)
}

// frameFor picks the art frame for a rotation in radians.
func frameFor(img *Image, rotation float64) []string {
	if len(img.Frames) == 0 {
		return nil
	}
	quarter := int(math.Floor(rotation/(math.Pi/2)+0.5)) % len(img.Frames)
	if quarter < 0 {
		quarter += len(img.Frames)
	}
	return img.Frames[quarter]
}

func drawImage(dst *core.Screen, n *Node, color core.Color, sx, sy float64) {
	if n.Image == nil {
		return
	}
	art := frameFor(n.Image, n.Rotation)
	if len(art) == 0 {
		return
	}
	x0, y0 := cell(n.X, sx), cell(n.Y, sy)

	if !n.Image.Tile {
		for dy, line := range art {
			dst.DrawTextColored(x0, y0+dy, line, color)
		}
		return
	}

	x1 := cell(n.X+n.W, sx)
	y1 := cell(n.Y+n.H, sy)
	for y := y0; y < y1; y++ {
		line := []rune(art[(y-y0)%len(art)])
		if len(line) == 0 {
			continue
		}
		for x := x0; x < x1; x++ {
			r := line[(x-x0)%len(line)]
			if r != ' ' {
				dst.SetColored(x, y, r, color)
			}
		}
	}
}

func drawPanel(dst *core.Screen, n *Node, color core.Color, sx, sy float64) {
	inner := 0
	for _, line := range n.Lines {
		inner = core.Max(inner, core.TextWidth(line))
	}
	boxW := inner + 4
	boxH := len(n.Lines) + 2
	cx, cy := centerCell(n, sx, sy)
	r := core.NewRect(cx-boxW/2, cy-boxH/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, color)
	for i, line := range n.Lines {
		x := r.X + (boxW-core.TextWidth(line))/2
		dst.DrawTextColored(x, r.Y+1+i, line, color)
	}
}
