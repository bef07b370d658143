// Package export renders recorded trajectories to static formats.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/sim"
)

const background = "#0a0a0a"

type bounds struct {
	minX, maxX, minY, maxY float64
}

// FramesToSVG draws every body of the recorded frames. With trails set
// each body's path is stroked in its own color; the final positions are
// always drawn as discs scaled by body radius.
func FramesToSVG(w io.Writer, frames []sim.Frame, width, height int, trails bool) error {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return fmt.Errorf("no frames to render")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid canvas %dx%d", width, height)
	}

	b := frameBounds(frames)
	project := func(x, y float64) (float64, float64) {
		px := (x - b.minX) / (b.maxX - b.minX) * float64(width)
		py := float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height)
		return px, py
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	last := frames[len(frames)-1]
	if trails && len(frames) > 1 {
		for i := range last {
			sb.WriteString(`<path fill="none" stroke-width="1.5" stroke="`)
			sb.WriteString(hexColor(last[i].Color))
			sb.WriteString(`" d="M`)
			first := true
			for _, f := range frames {
				if i >= len(f) {
					continue
				}
				x, y := project(f[i].X, f[i].Y)
				if !first {
					sb.WriteString(" L")
				}
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
				first = false
			}
			sb.WriteString("\"/>\n")
		}
	}

	scale := math.Min(float64(width)/(b.maxX-b.minX), float64(height)/(b.maxY-b.minY))
	for _, s := range last {
		x, y := project(s.X, s.Y)
		r := math.Max(s.Radius*scale, 1)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", x, y, r, hexColor(s.Color))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// hexColor converts a body label to SVG hex, white when unparseable.
func hexColor(label string) string {
	c, err := scenario.ParseColor(label)
	if err != nil {
		return "#ffffff"
	}
	return c.Clamped().Hex()
}

// frameBounds is the padded bounding box of all positions. Degenerate
// extents are widened to one unit.
func frameBounds(frames []sim.Frame) bounds {
	b := bounds{
		minX: frames[0][0].X, maxX: frames[0][0].X,
		minY: frames[0][0].Y, maxY: frames[0][0].Y,
	}
	for _, f := range frames {
		for _, s := range f {
			b.minX = math.Min(b.minX, s.X)
			b.maxX = math.Max(b.maxX, s.X)
			b.minY = math.Min(b.minY, s.Y)
			b.maxY = math.Max(b.maxY, s.Y)
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}
