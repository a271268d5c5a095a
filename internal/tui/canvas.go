// SPDX-License-Identifier: Unlicense OR MIT

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/math/f64"

	geom "gioui.org/x/multitouch/f64"
)

// Terminal cells are treated as cellW by cellH pixels, so that
// distances match those of a pixel surface.
const (
	cellW = 8
	cellH = 16
)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas is a grid of terminal cells addressed in pixels.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

// center returns the pixel at the middle of the canvas.
func (c *canvas) center() geom.Point {
	return geom.Pt(float64(c.w*cellW)/2, float64(c.h*cellH)/2)
}

func (c *canvas) plot(p geom.Point, r rune, st *lipgloss.Style) {
	x := int(math.Floor(p.X / cellW))
	y := int(math.Floor(p.Y / cellH))
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, style: st}
}

func (c *canvas) line(p0, p1 geom.Point, r rune, st *lipgloss.Style) {
	d := p1.Sub(p0)
	steps := int(math.Max(math.Abs(d.X)/cellW, math.Abs(d.Y)/cellH)*2) + 1
	for i := 0; i <= steps; i++ {
		c.plot(p0.Add(d.Mul(float64(i)/float64(steps))), r, st)
	}
}

func (c *canvas) circle(center geom.Point, radius float64, r rune, st *lipgloss.Style) {
	const n = 64
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		c.plot(center.Add(geom.Pt(math.Cos(a), math.Sin(a)).Mul(radius)), r, st)
	}
}

// polygon draws the closed outline of pts mapped through m.
func (c *canvas) polygon(m f64.Aff3, pts []geom.Point, r rune, st *lipgloss.Style) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		c.line(transform(m, p), transform(m, q), r, st)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range c.cells[y*c.w : (y+1)*c.w] {
			if cl.style != nil {
				b.WriteString(cl.style.Render(string(cl.r)))
			} else {
				b.WriteRune(cl.r)
			}
		}
	}
	return b.String()
}

// Affine transforms in the row major layout of f64.Aff3.

func translate(p geom.Point) f64.Aff3 {
	return f64.Aff3{1, 0, p.X, 0, 1, p.Y}
}

func rotate(a float64) f64.Aff3 {
	s, c := math.Sincos(a)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

func scale(s float64) f64.Aff3 {
	return f64.Aff3{s, 0, 0, 0, s, 0}
}

// mul returns the transform applying b, then a.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func transform(m f64.Aff3, p geom.Point) geom.Point {
	return geom.Pt(
		m[0]*p.X+m[1]*p.Y+m[2],
		m[3]*p.X+m[4]*p.Y+m[5],
	)
}
