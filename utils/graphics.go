package utils

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// CMYK holds cyan, magenta, yellow and key components in [0,1]
type CMYK [4]float64

func (c CMYK) RGBA() (r, g, b, a uint32) {
	return c.ToColor().RGBA()
}

func (c CMYK) ToColor() color.CMYK {
	to8 := func(f float64) uint8 {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return color.CMYK{C: to8(c[0]), M: to8(c[1]), Y: to8(c[2]), K: to8(c[3])}
}

// PageSetup describes the drawing page in page units (points):
// a Size[0] x Size[1] box, content translated by Offset and scaled by Scale.
type PageSetup struct {
	Size      [2]int
	Offset    float64
	Scale     float64
	LineWidth float64
}

// VGFormats are the file formats VGPainter can produce
var VGFormats = []string{"svg", "pdf", "png", "eps"}

// VGPainter draws a mesh picture onto a gonum/plot canvas and writes it in
// the requested format when the drawing ends.
type VGPainter struct {
	Format string
	W      io.Writer
	canvas vg.CanvasWriterTo
	color  color.Color
}

func NewVGPainter(format string, w io.Writer) (vp *VGPainter, err error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	for _, f := range VGFormats {
		if f == format {
			vp = &VGPainter{Format: format, W: w, color: color.Black}
			return
		}
	}
	err = fmt.Errorf("unsupported image format %q, want one of %v", format, VGFormats)
	return
}

func (vp *VGPainter) Begin(page PageSetup) error {
	w, h := vg.Points(float64(page.Size[0])), vg.Points(float64(page.Size[1]))
	switch vp.Format {
	case "svg":
		vp.canvas = vgsvg.New(w, h)
	case "pdf":
		vp.canvas = vgpdf.New(w, h)
	case "png":
		vp.canvas = vgimg.PngCanvas{Canvas: vgimg.New(w, h)}
	case "eps":
		vp.canvas = vgeps.New(w, h)
	default:
		return fmt.Errorf("unsupported image format %q", vp.Format)
	}
	vp.canvas.Translate(vg.Point{X: vg.Points(page.Offset), Y: vg.Points(page.Offset)})
	vp.canvas.Scale(page.Scale, page.Scale)
	vp.canvas.SetLineWidth(vg.Points(page.LineWidth))
	return nil
}

func (vp *VGPainter) SetColor(c CMYK) {
	vp.color = c.ToColor()
	vp.canvas.SetColor(vp.color)
}

func (vp *VGPainter) Triangle(v [3][2]int, fillGray float64) {
	var p vg.Path
	p.Move(vgPoint(v[0]))
	p.Line(vgPoint(v[1]))
	p.Line(vgPoint(v[2]))
	p.Close()
	vp.canvas.SetColor(color.Gray{Y: uint8(clamp01(fillGray)*255 + 0.5)})
	vp.canvas.Fill(p)
	vp.canvas.SetColor(vp.color)
	vp.canvas.Stroke(p)
}

func (vp *VGPainter) Marker(at [2]int, half int) {
	var p vg.Path
	x, y := at[0], at[1]
	p.Move(vgPoint([2]int{x - half, y}))
	p.Line(vgPoint([2]int{x, y - half}))
	p.Line(vgPoint([2]int{x + half, y}))
	p.Line(vgPoint([2]int{x, y + half}))
	p.Close()
	vp.canvas.Fill(p)
}

func (vp *VGPainter) End() (err error) {
	if vp.canvas == nil {
		return fmt.Errorf("drawing was never started")
	}
	_, err = vp.canvas.WriteTo(vp.W)
	return
}

func vgPoint(p [2]int) vg.Point {
	return vg.Point{X: vg.Points(float64(p[0])), Y: vg.Points(float64(p[1]))}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
