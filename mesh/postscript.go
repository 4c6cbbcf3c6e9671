package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/notargets/kmesh/InputParameters"
	"github.com/notargets/kmesh/utils"
)

// PSPainter writes the drawing as an encapsulated PostScript document
type PSPainter struct {
	w *bufio.Writer
}

func NewPSPainter(w io.Writer) *PSPainter {
	return &PSPainter{w: bufio.NewWriter(w)}
}

func (ps *PSPainter) Begin(page utils.PageSetup) error {
	fmt.Fprintf(ps.w, "%%!PS-Adobe-3.0 EPSF-3.0\n")
	fmt.Fprintf(ps.w, "%%%%BoundingBox: 0 0 %d %d\n\n", page.Size[0], page.Size[1])
	fmt.Fprintf(ps.w, "%s %s translate\n", psNum(page.Offset), psNum(page.Offset))
	fmt.Fprintf(ps.w, "%s %s scale\n", psNum(page.Scale), psNum(page.Scale))
	fmt.Fprintf(ps.w, "%f setlinewidth\n\n", page.LineWidth)
	return nil
}

func (ps *PSPainter) SetColor(c utils.CMYK) {
	fmt.Fprintf(ps.w, "%.3f %.3f %.3f %.3f setcmykcolor\n", c[0], c[1], c[2], c[3])
}

func (ps *PSPainter) Triangle(v [3][2]int, fillGray float64) {
	for i, p := range v {
		fmt.Fprintf(ps.w, "%3d %3d ", p[0], p[1])
		if i == 0 {
			fmt.Fprintf(ps.w, "moveto\n")
		} else {
			fmt.Fprintf(ps.w, "lineto\n")
		}
	}
	fmt.Fprintf(ps.w, "closepath gsave\n")
	fmt.Fprintf(ps.w, "%s setgray fill\n", psNum(fillGray))
	fmt.Fprintf(ps.w, "grestore stroke\n\n")
}

func (ps *PSPainter) Marker(at [2]int, half int) {
	fmt.Fprintf(ps.w, "%3d %3d moveto\n", at[0], at[1])
	fmt.Fprintf(ps.w, "%d 0 rlineto\n", -half)
	fmt.Fprintf(ps.w, "%d %d rlineto\n", half, -half)
	fmt.Fprintf(ps.w, "%d %d rlineto\n", half, half)
	fmt.Fprintf(ps.w, "%d %d rlineto\n", -half, half)
	fmt.Fprintf(ps.w, "%d %d rlineto\n", -half, -half)
	fmt.Fprintf(ps.w, "closepath fill newpath\n\n")
}

// psNum writes f in the shortest form with no leading zero, .9 rather than 0.9
func psNum(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	switch {
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	}
	return s
}

func (ps *PSPainter) End() error {
	return ps.w.Flush()
}

// RenderPS writes the PostScript drawing of m to path
func RenderPS(fsys afero.Fs, m *Model, path string, rp *InputParameters.RenderParameters) (err error) {
	if rp == nil {
		rp = InputParameters.NewRenderParameters()
	}
	if err = CheckRenderable(m, rp); err != nil {
		return
	}
	return renderFile(fsys, path, func(w io.Writer) error {
		return Render(m, NewPSPainter(w), rp)
	})
}

// RenderImage writes m to path as SVG, PDF, PNG or EPS, chosen by format
func RenderImage(fsys afero.Fs, m *Model, path, format string, rp *InputParameters.RenderParameters) (err error) {
	if rp == nil {
		rp = InputParameters.NewRenderParameters()
	}
	if err = CheckRenderable(m, rp); err != nil {
		return
	}
	var vp *utils.VGPainter
	if vp, err = utils.NewVGPainter(format, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return renderFile(fsys, path, func(w io.Writer) error {
		vp.W = w
		return Render(m, vp, rp)
	})
}

func renderFile(fsys afero.Fs, path string, draw func(w io.Writer) error) (err error) {
	var file afero.File
	if file, err = fsys.Create(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if err = draw(file); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return
}
