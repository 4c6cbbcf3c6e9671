package mesh

import (
	"fmt"
	"math"

	"github.com/notargets/kmesh/InputParameters"
	"github.com/notargets/kmesh/utils"
)

// Painter receives a mesh drawing in page coordinates
type Painter interface {
	Begin(page utils.PageSetup) error
	SetColor(c utils.CMYK)
	Triangle(v [3][2]int, fillGray float64) // Filled with fillGray, stroked in the current color
	Marker(at [2]int, half int)             // Filled diamond centered on at
	End() error
}

// Projector maps model coordinates onto the page
type Projector struct {
	PageSize  [2]int
	MaxExtent float64
}

// NewProjector scales by the largest PtsMax entry so the mesh keeps its aspect ratio
func NewProjector(m *Model, pageSize [2]int) (pj Projector, err error) {
	if m.Dim < 2 {
		err = fmt.Errorf("%w: dimension %d, need at least 2 axes to draw", ErrRender, m.Dim)
		return
	}
	if len(m.PtsMax) < m.Dim {
		err = fmt.Errorf("%w: range has %d entries, dimension is %d", ErrRender, len(m.PtsMax), m.Dim)
		return
	}
	pj.PageSize = pageSize
	for i := 0; i < m.Dim; i++ {
		if i == 0 || m.PtsMax[i] > pj.MaxExtent {
			pj.MaxExtent = m.PtsMax[i]
		}
	}
	if pj.MaxExtent == 0 || math.IsNaN(pj.MaxExtent) || math.IsInf(pj.MaxExtent, 0) {
		err = fmt.Errorf("%w: largest extent is %v, cannot scale the drawing", ErrRender, pj.MaxExtent)
	}
	return
}

// Project rounds each of the first two coordinates to the nearest page unit
func (pj Projector) Project(x []float64) (p [2]int) {
	for j := 0; j < 2; j++ {
		p[j] = int(math.Round(x[j] * float64(pj.PageSize[j]) / pj.MaxExtent))
	}
	return
}

// CheckRenderable reports the ErrRender a call to Render would fail with
func CheckRenderable(m *Model, rp *InputParameters.RenderParameters) (err error) {
	_, err = prepare(m, rp)
	return
}

func prepare(m *Model, rp *InputParameters.RenderParameters) (pj Projector, err error) {
	if rp == nil {
		rp = InputParameters.NewRenderParameters()
	}
	if pj, err = NewProjector(m, rp.PageSize); err != nil {
		return
	}
	if err = m.checkIndices(); err != nil {
		err = fmt.Errorf("%w: %v", ErrRender, err)
		return
	}
	if m.ISuperPt > len(m.Points) {
		err = fmt.Errorf("%w: %d real points claimed, only %d points stored", ErrRender, m.ISuperPt, len(m.Points))
		return
	}
	for i := range m.Points {
		if len(m.Points[i].X) < 2 {
			err = fmt.Errorf("%w: point %d has %d coordinates", ErrRender, i, len(m.Points[i].X))
			return
		}
	}
	return
}

/*
Render draws every valid triangle, then a marker on every real point
(indices below ISuperPt). Super points and inserted points get no marker.
*/
func Render(m *Model, p Painter, rp *InputParameters.RenderParameters) (err error) {
	if rp == nil {
		rp = InputParameters.NewRenderParameters()
	}
	var pj Projector
	if pj, err = prepare(m, rp); err != nil {
		return
	}

	if err = p.Begin(rp.Page()); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	p.SetColor(rp.EdgeColor)
	for _, tri := range m.Triangles {
		if !tri.IsValid() {
			continue
		}
		var v [3][2]int
		for i, n := range tri.Nodes {
			v[i] = pj.Project(m.Points[n].X)
		}
		p.Triangle(v, rp.FillGray)
	}
	p.SetColor(rp.PointColor)
	for i := 0; i < m.ISuperPt; i++ {
		p.Marker(pj.Project(m.Points[i].X), rp.MarkerSize)
	}
	if err = p.End(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return
}
