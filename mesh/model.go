package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/kmesh/luatable"
)

const (
	NumSuperPoints   = 3 // Synthetic boundary points appended after the real points
	NodesPerTriangle = 3
)

var (
	ErrExtension    = luatable.ErrExtension
	ErrFormat       = luatable.ErrFormat
	ErrMissingField = luatable.ErrMissingField
	ErrType         = luatable.ErrType
	ErrIO           = errors.New("unable to write output")
	ErrRender       = errors.New("unable to render mesh")
)

// Point is one mesh vertex. A deleted point keeps its slot so triangle
// references stay positional until the next export renumbers survivors.
type Point struct {
	X       []float64
	Name    string
	Deleted bool
}

func (p *Point) IsValid() bool { return !p.Deleted }
func (p *Point) Invalidate()   { p.Deleted = true }

// Triangle references three points by their 0-based storage index
type Triangle struct {
	Nodes   [NodesPerTriangle]int
	Deleted bool
}

func (t *Triangle) IsValid() bool { return !t.Deleted }
func (t *Triangle) Invalidate()   { t.Deleted = true }

/*
Model is the in memory triangulation exchanged with the table format.

Points below ISuperPt are the real input points, the NumSuperPoints that
follow are the synthetic super points bounding the triangulation. Any
point past those was inserted by the triangulator. PtsMax holds the
largest coordinate per axis and scales rendering.
*/
type Model struct {
	Dim        int
	Water      float64
	Points     []Point
	Triangles  []Triangle
	PtsMax     []float64
	ISuperPt   int
	SourcePath string // File the model was read from, used to name exports
}

func NewModel(dim int) *Model {
	return &Model{
		Dim:    dim,
		PtsMax: make([]float64, dim),
	}
}

// AddPoint appends a point and returns its storage index
func (m *Model) AddPoint(x []float64, name string) (index int) {
	coords := make([]float64, m.Dim)
	copy(coords, x)
	m.Points = append(m.Points, Point{X: coords, Name: name})
	return len(m.Points) - 1
}

// AddTriangle appends a triangle and returns its storage index
func (m *Model) AddTriangle(a, b, c int) (index int) {
	m.Triangles = append(m.Triangles, Triangle{Nodes: [NodesPerTriangle]int{a, b, c}})
	return len(m.Triangles) - 1
}

func (m *Model) ValidPoints() (n int) {
	for i := range m.Points {
		if m.Points[i].IsValid() {
			n++
		}
	}
	return
}

func (m *Model) ValidTriangles() (n int) {
	for i := range m.Triangles {
		if m.Triangles[i].IsValid() {
			n++
		}
	}
	return
}

// ComputeExtents sets PtsMax to the per axis maximum over the valid real points
func (m *Model) ComputeExtents() {
	m.PtsMax = make([]float64, m.Dim)
	for j := range m.PtsMax {
		m.PtsMax[j] = math.Inf(-1)
	}
	var seen bool
	for i := 0; i < m.ISuperPt && i < len(m.Points); i++ {
		if !m.Points[i].IsValid() {
			continue
		}
		seen = true
		for j, x := range m.Points[i].X {
			m.PtsMax[j] = math.Max(m.PtsMax[j], x)
		}
	}
	if !seen {
		for j := range m.PtsMax {
			m.PtsMax[j] = 0
		}
	}
}

// checkIndices verifies every valid triangle references an existing point
func (m *Model) checkIndices() error {
	for k, tri := range m.Triangles {
		if !tri.IsValid() {
			continue
		}
		for _, n := range tri.Nodes {
			if n < 0 || n >= len(m.Points) {
				return fmt.Errorf("triangle %d references point %d, have %d points", k, n, len(m.Points))
			}
		}
	}
	return nil
}

func (m *Model) PrintStatistics() {
	fmt.Printf("Mesh statistics:\n")
	fmt.Printf("  Dimension: %d\n", m.Dim)
	fmt.Printf("  Water: %g\n", m.Water)
	fmt.Printf("  Points: %d (%d valid, %d real)\n", len(m.Points), m.ValidPoints(), m.ISuperPt)
	fmt.Printf("  Triangles: %d (%d valid)\n", len(m.Triangles), m.ValidTriangles())
	fmt.Printf("  Range: %v\n", m.PtsMax)
}
