package geometry2D

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/kmesh/mesh"
	"github.com/notargets/kmesh/types"
)

var ErrTriangulate = errors.New("unable to triangulate")

// SuperMargin is the distance of the super points from the center of the
// input, in multiples of the larger bounding box side
const SuperMargin = 20.

// Bound returns the bounding box of the first n points of m
func Bound(m *mesh.Model, n int) orb.Bound {
	mp := make(orb.MultiPoint, n)
	for i := 0; i < n; i++ {
		mp[i] = orb.Point{m.Points[i].X[0], m.Points[i].X[1]}
	}
	return mp.Bound()
}

// SuperPoints returns three points enclosing b by a wide margin
func SuperPoints(b orb.Bound) (pts [mesh.NumSuperPoints]orb.Point) {
	var (
		c = b.Center()
		d = math.Max(b.Right()-b.Left(), b.Top()-b.Bottom())
	)
	if d <= 0 {
		d = 1
	}
	d *= SuperMargin
	pts[0] = orb.Point{c[0] - d, c[1] - d}
	pts[1] = orb.Point{c[0] + d, c[1] - d}
	pts[2] = orb.Point{c[0], c[1] + d}
	return
}

/*
Triangulate builds the Delaunay triangulation of the points of a freshly
read two dimensional model.

PtsMax is set from the input points. Three super points bounding the input
are appended and ISuperPt marks where they start. Every triangle is stored
counter clockwise; those touching a super point are kept but invalidated,
as are the super points themselves.
*/
func Triangulate(m *mesh.Model) (err error) {
	if m.Dim != 2 {
		return fmt.Errorf("%w: %s: dimension is %d, only planar models are supported", ErrTriangulate, m.SourcePath, m.Dim)
	}
	if len(m.Triangles) != 0 || m.ISuperPt != len(m.Points) {
		return fmt.Errorf("%w: %s: model is already triangulated", ErrTriangulate, m.SourcePath)
	}
	N := len(m.Points)
	for i := range m.Points {
		if !m.Points[i].IsValid() || len(m.Points[i].X) < 2 {
			return fmt.Errorf("%w: %s: point %d is unusable", ErrTriangulate, m.SourcePath, i)
		}
	}

	bb := Bound(m, N)
	if N == 0 {
		m.PtsMax = []float64{0, 0}
	} else {
		m.PtsMax = []float64{bb.Max[0], bb.Max[1]}
	}
	for _, sp := range SuperPoints(bb) {
		m.AddPoint([]float64{sp[0], sp[1]}, "")
	}
	m.ISuperPt = N

	pts := make([][2]float64, len(m.Points))
	for i, pt := range m.Points {
		pts[i] = [2]float64{pt.X[0], pt.X[1]}
	}
	for _, tri := range triangle.Delaunay(pts) {
		nodes := [3]int{int(tri[0]), int(tri[1]), int(tri[2])}
		if orientation(pts, nodes) < 0 {
			nodes[1], nodes[2] = nodes[2], nodes[1]
		}
		k := m.AddTriangle(nodes[0], nodes[1], nodes[2])
		for _, n := range nodes {
			if n >= N {
				m.Triangles[k].Invalidate()
				break
			}
		}
	}
	for i := N; i < len(m.Points); i++ {
		m.Points[i].Invalidate()
	}
	return
}

func orientation(pts [][2]float64, nodes [3]int) float64 {
	a, b, c := pts[nodes[0]], pts[nodes[1]], pts[nodes[2]]
	return (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
}

/*
CheckDelaunay verifies that no valid triangle has the far vertex of a
valid neighbour strictly inside its circumcircle. Edges shared by more than
two valid triangles are reported as well.
*/
func CheckDelaunay(m *mesh.Model) (err error) {
	edges := make(map[types.EdgeKey][]int)
	for k, tri := range m.Triangles {
		if !tri.IsValid() {
			continue
		}
		for _, ek := range types.TriangleEdges(tri.Nodes) {
			edges[ek] = append(edges[ek], k)
		}
	}
	for ek, tris := range edges {
		switch len(tris) {
		case 1:
			continue
		case 2:
		default:
			return fmt.Errorf("edge %s is shared by %d triangles", ek, len(tris))
		}
		var (
			ta, tb = m.Triangles[tris[0]].Nodes, m.Triangles[tris[1]].Nodes
			v      = ek.GetVertices(false)
			pi, pj = m.Points[v[0]].X, m.Points[v[1]].X
			pk     = m.Points[ek.Opposite(ta)].X
			pr     = m.Points[ek.Opposite(tb)].X
		)
		if IsIllegalEdge(pr[0], pr[1], pi[0], pi[1], pj[0], pj[1], pk[0], pk[1]) {
			return fmt.Errorf("edge %s between triangles %d and %d is not locally Delaunay", ek, tris[0], tris[1])
		}
	}
	return
}

func IsIllegalEdge(prX, prY, piX, piY, pjX, pjY, pkX, pkY float64) bool {
	/*
		pr is a new point for candidate triangle pi-pj-pr
		pi-pj is a shared edge between pi-pj-pk and pi-pj-pr
		if pr lies inside the circle defined by pi-pj-pk:
			- The edge pi-pj should be swapped with pr-pk to make two new triangles:
				pi-pr-pk and pj-pk-pr
	*/
	inCircle := func(ax, ay, bx, by, cx, cy, dx, dy float64) (inside bool) {
		// Calculate handedness, counter-clockwise is (positive) and clockwise is (negative)
		signBit := math.Signbit((bx-ax)*(cy-ay) - (cx-ax)*(by-ay))
		ax_ := ax - dx
		ay_ := ay - dy
		bx_ := bx - dx
		by_ := by - dy
		cx_ := cx - dx
		cy_ := cy - dy
		det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
			(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
			(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
		if signBit {
			return det < 0
		} else {
			return det > 0
		}
	}
	return inCircle(piX, piY, pjX, pjY, pkX, pkY, prX, prY)
}
