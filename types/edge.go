package types

import (
	"fmt"
	"math"
)

/*
EdgeKey stores an edge's two point indices so that both directions of the
same edge compare equal. An edge between points [4] and [0] is always
stored as [0,4], smallest index in the low 32 bits.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

// GetVertices unpacks the key in ascending order, or descending when rev is set
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[1] = int(ek >> 32)
	verts[0] = int(ek & math.MaxUint32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (ek EdgeKey) String() string {
	v := ek.GetVertices(false)
	return fmt.Sprintf("[%d,%d]", v[0], v[1])
}

// TriangleEdges returns the keys of the three edges of a triangle
func TriangleEdges(nodes [3]int) (keys [3]EdgeKey) {
	for i := 0; i < 3; i++ {
		keys[i] = NewEdgeKey([2]int{nodes[i], nodes[(i+1)%3]})
	}
	return
}

// Opposite returns the node of the triangle that is not on the edge
func (ek EdgeKey) Opposite(nodes [3]int) int {
	v := ek.GetVertices(false)
	for _, n := range nodes {
		if n != v[0] && n != v[1] {
			return n
		}
	}
	return -1
}
