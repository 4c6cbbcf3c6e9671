package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeKey(t *testing.T) {
	{ // Packing is independent of direction
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)
		assert.Equal(t, [2]int{0, 1}, en.GetVertices(false))
		assert.Equal(t, [2]int{1, 0}, en.GetVertices(true))

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)
		assert.Equal(t, [2]int{1, 100}, en.GetVertices(false))
		assert.Equal(t, "[1,100]", en.String())
	}
	{ // Maximum indices
		en := NewEdgeKey([2]int{1<<32 - 1, 1})
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), en)
		assert.Equal(t, [2]int{1, 1<<32 - 1}, en.GetVertices(false))

		en = NewEdgeKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, EdgeKey(1<<64-1), en)
		assert.Equal(t, [2]int{1<<32 - 1, 1<<32 - 1}, en.GetVertices(false))
	}
	assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
}

func TestTriangleEdges(t *testing.T) {
	tri := [3]int{7, 2, 5}
	keys := TriangleEdges(tri)
	assert.Equal(t, [3]EdgeKey{
		NewEdgeKey([2]int{2, 7}),
		NewEdgeKey([2]int{2, 5}),
		NewEdgeKey([2]int{5, 7}),
	}, keys)
	assert.Equal(t, 5, keys[0].Opposite(tri))
	assert.Equal(t, 7, keys[1].Opposite(tri))
	assert.Equal(t, 2, keys[2].Opposite(tri))
	assert.Equal(t, -1, NewEdgeKey([2]int{0, 1}).Opposite([3]int{0, 1, 1}))
}
