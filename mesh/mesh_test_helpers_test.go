package mesh

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const squareModelFile = `
dimension = 2
water = 0.1
points = {
   { {0.0, 0.0}, "sw" },
   { {1.0, 0.0} },
   { {1.0, 1.0}, "ne" },
   { {0.0, 1.0} },
}
`

// unitSquare is the triangulated unit square as a triangulator leaves it:
// four real points, three deleted super points, two live triangles and one
// deleted triangle that touched a super point.
func unitSquare() *Model {
	m := NewModel(2)
	m.Water = 0.1
	m.SourcePath = "/data/square.lua"
	for _, x := range [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		m.AddPoint(x, "")
	}
	m.Points[0].Name = "sw"
	m.ISuperPt = 4
	for _, x := range [][]float64{{-20, -1}, {20, -1}, {0.5, 20}} {
		m.Points[m.AddPoint(x, "")].Invalidate()
	}
	m.AddTriangle(0, 1, 2)
	m.AddTriangle(0, 2, 3)
	m.Triangles[m.AddTriangle(0, 1, 4)].Invalidate()
	m.PtsMax = []float64{1, 1}
	return m
}

func memFile(t *testing.T, path, content string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	return fsys
}
