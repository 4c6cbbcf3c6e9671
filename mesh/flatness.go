package mesh

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/kmesh/utils"
)

// FlatRatios returns the flatness ratio of every valid triangle in storage order
func FlatRatios(m *Model) (ratios []float64) {
	ratios = make([]float64, 0, len(m.Triangles))
	for _, tri := range m.Triangles {
		if !tri.IsValid() || !m.inRange(tri) {
			continue
		}
		a, b, c := m.Points[tri.Nodes[0]].X, m.Points[tri.Nodes[1]].X, m.Points[tri.Nodes[2]].X
		ratios = append(ratios, utils.FlatRatio(a, b, c))
	}
	return
}

// FlatRatioStats is the largest and the mean flatness ratio over the valid
// triangles. A model without valid triangles reports zero for both.
func FlatRatioStats(m *Model) (max, average float64) {
	ratios := FlatRatios(m)
	if len(ratios) == 0 {
		return 0, 0
	}
	return floats.Max(ratios), stat.Mean(ratios, nil)
}

func (m *Model) inRange(tri Triangle) bool {
	for _, n := range tri.Nodes {
		if n < 0 || n >= len(m.Points) {
			return false
		}
	}
	return true
}
