package mesh

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/notargets/kmesh/luatable"
)

// ReadExport reads a table written by WriteTable back into a Model. Every
// entry comes back valid, there are no super points, and PtsMax is taken
// from the range binding.
func ReadExport(fsys afero.Fs, path string) (m *Model, err error) {
	var doc *luatable.Document
	if doc, err = luatable.Load(fsys, path); err != nil {
		return
	}
	return exportFromDocument(doc)
}

func exportFromDocument(doc *luatable.Document) (m *Model, err error) {
	var dim, nr, N, K int
	if nr, err = doc.SequenceLength("range"); err != nil {
		return
	}
	dim = nr
	if doc.Has("dimension") {
		if dim, err = doc.Int("dimension"); err != nil {
			return
		}
	}
	if dim < 1 || nr != dim {
		return nil, fmt.Errorf("%w: %s: range has %d entries, dimension is %d", ErrMissingField, doc.Name, nr, dim)
	}

	m = NewModel(dim)
	m.SourcePath = doc.Name
	if doc.Has("water") {
		if m.Water, err = doc.Number("water"); err != nil {
			return nil, err
		}
	}
	for j := 0; j < dim; j++ {
		if m.PtsMax[j], err = doc.Number(fmt.Sprintf("range[%d]", j+1)); err != nil {
			return nil, err
		}
	}

	if N, err = doc.SequenceLength("points"); err != nil {
		return nil, err
	}
	m.Points = make([]Point, N)
	for i := 1; i <= N; i++ {
		var id, nc int
		entry := fmt.Sprintf("points[%d]", i)
		if id, err = doc.Int(entry + "[1]"); err != nil {
			return nil, err
		}
		if id < 1 || id > N || m.Points[id-1].X != nil {
			return nil, fmt.Errorf("%w: %s: %s has id %d, ids must be unique in [1,%d]", ErrFormat, doc.Name, entry, id, N)
		}
		if nc, err = doc.Len(entry + "[2]"); err != nil {
			return nil, err
		}
		if nc != dim {
			return nil, fmt.Errorf("%w: %s: %s has %d coordinates, dimension is %d", ErrMissingField, doc.Name, entry, nc, dim)
		}
		pt := &m.Points[id-1]
		pt.X = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if pt.X[j], err = doc.Number(fmt.Sprintf("%s[2][%d]", entry, j+1)); err != nil {
				return nil, err
			}
		}
		pt.Name, _ = doc.String(entry + "[3]")
	}
	m.ISuperPt = N

	if K, err = doc.SequenceLength("elements"); err != nil {
		return nil, err
	}
	m.Triangles = make([]Triangle, K)
	for k := 1; k <= K; k++ {
		entry := fmt.Sprintf("elements[%d]", k)
		for i := 0; i < NodesPerTriangle; i++ {
			var node int
			if node, err = doc.Int(fmt.Sprintf("%s[2][%d]", entry, i+1)); err != nil {
				return nil, err
			}
			if node < 1 || node > N {
				return nil, fmt.Errorf("%w: %s: %s references point %d, have %d points", ErrFormat, doc.Name, entry, node, N)
			}
			m.Triangles[k-1].Nodes[i] = node - 1
		}
	}
	return m, nil
}
