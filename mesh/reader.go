package mesh

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/notargets/kmesh/luatable"
)

/*
ReadModel reads a model description like:

	dimension = 2
	water = 0.1
	points = {
	   { {0.0, 0.0}, "name" },
	   { {1.0, 0.0} },
	}

External point numbers are 1-based, the model stores them 0-based in file
order. A point is named when the last element of its record is a string.
*/
func ReadModel(fsys afero.Fs, path string) (m *Model, err error) {
	if !luatable.HasExtension(path) {
		return nil, fmt.Errorf("%w: %s does not end in %s", ErrExtension, path, luatable.Extension)
	}
	var doc *luatable.Document
	if doc, err = luatable.Load(fsys, path); err != nil {
		return nil, err
	}
	return modelFromDocument(doc)
}

// ReadFrom replaces the content of m with the model in path. On error m is left untouched.
func (m *Model) ReadFrom(fsys afero.Fs, path string) error {
	fresh, err := ReadModel(fsys, path)
	if err != nil {
		return err
	}
	*m = *fresh
	return nil
}

func modelFromDocument(doc *luatable.Document) (m *Model, err error) {
	var (
		dim   int
		water float64
		N     int
	)
	if dim, err = doc.Int("dimension"); err != nil {
		return
	}
	if dim < 1 {
		return nil, fmt.Errorf("%w: %s: dimension = %d, must be at least 1", ErrFormat, doc.Name, dim)
	}
	if water, err = doc.Number("water"); err != nil {
		return
	}
	if N, err = doc.SequenceLength("points"); err != nil {
		return
	}

	m = NewModel(dim)
	m.Water = water
	m.SourcePath = doc.Name
	m.Points = make([]Point, N)
	for i := 1; i <= N; i++ {
		pt := &m.Points[i-1]
		coor := fmt.Sprintf("points[%d][1]", i)
		var nc int
		if nc, err = doc.Len(coor); err != nil {
			return nil, err
		}
		if nc != dim {
			return nil, fmt.Errorf("%w: %s: %s has %d coordinates, dimension is %d",
				ErrMissingField, doc.Name, coor, nc, dim)
		}
		pt.X = make([]float64, dim)
		for j := 1; j <= dim; j++ {
			if pt.X[j-1], err = doc.Number(fmt.Sprintf("%s[%d]", coor, j)); err != nil {
				return nil, err
			}
		}
		if name, ok := doc.String(fmt.Sprintf("points[%d][#]", i)); ok {
			pt.Name = name
		}
	}
	// No super points exist until a triangulator inserts them
	m.ISuperPt = N
	return m, nil
}
