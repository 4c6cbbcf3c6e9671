/*
Package result loads exported mesh tables into arrays addressed directly by
the ids stored in the file. Unlike the mesh reader no 0/1-based translation
is applied: an element with id 7 lands in elements[7], and its node ids are
copied verbatim into slots 1 to 3.
*/
package result

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/notargets/kmesh/luatable"
)

// ErrRange reports a stored id that does not fit the caller's array
var ErrRange = errors.New("id out of range")

// MaxIDSpread bounds the ids Arrays will allocate for: the largest id may
// be at most MaxIDSpread times the entry count plus one
const MaxIDSpread = 16

// Coords holds x and y in slots 1 and 2, slot 0 is unused
type Coords [3]float64

// Nodes holds the three node ids of an element in slots 1 to 3, slot 0 is unused
type Nodes [4]int

type element struct {
	id    int
	nodes Nodes
}

type point struct {
	id     int
	coords Coords
}

// Table is the content of a result file in file order
type Table struct {
	Name     string
	elements []element
	points   []point
}

func ReadTable(fsys afero.Fs, path string) (tb *Table, err error) {
	var doc *luatable.Document
	if doc, err = luatable.Load(fsys, path); err != nil {
		return
	}
	return tableFromDocument(doc)
}

func tableFromDocument(doc *luatable.Document) (tb *Table, err error) {
	var K, N int
	tb = &Table{Name: doc.Name}
	if K, err = doc.SequenceLength("elements"); err != nil {
		return nil, err
	}
	tb.elements = make([]element, K)
	for k := 1; k <= K; k++ {
		el := &tb.elements[k-1]
		if el.id, err = doc.Int(fmt.Sprintf("elements[%d][1]", k)); err != nil {
			return nil, err
		}
		for i := 1; i <= 3; i++ {
			if el.nodes[i], err = doc.Int(fmt.Sprintf("elements[%d][2][%d]", k, i)); err != nil {
				return nil, err
			}
		}
	}
	if N, err = doc.SequenceLength("points"); err != nil {
		return nil, err
	}
	tb.points = make([]point, N)
	for n := 1; n <= N; n++ {
		pt := &tb.points[n-1]
		if pt.id, err = doc.Int(fmt.Sprintf("points[%d][1]", n)); err != nil {
			return nil, err
		}
		for i := 1; i <= 2; i++ {
			if pt.coords[i], err = doc.Number(fmt.Sprintf("points[%d][2][%d]", n, i)); err != nil {
				return nil, err
			}
		}
	}
	return
}

func (tb *Table) NumElements() int { return len(tb.elements) }
func (tb *Table) NumPoints() int   { return len(tb.points) }

// IDRanges returns the smallest and largest element and point ids, zeros when empty
func (tb *Table) IDRanges() (elMin, elMax, ptMin, ptMax int) {
	for k, el := range tb.elements {
		if k == 0 || el.id < elMin {
			elMin = el.id
		}
		if k == 0 || el.id > elMax {
			elMax = el.id
		}
	}
	for n, pt := range tb.points {
		if n == 0 || pt.id < ptMin {
			ptMin = pt.id
		}
		if n == 0 || pt.id > ptMax {
			ptMax = pt.id
		}
	}
	return
}

// Fill copies the table into points and elements. Every id is checked
// against the array lengths first, so on ErrRange nothing has been written.
// Slot 0 of each entry is left as the caller had it.
func (tb *Table) Fill(points []Coords, elements []Nodes) error {
	for _, el := range tb.elements {
		if el.id < 0 || el.id >= len(elements) {
			return fmt.Errorf("%w: %s: element id %d, array holds %d", ErrRange, tb.Name, el.id, len(elements))
		}
	}
	for _, pt := range tb.points {
		if pt.id < 0 || pt.id >= len(points) {
			return fmt.Errorf("%w: %s: point id %d, array holds %d", ErrRange, tb.Name, pt.id, len(points))
		}
	}
	for _, el := range tb.elements {
		for i := 1; i <= 3; i++ {
			elements[el.id][i] = el.nodes[i]
		}
	}
	for _, pt := range tb.points {
		for i := 1; i <= 2; i++ {
			points[pt.id][i] = pt.coords[i]
		}
	}
	return nil
}

// Read loads the result file at path into the caller's arrays
func Read(fsys afero.Fs, path string, points []Coords, elements []Nodes) (err error) {
	var tb *Table
	if tb, err = ReadTable(fsys, path); err != nil {
		return
	}
	return tb.Fill(points, elements)
}

// Load reads path into arrays just large enough for the largest ids present
func Load(fsys afero.Fs, path string) (points []Coords, elements []Nodes, err error) {
	var tb *Table
	if tb, err = ReadTable(fsys, path); err != nil {
		return
	}
	return tb.Arrays()
}

// Arrays allocates arrays sized by the largest ids and fills them
func (tb *Table) Arrays() (points []Coords, elements []Nodes, err error) {
	_, elMax, _, ptMax := tb.IDRanges()
	if lim := MaxIDSpread * (tb.NumElements() + 1); elMax > lim {
		return nil, nil, fmt.Errorf("%w: %s: element id %d, at most %d allowed for %d elements", ErrRange, tb.Name, elMax, lim, tb.NumElements())
	}
	if lim := MaxIDSpread * (tb.NumPoints() + 1); ptMax > lim {
		return nil, nil, fmt.Errorf("%w: %s: point id %d, at most %d allowed for %d points", ErrRange, tb.Name, ptMax, lim, tb.NumPoints())
	}
	if tb.NumElements() > 0 && elMax >= 0 {
		elements = make([]Nodes, elMax+1)
	}
	if tb.NumPoints() > 0 && ptMax >= 0 {
		points = make([]Coords, ptMax+1)
	}
	if err = tb.Fill(points, elements); err != nil {
		return nil, nil, err
	}
	return
}
