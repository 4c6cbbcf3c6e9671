package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/afero"
)

// WriteTable exports the valid content of m to path in table format
func WriteTable(fsys afero.Fs, m *Model, path string) (err error) {
	if err = m.checkExportable(); err != nil {
		return
	}
	var file afero.File
	if file, err = fsys.Create(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if err = m.WriteTableTo(file); err != nil {
		file.Close()
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	return
}

/*
WriteTableTo writes the table export of m:

	dimension = 2
	water = 0.100000

	range = {1.000000, 2.000000}

	max_flat_ratio     = 1.154701
	average_flat_ratio = 1.154701

	elements = {
	   {1, {1, 2, 3}},
	}

	points = {
	   {1, {0.000000, 0.000000}},
	   {2, {1.000000, 0.000000}, "name"},
	}

Deleted triangles and points are skipped and the survivors are numbered
1, 2, 3... in storage order. Triangle references at or past ISuperPt drop
by NumSuperPoints before going 1-based.
*/
func (m *Model) WriteTableTo(w io.Writer) error {
	if err := m.checkExportable(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "dimension = %d\n", m.Dim)
	fmt.Fprintf(bw, "water = %s\n\n", luaFloat("%f", m.Water))

	rng := make([]string, m.Dim)
	for i := range rng {
		rng[i] = luaFloat("%f", m.PtsMax[i])
	}
	fmt.Fprintf(bw, "range = {%s}\n\n", strings.Join(rng, ", "))

	max, ave := FlatRatioStats(m)
	fmt.Fprintf(bw, "max_flat_ratio     = %s\n", luaFloat("%f", max))
	fmt.Fprintf(bw, "average_flat_ratio = %s\n\n", luaFloat("%f", ave))

	ntr := 1
	fmt.Fprintf(bw, "elements = {\n")
	for _, tri := range m.Triangles {
		if !tri.IsValid() {
			continue
		}
		fmt.Fprintf(bw, "   {%d, {%d, %d, %d}},\n", ntr,
			m.ExportIndex(tri.Nodes[0]), m.ExportIndex(tri.Nodes[1]), m.ExportIndex(tri.Nodes[2]))
		ntr++
	}
	fmt.Fprintf(bw, "}\n\n")

	npt := 1
	coords := make([]string, m.Dim)
	fmt.Fprintf(bw, "points = {\n")
	for _, pt := range m.Points {
		if !pt.IsValid() {
			continue
		}
		for j := range coords {
			coords[j] = luaFloat("%6f", pt.X[j])
		}
		if pt.Name != "" {
			fmt.Fprintf(bw, "   {%d, {%s}, %s},\n", npt, strings.Join(coords, ", "), luaQuote(pt.Name))
		} else {
			fmt.Fprintf(bw, "   {%d, {%s}},\n", npt, strings.Join(coords, ", "))
		}
		npt++
	}
	fmt.Fprintf(bw, "}\n")

	return bw.Flush()
}

// ExportIndex maps a 0-based storage index to the 1-based number written
// for a triangle node, collapsing the super point block.
func (m *Model) ExportIndex(n int) int {
	if n >= m.ISuperPt {
		n -= NumSuperPoints
	}
	return n + 1
}

func (m *Model) checkExportable() error {
	if m.Dim < 1 {
		return fmt.Errorf("%w: model has dimension %d", ErrFormat, m.Dim)
	}
	if len(m.PtsMax) < m.Dim {
		return fmt.Errorf("%w: model range has %d entries, dimension is %d", ErrFormat, len(m.PtsMax), m.Dim)
	}
	for i, pt := range m.Points {
		if pt.IsValid() && len(pt.X) < m.Dim {
			return fmt.Errorf("%w: point %d has %d coordinates, dimension is %d", ErrFormat, i, len(pt.X), m.Dim)
		}
	}
	if err := m.checkIndices(); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return nil
}

// luaFloat formats f so the result is always a valid Lua expression
func luaFloat(verb string, f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "1/0"
	case math.IsInf(f, -1):
		return "-1/0"
	case math.IsNaN(f):
		return "0/0"
	}
	return fmt.Sprintf(verb, f)
}

func luaQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&sb, "\\%03d", c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
