package mesh

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/kmesh/InputParameters"
)

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(unitSquare(), NewPSPainter(&buf), nil))
	want := "%!PS-Adobe-3.0 EPSF-3.0\n" +
		"%%BoundingBox: 0 0 200 200\n\n" +
		"10 10 translate\n" +
		".9 .9 scale\n" +
		"0.500000 setlinewidth\n\n" +
		"0.890 0.000 0.890 0.100 setcmykcolor\n"
	assert.True(t, strings.HasPrefix(buf.String(), want), buf.String())
	assert.Contains(t, buf.String(), "0.890 0.450 0.000 0.100 setcmykcolor\n")
}

func TestRenderTriangles(t *testing.T) {
	var buf bytes.Buffer
	m := unitSquare()
	require.NoError(t, Render(m, NewPSPainter(&buf), nil))
	out := buf.String()
	assert.Equal(t, m.ValidTriangles(), strings.Count(out, "closepath gsave\n"))
	assert.Equal(t, m.ValidTriangles(), strings.Count(out, ".9 setgray fill\ngrestore stroke\n"))
	assert.Contains(t, out, "  0   0 moveto\n200   0 lineto\n200 200 lineto\nclosepath gsave\n")
	// The deleted triangle reaches a super point far off the page
	assert.NotContains(t, out, "-4000")
}

func TestRenderMarkers(t *testing.T) {
	m := NewModel(2)
	for i := 0; i < 8; i++ {
		m.AddPoint([]float64{float64(i) / 8, 0.5}, "")
	}
	m.ISuperPt = 5
	m.PtsMax = []float64{1, 1}

	var buf bytes.Buffer
	require.NoError(t, Render(m, NewPSPainter(&buf), nil))
	assert.Equal(t, 5, strings.Count(buf.String(), "closepath fill newpath\n"))
	assert.Zero(t, strings.Count(buf.String(), "closepath gsave"))
}

func TestPSMarker(t *testing.T) {
	var buf bytes.Buffer
	ps := NewPSPainter(&buf)
	pj := Projector{PageSize: [2]int{200, 200}, MaxExtent: 2}
	ps.Marker(pj.Project([]float64{1, 0.5}), 4)
	require.NoError(t, ps.End())
	want := "100  50 moveto\n" +
		"-4 0 rlineto\n" +
		"4 -4 rlineto\n" +
		"4 4 rlineto\n" +
		"-4 4 rlineto\n" +
		"-4 -4 rlineto\n" +
		"closepath fill newpath\n\n"
	assert.Equal(t, want, buf.String())
}

func TestPSNumbers(t *testing.T) {
	testCases := map[float64]string{
		0.9:  ".9",
		-0.5: "-.5",
		10:   "10",
		1.25: "1.25",
		0:    "0",
	}
	for f, want := range testCases {
		assert.Equal(t, want, psNum(f))
	}

	var buf bytes.Buffer
	ps := NewPSPainter(&buf)
	ps.Triangle([3][2]int{{0, 0}, {10, 0}, {0, 10}}, 0.75)
	require.NoError(t, ps.End())
	assert.Contains(t, buf.String(), "closepath gsave\n.75 setgray fill\n")
}

func TestProjectorRounds(t *testing.T) {
	m := NewModel(2)
	m.PtsMax = []float64{1, 3}
	pj, err := NewProjector(m, [2]int{200, 100})
	require.NoError(t, err)
	assert.Equal(t, 3., pj.MaxExtent)
	assert.Equal(t, [2]int{67, 33}, pj.Project([]float64{1, 1}))
	assert.Equal(t, [2]int{200, 100}, pj.Project([]float64{3, 3}))
	// Only the first two axes reach the page
	assert.Equal(t, [2]int{0, 0}, pj.Project([]float64{0, 0, 99}))
}

func TestRenderErrors(t *testing.T) {
	testCases := []struct {
		name  string
		model func() *Model
	}{
		{"zero extent", func() *Model {
			m := unitSquare()
			m.PtsMax = []float64{0, 0}
			return m
		}},
		{"one dimension", func() *Model {
			m := NewModel(1)
			m.AddPoint([]float64{1}, "")
			m.ISuperPt = 1
			m.PtsMax = []float64{1}
			return m
		}},
		{"bad triangle", func() *Model {
			m := unitSquare()
			m.Triangles[1].Nodes[0] = -1
			return m
		}},
		{"too many real points", func() *Model {
			m := unitSquare()
			m.ISuperPt = 20
			return m
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			err := RenderPS(fsys, tc.model(), "/out/x.ps", nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRender), "got %v", err)
			exists, _ := afero.Exists(fsys, "/out/x.ps")
			assert.False(t, exists, "nothing is written for an unrenderable model")
		})
	}
}

func TestRenderWriteFailure(t *testing.T) {
	err := Render(unitSquare(), NewPSPainter(failWriter{}), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)
}

func TestRenderPSFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	rp := InputParameters.NewRenderParameters()
	rp.PageSize = [2]int{400, 300}
	require.NoError(t, RenderPS(fsys, unitSquare(), "/out/square.ps", rp))
	data, err := afero.ReadFile(fsys, "/out/square.ps")
	require.NoError(t, err)
	assert.Contains(t, string(data), "%%BoundingBox: 0 0 400 300\n")
	assert.Contains(t, string(data), "400 300 lineto\n")
}

func TestRenderImage(t *testing.T) {
	fsys := afero.NewMemMapFs()
	m := unitSquare()

	require.NoError(t, RenderImage(fsys, m, "/out/square.svg", "svg", nil))
	data, err := afero.ReadFile(fsys, "/out/square.svg")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	require.NoError(t, RenderImage(fsys, m, "/out/square.png", ".PNG", nil))
	data, err = afero.ReadFile(fsys, "/out/square.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	err = RenderImage(fsys, m, "/out/square.bmp", "bmp", nil)
	assert.True(t, errors.Is(err, ErrRender), "got %v", err)
	exists, _ := afero.Exists(fsys, "/out/square.bmp")
	assert.False(t, exists)
}
