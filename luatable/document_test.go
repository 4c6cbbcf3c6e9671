package luatable

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modelDoc = []byte(`
-- sample model
dimension = 2
water = 0.25
points = {
   { {0.0, 0.0}, "origin" },
   { {1.5, 0.0} },
   { {1.5, 2.0}, "corner" },
}
config = { name = "box", range = {1.5, 2.0} }
half = water / 2
`)

func TestParseBindings(t *testing.T) {
	doc, err := Parse(modelDoc, "model.lua")
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "dimension", "half", "points", "water"}, doc.Names())

	dim, err := doc.Int("dimension")
	require.NoError(t, err)
	assert.Equal(t, 2, dim)

	water, err := doc.Number("water")
	require.NoError(t, err)
	assert.Equal(t, 0.25, water)

	// Expressions in the document are evaluated
	half, err := doc.Number("half")
	require.NoError(t, err)
	assert.Equal(t, 0.125, half)

	n, err := doc.SequenceLength("points")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	y, err := doc.Number("points[3][1][2]")
	require.NoError(t, err)
	assert.Equal(t, 2.0, y)

	r, err := doc.Number("config.range[2]")
	require.NoError(t, err)
	assert.Equal(t, 2.0, r)
}

func TestStringIsLastElementAware(t *testing.T) {
	doc, err := Parse(modelDoc, "model.lua")
	require.NoError(t, err)

	testCases := []struct {
		expr  string
		name  string
		found bool
	}{
		{"points[1][#]", "origin", true},
		{"points[2][#]", "", false}, // last element is the coordinate table
		{"points[3][#]", "corner", true},
		{"points[9][#]", "", false},
		{"config.name", "box", true},
		{"water", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			name, ok := doc.String(tc.expr)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.name, name)
		})
	}
}

func TestResolveValueTree(t *testing.T) {
	doc, err := Parse([]byte(`pt = { {1, 2}, "a", flag = true }`), "pt.lua")
	require.NoError(t, err)
	got, err := doc.Resolve("pt")
	require.NoError(t, err)
	want := Value{
		Kind: Table,
		Items: []Value{
			{Kind: Table, Items: []Value{{Kind: Number, Num: 1}, {Kind: Number, Num: 2}}},
			{Kind: String, Str: "a"},
		},
		Fields: map[string]Value{"flag": {Kind: Other}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value tree mismatch (-want +got):\n%s", diff)
	}
}

func TestAccessorErrors(t *testing.T) {
	doc, err := Parse(modelDoc, "model.lua")
	require.NoError(t, err)

	testCases := []struct {
		name string
		call func() error
		want error
	}{
		{"missing binding", func() error { _, err := doc.SequenceLength("elements"); return err }, ErrMissingField},
		{"index past end", func() error { _, err := doc.Number("points[4][1][1]"); return err }, ErrMissingField},
		{"index into number", func() error { _, err := doc.Number("water[1]"); return err }, ErrMissingField},
		{"bad expression", func() error { _, err := doc.Number("points[0]"); return err }, ErrMissingField},
		{"unterminated", func() error { _, err := doc.Number("points[1"); return err }, ErrMissingField},
		{"string as number", func() error { _, err := doc.Number("points[1][2]"); return err }, ErrType},
		{"table as number", func() error { _, err := doc.Number("points"); return err }, ErrType},
		{"non integral", func() error { _, err := doc.Int("water"); return err }, ErrType},
		{"length of number", func() error { _, err := doc.Len("dimension"); return err }, ErrType},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Contains(t, err.Error(), "model.lua")
		})
	}
}

func TestParseFailures(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"syntax", `points = { {1, 2}`},
		{"runtime", `x = nil + 1`},
		{"cycle", `t = {}; t[1] = t`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), "bad.lua")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/m/model.lua", modelDoc, 0644))
	require.NoError(t, afero.WriteFile(fsys, "/m/empty.lua", []byte("  \n"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/m/model.txt", modelDoc, 0644))

	doc, err := Load(fsys, "/m/model.lua")
	require.NoError(t, err)
	assert.True(t, doc.Has("points"))
	assert.Equal(t, "/m/model.lua", doc.Name)

	_, err = Load(fsys, "/m/model.txt")
	assert.True(t, errors.Is(err, ErrExtension), "got %v", err)

	_, err = Load(fsys, "/m/missing.lua")
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)

	_, err = Load(fsys, "/m/empty.lua")
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
}

func TestGlobalsStayPrivate(t *testing.T) {
	// Library tables are reachable but never become bindings
	doc, err := Parse([]byte(`n = math.floor(2.7)`), "lib.lua")
	require.NoError(t, err)
	assert.Equal(t, []string{"n"}, doc.Names())
	n, err := doc.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIntRange(t *testing.T) {
	doc, err := Parse([]byte("big = 1e300\nneg = -3e9\nok = 2147483647\ninf = 1/0\n"), "ints.lua")
	require.NoError(t, err)
	for _, expr := range []string{"big", "neg", "inf"} {
		_, err := doc.Int(expr)
		assert.True(t, errors.Is(err, ErrType), "%s: got %v", expr, err)
	}
	n, err := doc.Int("ok")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, n)
}

func TestInfinityLiterals(t *testing.T) {
	// math.huge is not infinite in this interpreter, 1/0 is
	doc, err := Parse([]byte("pos = 1/0\nneg = -1/0\nnan = 0/0\n"), "inf.lua")
	require.NoError(t, err)
	f, err := doc.Number("pos")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, 1))
	f, err = doc.Number("neg")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, -1))
	f, err = doc.Number("nan")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))
}
