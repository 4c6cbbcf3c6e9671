// Package luatable reads documents written in Lua table constructor syntax,
//
//	dimension = 2
//	points = {
//	   { {0.0, 1.5}, "inlet" },
//	   { {2.0, 0.5} },
//	}
//
// by executing them in a private interpreter and converting every top
// level binding into a Value tree. Nothing of the interpreter survives a
// call to Load or Parse; a Document is plain data and safe to share.
package luatable

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
)

// Extension is the file suffix every table document must carry
const Extension = ".lua"

var (
	ErrExtension    = errors.New("unexpected file extension")
	ErrFormat       = errors.New("malformed document")
	ErrMissingField = errors.New("missing field")
	ErrType         = errors.New("wrong field type")
)

// Document holds the bindings produced by running a table document
type Document struct {
	Name     string
	bindings map[string]Value
}

// HasExtension reports whether path names a table document
func HasExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Load checks the extension of path, reads it from fsys and parses it
func Load(fsys afero.Fs, path string) (*Document, error) {
	if !HasExtension(path) {
		return nil, fmt.Errorf("%w: %s does not end in %s", ErrExtension, path, Extension)
	}
	src, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open %s: %v", ErrFormat, path, err)
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrFormat, path)
	}
	return Parse(src, path)
}

// Parse runs src in a fresh interpreter whose globals are captured in a
// private environment table, then converts the captured bindings. The
// interpreter is closed before Parse returns, on every path.
func Parse(src []byte, name string) (doc *Document, err error) {
	L := lua.NewState()
	defer L.Close()

	fn, err := L.Load(bytes.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	env := L.NewTable()
	meta := L.NewTable()
	meta.RawSetString("__index", L.G.Global)
	L.SetMetatable(env, meta)
	L.SetFEnv(fn, env)

	L.Push(fn)
	if err = L.PCall(0, 0, nil); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}

	doc = &Document{
		Name:     name,
		bindings: make(map[string]Value),
	}
	active := make(map[*lua.LTable]bool)
	env.ForEach(func(key, val lua.LValue) {
		ks, ok := key.(lua.LString)
		if !ok || err != nil {
			return
		}
		var v Value
		if v, err = fromLua(val, active); err != nil {
			err = fmt.Errorf("%w: %s: binding %s: %v", ErrFormat, name, ks, err)
			return
		}
		doc.bindings[string(ks)] = v
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Names lists the top level bindings in sorted order
func (d *Document) Names() (names []string) {
	names = make([]string, 0, len(d.bindings))
	for k := range d.bindings {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

// Has reports whether a top level binding exists
func (d *Document) Has(name string) bool {
	_, ok := d.bindings[name]
	return ok
}

// Resolve walks a path expression from its top level binding
func (d *Document) Resolve(expr string) (v Value, err error) {
	root, steps, err := parsePath(expr)
	if err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrMissingField, d.Name, err)
	}
	var ok bool
	if v, ok = d.bindings[root]; !ok {
		return v, fmt.Errorf("%w: %s: no binding named %s", ErrMissingField, d.Name, root)
	}
	walked := root
	for _, s := range steps {
		if v.Kind != Table {
			return v, fmt.Errorf("%w: %s: %s is a %s, cannot take %s of %s",
				ErrMissingField, d.Name, walked, v.Kind, s, expr)
		}
		switch {
		case s.last:
			v, ok = v.Last()
		case s.field != "":
			v, ok = v.Fields[s.field]
		default:
			v, ok = v.At(s.index)
		}
		walked += s.String()
		if !ok {
			return v, fmt.Errorf("%w: %s: %s", ErrMissingField, d.Name, walked)
		}
	}
	return v, nil
}

// Number resolves expr and requires a numeric value
func (d *Document) Number(expr string) (float64, error) {
	v, err := d.Resolve(expr)
	if err != nil {
		return 0, err
	}
	if v.Kind != Number {
		return 0, fmt.Errorf("%w: %s: %s is a %s, expected a number", ErrType, d.Name, expr, v.Kind)
	}
	return v.Num, nil
}

// Int is Number restricted to integral values
func (d *Document) Int(expr string) (int, error) {
	f, err := d.Number(expr)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s: %s = %g, expected an integer", ErrType, d.Name, expr, f)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s: %s = %g, integer out of range", ErrType, d.Name, expr, f)
	}
	return int(f), nil
}

// String returns the value at expr only when it is textual. Anything
// else, including a missing field, reports ok == false.
func (d *Document) String(expr string) (s string, ok bool) {
	v, err := d.Resolve(expr)
	if err != nil || v.Kind != String {
		return "", false
	}
	return v.Str, true
}

// Len is the sequence length of the table at expr
func (d *Document) Len(expr string) (int, error) {
	v, err := d.Resolve(expr)
	if err != nil {
		return 0, err
	}
	if v.Kind != Table {
		return 0, fmt.Errorf("%w: %s: %s is a %s, expected a sequence", ErrType, d.Name, expr, v.Kind)
	}
	return v.Len(), nil
}

// SequenceLength is the length of a named top level sequence
func (d *Document) SequenceLength(name string) (int, error) {
	if identLen(name) != len(name) || name == "" {
		return 0, fmt.Errorf("%w: %s: %q is not a binding name", ErrMissingField, d.Name, name)
	}
	return d.Len(name)
}
