package luatable

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// Kind tags the dynamic type held by a Value
type Kind uint8

const (
	Nil Kind = iota
	Number
	String
	Table
	Other // booleans, functions, userdata: present but never readable as data
)

func (k Kind) String() string {
	return [...]string{"nil", "number", "string", "table", "other"}[k]
}

// Value is the typed image of one Lua value after the document has run.
// A Table keeps its sequence part (Lua indices 1..#t) in Items and its
// string keyed entries in Fields.
type Value struct {
	Kind   Kind
	Num    float64
	Str    string
	Items  []Value
	Fields map[string]Value
}

// Len is the sequence length of a table, zero for anything else
func (v Value) Len() int {
	if v.Kind != Table {
		return 0
	}
	return len(v.Items)
}

// At returns the 1-based i'th sequence element
func (v Value) At(i int) (Value, bool) {
	if v.Kind != Table || i < 1 || i > len(v.Items) {
		return Value{}, false
	}
	return v.Items[i-1], true
}

// Last returns the final sequence element, which is where optional
// trailing fields such as a point name live.
func (v Value) Last() (Value, bool) {
	return v.At(v.Len())
}

func (v Value) String() string {
	switch v.Kind {
	case Number:
		return fmt.Sprintf("%g", v.Num)
	case String:
		return fmt.Sprintf("%q", v.Str)
	case Table:
		return fmt.Sprintf("table[%d items, %d fields]", len(v.Items), len(v.Fields))
	default:
		return v.Kind.String()
	}
}

// FieldNames returns the string keys of a table in sorted order
func (v Value) FieldNames() (names []string) {
	names = make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}

// fromLua converts a value living in an LState into a Value. Tables that
// reference themselves, directly or through children, are rejected.
func fromLua(lv lua.LValue, active map[*lua.LTable]bool) (v Value, err error) {
	switch x := lv.(type) {
	case lua.LNumber:
		v = Value{Kind: Number, Num: float64(x)}
	case lua.LString:
		v = Value{Kind: String, Str: string(x)}
	case *lua.LNilType:
		v = Value{Kind: Nil}
	case *lua.LTable:
		if active[x] {
			err = fmt.Errorf("table contains a reference to itself")
			return
		}
		active[x] = true
		defer delete(active, x)

		n := x.Len()
		v = Value{Kind: Table, Items: make([]Value, n)}
		for i := 1; i <= n; i++ {
			if v.Items[i-1], err = fromLua(x.RawGetInt(i), active); err != nil {
				return
			}
		}
		x.ForEach(func(key, val lua.LValue) {
			ks, ok := key.(lua.LString)
			if !ok || err != nil {
				return
			}
			var fv Value
			if fv, err = fromLua(val, active); err != nil {
				return
			}
			if v.Fields == nil {
				v.Fields = make(map[string]Value)
			}
			v.Fields[string(ks)] = fv
		})
	default:
		v = Value{Kind: Other}
	}
	return
}
