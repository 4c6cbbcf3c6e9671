package luatable

import (
	"fmt"
	"strconv"
	"strings"
)

// step is one hop of a path expression: a named field, a 1-based
// sequence index, or the last element of a sequence ("[#]").
type step struct {
	field string
	index int
	last  bool
}

func (s step) String() string {
	switch {
	case s.last:
		return "[#]"
	case s.field != "":
		return "." + s.field
	default:
		return "[" + strconv.Itoa(s.index) + "]"
	}
}

// parsePath splits an expression like points[3][1][2], points[3][#] or
// config.range[2] into its leading binding name and the steps after it.
func parsePath(expr string) (root string, steps []step, err error) {
	var (
		rest = strings.TrimSpace(expr)
		n    int
	)
	if n = identLen(rest); n == 0 {
		err = fmt.Errorf("expression %q must start with a name", expr)
		return
	}
	root, rest = rest[:n], rest[n:]
	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			if n = identLen(rest[1:]); n == 0 {
				err = fmt.Errorf("expression %q has an empty field after '.'", expr)
				return
			}
			steps = append(steps, step{field: rest[1 : n+1]})
			rest = rest[n+1:]
		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				err = fmt.Errorf("expression %q has an unterminated '['", expr)
				return
			}
			inner := strings.TrimSpace(rest[1:end])
			if inner == "#" {
				steps = append(steps, step{last: true})
			} else {
				var idx int
				if idx, err = strconv.Atoi(inner); err != nil || idx < 1 {
					err = fmt.Errorf("expression %q has a bad index [%s], indices start at 1", expr, inner)
					return
				}
				steps = append(steps, step{index: idx})
			}
			rest = rest[end+1:]
		default:
			err = fmt.Errorf("expression %q has unexpected text %q", expr, rest)
			return
		}
	}
	return
}

func identLen(s string) (n int) {
	for n < len(s) {
		c := s[n]
		isAlpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isAlpha && !(isDigit && n > 0) {
			break
		}
		n++
	}
	return
}
