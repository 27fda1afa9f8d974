package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnRef names a column either by its header text or by ordinal position.
//
// Ordinals follow one convention only: 0 is the last column and N >= 1 is the
// 1-based column N. Nothing else is accepted.
type ColumnRef struct {
	name    string
	ordinal int
	byName  bool
}

// ByName refers to the column whose header is exactly name.
func ByName(name string) ColumnRef { return ColumnRef{name: name, byName: true} }

// ByOrdinal refers to a column by position: 0 is the last column, N >= 1 is column N.
func ByOrdinal(n int) ColumnRef { return ColumnRef{ordinal: n} }

// LastColumn is ByOrdinal(0).
var LastColumn = ByOrdinal(0)

// ParseColumnRef reads a column reference from text. A decimal integer is an
// ordinal, anything else is a header name.
func ParseColumnRef(s string) ColumnRef {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return ByOrdinal(n)
	}
	return ByName(s)
}

// IsName reports whether the reference is by header name.
func (c ColumnRef) IsName() bool { return c.byName }

func (c ColumnRef) String() string {
	if c.byName {
		return strconv.Quote(c.name)
	}
	return "#" + strconv.Itoa(c.ordinal)
}

// resolve maps the reference onto a 0-based index into columns.
func (c ColumnRef) resolve(columns []string) (int, error) {
	if c.byName {
		if c.name == "" {
			return -1, fmt.Errorf("%w: empty column name", ErrUnknownColumn)
		}
		for i, h := range columns {
			if h == c.name {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, c.name)
	}
	switch {
	case c.ordinal == 0:
		return len(columns) - 1, nil
	case c.ordinal >= 1 && c.ordinal <= len(columns):
		return c.ordinal - 1, nil
	default:
		return -1, fmt.Errorf("%w: ordinal %d with %d columns", ErrUnknownColumn, c.ordinal, len(columns))
	}
}
