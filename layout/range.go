package layout

import (
	"fmt"
	"strings"
)

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) *Range {
	return &Range{
		Starts: starts,
		Ends:   ends,
	}
}

// ParseRange parses "B", "B2", "B2:B40" or "B2:B". Without an end line, the
// range extends to the last line of the table it is applied to.
func ParseRange(str string) (*Range, error) {
	fst, lst, ok := strings.Cut(str, ":")
	starts, err := ParsePosition(fst)
	if err != nil {
		return nil, err
	}
	ends := starts
	if ok {
		ends, err = ParsePosition(lst)
		if err != nil {
			return nil, err
		}
		if ends.Column == 0 {
			ends.Column = starts.Column
		}
	} else {
		ends.Line = 0
	}
	if starts.Column == 0 {
		return nil, fmt.Errorf("%s: missing column: %w", str, ErrAddress)
	}
	return NewRange(starts, ends), nil
}

func (r *Range) Open() bool {
	return r.Starts.Line == 0 || r.Ends.Line == 0
}

func (r *Range) Contains(pos Position) bool {
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

func (r *Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column + 1
}

func (r *Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line + 1
}

// Bound resolves the open lines of r against a table of the given size.
func (r *Range) Bound(size Dimension) *Range {
	x := r.Normalize()
	if x.Starts.Line == 0 {
		x.Starts.Line = 1
	}
	if x.Ends.Line == 0 || x.Ends.Line > size.Lines {
		x.Ends.Line = size.Lines
	}
	if x.Ends.Column > size.Columns {
		x.Ends.Column = size.Columns
	}
	return x
}

func (r *Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}

func (r *Range) Normalize() *Range {
	x := NewRange(r.Starts, r.Ends)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	if r.Starts.Line != 0 && r.Ends.Line != 0 {
		x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
		x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	}
	return x
}
