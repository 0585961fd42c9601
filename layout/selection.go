package layout

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Selection picks columns of a table. Indices are 0 based.
type Selection interface {
	Indices(*Range) []int64
}

// SelectionFromString parses a list of columns separated by ";". Each item is
// a single column ("B"), a span ("B:E") or a span with a step ("A:G:2").
func SelectionFromString(str string) (Selection, error) {
	var list []Selection
	for _, item := range strings.Split(str, ";") {
		parts := strings.Split(strings.TrimSpace(item), ":")
		switch n := len(parts); n {
		case 1:
			ix, size := ParseIndex(parts[0])
			if ix == 0 || size != len(parts[0]) {
				return nil, fmt.Errorf("%s: %w", item, ErrAddress)
			}
			list = append(list, SelectSingle(ix))
		case 2, 3:
			lo, _ := ParseIndex(parts[0])
			hi, _ := ParseIndex(parts[1])
			var step int64 = 1
			if n == 3 && parts[2] != "" {
				st, err := strconv.ParseInt(parts[2], 10, 64)
				if err != nil {
					return nil, err
				}
				step = st
			}
			list = append(list, SelectSpan(lo, hi, step))
		default:
			return nil, fmt.Errorf("selection: invalid syntax")
		}
	}
	if len(list) == 1 {
		return list[0], nil
	}
	return combinedRef(list), nil
}

type columnRef int64

func SelectSingle(ix int64) Selection {
	return columnRef(ix)
}

func (c columnRef) Indices(rg *Range) []int64 {
	if rg == nil {
		return nil
	}
	ix := int64(c)
	if ix >= rg.Starts.Column && ix <= rg.Ends.Column {
		return []int64{ix - 1}
	}
	return nil
}

type columnSpan struct {
	Starts int64
	Ends   int64
	Step   int64
}

func SelectSpan(from, to, step int64) Selection {
	if step == 0 {
		step = 1
	}
	return columnSpan{
		Starts: from,
		Ends:   to,
		Step:   step,
	}
}

func (c columnSpan) Indices(rg *Range) []int64 {
	if rg == nil {
		return nil
	}
	var (
		all    []int64
		starts = c.Starts
		ends   = c.Ends
	)
	if c.Step > 0 {
		if starts == 0 {
			starts = rg.Starts.Column
		}
		if ends == 0 {
			ends = rg.Ends.Column
		}
		starts = max(starts, rg.Starts.Column)
		ends = min(ends, rg.Ends.Column)
		for i := starts; i <= ends; i += c.Step {
			all = append(all, i-1)
		}
		return all
	}
	if starts == 0 {
		starts = rg.Ends.Column
	}
	if ends == 0 {
		ends = rg.Starts.Column
	}
	starts = min(starts, rg.Ends.Column)
	ends = max(ends, rg.Starts.Column)
	for i := starts; i >= ends; i += c.Step {
		all = append(all, i-1)
	}
	return all
}

type combinedRef []Selection

func (r combinedRef) Indices(rg *Range) []int64 {
	var all []int64
	for i := range r {
		all = slices.Concat(all, r[i].Indices(rg))
	}
	return all
}
