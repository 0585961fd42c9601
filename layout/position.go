package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrAddress = errors.New("invalid address")

// Position locates a cell of a table. Line and Column start at 1, a zero
// value means "any".
type Position struct {
	Line   int64
	Column int64
}

// ParsePosition parses addresses such as "B", "B12" or "12".
func ParsePosition(addr string) (Position, error) {
	var (
		pos    Position
		offset int
		err    error
	)
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return pos, fmt.Errorf("empty address: %w", ErrAddress)
	}
	pos.Column, offset = ParseIndex(addr)
	if offset < len(addr) {
		pos.Line, err = strconv.ParseInt(addr[offset:], 10, 64)
		if err != nil || pos.Line <= 0 {
			return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
		}
	}
	return pos, nil
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	var str strings.Builder
	str.WriteString(indexToString(p.Column))
	if p.Line > 0 {
		str.WriteString(strconv.FormatInt(p.Line, 10))
	}
	return str.String()
}

func (p Position) String() string {
	return p.Addr()
}

// Update fills the unset fields of p with the ones of other.
func (p Position) Update(other Position) Position {
	if p.Line == 0 {
		p.Line = other.Line
	}
	if p.Column == 0 {
		p.Column = other.Column
	}
	return p
}

// ParseIndex reads the column letters at the start of str and returns the
// column index (A=1) with the number of bytes consumed.
func ParseIndex(str string) (int64, int) {
	var (
		offset int
		index  int64
	)
	for offset < len(str) && isLetter(str[offset]) {
		c := str[offset]
		if isLower(c) {
			c -= 'a' - 'A'
		}
		index = index*26 + int64(c-'A'+1)
		offset++
	}
	return index, offset
}

func ColumnName(ix int64) string {
	return indexToString(ix)
}

func indexToString(ix int64) string {
	var result []byte
	for ix > 0 {
		ix--
		result = append([]byte{byte('A' + ix%26)}, result...)
		ix /= 26
	}
	return string(result)
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c byte) bool {
	return isLower(c) || isUpper(c)
}
