package csv

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/midbel/snapcharts/layout"
)

var ErrColumn = errors.New("column not found")

// Table keeps all the records of a csv file in memory. Lines and columns are
// numbered like in a spreadsheet: the first record of the file (the header if
// any) is on line 1 and the first column is A.
type Table struct {
	Header  []string
	records [][]string
	width   int64
}

func ReadTable(r io.Reader, comma byte, header bool) (*Table, error) {
	rs := NewReader(r)
	rs.Comma = comma
	rs.TrimSpace = true

	var tb Table
	for {
		row, err := rs.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 1 && row[0] == "" {
			continue
		}
		if header && tb.Header == nil {
			tb.Header = row
		}
		tb.records = append(tb.records, row)
		tb.width = max(tb.width, int64(len(row)))
	}
	return &tb, nil
}

// Size gives the number of lines (header included) and columns of the table.
func (t *Table) Size() layout.Dimension {
	return layout.Dimension{
		Lines:   int64(len(t.records)),
		Columns: t.width,
	}
}

// Rows gives the number of data lines.
func (t *Table) Rows() int {
	return len(t.records) - t.offset()
}

// Lookup resolves a column reference given either by its letters or by the
// name found in the header. The returned index is 1 based.
func (t *Table) Lookup(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ix := slices.Index(t.Header, ref); ix >= 0 {
		return int64(ix) + 1, nil
	}
	ix, size := layout.ParseIndex(ref)
	if ix == 0 || size != len(ref) || ix > t.width {
		return 0, fmt.Errorf("%s: %w", ref, ErrColumn)
	}
	return ix, nil
}

// Column returns the data cells of the column ix (1 based). Short records give
// empty cells.
func (t *Table) Column(ix int64) []string {
	if ix <= 0 || ix > t.width {
		return nil
	}
	var list []string
	for _, row := range t.records[t.offset():] {
		list = append(list, cellAt(row, ix))
	}
	return list
}

// Columns returns the data cells of every column picked by sel.
func (t *Table) Columns(sel layout.Selection) [][]string {
	all := layout.NewRange(layout.Position{Line: 1, Column: 1}, layout.Position{Line: 1, Column: t.width})
	var list [][]string
	for _, ix := range sel.Indices(all) {
		list = append(list, t.Column(ix+1))
	}
	return list
}

// Cells returns the cells covered by rg, line by line. A range without lines
// starts after the header and stops at the last line of the table.
func (t *Table) Cells(rg *layout.Range) []string {
	open := rg.Starts.Line == 0
	rg = rg.Bound(t.Size())
	if open {
		rg.Starts.Line = int64(t.offset()) + 1
	}
	var list []string
	for i := rg.Starts.Line; i <= rg.Ends.Line; i++ {
		row := t.records[i-1]
		for j := rg.Starts.Column; j <= rg.Ends.Column; j++ {
			list = append(list, cellAt(row, j))
		}
	}
	return list
}

func (t *Table) offset() int {
	if t.Header != nil {
		return 1
	}
	return 0
}

func cellAt(row []string, ix int64) string {
	if ix <= 0 || ix > int64(len(row)) {
		return ""
	}
	return row[ix-1]
}
