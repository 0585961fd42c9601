package csv

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/midbel/snapcharts/layout"
)

func TestReader(t *testing.T) {
	tests := []struct {
		Input string
		Comma byte
		Want  [][]string
	}{
		{
			Input: "a,b,c\n1,2,3\n",
			Comma: ',',
			Want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			Input: "a,,c\r\n,2,\r\n",
			Comma: ',',
			Want:  [][]string{{"a", "", "c"}, {"", "2", ""}},
		},
		{
			Input: "x;y\n1.5;2",
			Comma: ';',
			Want:  [][]string{{"x", "y"}, {"1.5", "2"}},
		},
		{
			Input: "\"a,b\",\"say \"\"hi\"\"\"\n",
			Comma: ',',
			Want:  [][]string{{"a,b", "say \"hi\""}},
		},
		{
			Input: "\"multi\nline\",x\n",
			Comma: ',',
			Want:  [][]string{{"multi\nline", "x"}},
		},
	}
	for _, c := range tests {
		rs := NewReader(strings.NewReader(c.Input))
		rs.Comma = c.Comma
		got, err := rs.ReadAll()
		if err != nil {
			t.Errorf("%q: unexpected error: %s", c.Input, err)
			continue
		}
		if !slices.EqualFunc(got, c.Want, slices.Equal) {
			t.Errorf("%q: records mismatched! want %q - got %q", c.Input, c.Want, got)
		}
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []string{
		"a,b\"c\n",
		"\"unterminated,b\n",
		"\"a\"b,c\n",
	}
	for _, str := range tests {
		rs := NewReader(strings.NewReader(str))
		if _, err := rs.ReadAll(); err == nil {
			t.Errorf("%q: expected error but got none", str)
		}
	}
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		Input string
		Want  byte
	}{
		{Input: "", Want: ','},
		{Input: "semi", Want: ';'},
		{Input: "tab", Want: '\t'},
		{Input: "|", Want: '|'},
	}
	for _, c := range tests {
		got, err := ParseSeparator(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: separator mismatched! want %q - got %q", c.Input, c.Want, got)
		}
	}
	if _, err := ParseSeparator("dash"); !errors.Is(err, ErrSeparator) {
		t.Errorf("expected ErrSeparator, got %v", err)
	}
}

func TestWriter(t *testing.T) {
	var (
		str strings.Builder
		ws  = NewWriter(&str)
	)
	data := [][]string{
		{"min", "max"},
		{"a,b", "say \"hi\""},
		{" pad", ""},
	}
	if err := ws.WriteAll(data); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "min,max\n\"a,b\",\"say \"\"hi\"\"\"\n\" pad\",\n"
	if got := str.String(); got != want {
		t.Errorf("output mismatched! want %q - got %q", want, got)
	}
	rs := NewReader(strings.NewReader(str.String()))
	got, err := rs.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !slices.EqualFunc(got, data, slices.Equal) {
		t.Errorf("records mismatched! want %q - got %q", data, got)
	}
}

const sample = `time,temp,press
1,12.5,1010

2,13,1009
3,,1011
4,15.25
`

func TestTable(t *testing.T) {
	tb, err := ReadTable(strings.NewReader(sample), ',', true)
	if err != nil {
		t.Fatalf("fail to read table: %s", err)
	}
	if size := tb.Size(); size.Lines != 5 || size.Columns != 3 {
		t.Errorf("size mismatched! want 5x3 - got %dx%d", size.Lines, size.Columns)
	}
	if tb.Rows() != 4 {
		t.Errorf("rows mismatched! want 4 - got %d", tb.Rows())
	}
	tests := []struct {
		Ref  string
		Want []string
	}{
		{Ref: "A", Want: []string{"1", "2", "3", "4"}},
		{Ref: "temp", Want: []string{"12.5", "13", "", "15.25"}},
		{Ref: "C", Want: []string{"1010", "1009", "1011", ""}},
	}
	for _, c := range tests {
		ix, err := tb.Lookup(c.Ref)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Ref, err)
			continue
		}
		if got := tb.Column(ix); !slices.Equal(got, c.Want) {
			t.Errorf("%s: cells mismatched! want %q - got %q", c.Ref, c.Want, got)
		}
	}
	for _, ref := range []string{"D", "wind", "B2"} {
		if _, err := tb.Lookup(ref); !errors.Is(err, ErrColumn) {
			t.Errorf("%s: expected ErrColumn, got %v", ref, err)
		}
	}
}

func TestTableCells(t *testing.T) {
	tb, err := ReadTable(strings.NewReader(sample), ',', true)
	if err != nil {
		t.Fatalf("fail to read table: %s", err)
	}
	tests := []struct {
		Range string
		Want  []string
	}{
		{Range: "B", Want: []string{"12.5", "13", "", "15.25"}},
		{Range: "B3:B4", Want: []string{"13", ""}},
		{Range: "C4:C", Want: []string{"1011", ""}},
		{Range: "A2:B3", Want: []string{"1", "12.5", "2", "13"}},
		{Range: "A1:A2", Want: []string{"time", "1"}},
	}
	for _, c := range tests {
		rg, err := layout.ParseRange(c.Range)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Range, err)
			continue
		}
		if got := tb.Cells(rg); !slices.Equal(got, c.Want) {
			t.Errorf("%s: cells mismatched! want %q - got %q", c.Range, c.Want, got)
		}
	}
}

func TestTableColumns(t *testing.T) {
	tb, err := ReadTable(strings.NewReader(sample), ',', false)
	if err != nil {
		t.Fatalf("fail to read table: %s", err)
	}
	sel, err := layout.SelectionFromString("B:C")
	if err != nil {
		t.Fatalf("fail to parse selection: %s", err)
	}
	got := tb.Columns(sel)
	if len(got) != 2 {
		t.Fatalf("columns mismatched! want 2 - got %d", len(got))
	}
	want := []string{"press", "1010", "1009", "1011", ""}
	if !slices.Equal(got[1], want) {
		t.Errorf("cells mismatched! want %q - got %q", want, got[1])
	}
}
