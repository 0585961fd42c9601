package doc

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	sax "github.com/midbel/codecs/xml"
	"github.com/midbel/snapcharts/axis"
	"github.com/midbel/snapcharts/chart"
	"github.com/midbel/snapcharts/csv"
	"github.com/midbel/snapcharts/dataset"
	"github.com/midbel/snapcharts/layout"
)

var (
	ErrAttr     = errors.New("invalid attribute")
	ErrDocument = errors.New("invalid chart document")
)

// Open reads the chart described in file. The traces of the chart take their
// values from the columns of tb.
func Open(file string, tb *csv.Table) (*chart.Chart, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r, tb)
}

// Decode reads a chart document such as:
//
//	<chart type="line">
//	  <title>weather</title>
//	  <axis type="y" min="0" spacing="5" base="0"/>
//	  <axis type="x" wrap="0:360"/>
//	  <trace name="temp" x="A" y="B2:B40" axis="y2"/>
//	</chart>
func Decode(r io.Reader, tb *csv.Table) (*chart.Chart, error) {
	rs := reader{
		reader: sax.NewReader(r),
		table:  tb,
	}
	return rs.Decode()
}

type reader struct {
	reader *sax.Reader
	table  *csv.Table
	chart  *chart.Chart
	err    error
}

func (r *reader) Decode() (*chart.Chart, error) {
	r.reader.Element(sax.LocalName("chart"), r.keep(r.onChart))
	r.reader.Element(sax.LocalName("axis"), r.keep(r.onAxis))
	r.reader.Element(sax.LocalName("trace"), r.keep(r.onTrace))
	err := r.reader.Start()
	if r.invalid() {
		return nil, r.err
	}
	if err != nil {
		return nil, err
	}
	if r.chart == nil {
		return nil, fmt.Errorf("chart element not found: %w", ErrDocument)
	}
	return r.chart, nil
}

// keep remembers the first error returned by an element handler.
func (r *reader) keep(fn func(*sax.Reader, sax.E) error) func(*sax.Reader, sax.E) error {
	return func(rs *sax.Reader, el sax.E) error {
		err := fn(rs, el)
		if err != nil && r.err == nil {
			r.err = err
		}
		return err
	}
}

func (r *reader) invalid() bool {
	return r.err != nil
}

func (r *reader) onChart(rs *sax.Reader, el sax.E) error {
	if r.chart != nil {
		return fmt.Errorf("only one chart element allowed: %w", ErrDocument)
	}
	kind, err := chart.ParseType(el.GetAttributeValue("type"))
	if err != nil {
		return err
	}
	r.chart = chart.New(el.GetAttributeValue("title"), nil)
	r.chart.Type = kind

	rs.Element(sax.LocalName("title"), func(rs *sax.Reader, _ sax.E) error {
		rs.OnText(func(_ *sax.Reader, str string) error {
			r.chart.Title = strings.TrimSpace(str)
			return nil
		})
		return nil
	})
	return nil
}

func (r *reader) onAxis(rs *sax.Reader, el sax.E) error {
	if r.chart == nil {
		return fmt.Errorf("axis outside of chart: %w", ErrDocument)
	}
	ch, err := dataset.ParseChannel(el.GetAttributeValue("type"))
	if err != nil {
		return err
	}
	ax := chart.NewAxis(ch)
	ax.Title = el.GetAttributeValue("title")
	ax.Format = el.GetAttributeValue("format")

	min, err := parseFloat(el, "min")
	if err != nil {
		return err
	}
	max, err := parseFloat(el, "max")
	if err != nil {
		return err
	}
	ax.Pin(min, max)

	if ax.Spacing, err = parseFloat(el, "spacing"); err != nil {
		return err
	}
	if math.IsNaN(ax.Spacing) {
		ax.Spacing = 0
	}
	if str := el.GetAttributeValue("divisions"); str != "" {
		n, err := strconv.Atoi(str)
		if err != nil || n <= 0 {
			return fmt.Errorf("divisions: %s: %w", str, ErrAttr)
		}
		ax.Spacing = -float64(n)
	}
	if ax.Base, err = ParseBase(el.GetAttributeValue("base")); err != nil {
		return err
	}
	if str := el.GetAttributeValue("wrap"); str != "" {
		ax.WrapMin, ax.WrapMax, err = parseWindow(str)
		if err != nil {
			return err
		}
		ax.Wrapped = true
	}
	if ax.Time, err = parseBool(el, "time", false); err != nil {
		return err
	}
	r.chart.SetAxis(ax)
	return nil
}

func (r *reader) onTrace(rs *sax.Reader, el sax.E) error {
	if r.chart == nil {
		return fmt.Errorf("trace outside of chart: %w", ErrDocument)
	}
	if r.table == nil {
		return fmt.Errorf("trace without data table: %w", ErrDocument)
	}
	var (
		name    = el.GetAttributeValue("name")
		columns [3][]float64
	)
	for i, attr := range []string{"x", "y", "z"} {
		str := el.GetAttributeValue(attr)
		if str == "" {
			continue
		}
		vs, err := r.column(str)
		if err != nil {
			return fmt.Errorf("trace %s: %w", name, err)
		}
		columns[i] = vs
	}
	if columns[1] == nil {
		return fmt.Errorf("trace %s: missing y column: %w", name, ErrAttr)
	}
	var data dataset.Series
	switch unset := el.GetAttributeValue("unset"); unset {
	case "", "zero":
		data = dataset.NewRawData(columns[0], columns[1], columns[2])
	case "skip":
		data = dataset.NewSparseData(columns[0], columns[1], columns[2])
	default:
		return fmt.Errorf("unset: %s: %w", unset, ErrAttr)
	}
	if name == "" {
		name = el.GetAttributeValue("y")
	}
	tr := dataset.NewTrace(name, data)
	if str := el.GetAttributeValue("axis"); str != "" {
		ch, err := dataset.ParseChannel(str)
		if err != nil {
			return err
		}
		if !ch.IsY() {
			return fmt.Errorf("trace %s: %s is not a Y axis: %w", name, ch, ErrAttr)
		}
		tr.Axis = ch
	}
	enabled, err := parseBool(el, "enabled", true)
	if err != nil {
		return err
	}
	tr.Enabled = enabled
	r.chart.Traces.Add(tr)
	return nil
}

// column reads the values selected by a range (eg: "B", "B2:B40") or by a
// column name found in the header of the table.
func (r *reader) column(str string) ([]float64, error) {
	if ix, err := r.table.Lookup(str); err == nil {
		return dataset.ParseColumn(r.table.Column(ix)), nil
	}
	rg, err := layout.ParseRange(str)
	if err != nil {
		return nil, err
	}
	if rg.Width() != 1 {
		return nil, fmt.Errorf("%s: range should select one column: %w", str, ErrAttr)
	}
	return dataset.ParseColumn(r.table.Cells(rg)), nil
}

// ParseBase parses the alignment of explicit ticks: "min", "max" or a value.
func ParseBase(str string) (float64, error) {
	switch str {
	case "", "min":
		return axis.AlignMin, nil
	case "max":
		return axis.AlignMax, nil
	default:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil || math.IsInf(v, 0) {
			return 0, fmt.Errorf("base: %s: %w", str, ErrAttr)
		}
		return v, nil
	}
}

func parseFloat(el sax.E, attr string) (float64, error) {
	str := el.GetAttributeValue(attr)
	if str == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", attr, str, ErrAttr)
	}
	return v, nil
}

func parseBool(el sax.E, attr string, dflt bool) (bool, error) {
	str := el.GetAttributeValue(attr)
	if str == "" {
		return dflt, nil
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		return dflt, fmt.Errorf("%s: %s: %w", attr, str, ErrAttr)
	}
	return b, nil
}

func parseWindow(str string) (float64, float64, error) {
	lo, hi, ok := strings.Cut(str, ":")
	if !ok {
		return 0, 0, fmt.Errorf("wrap: %s: %w", str, ErrAttr)
	}
	min, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	max, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err := errors.Join(err1, err2); err != nil || !(min < max) {
		return 0, 0, fmt.Errorf("wrap: %s: %w", str, ErrAttr)
	}
	return min, max, nil
}
