package chart

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/midbel/snapcharts/axis"
	"github.com/midbel/snapcharts/dataset"
	"github.com/midbel/snapcharts/format"
)

var ErrType = errors.New("unknown chart type")

type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartScatter ChartType = "scatter"
	ChartArea    ChartType = "area"
	ChartPolar   ChartType = "polar"
)

func ParseType(str string) (ChartType, error) {
	switch t := ChartType(str); t {
	case ChartBar, ChartLine, ChartScatter, ChartArea, ChartPolar:
		return t, nil
	case "":
		return ChartLine, nil
	default:
		return "", fmt.Errorf("%s: %w", str, ErrType)
	}
}

// Axis holds the settings of one axis of a chart. Min and Max are only used
// when the matching bound is fixed.
type Axis struct {
	Channel dataset.Channel
	Title   string

	Min      float64
	Max      float64
	MinFixed bool
	MaxFixed bool

	// Spacing between ticks in data units. Zero selects pleasing ticks, a
	// negative value is a number of divisions.
	Spacing float64
	Base    float64

	// Wrapped axes hold cyclic values living in WrapMin..WrapMax.
	Wrapped bool
	WrapMin float64
	WrapMax float64

	// Time axes hold seconds since the unix epoch.
	Time   bool
	Format string
}

func NewAxis(ch dataset.Channel) *Axis {
	return &Axis{
		Channel: ch,
		Min:     math.NaN(),
		Max:     math.NaN(),
		Base:    axis.AlignMin,
	}
}

func (a *Axis) Pin(min, max float64) {
	a.Min, a.MinFixed = min, !math.IsNaN(min)
	a.Max, a.MaxFixed = max, !math.IsNaN(max)
}

func (a *Axis) Explicit() bool {
	return a.Spacing != 0
}

type Chart struct {
	Title  string
	Type   ChartType
	Traces *dataset.TraceList

	Generator *axis.Generator

	axes  map[dataset.Channel]*Axis
	cache *axis.Cache
}

func New(title string, traces *dataset.TraceList) *Chart {
	if traces == nil {
		traces = dataset.NewTraceList()
	}
	return &Chart{
		Title:     title,
		Type:      ChartLine,
		Traces:    traces,
		Generator: axis.NewGenerator(),
		axes:      make(map[dataset.Channel]*Axis),
		cache:     axis.NewCache(),
	}
}

// Axis returns the settings of the axis ch, created with default settings
// the first time.
func (c *Chart) Axis(ch dataset.Channel) *Axis {
	a, ok := c.axes[ch]
	if !ok {
		a = NewAxis(ch)
		c.axes[ch] = a
	}
	return a
}

func (c *Chart) SetAxis(a *Axis) {
	c.axes[a.Channel] = a
	c.cache.Invalidate(a.Channel.String())
}

// Channels lists the axes of the chart: the ones configured and the Y axes
// referenced by enabled traces, always including X and Y.
func (c *Chart) Channels() []dataset.Channel {
	list := []dataset.Channel{dataset.X, dataset.Y}
	for ch := range c.axes {
		list = append(list, ch)
	}
	list = append(list, c.Traces.Axes()...)
	slices.Sort(list)
	return slices.Compact(list)
}

// Range gives the bounds shown on the axis ch: the range of the data merged
// with the fixed bounds of the axis.
func (c *Chart) Range(ch dataset.Channel) dataset.Range {
	var (
		ax = c.Axis(ch)
		rg = c.Traces.MinMax(ch)
	)
	if ax.MinFixed {
		rg.Min = ax.Min
	}
	if ax.MaxFixed {
		rg.Max = ax.Max
	}
	return rg
}

// Intervals computes the ticks of the axis ch drawn on length pixels with at
// least spacing pixels between two ticks. Results are cached until the seed
// changes or Invalidate is called.
func (c *Chart) Intervals(ch dataset.Channel, length, spacing float64) *axis.IntervalSet {
	var (
		ax  = c.Axis(ch)
		rg  = c.Range(ch)
		key = ch.String()
	)
	switch {
	case ax.Wrapped:
		return c.cache.GenerateWrapped(c.Generator, key, rg.Min, rg.Max, ax.WrapMin, ax.WrapMax, length, spacing)
	case ax.Explicit():
		return c.cache.GenerateExplicit(c.Generator, key, rg.Min, rg.Max, ax.Spacing, ax.Base, ax.MinFixed, ax.MaxFixed)
	default:
		return c.cache.Generate(c.Generator, key, rg.Min, rg.Max, length, spacing, ax.MinFixed, ax.MaxFixed)
	}
}

// Labels formats the ticks of set for the axis ch. A pattern given to the
// axis takes precedence over the automatic one.
func (c *Chart) Labels(ch dataset.Channel, set *axis.IntervalSet) ([]string, error) {
	ax := c.Axis(ch)
	f, err := format.Pick(ax.Format, set.Delta, ax.Time)
	if err != nil {
		return nil, fmt.Errorf("axis %s: %w", ch, err)
	}
	return format.Labels(set.Values, f), nil
}

// Invalidate drops the cached ranges and intervals. It must be called after
// the data of a trace has been modified.
func (c *Chart) Invalidate() {
	c.Traces.Invalidate()
	c.cache.Reset()
}
