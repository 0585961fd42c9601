package dataset

import (
	"errors"
	"fmt"
	"slices"
)

var ErrTrace = errors.New("trace not found")

type Trace struct {
	Name    string
	Data    Series
	Axis    Channel
	Enabled bool
}

func NewTrace(name string, data Series) *Trace {
	return &Trace{
		Name:    name,
		Data:    data,
		Axis:    Y,
		Enabled: true,
	}
}

// TraceList is an ordered set of traces. Changing the list itself drops the
// cached ranges. Changing the data of a trace requires a call to Invalidate.
type TraceList struct {
	traces []*Trace
	ranges *Aggregator
}

func NewTraceList(traces ...*Trace) *TraceList {
	var list TraceList
	list.traces = slices.Clone(traces)
	list.ranges = NewAggregator(&list)
	return &list
}

func (t *TraceList) Len() int {
	return len(t.traces)
}

func (t *TraceList) Traces() []*Trace {
	return slices.Clone(t.traces)
}

func (t *TraceList) Get(name string) (*Trace, error) {
	ix := t.indexOf(name)
	if ix < 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrTrace)
	}
	return t.traces[ix], nil
}

func (t *TraceList) Add(tr *Trace) {
	t.traces = append(t.traces, tr)
	t.Invalidate()
}

func (t *TraceList) Remove(name string) error {
	ix := t.indexOf(name)
	if ix < 0 {
		return fmt.Errorf("%s: %w", name, ErrTrace)
	}
	t.traces = slices.Delete(t.traces, ix, ix+1)
	t.Invalidate()
	return nil
}

func (t *TraceList) Enable(name string, enabled bool) error {
	tr, err := t.Get(name)
	if err != nil {
		return err
	}
	if tr.Enabled != enabled {
		tr.Enabled = enabled
		t.Invalidate()
	}
	return nil
}

func (t *TraceList) Assign(name string, axis Channel) error {
	tr, err := t.Get(name)
	if err != nil {
		return err
	}
	if !axis.IsY() {
		return fmt.Errorf("%s: not a Y axis", axis)
	}
	if tr.Axis != axis {
		tr.Axis = axis
		t.Invalidate()
	}
	return nil
}

// Active returns the enabled series contributing to ch. For the Y axes, only
// the traces assigned to that axis are selected.
func (t *TraceList) Active(ch Channel) []Series {
	var list []Series
	for _, tr := range t.traces {
		if !tr.Enabled || tr.Data == nil {
			continue
		}
		if ch.IsY() && tr.Axis != ch {
			continue
		}
		list = append(list, tr.Data)
	}
	return list
}

// Axes returns the Y axes used by at least one enabled trace.
func (t *TraceList) Axes() []Channel {
	var list []Channel
	for _, tr := range t.traces {
		if tr.Enabled && !slices.Contains(list, tr.Axis) {
			list = append(list, tr.Axis)
		}
	}
	slices.Sort(list)
	return list
}

func (t *TraceList) MinMax(ch Channel) Range {
	return t.ranges.MinMax(ch)
}

func (t *TraceList) Invalidate() {
	t.ranges.Invalidate()
}

func (t *TraceList) indexOf(name string) int {
	return slices.IndexFunc(t.traces, func(tr *Trace) bool {
		return tr.Name == name
	})
}
