package dataset

import (
	"fmt"
	"math"
)

const (
	DefaultMin = 0
	DefaultMax = 5
)

type Range struct {
	Min float64
	Max float64
}

func DefaultRange() Range {
	return Range{
		Min: DefaultMin,
		Max: DefaultMax,
	}
}

func (r Range) Size() float64 {
	return r.Max - r.Min
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Union(other Range) Range {
	return Range{
		Min: math.Min(r.Min, other.Min),
		Max: math.Max(r.Max, other.Max),
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// MinMax scans every point of the given series and returns the bounds of ch.
// Values reported absent by a series are skipped. Without any value the
// default range is returned.
func MinMax(ch Channel, list ...Series) Range {
	var (
		res   Range
		found bool
	)
	for _, s := range list {
		lo, hi, ok := bounds(ch.Source(), s)
		if !ok {
			continue
		}
		if !found {
			res, found = Range{Min: lo, Max: hi}, true
			continue
		}
		res = res.Union(Range{Min: lo, Max: hi})
	}
	if !found {
		return DefaultRange()
	}
	return res
}

func bounds(ch Channel, s Series) (float64, float64, bool) {
	if b, ok := s.(Bounder); ok {
		return b.Bounds(ch)
	}
	var (
		lo    = math.Inf(1)
		hi    = math.Inf(-1)
		found bool
	)
	for i := 0; i < s.PointCount(); i++ {
		v, ok := s.ValueAt(ch, i)
		if !ok || math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		found = true
	}
	return lo, hi, found
}

// Source gives the series taking part in the range of a channel.
type Source interface {
	Active(Channel) []Series
}

// Aggregator memoizes the range of each channel of a Source. The cache is not
// aware of changes made to the data: Invalidate must be called after any
// mutation. It is not safe for concurrent use.
type Aggregator struct {
	source Source
	cache  map[Channel]Range
}

func NewAggregator(src Source) *Aggregator {
	return &Aggregator{
		source: src,
		cache:  make(map[Channel]Range),
	}
}

func (a *Aggregator) MinMax(ch Channel) Range {
	if r, ok := a.cache[ch]; ok {
		return r
	}
	r := MinMax(ch, a.source.Active(ch)...)
	a.cache[ch] = r
	return r
}

func (a *Aggregator) Cached(ch Channel) bool {
	_, ok := a.cache[ch]
	return ok
}

func (a *Aggregator) Invalidate() {
	clear(a.cache)
}
