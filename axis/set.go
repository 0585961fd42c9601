package axis

import (
	"math"
)

const (
	DefaultMin = 0
	DefaultMax = 5
)

// Seed is the input an IntervalSet was computed from.
type Seed struct {
	Min      float64
	Max      float64
	Length   float64
	Spacing  float64
	Base     float64
	MinFixed bool
	MaxFixed bool

	// window of a wrapped axis, both zero otherwise
	WrapMin float64
	WrapMax float64
}

func (s Seed) Equal(other Seed) bool {
	if s.MinFixed != other.MinFixed || s.MaxFixed != other.MaxFixed {
		return false
	}
	return closeTo(s.Min, other.Min) &&
		closeTo(s.Max, other.Max) &&
		closeTo(s.Length, other.Length) &&
		closeTo(s.Spacing, other.Spacing) &&
		closeTo(s.Base, other.Base) &&
		closeTo(s.WrapMin, other.WrapMin) &&
		closeTo(s.WrapMax, other.WrapMax)
}

type IntervalSet struct {
	Values []float64
	Delta  float64

	// normalized bounds the ticks were computed for
	Min float64
	Max float64

	// Effective is the tick spacing (in pixels for Generate, in values for
	// GenerateExplicit) that was finally honored. Relaxed reports whether it
	// is smaller than the requested one.
	Effective float64
	Relaxed   bool

	seed Seed
}

func (s *IntervalSet) Seed() Seed {
	return s.seed
}

func (s *IntervalSet) Len() int {
	return len(s.Values)
}

func (s *IntervalSet) First() float64 {
	return s.Values[0]
}

func (s *IntervalSet) Last() float64 {
	return s.Values[len(s.Values)-1]
}

func (s *IntervalSet) Intervals() int {
	return len(s.Values) - 1
}

// IsFullInterval reports whether the gap next to the tick at index has the
// size of Delta. Only the first and last ticks can border a partial interval.
func (s *IntervalSet) IsFullInterval(index int) bool {
	n := len(s.Values)
	if index < 0 || index >= n || n < 2 {
		return false
	}
	var gap float64
	switch index {
	case 0:
		gap = s.Values[1] - s.Values[0]
	case n - 1:
		gap = s.Values[n-1] - s.Values[n-2]
	default:
		return true
	}
	return math.Abs(gap-s.Delta) <= math.Abs(s.Delta)*fullEpsilon
}

// Ratio gives the position of v relative to the first and last ticks.
func (s *IntervalSet) Ratio(v float64) float64 {
	first, last := s.First(), s.Last()
	if last == first {
		return 0
	}
	return (v - first) / (last - first)
}

func closeTo(a, b float64) bool {
	if a == b || (math.IsNaN(a) && math.IsNaN(b)) {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	return diff <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
