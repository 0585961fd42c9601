package dataset

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// UnsetPolicy tells how a series handles a value that was never given.
type UnsetPolicy int8

const (
	// UnsetZero: the series has no notion of missing value, unset reads as 0.
	UnsetZero UnsetPolicy = iota
	// UnsetSkip: unset values are reported as absent and ignored by MinMax.
	UnsetSkip
)

func (p UnsetPolicy) String() string {
	if p == UnsetSkip {
		return "skip"
	}
	return "zero"
}

type Series interface {
	PointCount() int
	ValueAt(Channel, int) (float64, bool)
}

type Bounder interface {
	Bounds(Channel) (float64, float64, bool)
}

func PolicyOf(s Series) UnsetPolicy {
	p, ok := s.(interface{ Policy() UnsetPolicy })
	if !ok {
		return UnsetSkip
	}
	return p.Policy()
}

// RawData is a dense series. A missing X column gives the point index, a
// column shorter than the others and NaN values read as 0.
type RawData struct {
	columns [3][]float64
}

func NewRawData(x, y, z []float64) *RawData {
	var r RawData
	for i, vs := range [][]float64{x, y, z} {
		r.columns[i] = make([]float64, 0, len(vs))
		for _, v := range vs {
			r.columns[i] = append(r.columns[i], zeroNaN(v))
		}
	}
	return &r
}

func (r *RawData) Policy() UnsetPolicy {
	return UnsetZero
}

func (r *RawData) PointCount() int {
	var n int
	for _, c := range r.columns {
		n = max(n, len(c))
	}
	return n
}

func (r *RawData) ValueAt(ch Channel, ix int) (float64, bool) {
	if ix < 0 || ix >= r.PointCount() {
		return 0, false
	}
	col := r.column(ch)
	if ch.Source() == X && len(col) == 0 {
		return float64(ix), true
	}
	if ix >= len(col) {
		return 0, true
	}
	return col[ix], true
}

func (r *RawData) Bounds(ch Channel) (float64, float64, bool) {
	n := r.PointCount()
	if n == 0 {
		return 0, 0, false
	}
	col := r.column(ch)
	if len(col) == 0 {
		if ch.Source() == X {
			return 0, float64(n - 1), true
		}
		return 0, 0, true
	}
	lo, hi := stats.Bounds(col)
	if len(col) < n {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	}
	return lo, hi, true
}

func (r *RawData) Append(ch Channel, v float64) {
	ix := index(ch)
	r.columns[ix] = append(r.columns[ix], zeroNaN(v))
}

func (r *RawData) Set(ch Channel, at int, v float64) bool {
	col := r.column(ch)
	if at < 0 || at >= len(col) {
		return false
	}
	col[at] = zeroNaN(v)
	return true
}

func (r *RawData) Remove(at int) {
	for i, c := range r.columns {
		if at >= 0 && at < len(c) {
			r.columns[i] = slices.Delete(c, at, at+1)
		}
	}
}

func (r *RawData) column(ch Channel) []float64 {
	return r.columns[index(ch)]
}

// SparseData is a series where each value can be unset. NaN marks an unset
// value. A missing X column gives the point index.
type SparseData struct {
	columns [3][]float64
}

func NewSparseData(x, y, z []float64) *SparseData {
	var s SparseData
	for i, vs := range [][]float64{x, y, z} {
		s.columns[i] = slices.Clone(vs)
	}
	return &s
}

func (s *SparseData) Policy() UnsetPolicy {
	return UnsetSkip
}

func (s *SparseData) PointCount() int {
	var n int
	for _, c := range s.columns {
		n = max(n, len(c))
	}
	return n
}

func (s *SparseData) ValueAt(ch Channel, ix int) (float64, bool) {
	if ix < 0 || ix >= s.PointCount() {
		return 0, false
	}
	col := s.columns[index(ch)]
	if ch.Source() == X && len(col) == 0 {
		return float64(ix), true
	}
	if ix >= len(col) || math.IsNaN(col[ix]) {
		return 0, false
	}
	return col[ix], true
}

func (s *SparseData) Append(ch Channel, v float64) {
	ix := index(ch)
	s.columns[ix] = append(s.columns[ix], v)
}

func (s *SparseData) Set(ch Channel, at int, v float64) bool {
	col := s.columns[index(ch)]
	if at < 0 || at >= len(col) {
		return false
	}
	col[at] = v
	return true
}

func (s *SparseData) Unset(ch Channel, at int) bool {
	return s.Set(ch, at, math.NaN())
}

func (s *SparseData) Remove(at int) {
	for i, c := range s.columns {
		if at >= 0 && at < len(c) {
			s.columns[i] = slices.Delete(c, at, at+1)
		}
	}
}

// ParseColumn converts cells to values: blank or non numeric cells are
// unset (NaN).
func ParseColumn(cells []string) []float64 {
	vs := make([]float64, 0, len(cells))
	for _, c := range cells {
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			f = math.NaN()
		}
		vs = append(vs, f)
	}
	return vs
}

func index(ch Channel) int {
	switch ch.Source() {
	case X:
		return 0
	case Z:
		return 2
	default:
		return 1
	}
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
