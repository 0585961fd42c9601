package axis

import (
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

const (
	minSteps      = 1
	maxSteps      = 15
	maxDivisions  = 100
	maxRetries    = 50
	shrinkSpacing = 0.9

	stepEpsilon = 1e-9
	zeroEpsilon = 1e-10
	fullEpsilon = 1e-4
	bigValue    = 1e100
)

var (
	AlignMin = math.Inf(-1)
	AlignMax = math.Inf(1)
)

type multiplier struct {
	value int
	exp   int
}

// multipliers are 0.1, 0.2, 0.5, 1, 2, 5 and 10 written as value*10^exp
// so that ticks can be computed without accumulating rounding errors.
var multipliers = []multiplier{
	{value: 1, exp: -1},
	{value: 2, exp: -1},
	{value: 5, exp: -1},
	{value: 1, exp: 0},
	{value: 2, exp: 0},
	{value: 5, exp: 0},
	{value: 1, exp: 1},
}

type increment struct {
	value int
	exp   int
}

func (i increment) At(step float64) float64 {
	v := step * float64(i.value)
	if i.exp >= 0 {
		return v * math.Pow10(i.exp)
	}
	return v / math.Pow10(-i.exp)
}

func (i increment) Steps(v float64) float64 {
	v /= float64(i.value)
	if i.exp >= 0 {
		return v / math.Pow10(i.exp)
	}
	return v * math.Pow10(-i.exp)
}

type Generator struct {
	Logger logrus.FieldLogger
}

func NewGenerator() *Generator {
	return &Generator{
		Logger: logrus.StandardLogger(),
	}
}

var defaultGenerator = NewGenerator()

func Generate(min, max, length, spacing float64, minFixed, maxFixed bool) *IntervalSet {
	return defaultGenerator.Generate(min, max, length, spacing, minFixed, maxFixed)
}

func GenerateExplicit(min, max, spacing, base float64, minFixed, maxFixed bool) *IntervalSet {
	return defaultGenerator.GenerateExplicit(min, max, spacing, base, minFixed, maxFixed)
}

func GenerateWrapped(min, max, wrapMin, wrapMax, length, spacing float64) *IntervalSet {
	return defaultGenerator.GenerateWrapped(min, max, wrapMin, wrapMax, length, spacing)
}

// Generate computes "pleasing" tick values covering min..max for an axis of
// length pixels with ticks at least spacing pixels apart. A fixed endpoint
// is kept verbatim as the first (or last) tick.
func (g *Generator) Generate(min, max, length, spacing float64, minFixed, maxFixed bool) *IntervalSet {
	set := IntervalSet{
		seed: Seed{
			Min:      min,
			Max:      max,
			Length:   length,
			Spacing:  spacing,
			MinFixed: minFixed,
			MaxFixed: maxFixed,
		},
		Effective: spacing,
	}
	min, max = normalize(min, max)
	set.Min, set.Max = min, max
	if !(spacing > 0) {
		spacing = 1
	}
	if !(length > 0) {
		length = 0
	}
	if length < 2*spacing {
		length = 1.5 * spacing
	}

	var (
		factor = magnitude(max - min)
		want   = spacing
	)
	for i := 0; i < maxRetries; i++ {
		values, ok := g.search(min, max, length, spacing, want, factor, minFixed, maxFixed)
		if ok {
			set.Values = values
			set.Effective = spacing
			set.Relaxed = i > 0
			break
		}
		spacing *= shrinkSpacing
	}
	if len(set.Values) == 0 {
		set.Effective = spacing
		set.Relaxed = true
		g.logger().WithFields(logrus.Fields{
			"min":     min,
			"max":     max,
			"length":  length,
			"spacing": set.seed.Spacing,
		}).Warn("no tick increment found after relaxing spacing")
	}
	g.check(&set, min, max)
	set.Delta = representativeDelta(set.Values)
	return &set
}

func (g *Generator) search(min, max, length, spacing, want float64, factor int, minFixed, maxFixed bool) ([]float64, bool) {
	for _, m := range multipliers {
		incr := increment{
			value: m.value,
			exp:   m.exp + factor,
		}
		var lo, hi float64
		if minFixed {
			lo = incr.Steps(min)
		} else {
			lo = math.Floor(incr.Steps(min) + stepEpsilon)
		}
		if maxFixed {
			hi = incr.Steps(max)
		} else {
			hi = math.Ceil(incr.Steps(max) - stepEpsilon)
		}
		steps := hi - lo
		if !(steps >= minSteps && steps < maxSteps) {
			continue
		}
		pixels := length / steps
		if !(pixels >= spacing) {
			continue
		}
		values := walk(incr.At, lo, hi, min, max, minFixed, maxFixed)
		if len(values) == 3 && pixels < want/2 {
			values = []float64{values[0], values[2]}
		}
		return values, true
	}
	return nil, false
}

// GenerateExplicit computes ticks min..max separated by spacing and aligned
// on base. A negative spacing is a tick count. base may be AlignMin,
// AlignMax or any finite value.
func (g *Generator) GenerateExplicit(min, max, spacing, base float64, minFixed, maxFixed bool) *IntervalSet {
	set := IntervalSet{
		seed: Seed{
			Min:      min,
			Max:      max,
			Spacing:  spacing,
			Base:     base,
			MinFixed: minFixed,
			MaxFixed: maxFixed,
		},
	}
	min, max = normalize(min, max)
	set.Min, set.Max = min, max
	size := max - min
	if spacing < 0 {
		spacing = size / -spacing
		base = AlignMin
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		spacing = size
	}
	if size/spacing > maxDivisions {
		g.logger().WithFields(logrus.Fields{
			"min":     min,
			"max":     max,
			"spacing": spacing,
		}).Warn("too many divisions requested, widening spacing")
		spacing = size / maxDivisions
	}
	if math.IsNaN(base) {
		base = AlignMin
	}
	switch {
	case math.IsInf(base, -1):
		set.Values = alignMin(min, max, spacing, maxFixed)
	case math.IsInf(base, 1):
		set.Values = alignMax(min, max, spacing, minFixed)
	default:
		at := func(step float64) float64 {
			return step * spacing
		}
		lo, hi := (min-base)/spacing, (max-base)/spacing
		if !minFixed {
			lo = math.Floor(lo + stepEpsilon)
		}
		if !maxFixed {
			hi = math.Ceil(hi - stepEpsilon)
		}
		set.Values = walk(at, lo, hi, min-base, max-base, minFixed, maxFixed)
		for i := range set.Values {
			set.Values[i] += base
		}
		if n := len(set.Values); n > 0 && minFixed {
			set.Values[0] = min
		}
		if n := len(set.Values); n > 0 && maxFixed {
			set.Values[n-1] = max
		}
	}
	set.Effective = spacing
	g.check(&set, min, max)
	set.Delta = spacing
	return &set
}

// GenerateWrapped computes ticks for a cyclic dimension whose values live in
// wrapMin..wrapMax (eg: polar angle). The range is clamped into the window and
// an end reaching a window bound is kept as is.
func (g *Generator) GenerateWrapped(min, max, wrapMin, wrapMax, length, spacing float64) *IntervalSet {
	seed := Seed{
		Min:     min,
		Max:     max,
		Length:  length,
		Spacing: spacing,
		WrapMin: wrapMin,
		WrapMax: wrapMax,
	}
	set := g.wrap(min, max, wrapMin, wrapMax, length, spacing)
	set.seed = seed
	return set
}

func (g *Generator) wrap(min, max, wrapMin, wrapMax, length, spacing float64) *IntervalSet {
	if wrapMin > wrapMax {
		wrapMin, wrapMax = wrapMax, wrapMin
	}
	min, max = normalize(min, max)
	if max-min >= wrapMax-wrapMin {
		return g.Generate(wrapMin, wrapMax, length, spacing, true, true)
	}
	var minFixed, maxFixed bool
	if min <= wrapMin {
		min, minFixed = wrapMin, true
	}
	if max >= wrapMax {
		max, maxFixed = wrapMax, true
	}
	set := g.Generate(min, max, length, spacing, minFixed, maxFixed)
	if n := len(set.Values); set.Values[0] < wrapMin || set.Values[n-1] > wrapMax {
		minFixed = minFixed || set.Values[0] < wrapMin
		maxFixed = maxFixed || set.Values[n-1] > wrapMax
		return g.Generate(min, max, length, spacing, minFixed, maxFixed)
	}
	return set
}

func (g *Generator) check(set *IntervalSet, min, max float64) {
	if len(set.Values) >= 2 && isAscending(set.Values) {
		return
	}
	if len(set.Values) > 0 {
		g.logger().WithFields(logrus.Fields{
			"min":   min,
			"max":   max,
			"ticks": set.Values,
		}).Warn("invalid ticks computed, falling back to range bounds")
	}
	set.Values = []float64{min, max}
}

func (g *Generator) logger() logrus.FieldLogger {
	if g.Logger == nil {
		return logrus.StandardLogger()
	}
	return g.Logger
}

func walk(at func(float64) float64, lo, hi, min, max float64, minFixed, maxFixed bool) []float64 {
	var (
		first  = math.Ceil(lo - stepEpsilon)
		last   = math.Floor(hi + stepEpsilon)
		values []float64
	)
	if minFixed && !isInteger(lo) {
		values = append(values, min)
	}
	for k := 0; k <= int(last-first) && k <= maxDivisions+2; k++ {
		values = append(values, at(first+float64(k)))
	}
	if maxFixed && !isInteger(hi) {
		values = append(values, max)
	}
	if len(values) == 0 {
		return values
	}
	if minFixed {
		values[0] = min
	}
	if maxFixed {
		values[len(values)-1] = max
	}
	return values
}

func alignMin(min, max, spacing float64, maxFixed bool) []float64 {
	var (
		tol    = spacing * stepEpsilon
		values []float64
	)
	for i := 0; i <= maxDivisions+1; i++ {
		v := min + float64(i)*spacing
		if v > max+tol {
			break
		}
		values = append(values, v)
	}
	last := values[len(values)-1]
	switch {
	case math.Abs(last-max) <= tol:
		values[len(values)-1] = max
	case maxFixed:
		values = append(values, max)
	default:
		values = append(values, last+spacing)
	}
	return values
}

func alignMax(min, max, spacing float64, minFixed bool) []float64 {
	var (
		tol    = spacing * stepEpsilon
		values []float64
	)
	for i := 0; i <= maxDivisions+1; i++ {
		v := max - float64(i)*spacing
		if v < min-tol {
			break
		}
		values = append(values, v)
	}
	last := values[len(values)-1]
	switch {
	case math.Abs(last-min) <= tol:
		values[len(values)-1] = min
	case minFixed:
		values = append(values, min)
	default:
		values = append(values, last-spacing)
	}
	slices.Reverse(values)
	return values
}

func normalize(min, max float64) (float64, float64) {
	switch {
	case math.IsNaN(min) && math.IsNaN(max):
		min, max = DefaultMin, DefaultMax
	case math.IsNaN(min):
		min = max
	case math.IsNaN(max):
		max = min
	}
	min = finite(min)
	max = finite(max)
	if math.IsInf(max-min, 0) {
		min = math.Max(min, -bigValue)
		max = math.Min(max, bigValue)
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		max = min + 1
	}
	if min != 0 && math.Abs(min/(max-min)) < zeroEpsilon {
		min = 0
	}
	return min, max
}

func finite(v float64) float64 {
	if math.IsInf(v, 1) {
		return bigValue
	}
	if math.IsInf(v, -1) {
		return -bigValue
	}
	return v
}

// magnitude returns p such that 10^p is the largest power of 10 with
// 10^p*1.1 <= size.
func magnitude(size float64) int {
	pow := int(math.Round(math.Log10(size)))
	for math.Pow10(pow)*1.1 > size {
		pow--
	}
	return pow
}

func representativeDelta(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	if n >= 4 {
		return values[2] - values[1]
	}
	return math.Max(values[1]-values[0], values[n-1]-values[n-2])
}

func isInteger(v float64) bool {
	return math.Abs(v-math.Round(v)) <= stepEpsilon
}

func isAscending(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return false
		}
	}
	return true
}
