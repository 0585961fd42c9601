package axis

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		Name     string
		Min      float64
		Max      float64
		Length   float64
		Spacing  float64
		MinFixed bool
		MaxFixed bool
		Want     []float64
		Delta    float64
	}{
		{
			Name:    "round range",
			Min:     0,
			Max:     100,
			Length:  300,
			Spacing: 50,
			Want:    []float64{0, 20, 40, 60, 80, 100},
			Delta:   20,
		},
		{
			Name:    "unrounded range",
			Min:     17,
			Max:     242,
			Length:  400,
			Spacing: 50,
			Want:    []float64{0, 50, 100, 150, 200, 250},
			Delta:   50,
		},
		{
			Name:    "empty range",
			Min:     5,
			Max:     5,
			Length:  300,
			Spacing: 50,
			Want:    []float64{5, 5.2, 5.4, 5.6, 5.8, 6},
			Delta:   0.2,
		},
		{
			Name:     "fixed bounds on multiples",
			Min:      0,
			Max:      10,
			Length:   400,
			Spacing:  50,
			MinFixed: true,
			MaxFixed: true,
			Want:     []float64{0, 2, 4, 6, 8, 10},
			Delta:    2,
		},
		{
			Name:    "free bounds",
			Min:     0.5,
			Max:     9.3,
			Length:  400,
			Spacing: 50,
			Want:    []float64{0, 2, 4, 6, 8, 10},
			Delta:   2,
		},
		{
			Name:     "fixed bounds",
			Min:      0.5,
			Max:      9.3,
			Length:   400,
			Spacing:  50,
			MinFixed: true,
			MaxFixed: true,
			Want:     []float64{0.5, 2, 4, 6, 8, 9.3},
			Delta:    2,
		},
		{
			Name:    "short axis",
			Min:     0,
			Max:     100,
			Length:  60,
			Spacing: 50,
			Want:    []float64{0, 100},
			Delta:   100,
		},
		{
			Name:    "reversed bounds",
			Min:     100,
			Max:     0,
			Length:  300,
			Spacing: 50,
			Want:    []float64{0, 20, 40, 60, 80, 100},
			Delta:   20,
		},
		{
			Name:    "negative range",
			Min:     -242,
			Max:     -17,
			Length:  400,
			Spacing: 50,
			Want:    []float64{-250, -200, -150, -100, -50, 0},
			Delta:   50,
		},
	}
	for _, c := range tests {
		set := Generate(c.Min, c.Max, c.Length, c.Spacing, c.MinFixed, c.MaxFixed)
		if !sameValues(set.Values, c.Want) {
			t.Errorf("%s: ticks mismatched! want %v - got %v", c.Name, c.Want, set.Values)
			continue
		}
		if !sameValue(set.Delta, c.Delta) {
			t.Errorf("%s: delta mismatched! want %f - got %f", c.Name, c.Delta, set.Delta)
		}
	}
}

func TestGenerateFixedEndpointsAreExact(t *testing.T) {
	tests := []struct {
		Min float64
		Max float64
	}{
		{Min: 0, Max: 10},
		{Min: 0.1, Max: 0.7},
		{Min: -3.3, Max: 17.7},
		{Min: 1.0 / 3, Max: 2.0 / 3},
		{Min: 12345.678, Max: 98765.4321},
	}
	for _, c := range tests {
		set := Generate(c.Min, c.Max, 400, 50, true, true)
		if set.First() != c.Min {
			t.Errorf("(%v, %v): first tick mismatched! want %v - got %v", c.Min, c.Max, c.Min, set.First())
		}
		if set.Last() != c.Max {
			t.Errorf("(%v, %v): last tick mismatched! want %v - got %v", c.Min, c.Max, c.Max, set.Last())
		}
		if !isAscending(set.Values) {
			t.Errorf("(%v, %v): ticks not ascending: %v", c.Min, c.Max, set.Values)
		}
	}
}

func TestGenerateRelaxSpacing(t *testing.T) {
	set := Generate(95, 105, 100, 60, false, false)
	want := []float64{95, 100, 105}
	if !sameValues(set.Values, want) {
		t.Fatalf("ticks mismatched! want %v - got %v", want, set.Values)
	}
	if !set.Relaxed {
		t.Errorf("spacing should have been relaxed")
	}
	if want := 60 * 0.9 * 0.9 * 0.9; !sameValue(set.Effective, want) {
		t.Errorf("effective spacing mismatched! want %f - got %f", want, set.Effective)
	}
}

func TestSearchCollapseLonelyTick(t *testing.T) {
	g := NewGenerator()
	values, ok := g.search(95, 105, 40, 15, 100, 0, false, false)
	if !ok {
		t.Fatalf("no increment accepted")
	}
	want := []float64{95, 105}
	if !sameValues(values, want) {
		t.Errorf("ticks mismatched! want %v - got %v", want, values)
	}
}

func TestGenerateDegenerate(t *testing.T) {
	tests := []struct {
		Name string
		Min  float64
		Max  float64
	}{
		{Name: "nan", Min: math.NaN(), Max: math.NaN()},
		{Name: "nan min", Min: math.NaN(), Max: 10},
		{Name: "infinite", Min: math.Inf(-1), Max: math.Inf(1)},
		{Name: "infinite max", Min: 0, Max: math.Inf(1)},
		{Name: "huge", Min: -math.MaxFloat64, Max: math.MaxFloat64},
		{Name: "tiny", Min: 1e-300, Max: 2e-300},
		{Name: "zero", Min: 0, Max: 0},
	}
	for _, c := range tests {
		set := Generate(c.Min, c.Max, 400, 50, false, false)
		if set.Len() < 2 {
			t.Errorf("%s: not enough ticks: %v", c.Name, set.Values)
			continue
		}
		if !isAscending(set.Values) {
			t.Errorf("%s: ticks not ascending: %v", c.Name, set.Values)
		}
		for _, v := range set.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: invalid tick found: %v", c.Name, set.Values)
				break
			}
		}
	}
}

func TestGenerateSnapNearZero(t *testing.T) {
	set := Generate(1e-14, 100, 300, 50, false, false)
	if set.Min != 0 {
		t.Errorf("min should be snapped to zero! got %v", set.Min)
	}
	want := []float64{0, 20, 40, 60, 80, 100}
	if !sameValues(set.Values, want) {
		t.Errorf("ticks mismatched! want %v - got %v", want, set.Values)
	}
}

func TestGenerateFallback(t *testing.T) {
	logger, hook := test.NewNullLogger()
	g := Generator{
		Logger: logger,
	}
	// the range is smaller than the float resolution of the step index
	// so that consecutive ticks collide
	set := g.Generate(1e16, 1e16+2, 400, 50, false, false)
	want := []float64{1e16, 1e16 + 2}
	if !slices.Equal(set.Values, want) {
		t.Fatalf("ticks mismatched! want %v - got %v", want, set.Values)
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("fallback should have been logged")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("log level mismatched! want %s - got %s", logrus.WarnLevel, entry.Level)
	}
}

func TestGenerateProperties(t *testing.T) {
	var (
		rnd      = rand.New(rand.NewSource(42))
		pleasing = []float64{1, 2, 5, 10}
	)
	for i := 0; i < 5000; i++ {
		var (
			min      = (rnd.Float64()*2 - 1) * 1e6
			span     = math.Pow(10, rnd.Float64()*9-3)
			max      = min + span
			length   = 10 + rnd.Float64()*2000
			spacing  = 20 + rnd.Float64()*80
			minFixed = rnd.Intn(2) == 0
			maxFixed = rnd.Intn(2) == 0
			set      = Generate(min, max, length, spacing, minFixed, maxFixed)
			tol      = span * 1e-9
		)
		if set.Len() < 2 {
			t.Fatalf("(%v, %v, %v, %v): not enough ticks: %v", min, max, length, spacing, set.Values)
		}
		if !isAscending(set.Values) {
			t.Fatalf("(%v, %v, %v, %v): ticks not ascending: %v", min, max, length, spacing, set.Values)
		}
		if minFixed && set.First() != min {
			t.Fatalf("(%v, %v): first tick should be %v, got %v", min, max, min, set.First())
		}
		if !minFixed && set.First() > min+tol {
			t.Fatalf("(%v, %v): first tick %v above min", min, max, set.First())
		}
		if maxFixed && set.Last() != max {
			t.Fatalf("(%v, %v): last tick should be %v, got %v", min, max, max, set.Last())
		}
		if !maxFixed && set.Last() < max-tol {
			t.Fatalf("(%v, %v): last tick %v below max", min, max, set.Last())
		}
		if minFixed || maxFixed {
			continue
		}
		mantissa := set.Delta / math.Pow10(int(math.Floor(math.Log10(set.Delta))))
		ok := slices.ContainsFunc(pleasing, func(p float64) bool {
			return math.Abs(mantissa-p) < 1e-6
		})
		if !ok {
			t.Fatalf("(%v, %v): delta %v is not pleasing", min, max, set.Delta)
		}
		if length < 2*spacing {
			length = 1.5 * spacing
		}
		if pixels := length / float64(set.Intervals()); pixels < set.Effective*(1-1e-9) {
			t.Fatalf("(%v, %v, %v, %v): ticks too close (%f < %f)", min, max, length, spacing, pixels, set.Effective)
		}
	}
}

func TestIsFullInterval(t *testing.T) {
	set := Generate(0.5, 9.3, 400, 50, true, true)
	tests := []struct {
		Index int
		Want  bool
	}{
		{Index: 0, Want: false},
		{Index: 1, Want: true},
		{Index: 2, Want: true},
		{Index: 4, Want: true},
		{Index: 5, Want: false},
		{Index: 6, Want: false},
		{Index: -1, Want: false},
	}
	for _, c := range tests {
		got := set.IsFullInterval(c.Index)
		if got != c.Want {
			t.Errorf("%d: results mismatched! want %t - got %t", c.Index, c.Want, got)
		}
	}

	set = Generate(0, 100, 300, 50, false, false)
	for i := range set.Values {
		if !set.IsFullInterval(i) {
			t.Errorf("%d: interval should be full (%v)", i, set.Values)
		}
	}
}

func TestGenerateExplicit(t *testing.T) {
	tests := []struct {
		Name     string
		Min      float64
		Max      float64
		Spacing  float64
		Base     float64
		MinFixed bool
		MaxFixed bool
		Want     []float64
		Delta    float64
	}{
		{
			Name:    "align min on max",
			Min:     0,
			Max:     10,
			Spacing: 2.5,
			Base:    AlignMin,
			Want:    []float64{0, 2.5, 5, 7.5, 10},
			Delta:   2.5,
		},
		{
			Name:    "align min",
			Min:     1,
			Max:     10,
			Spacing: 2,
			Base:    AlignMin,
			Want:    []float64{1, 3, 5, 7, 9, 11},
			Delta:   2,
		},
		{
			Name:     "align min fixed max",
			Min:      1,
			Max:      10,
			Spacing:  2,
			Base:     AlignMin,
			MaxFixed: true,
			Want:     []float64{1, 3, 5, 7, 9, 10},
			Delta:    2,
		},
		{
			Name:    "align max",
			Min:     1,
			Max:     10,
			Spacing: 2,
			Base:    AlignMax,
			Want:    []float64{0, 2, 4, 6, 8, 10},
			Delta:   2,
		},
		{
			Name:     "align max fixed min",
			Min:      1,
			Max:      10,
			Spacing:  2,
			Base:     AlignMax,
			MinFixed: true,
			Want:     []float64{1, 2, 4, 6, 8, 10},
			Delta:    2,
		},
		{
			Name:    "tick count",
			Min:     0,
			Max:     10,
			Spacing: -4,
			Base:    3,
			Want:    []float64{0, 2.5, 5, 7.5, 10},
			Delta:   2.5,
		},
		{
			Name:    "base",
			Min:     0,
			Max:     10,
			Spacing: 3,
			Base:    1,
			Want:    []float64{-2, 1, 4, 7, 10},
			Delta:   3,
		},
		{
			Name:     "base fixed min",
			Min:      0,
			Max:      10,
			Spacing:  3,
			Base:     1,
			MinFixed: true,
			Want:     []float64{0, 1, 4, 7, 10},
			Delta:    3,
		},
		{
			Name:    "nan base",
			Min:     0,
			Max:     10,
			Spacing: 5,
			Base:    math.NaN(),
			Want:    []float64{0, 5, 10},
			Delta:   5,
		},
		{
			Name:    "zero spacing",
			Min:     3,
			Max:     7,
			Spacing: 0,
			Base:    AlignMin,
			Want:    []float64{3, 7},
			Delta:   4,
		},
	}
	for _, c := range tests {
		set := GenerateExplicit(c.Min, c.Max, c.Spacing, c.Base, c.MinFixed, c.MaxFixed)
		if !sameValues(set.Values, c.Want) {
			t.Errorf("%s: ticks mismatched! want %v - got %v", c.Name, c.Want, set.Values)
			continue
		}
		if !sameValue(set.Delta, c.Delta) {
			t.Errorf("%s: delta mismatched! want %f - got %f", c.Name, c.Delta, set.Delta)
		}
	}
}

func TestGenerateExplicitCapDivisions(t *testing.T) {
	logger, hook := test.NewNullLogger()
	g := Generator{
		Logger: logger,
	}
	set := g.GenerateExplicit(0, 1000, 1, AlignMin, false, false)
	if set.Len() != 101 {
		t.Errorf("number of ticks mismatched! want %d - got %d", 101, set.Len())
	}
	if !sameValue(set.Delta, 10) {
		t.Errorf("delta mismatched! want %f - got %f", 10.0, set.Delta)
	}
	if set.Last() != 1000 {
		t.Errorf("last tick mismatched! want %f - got %f", 1000.0, set.Last())
	}
	if len(hook.Entries) != 1 {
		t.Errorf("expected one warning, got %d", len(hook.Entries))
	}
}

func TestGenerateWrapped(t *testing.T) {
	tests := []struct {
		Name  string
		Min   float64
		Max   float64
		First float64
		Last  float64
	}{
		{Name: "overflow window", Min: -20, Max: 400, First: 0, Last: 360},
		{Name: "inside window", Min: 10, Max: 100, First: 0, Last: 100},
		{Name: "ceil over window", Min: 5, Max: 355, First: 0, Last: 355},
		{Name: "below window", Min: -30, Max: 100, First: 0, Last: 100},
	}
	for _, c := range tests {
		set := GenerateWrapped(c.Min, c.Max, 0, 360, 400, 50)
		if !sameValue(set.First(), c.First) || !sameValue(set.Last(), c.Last) {
			t.Errorf("%s: bounds mismatched! want %v-%v - got %v", c.Name, c.First, c.Last, set.Values)
			continue
		}
		if !isAscending(set.Values) {
			t.Errorf("%s: ticks not ascending: %v", c.Name, set.Values)
		}
	}
}

func sameValues(got, want []float64) bool {
	return slices.EqualFunc(got, want, sameValue)
}

func sameValue(got, want float64) bool {
	return math.Abs(got-want) <= 1e-9*math.Max(1, math.Abs(want))
}
