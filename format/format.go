package format

import (
	"math"
)

const (
	DefaultNumberPattern = "#######.00"
	DefaultDatePattern   = "YYYY-0MM-0DD"

	maxDecimals = 10
)

// Formatter turns a tick value into its label.
type Formatter interface {
	Format(float64) string
}

// Pick returns the formatter used for the labels of an axis. An empty pattern
// selects the automatic one: a date when the axis holds times, otherwise a
// number with enough decimals to distinguish ticks delta apart.
func Pick(pattern string, delta float64, date bool) (Formatter, error) {
	switch {
	case pattern == "" && date:
		return ParseDateFormatter(DefaultDatePattern)
	case pattern == "":
		return ForDelta(delta), nil
	case date:
		return ParseDateFormatter(pattern)
	default:
		return ParseNumberFormatter(pattern)
	}
}

// ForDelta gives a number formatter with a fixed count of decimals. The count
// starts at -floor(log10(delta)) and grows until delta is written exactly.
func ForDelta(delta float64) Formatter {
	nf := numberFormatter{
		minInt:      1,
		maxInt:      1,
		decimalSep:  '.',
		thousandSep: ',',
	}
	delta = math.Abs(delta)
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nf
	}
	dec := max(0, -int(math.Floor(math.Log10(delta))))
	for dec < maxDecimals {
		scaled := delta * math.Pow10(dec)
		if math.Abs(scaled-math.Round(scaled)) <= 1e-6*scaled {
			break
		}
		dec++
	}
	nf.minDec = min(dec, maxDecimals)
	nf.maxDec = nf.minDec
	return nf
}

func Labels(values []float64, f Formatter) []string {
	list := make([]string, 0, len(values))
	for _, v := range values {
		list = append(list, f.Format(v))
	}
	return list
}
