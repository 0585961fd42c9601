package format

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// longest patterns are tried first so that "YYYY" is never read as "YY" twice.
func init() {
	slices.SortStableFunc(dateFieldsWriter, func(a, b dateFieldPattern) int {
		return cmp.Compare(len(b.Pattern), len(a.Pattern))
	})
}

type dateFieldPattern struct {
	Pattern string
	Func    dateWriter
}

type dateWriter func(*strings.Builder, time.Time)

var dateFieldsWriter = []dateFieldPattern{
	{
		Pattern: "YYYY",
		Func:    writeYearLong,
	},
	{
		Pattern: "YY",
		Func:    writeYearShort,
	},
	{
		Pattern: "MM",
		Func:    writeMonth,
	},
	{
		Pattern: "0MM",
		Func:    writeMonthPadded,
	},
	{
		Pattern: "MMM",
		Func:    writeMonthNameShort,
	},
	{
		Pattern: "MMMM",
		Func:    writeMonthNameLong,
	},
	{
		Pattern: "DD",
		Func:    writeDay,
	},
	{
		Pattern: "0DD",
		Func:    writeDayPadded,
	},
	{
		Pattern: "DDD",
		Func:    writeDayNameShort,
	},
	{
		Pattern: "DDDD",
		Func:    writeDayNameLong,
	},
	{
		Pattern: "JJJ",
		Func:    writeYearDay,
	},
	{
		Pattern: "0JJJ",
		Func:    writeYearDayPadded,
	},
	{
		Pattern: "hh",
		Func:    writeHour,
	},
	{
		Pattern: "0hh",
		Func:    writeHourPadded,
	},
	{
		Pattern: "mm",
		Func:    writeMinute,
	},
	{
		Pattern: "0mm",
		Func:    writeMinutePadded,
	},
	{
		Pattern: "ss",
		Func:    writeSecond,
	},
	{
		Pattern: "0ss",
		Func:    writeSecondPadded,
	},
}

// dateFormatter writes tick values holding seconds since the unix epoch.
type dateFormatter struct {
	writers []dateWriter
}

func ParseDateFormatter(pattern string) (Formatter, error) {
	var df dateFormatter
	for i := 0; i < len(pattern); {
		var matched bool
		for _, k := range dateFieldsWriter {
			matched = strings.HasPrefix(pattern[i:], k.Pattern)
			if matched {
				df.writers = append(df.writers, k.Func)
				i += len(k.Pattern)
				break
			}
		}
		if !matched {
			df.writers = append(df.writers, writeLiteralDate(pattern[i]))
			i++
		}
	}
	return df, nil
}

func (f dateFormatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	when := Time(v)
	if len(f.writers) == 0 {
		return when.Format(time.RFC3339)
	}
	var str strings.Builder
	for i := range f.writers {
		f.writers[i](&str, when)
	}
	return str.String()
}

// Time converts seconds since the unix epoch to a UTC time.
func Time(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

func writeLiteralDate(char byte) dateWriter {
	return func(w *strings.Builder, _ time.Time) {
		w.WriteByte(char)
	}
}

func writeYearLong(w *strings.Builder, t time.Time) {
	w.WriteString(strconv.Itoa(t.Year()))
}

func writeYearShort(w *strings.Builder, t time.Time) {
	y := t.Year() % 100
	if y < 10 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(y))
}

func writeMonth(w *strings.Builder, t time.Time) {
	m := int(t.Month())
	w.WriteString(strconv.Itoa(m))
}

func writeMonthPadded(w *strings.Builder, t time.Time) {
	m := int(t.Month())
	if m < 10 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(m))
}

func writeMonthNameShort(w *strings.Builder, t time.Time) {
	w.WriteString(t.Month().String()[:3])
}

func writeMonthNameLong(w *strings.Builder, t time.Time) {
	w.WriteString(t.Month().String())
}

func writeDay(w *strings.Builder, t time.Time) {
	w.WriteString(strconv.Itoa(t.Day()))
}

func writeDayPadded(w *strings.Builder, t time.Time) {
	d := t.Day()
	if d < 10 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(d))
}

func writeDayNameShort(w *strings.Builder, t time.Time) {
	w.WriteString(t.Weekday().String()[:3])
}

func writeDayNameLong(w *strings.Builder, t time.Time) {
	w.WriteString(t.Weekday().String())
}

func writeYearDay(w *strings.Builder, t time.Time) {
	w.WriteString(strconv.Itoa(t.YearDay()))
}

func writeYearDayPadded(w *strings.Builder, t time.Time) {
	y := t.YearDay()
	if y < 10 {
		w.WriteByte('0')
	}
	if y < 100 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(y))
}

func writeHour(w *strings.Builder, t time.Time) {
	w.WriteString(strconv.Itoa(t.Hour()))
}

func writeHourPadded(w *strings.Builder, t time.Time) {
	h := t.Hour()
	if h < 10 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(h))
}

func writeMinute(w *strings.Builder, t time.Time) {
	w.WriteString(strconv.Itoa(t.Minute()))
}

func writeMinutePadded(w *strings.Builder, t time.Time) {
	m := t.Minute()
	if m < 10 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(m))
}

func writeSecond(w *strings.Builder, t time.Time) {
	w.WriteString(strconv.Itoa(t.Second()))
}

func writeSecondPadded(w *strings.Builder, t time.Time) {
	s := t.Second()
	if s < 10 {
		w.WriteByte('0')
	}
	w.WriteString(strconv.Itoa(s))
}
