package value

import (
	"strconv"
	"time"
)

// TicksPerSecond is the resolution of DateTime/TimeSpan ticks. Cantus uses
// the .NET-style 100-nanosecond tick used by the source system's date
// library, so date built-ins can reproduce its arithmetic exactly.
const TicksPerSecond int64 = 10_000_000

// Epoch is the absolute instant tick 0 represents: midnight UTC, January 1,
// year 1 — the same base epoch DateTime literals in the source language
// use, chosen so DaysBetween/YearOf/etc. built-ins reproduce familiar
// civil-calendar results without a separate calendar library.
var Epoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateTime is an absolute instant, stored as ticks since Epoch.
type DateTime struct {
	Ticks int64
}

func NewDateTimeFromTime(t time.Time) DateTime {
	d := t.Sub(Epoch)
	return DateTime{Ticks: int64(d) / 100}
}

func (d DateTime) Time() time.Time {
	return Epoch.Add(time.Duration(d.Ticks) * 100)
}

func (d DateTime) Kind() Kind     { return KindDateTime }
func (d DateTime) String() string { return d.Time().Format("2006-01-02 15:04:05.000") }
func (d DateTime) Clone() Value   { return d }

// TimeSpanPromotionThresholdDays is a day-count magnitude (about 10,000
// years). No built-in reads it: the catalog has no DateTime() factory, so
// no day count is ever promoted to an absolute DateTime.
const TimeSpanPromotionThresholdDays = 3_650_000 // ~10,000 years

// TimeSpan is a signed duration, stored as ticks.
type TimeSpan struct {
	Ticks int64
}

func NewTimeSpanFromDuration(d time.Duration) TimeSpan {
	return TimeSpan{Ticks: int64(d) / 100}
}

func (t TimeSpan) Duration() time.Duration { return time.Duration(t.Ticks) * 100 }

func (t TimeSpan) Kind() Kind { return KindTimeSpan }
func (t TimeSpan) String() string {
	d := t.Duration()
	neg := d < 0
	if neg {
		d = -d
	}
	days := int64(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hh := int64(d / time.Hour)
	d -= time.Duration(hh) * time.Hour
	mm := int64(d / time.Minute)
	d -= time.Duration(mm) * time.Minute
	ss := d.Seconds()
	sign := ""
	if neg {
		sign = "-"
	}
	out := sign
	if days != 0 {
		out += strconv.FormatInt(days, 10) + "."
	}
	out += pad2(hh) + ":" + pad2(mm) + ":" + pad2f(ss)
	return out
}
func (t TimeSpan) Clone() Value { return t }

func pad2(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func pad2f(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if f < 10 {
		return "0" + s
	}
	return s
}
