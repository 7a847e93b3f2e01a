package builtins

import (
	"time"

	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "Now", Arity: 0, Fn: builtinNow})
	register(&Builtin{Name: "DaysBetween", Arity: 2, Fn: builtinDaysBetween})
	register(&Builtin{Name: "AddDays", Arity: 2, Fn: builtinAddDays})
	register(&Builtin{Name: "YearOf", Arity: 1, Fn: builtinYearOf})
	register(&Builtin{Name: "FormatDateTime", Arity: 2, Fn: builtinFormatDateTime})
}

// Now() returns the current instant as a DateTime.
func builtinNow(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	return value.NewDateTimeFromTime(time.Now().UTC()), nil
}

// DaysBetween(a, b) is the whole number of days between two DateTimes.
func builtinDaysBetween(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	a, ok1 := arg(args, 0).(value.DateTime)
	b, ok2 := arg(args, 1).(value.DateTime)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	days := (b.Ticks - a.Ticks) / (value.TicksPerSecond * 86400)
	return value.NewNumberInt(days), nil
}

// AddDays(t, n) adds a (possibly fractional) day count to a DateTime and
// returns the shifted DateTime; no promotion threshold applies here.
func builtinAddDays(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	dt, ok1 := arg(args, 0).(value.DateTime)
	days, ok2 := asFloat(arg(args, 1))
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	delta := time.Duration(days * float64(24*time.Hour))
	return value.NewDateTimeFromTime(dt.Time().Add(delta)), nil
}

// YearOf(t) extracts the civil-calendar year.
func builtinYearOf(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	dt, ok := arg(args, 0).(value.DateTime)
	if !ok {
		return value.Undef, nil
	}
	return value.NewNumberInt(int64(dt.Time().Year())), nil
}

// FormatDateTime(t, layout) renders t using a Go reference-time layout
// string.
func builtinFormatDateTime(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	dt, ok1 := arg(args, 0).(value.DateTime)
	layout, ok2 := arg(args, 1).(value.Text)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	return value.Text{S: dt.Time().Format(layout.S)}, nil
}
