package builtins

import (
	"github.com/dustin/go-humanize"

	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "HumanizeBytes", Arity: 1, Fn: builtinHumanizeBytes})
	register(&Builtin{Name: "HumanizeTime", Arity: 1, Fn: builtinHumanizeTime})
}

// HumanizeBytes(n) renders a byte count as "1.2 MB"-style text (spec.md
// §4.F.1 domain stack wiring — an ambient formatting group alongside
// ByteSizeToStr/FormatDateTime in the distilled spec's naming style).
func builtinHumanizeBytes(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	n, ok := asFloat(arg(args, 0))
	if !ok || n < 0 {
		return value.Undef, nil
	}
	return value.Text{S: humanize.Bytes(uint64(n))}, nil
}

// HumanizeTime(t) renders a DateTime relative to now, e.g. "3 hours ago".
func builtinHumanizeTime(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	dt, ok := arg(args, 0).(value.DateTime)
	if !ok {
		return value.Undef, nil
	}
	return value.Text{S: humanize.Time(dt.Time())}, nil
}
