package builtins

import (
	yaml "github.com/goccy/go-yaml"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "ParseYAML", Arity: 1, Fn: builtinParseYAML})
	register(&Builtin{Name: "ToYAML", Arity: 1, Fn: builtinToYAML})
}

// ParseYAML(doc) decodes a YAML document into a Value (spec.md §4.F.1).
func builtinParseYAML(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	doc, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	var native any
	if err := yaml.Unmarshal([]byte(doc.S), &native); err != nil {
		return value.Undef, nil
	}
	return nativeToValue(native), nil
}

// ToYAML(value) renders a scalar Value as a YAML document.
func builtinToYAML(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	out, err := yaml.Marshal(valueToNative(arg(args, 0)))
	if err != nil {
		return value.Undef, nil
	}
	return value.Text{S: string(out)}, nil
}

// nativeToValue converts the generic Go value a YAML/JSON decode step
// produces back into a Cantus Value.
func nativeToValue(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Undef
	case bool:
		return value.Boolean{B: t}
	case string:
		return value.Text{S: t}
	case float64:
		return value.NewNumber(bigdecimal.NewFromFloat64(t))
	case int:
		return value.NewNumberInt(int64(t))
	case uint64:
		return value.NewNumberInt(int64(t))
	case []any:
		elems := make([]value.Value, len(t))
		for i, e := range t {
			elems[i] = nativeToValue(e)
		}
		return value.NewLinkedList(elems)
	default:
		return value.Undef
	}
}
