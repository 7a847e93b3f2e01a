package builtins

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "JSONGet", Arity: 2, Fn: builtinJSONGet})
	register(&Builtin{Name: "JSONSet", Arity: 3, Fn: builtinJSONSet})
	register(&Builtin{Name: "ParseJSON", Arity: 1, Fn: builtinParseJSON})
	register(&Builtin{Name: "ToJSON", Arity: 1, Fn: builtinToJSON})
}

// ParseJSON(json) is JSONGet with an empty (root) path — a convenience
// built-in for the common "read the whole document" case.
func builtinParseJSON(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	doc, ok := arg(args, 0).(value.Text)
	if !ok {
		return value.Undef, nil
	}
	result := gjson.Parse(doc.S)
	if !result.Exists() {
		return value.Undef, nil
	}
	return gjsonToValue(result), nil
}

// JSONGet(json, path) reads a value out of a JSON document by gjson path
// syntax without a full unmarshal-to-struct round trip (spec.md §4.F.1).
func builtinJSONGet(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	doc, ok1 := arg(args, 0).(value.Text)
	path, ok2 := arg(args, 1).(value.Text)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	result := gjson.Get(doc.S, path.S)
	if !result.Exists() {
		return value.Undef, nil
	}
	return gjsonToValue(result), nil
}

func gjsonToValue(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.True, gjson.False:
		return value.Boolean{B: r.Bool()}
	case gjson.Number:
		return value.NewNumber(bigdecimal.NewFromFloat64(r.Float()))
	case gjson.String:
		return value.Text{S: r.String()}
	case gjson.Null:
		return value.Undef
	default:
		return value.Text{S: r.Raw}
	}
}

// ToJSON(value) renders a Number, Text, Boolean or Undefined Value as the
// matching JSON scalar document. Any other Value, containers included, is
// emitted as a JSON string holding its String() form, not as an array.
func builtinToJSON(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	out, err := sjson.Set("", "-1", valueToNative(arg(args, 0)))
	if err != nil {
		return value.Undef, nil
	}
	// sjson always wraps a "-1" append under an array; unwrap the single
	// element back out to hand the scalar document to the caller.
	inner := gjson.Get(out, "0").Raw
	if inner == "" {
		return value.Text{S: "null"}, nil
	}
	return value.Text{S: inner}, nil
}

// JSONSet(json, path, value) writes value into a JSON document at path,
// returning the updated document text.
func builtinJSONSet(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	doc, ok1 := arg(args, 0).(value.Text)
	path, ok2 := arg(args, 1).(value.Text)
	if !ok1 || !ok2 {
		return value.Undef, nil
	}
	out, err := sjson.Set(doc.S, path.S, valueToNative(arg(args, 2)))
	if err != nil {
		return value.Undef, nil
	}
	return value.Text{S: out}, nil
}

// valueToNative converts a Cantus Value to the nearest Go native type
// sjson.Set accepts, for the built-ins that hand a Value off to a
// third-party JSON/YAML encoder.
func valueToNative(v value.Value) any {
	switch t := v.(type) {
	case value.Number:
		return t.D.Float64()
	case value.Text:
		return t.S
	case value.Boolean:
		return t.B
	case value.UndefinedValue:
		return nil
	default:
		return t.String()
	}
}
