// Package value implements components B and C of the Cantus value model:
// the tagged Value union (spec.md §3) and the Reference indirection type.
//
// The teacher represents each DWScript runtime type as its own struct
// implementing a narrow Value interface (internal/interp/value.go:
// IntegerValue, FloatValue, StringValue, BooleanValue, NilValue, ...).
// Cantus follows the same shape, generalized to the spec's closed tag set,
// and keeps the interface narrow enough (Kind/String/Clone) that every
// built-in can do an exhaustive type switch and fall back to Undefined for
// an unhandled case, per the "Dynamic dispatch on Value" re-architecture
// note in spec.md §9.
package value

import (
	"fmt"

	"github.com/cantus-lang/cantus/internal/bigdecimal"
)

// Kind identifies which of the closed set of Value tags a Value carries.
type Kind int

const (
	KindUndefined Kind = iota
	KindNumber
	KindComplex
	KindBoolean
	KindText
	KindDateTime
	KindTimeSpan
	KindMatrix
	KindTuple
	KindLinkedList
	KindSet
	KindHashSet
	KindLambda
	KindReference
	KindClassInstance
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "Undefined"
	case KindNumber:
		return "Number"
	case KindComplex:
		return "Complex"
	case KindBoolean:
		return "Boolean"
	case KindText:
		return "Text"
	case KindDateTime:
		return "DateTime"
	case KindTimeSpan:
		return "TimeSpan"
	case KindMatrix:
		return "Matrix"
	case KindTuple:
		return "Tuple"
	case KindLinkedList:
		return "LinkedList"
	case KindSet:
		return "Set"
	case KindHashSet:
		return "HashSet"
	case KindLambda:
		return "Lambda"
	case KindReference:
		return "Reference"
	case KindClassInstance:
		return "ClassInstance"
	default:
		return "Unknown"
	}
}

// Value is the interface every Cantus runtime value implements (spec.md §3).
// Lambda (internal/lambda) and ClassInstance (internal/class) implement
// this interface in their own packages to avoid an import cycle with
// scope/eval; every other tag is defined here.
type Value interface {
	Kind() Kind
	String() string
	Clone() Value
}

// Undefined is the singleton Undefined value: spec.md §3 says it "absorbs
// NaN, null, division-by-zero, missing map lookup".
type UndefinedValue struct{}

var Undef = UndefinedValue{}

func (UndefinedValue) Kind() Kind      { return KindUndefined }
func (UndefinedValue) String() string  { return "Undefined" }
func (u UndefinedValue) Clone() Value  { return u }

// Number wraps a BigDecimal (component A).
type Number struct {
	D bigdecimal.Decimal
}

func NewNumber(d bigdecimal.Decimal) Value {
	if d.IsUndefined() {
		return Undef
	}
	return Number{D: d}
}
func NewNumberInt(n int64) Value { return Number{D: bigdecimal.NewFromInt64(n)} }

func (n Number) Kind() Kind     { return KindNumber }
func (n Number) String() string { return n.D.String() }
func (n Number) Clone() Value   { return n }

// Complex carries a real/imaginary float64 pair, used for roots of
// negatives and hyperbolic/trig on imaginaries (spec.md §3).
type Complex struct {
	Re, Im float64
}

func (c Complex) Kind() Kind { return KindComplex }
func (c Complex) String() string {
	if c.Im == 0 {
		return fmt.Sprintf("%g", c.Re)
	}
	sign := "+"
	im := c.Im
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%g %s %gi", c.Re, sign, im)
}
func (c Complex) Clone() Value { return c }

// Boolean is a Go bool.
type Boolean struct{ B bool }

func (b Boolean) Kind() Kind { return KindBoolean }
func (b Boolean) String() string {
	if b.B {
		return "true"
	}
	return "false"
}
func (b Boolean) Clone() Value { return b }

// Text is a UTF-8 string. Text never auto-numerifies (spec.md §4.B);
// callers must use an explicit ParseNumber built-in.
type Text struct{ S string }

func (t Text) Kind() Kind      { return KindText }
func (t Text) String() string  { return t.S }
func (t Text) Clone() Value    { return t }
