package value

import "strings"

// Epsilon is the canonical-comparator tolerance used for Number equality
// (spec.md §3 Invariants, §4.B): "compare(a, b, ε=1e-12)".
const Epsilon = 1e-12

// rank implements the tag ordering of spec.md §4.B: "Undefined > every
// other value (sorts to end); otherwise Number < DateTime < TimeSpan <
// Text < Boolean < Matrix < Tuple < LinkedList < Set < HashSet < Lambda <
// Reference < ClassInstance." Complex is not named in that ordering; it
// is ranked immediately after Number as the nearest numeric tag.
func rank(k Kind) int {
	switch k {
	case KindNumber:
		return 0
	case KindComplex:
		return 1
	case KindDateTime:
		return 2
	case KindTimeSpan:
		return 3
	case KindText:
		return 4
	case KindBoolean:
		return 5
	case KindMatrix:
		return 6
	case KindTuple:
		return 7
	case KindLinkedList:
		return 8
	case KindSet:
		return 9
	case KindHashSet:
		return 10
	case KindLambda:
		return 11
	case KindReference:
		return 12
	case KindClassInstance:
		return 13
	case KindUndefined:
		return 100
	default:
		return 99
	}
}

// Compare is the canonical comparator (spec.md §4.B), used by Set
// ordering, Sort, and equality checks. It returns -1/0/+1.
func Compare(a, b Value) int {
	a = deref(a)
	b = deref(b)

	ak, bk := a.Kind(), b.Kind()
	if ak == KindUndefined && bk == KindUndefined {
		return 0
	}
	if ak == KindUndefined {
		return 1
	}
	if bk == KindUndefined {
		return -1
	}
	if ak != bk {
		ra, rb := rank(ak), rank(bk)
		if ra < rb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case Number:
		return av.D.Compare(b.(Number).D, Epsilon)
	case Complex:
		return compareFloat(magnitude(av), magnitude(b.(Complex)))
	case DateTime:
		return compareInt64(av.Ticks, b.(DateTime).Ticks)
	case TimeSpan:
		return compareInt64(av.Ticks, b.(TimeSpan).Ticks)
	case Text:
		return strings.Compare(av.S, b.(Text).S)
	case Boolean:
		if av.B == b.(Boolean).B {
			return 0
		}
		if !av.B {
			return -1
		}
		return 1
	case *Matrix:
		return compareElementwise(matrixElements(av), matrixElements(b.(*Matrix)))
	case *Tuple:
		return compareElementwise(refElements(av.Elements), refElements(b.(*Tuple).Elements))
	case *LinkedList:
		return compareElementwise(listElements(av), listElements(b.(*LinkedList)))
	default:
		// Set, HashSet, Lambda, Reference, ClassInstance: no further
		// ordering is specified; fall back to string identity so the
		// comparator is still a total (if coarse) order.
		return strings.Compare(a.String(), b.String())
	}
}

func deref(v Value) Value {
	if r, ok := v.(*Reference); ok {
		rv, err := r.Resolve()
		if err != nil {
			return Undef
		}
		return rv
	}
	return v
}

func compareFloat(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func magnitude(c Complex) float64 {
	return c.Re*c.Re + c.Im*c.Im
}

func matrixElements(m *Matrix) []Value {
	var out []Value
	for _, row := range m.Rows {
		for _, r := range row {
			v, _ := r.Resolve()
			out = append(out, v)
		}
	}
	return out
}

func refElements(refs []*Reference) []Value {
	out := make([]Value, len(refs))
	for i, r := range refs {
		out[i], _ = r.Resolve()
	}
	return out
}

func listElements(l *LinkedList) []Value {
	var out []Value
	n := l.Head
	for n != nil {
		out = append(out, n.Cell.Value)
		n = n.Next
	}
	return out
}

func compareElementwise(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a)), int64(len(b)))
}

// Equal is Compare(a, b) == 0: exact for Text/Boolean, epsilon for Number,
// magnitude for Complex (spec.md §4.B).
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// Less reports a < b under the canonical comparator.
func Less(a, b Value) bool { return Compare(a, b) < 0 }
