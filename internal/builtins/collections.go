package builtins

import (
	"github.com/cantus-lang/cantus/internal/lambda"
	"github.com/cantus-lang/cantus/internal/value"
)

func init() {
	register(&Builtin{Name: "Each", Arity: 2, Fn: builtinEach})
	register(&Builtin{Name: "Select", Arity: 2, Fn: builtinSelect})
	register(&Builtin{Name: "Filter", Arity: 2, Fn: builtinFilter})
	register(&Builtin{Name: "Exclude", Arity: 2, Fn: builtinExclude})
	register(&Builtin{Name: "Get", Arity: 2, Fn: builtinGet})
	register(&Builtin{Name: "FilterIndex", Arity: 2, Fn: builtinFilterIndex})
	register(&Builtin{Name: "Every", Arity: 2, Fn: builtinEvery})
	register(&Builtin{Name: "Sort", Arity: 2, Fn: builtinSort})
}

func asLambda(v value.Value) (*lambda.Lambda, bool) {
	l, ok := v.(*lambda.Lambda)
	return l, ok
}

func truthy(v value.Value) bool {
	b, ok := v.(value.Boolean)
	return ok && b.B
}

// orderedElements reads out the "ordered enumeration" spec.md §4.I
// names: a Matrix's cells in row-major order, or a Set/HashSet's keys in
// their stored order. Each and the read-only queries (Filter/Exclude/Get/
// Every/FilterIndex) use this; Select/Sort need the container-specific
// write-back shape spec.md §4.I describes, so they don't.
func orderedElements(v value.Value) ([]value.Value, bool) {
	switch c := v.(type) {
	case *value.Matrix:
		var out []value.Value
		for _, row := range c.Rows {
			for _, r := range row {
				val, _ := r.Resolve()
				out = append(out, val)
			}
		}
		return out, true
	case *value.Set:
		out := make([]value.Value, 0, c.Len())
		for _, e := range c.Entries() {
			k, _ := e.Key.Resolve()
			out = append(out, k)
		}
		return out, true
	case *value.HashSet:
		out := make([]value.Value, 0, c.Len())
		for _, e := range c.Entries() {
			k, _ := e.Key.Resolve()
			out = append(out, k)
		}
		return out, true
	default:
		return nil, false
	}
}

// Each(container, fn): for every element of a Matrix or ordered
// enumeration of a Set/HashSet, invoke fn with that element, ignore the
// result, and return the input container unchanged (spec.md §4.I Each).
func builtinEach(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	elems, ok := orderedElements(arg(args, 0))
	l, lok := asLambda(arg(args, 1))
	if !ok || !lok {
		return value.Undef, nil
	}
	for _, e := range elems {
		if err := checkCancel(); err != nil {
			return value.Undef, err
		}
		if _, err := invokeLambda(l, e); err != nil {
			return value.Undef, err
		}
	}
	return arg(args, 0), nil
}

// Select(container, fn) mutates a Matrix in place: each cell is replaced
// by fn's result (aliasing the cell if fn returns a Reference, wrapping
// a plain value into a fresh one otherwise). For a Set/HashSet it instead
// produces a new Set with every key run through fn and every value
// carried over unchanged (spec.md §4.I Select).
func builtinSelect(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	l, lok := asLambda(arg(args, 1))
	if !lok {
		return value.Undef, nil
	}
	switch c := arg(args, 0).(type) {
	case *value.Matrix:
		for i, row := range c.Rows {
			for j, r := range row {
				if err := checkCancel(); err != nil {
					return value.Undef, err
				}
				cur, _ := r.Resolve()
				res, err := invokeLambda(l, cur)
				if err != nil {
					return value.Undef, err
				}
				if ref, ok := res.(*value.Reference); ok {
					c.Rows[i][j] = ref
				} else {
					c.Rows[i][j] = c.Arena.Alloc(res)
				}
			}
		}
		return c, nil
	case *value.Set:
		return selectSet(c, l)
	case *value.HashSet:
		out, err := selectSet(&c.Set, l)
		if err != nil {
			return value.Undef, err
		}
		hs := value.NewHashSet()
		for _, e := range out.(*value.Set).Entries() {
			k, _ := e.Key.Resolve()
			var v value.Value
			if e.Value != nil {
				v, _ = e.Value.Resolve()
			}
			hs.InsertKeyed(k, v)
		}
		return hs, nil
	default:
		return value.Undef, nil
	}
}

func selectSet(s *value.Set, l *lambda.Lambda) (value.Value, error) {
	out := value.NewSet()
	for _, e := range s.Entries() {
		if err := checkCancel(); err != nil {
			return nil, err
		}
		k, _ := e.Key.Resolve()
		res, err := invokeLambda(l, k)
		if err != nil {
			return nil, err
		}
		if ref, ok := res.(*value.Reference); ok {
			res, _ = ref.Resolve()
		}
		var v value.Value
		if e.Value != nil {
			v, _ = e.Value.Resolve()
		}
		out.InsertKeyed(res, v)
	}
	return out, nil
}

// Filter(container, fn) returns a new LinkedList of the elements for
// which fn evaluates truthy, in original order (spec.md §4.I Filter).
func builtinFilter(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	return filterBy(args, true)
}

// Exclude(container, fn) is Filter's complement.
func builtinExclude(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	return filterBy(args, false)
}

func filterBy(args []value.Value, keepTruthy bool) (value.Value, error) {
	elems, ok := orderedElements(arg(args, 0))
	l, lok := asLambda(arg(args, 1))
	if !ok || !lok {
		return value.Undef, nil
	}
	var kept []value.Value
	for _, e := range elems {
		if err := checkCancel(); err != nil {
			return value.Undef, err
		}
		res, err := invokeLambda(l, e)
		if err != nil {
			return value.Undef, err
		}
		if truthy(res) == keepTruthy {
			kept = append(kept, e)
		}
	}
	return value.NewLinkedList(kept), nil
}

// Get(container, fn) returns the first element for which fn evaluates
// truthy, or Undefined if none matches (spec.md §4.I Get).
func builtinGet(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	elems, ok := orderedElements(arg(args, 0))
	l, lok := asLambda(arg(args, 1))
	if !ok || !lok {
		return value.Undef, nil
	}
	for _, e := range elems {
		if err := checkCancel(); err != nil {
			return value.Undef, err
		}
		res, err := invokeLambda(l, e)
		if err != nil {
			return value.Undef, err
		}
		if truthy(res) {
			return e, nil
		}
	}
	return value.Undef, nil
}

// FilterIndex(container, fn) returns a LinkedList of the positions
// (row-major for a Matrix, enumeration order for a Set/HashSet) where fn
// evaluates truthy.
func builtinFilterIndex(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	elems, ok := orderedElements(arg(args, 0))
	l, lok := asLambda(arg(args, 1))
	if !ok || !lok {
		return value.Undef, nil
	}
	var kept []value.Value
	for i, e := range elems {
		if err := checkCancel(); err != nil {
			return value.Undef, err
		}
		res, err := invokeLambda(l, e)
		if err != nil {
			return value.Undef, err
		}
		if truthy(res) {
			kept = append(kept, value.NewNumberInt(int64(i)))
		}
	}
	return value.NewLinkedList(kept), nil
}

// Every(container, fn) reports whether fn is truthy for every element
// (vacuously true for an empty container).
func builtinEvery(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	elems, ok := orderedElements(arg(args, 0))
	l, lok := asLambda(arg(args, 1))
	if !ok || !lok {
		return value.Undef, nil
	}
	for _, e := range elems {
		if err := checkCancel(); err != nil {
			return value.Undef, err
		}
		res, err := invokeLambda(l, e)
		if err != nil {
			return value.Undef, err
		}
		if !truthy(res) {
			return value.Boolean{B: false}, nil
		}
	}
	return value.Boolean{B: true}, nil
}

// Sort(container, comparer?) quicksorts in place: pivot is always the
// middle element, and the ordering comes from the canonical comparator
// unless a Lambda comparer is supplied, in which case its numeric-sign
// result orders each pair (spec.md §4.I Sort). comparer is Undefined
// when the caller omits it.
func builtinSort(args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	comparer, hasComparer := asLambda(arg(args, 1))

	less := func(a, b value.Value) bool { return value.Less(a, b) }
	if hasComparer {
		less = func(a, b value.Value) bool {
			res, err := invokeLambda(comparer, a, b)
			if err != nil {
				return false
			}
			n, ok := res.(value.Number)
			return ok && n.D.Sign() < 0
		}
	}

	switch c := arg(args, 0).(type) {
	case *value.Matrix:
		flat := make([]*value.Reference, 0, c.Width*c.Height)
		for _, row := range c.Rows {
			flat = append(flat, row...)
		}
		if err := quicksortRefs(flat, less); err != nil {
			return value.Undef, err
		}
		idx := 0
		for i, row := range c.Rows {
			for j := range row {
				c.Rows[i][j] = flat[idx]
				idx++
			}
		}
		return c, nil
	case *value.Set:
		c.Sort(less)
		return c, nil
	case *value.HashSet:
		c.Sort(less)
		return c, nil
	default:
		return value.Undef, nil
	}
}

// quicksortRefs sorts refs in place by the resolved value each points to,
// always choosing the middle element as pivot (spec.md §4.I Sort), and
// polls cancellation once per recursive call (spec.md §5: "quicksort
// recursion" is a named cancellation-polling point).
func quicksortRefs(refs []*value.Reference, less func(a, b value.Value) bool) error {
	if err := checkCancel(); err != nil {
		return err
	}
	if len(refs) < 2 {
		return nil
	}
	pivotVal, _ := refs[len(refs)/2].Resolve()
	lo, hi := 0, len(refs)-1
	for lo <= hi {
		lv, _ := refs[lo].Resolve()
		for less(lv, pivotVal) {
			lo++
			lv, _ = refs[lo].Resolve()
		}
		hv, _ := refs[hi].Resolve()
		for less(pivotVal, hv) {
			hi--
			hv, _ = refs[hi].Resolve()
		}
		if lo <= hi {
			refs[lo], refs[hi] = refs[hi], refs[lo]
			lo++
			hi--
		}
	}
	if err := quicksortRefs(refs[:hi+1], less); err != nil {
		return err
	}
	return quicksortRefs(refs[lo:], less)
}
