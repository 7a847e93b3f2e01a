package value

import "strings"

// Matrix is a row-major rectangular (or, mid-construction, ragged)
// sequence of References (spec.md §3/§4.E). The arithmetic built-ins live
// in internal/matrix; this type only owns storage and the invariants that
// every consumer needs (dimensions, row access).
type Matrix struct {
	Rows   [][]*Reference
	Arena  *Arena
	Height int
	Width  int
}

// NewMatrix builds a Matrix from literal rows, allocating one Arena cell
// per element.
func NewMatrix(rows [][]Value) *Matrix {
	a := NewArena()
	m := &Matrix{Arena: a, Height: len(rows)}
	for _, row := range rows {
		if len(row) > m.Width {
			m.Width = len(row)
		}
	}
	for _, row := range rows {
		refRow := make([]*Reference, len(row))
		for i, v := range row {
			refRow[i] = a.Alloc(v)
		}
		m.Rows = append(m.Rows, refRow)
	}
	return m
}

func (m *Matrix) Kind() Kind { return KindMatrix }
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, row := range m.Rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for j, r := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			v, _ := r.Resolve()
			sb.WriteString(v.String())
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}
func (m *Matrix) Clone() Value {
	rows := make([][]Value, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = make([]Value, len(row))
		for j, r := range row {
			v, _ := r.Resolve()
			rows[i][j] = v.Clone()
		}
	}
	return NewMatrix(rows)
}

// Normalize materializes a rectangle padded with the zero-element of the
// majority cell type (spec.md §4.E): Number zero, or Undefined if the
// matrix is empty or non-numeric.
func (m *Matrix) Normalize() {
	width := 0
	for _, row := range m.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	pad := Value(Undef)
	if m.isNumericMajority() {
		pad = NewNumberInt(0)
	}
	for i, row := range m.Rows {
		for len(row) < width {
			row = append(row, m.Arena.Alloc(pad))
		}
		m.Rows[i] = row
	}
	m.Width = width
	m.Height = len(m.Rows)
}

func (m *Matrix) isNumericMajority() bool {
	total, numeric := 0, 0
	for _, row := range m.Rows {
		for _, r := range row {
			v, _ := r.Resolve()
			total++
			if v.Kind() == KindNumber {
				numeric++
			}
		}
	}
	return total > 0 && numeric*2 >= total
}

// At returns the resolved value at (row, col), or Undefined if out of range.
func (m *Matrix) At(row, col int) Value {
	if row < 0 || row >= len(m.Rows) || col < 0 || col >= len(m.Rows[row]) {
		return Undef
	}
	v, _ := m.Rows[row][col].Resolve()
	return v
}

// Tuple is a fixed-length, immutable sequence of References (spec.md §3).
type Tuple struct {
	Elements []*Reference
	Arena    *Arena
}

func NewTuple(vals []Value) *Tuple {
	a := NewArena()
	t := &Tuple{Arena: a}
	for _, v := range vals {
		t.Elements = append(t.Elements, a.Alloc(v))
	}
	return t
}

func (t *Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, r := range t.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := r.Resolve()
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
func (t *Tuple) Clone() Value {
	vals := make([]Value, len(t.Elements))
	for i, r := range t.Elements {
		v, _ := r.Resolve()
		vals[i] = v.Clone()
	}
	return NewTuple(vals)
}

// LinkedList is a doubly linked list of References supporting cursor
// references (spec.md §3).
type LinkedList struct {
	Arena      *Arena
	Head, Tail *ListNode
	length     int
}

func NewLinkedList(vals []Value) *LinkedList {
	l := &LinkedList{Arena: NewArena()}
	for _, v := range vals {
		l.PushBack(v)
	}
	return l
}

func (l *LinkedList) Kind() Kind { return KindLinkedList }
func (l *LinkedList) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	n := l.Head
	first := true
	for n != nil {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(n.Cell.Value.String())
		n = n.Next
	}
	sb.WriteByte(']')
	return sb.String()
}
func (l *LinkedList) Clone() Value {
	out := &LinkedList{Arena: NewArena()}
	n := l.Head
	for n != nil {
		out.PushBack(n.Cell.Value.Clone())
		n = n.Next
	}
	return out
}

func (l *LinkedList) Len() int { return l.length }

func (l *LinkedList) PushBack(v Value) *Reference {
	c := &Cell{Value: v}
	node := &ListNode{Cell: c, list: l}
	if l.Tail == nil {
		l.Head, l.Tail = node, node
	} else {
		node.Prev = l.Tail
		l.Tail.Next = node
		l.Tail = node
	}
	l.length++
	return NewNodeReference(node)
}

func (l *LinkedList) insertBefore(n *ListNode, v Value) {
	c := &Cell{Value: v}
	nn := &ListNode{Cell: c, list: l, Prev: n.Prev, Next: n}
	if n.Prev != nil {
		n.Prev.Next = nn
	} else {
		l.Head = nn
	}
	n.Prev = nn
	l.length++
}

func (l *LinkedList) insertAfter(n *ListNode, v Value) {
	c := &Cell{Value: v}
	nn := &ListNode{Cell: c, list: l, Prev: n, Next: n.Next}
	if n.Next != nil {
		n.Next.Prev = nn
	} else {
		l.Tail = nn
	}
	n.Next = nn
	l.length++
}

func (l *LinkedList) remove(n *ListNode) {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		l.Head = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		l.Tail = n.Prev
	}
	l.length--
}

// setEntry is one key/value association of a Set or HashSet.
type setEntry struct {
	Key   *Reference
	Value *Reference // nil when the value is absent (spec.md §3: Set row)
}

// Set is an ordered map Reference -> Reference (value may be absent),
// ordered by the canonical comparator (spec.md §3).
type Set struct {
	Arena   *Arena
	entries []setEntry
}

func NewSet() *Set { return &Set{Arena: NewArena()} }

func (s *Set) Kind() Kind { return KindSet }
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range s.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		k, _ := e.Key.Resolve()
		sb.WriteString(k.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
func (s *Set) Clone() Value {
	out := NewSet()
	for _, e := range s.entries {
		k, _ := e.Key.Resolve()
		var v Value
		if e.Value != nil {
			v, _ = e.Value.Resolve()
		}
		out.InsertKeyed(k.Clone(), v)
	}
	return out
}

// Entries returns the ordered key/value pairs (value is nil when absent).
func (s *Set) Entries() []setEntry { return s.entries }

// Len returns the number of keys.
func (s *Set) Len() int { return len(s.entries) }

// InsertKeyed inserts key with an associated value (nil for "value absent"),
// replacing any prior association for an equal key (spec.md Invariant 3).
// Keys are matched with valuesRawEqual and new keys are appended; ordering
// by the canonical comparator is left to Sort.
func (s *Set) InsertKeyed(key Value, val Value) {
	for i, e := range s.entries {
		k, _ := e.Key.Resolve()
		if valuesRawEqual(k, key) {
			if val == nil {
				s.entries[i].Value = nil
			} else {
				s.entries[i].Value = s.Arena.Alloc(val)
			}
			return
		}
	}
	entry := setEntry{Key: s.Arena.Alloc(key)}
	if val != nil {
		entry.Value = s.Arena.Alloc(val)
	}
	s.entries = append(s.entries, entry)
}

// Sort reorders entries in place using less, the canonical comparator.
func (s *Set) Sort(less func(a, b Value) bool) {
	for i := 1; i < len(s.entries); i++ {
		j := i
		for j > 0 {
			a, _ := s.entries[j-1].Key.Resolve()
			b, _ := s.entries[j].Key.Resolve()
			if !less(b, a) {
				break
			}
			s.entries[j-1], s.entries[j] = s.entries[j], s.entries[j-1]
			j--
		}
	}
}

// Remove deletes the first entry whose key is rawly equal to key.
func (s *Set) Remove(key Value) bool {
	for i, e := range s.entries {
		k, _ := e.Key.Resolve()
		if valuesRawEqual(k, key) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// HashSet is an unordered map Reference -> Reference (spec.md §3). Cantus
// keeps insertion order internally (a Go map can't be iterated
// deterministically) but never promises an order to scripts, matching the
// spec's "unordered" label.
type HashSet struct {
	Set // same storage shape; distinguished only by Kind and iteration contract
}

func NewHashSet() *HashSet { return &HashSet{Set: Set{Arena: NewArena()}} }

func (h *HashSet) Kind() Kind    { return KindHashSet }
func (h *HashSet) Clone() Value {
	out := NewHashSet()
	for _, e := range h.entries {
		k, _ := e.Key.Resolve()
		var v Value
		if e.Value != nil {
			v, _ = e.Value.Resolve()
		}
		out.InsertKeyed(k.Clone(), v)
	}
	return out
}

// valuesRawEqual is a conservative structural equality used only for Set
// key de-duplication on primitive tags; the full canonical-comparator
// equality is Equal in compare.go.
func valuesRawEqual(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Number:
		bv := b.(Number)
		return av.D.Compare(bv.D, 1e-12) == 0
	case Text:
		return av.S == b.(Text).S
	case Boolean:
		return av.B == b.(Boolean).B
	case DateTime:
		return av.Ticks == b.(DateTime).Ticks
	case TimeSpan:
		return av.Ticks == b.(TimeSpan).Ticks
	default:
		return a == b
	}
}
