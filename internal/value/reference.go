package value

import "errors"

// ErrNotLinkedList is returned by node_* Reference operations when the
// Reference is not a LinkedList cursor (spec.md §4.C).
var ErrNotLinkedList = errors.New("NotLinkedList")

// ErrCircularReference is returned when Resolve detects a reference that
// points back to itself through a chain, rather than recursing until the
// stack overflows (spec.md §3 Reference: "deep recursion through
// self-references must be detected and reported, not blown the stack").
var ErrCircularReference = errors.New("circular reference")

// Cell is one slot in an Arena: the "container-owned Value cell" spec.md
// §3 describes a Reference as able to point to directly.
//
// Re-architecture note (spec.md §9): the teacher relies on the host GC to
// keep a Reference and the container cell it points into alive together.
// Cantus instead uses this arena-and-index model explicitly: a Reference
// carries a Cell pointer plus the generation it was allocated with, so a
// stale Reference into a cell that has since been reused/freed resolves to
// Undefined instead of silently reading the wrong value.
type Cell struct {
	Value      Value
	generation uint64
	freed      bool
}

// Arena owns a set of Cells. Containers (Matrix, Tuple, LinkedList, Set,
// HashSet) allocate their element storage from an Arena so that Reference
// aliasing (multiple References into the same cell) works uniformly.
type Arena struct {
	cells   []*Cell
	nextGen uint64
}

// NewArena creates an empty Arena.
func NewArena() *Arena { return &Arena{} }

// Alloc creates a new Cell holding v and returns a Reference to it.
func (a *Arena) Alloc(v Value) *Reference {
	a.nextGen++
	c := &Cell{Value: v, generation: a.nextGen}
	a.cells = append(a.cells, c)
	return &Reference{kind: refCell, cell: c, generation: c.generation}
}

// Free marks a cell as freed; References into it resolve to Undefined.
func (a *Arena) Free(c *Cell) { c.freed = true }

type refKind int

const (
	refCell refKind = iota
	refName
	refListNode
)

// ListNode is a single node of a doubly linked LinkedList value.
type ListNode struct {
	Cell *Cell
	Prev *ListNode
	Next *ListNode
	list *LinkedList // weak back-link, per spec.md §3 Reference
}

// Reference is the indirection type of spec.md §3/§4.C. Exactly one of its
// three backing kinds is active: a direct Cell pointer, a name resolved
// against a scope snapshot (via resolver/setter closures supplied by
// internal/scope — keeping this package free of a scope import cycle), or
// a LinkedList cursor.
type Reference struct {
	kind       refKind
	cell       *Cell
	generation uint64

	name     string
	resolver func(string) (Value, bool)
	setter   func(string, Value) error

	node *ListNode
}

// NewNameReference builds a Reference over a scope variable. resolver/setter
// are provided by internal/scope's Scope.DeclareVariable/ResolveVariable.
func NewNameReference(name string, resolver func(string) (Value, bool), setter func(string, Value) error) *Reference {
	return &Reference{kind: refName, name: name, resolver: resolver, setter: setter}
}

// NewNodeReference builds a cursor Reference into a LinkedList node.
func NewNodeReference(n *ListNode) *Reference {
	return &Reference{kind: refListNode, node: n, cell: n.Cell, generation: n.Cell.generation}
}

// Resolve walks through chained references (spec.md §4.C), returning
// Undefined for an empty slot (Invariant 2, spec.md §3) and
// ErrCircularReference if the chain loops back on a reference already
// visited, rather than recursing until the stack overflows.
func (r *Reference) Resolve() (Value, error) {
	return r.resolve(map[*Reference]bool{})
}

func (r *Reference) resolve(seen map[*Reference]bool) (Value, error) {
	if seen[r] {
		return Undef, ErrCircularReference
	}
	seen[r] = true

	var v Value
	switch r.kind {
	case refName:
		val, ok := r.resolver(r.name)
		if !ok {
			return Undef, nil
		}
		v = val
	case refCell, refListNode:
		if r.cell == nil || r.cell.freed || r.cell.generation != r.generation {
			return Undef, nil
		}
		v = r.cell.Value
	default:
		return Undef, nil
	}
	if v == nil {
		return Undef, nil
	}
	if inner, ok := v.(*Reference); ok {
		return inner.resolve(seen)
	}
	return v, nil
}

// Set writes v through the reference.
func (r *Reference) Set(v Value) error {
	switch r.kind {
	case refName:
		return r.setter(r.name, v)
	case refCell, refListNode:
		if r.cell == nil || r.cell.freed || r.cell.generation != r.generation {
			return nil // a stale reference write is silently dropped
		}
		r.cell.Value = v
		return nil
	default:
		return nil
	}
}

func (r *Reference) Kind() Kind     { return KindReference }
func (r *Reference) String() string {
	v, err := r.Resolve()
	if err != nil {
		return "Undefined"
	}
	return v.String()
}
func (r *Reference) Clone() Value { return r } // References alias; cloning a container deep-copies cells, not the Reference wrapper itself

// --- LinkedList cursor operations (spec.md §4.C) ---

func (r *Reference) NodeNext() (*Reference, error) {
	if r.kind != refListNode {
		return nil, ErrNotLinkedList
	}
	if r.node.Next == nil {
		return nil, nil
	}
	return NewNodeReference(r.node.Next), nil
}

func (r *Reference) NodePrev() (*Reference, error) {
	if r.kind != refListNode {
		return nil, ErrNotLinkedList
	}
	if r.node.Prev == nil {
		return nil, nil
	}
	return NewNodeReference(r.node.Prev), nil
}

func (r *Reference) NodeInsertBefore(v Value) error {
	if r.kind != refListNode {
		return ErrNotLinkedList
	}
	r.node.list.insertBefore(r.node, v)
	return nil
}

func (r *Reference) NodeInsertAfter(v Value) error {
	if r.kind != refListNode {
		return ErrNotLinkedList
	}
	r.node.list.insertAfter(r.node, v)
	return nil
}

func (r *Reference) NodeRemove() error {
	if r.kind != refListNode {
		return ErrNotLinkedList
	}
	r.node.list.remove(r.node)
	return nil
}
