package scope

// orderedMap is a map that remembers insertion order, used by Registry's
// three namespaced maps (spec.md §4.D: "insertion-ordered maps keyed by
// full name"). Grounded on the shape of the teacher's
// internal/semantic/symbol_table.go SymbolTable (a plain Go map plus an
// outer-scope pointer for the parent chain), generalized with an explicit
// key-order slice since the teacher never needed insertion order — a
// semantic analyzer only needs membership, while `_FnList` (spec.md §4.D)
// must enumerate names in the order they were declared.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{values: make(map[string]V)}
}

func (m *orderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[V]) Set(key string, v V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap[V]) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// DeleteByPrefix removes every key equal to prefix or nested under
// "prefix.", used by Scope.Clear / `_AllClear`.
func (m *orderedMap[V]) DeleteByPrefix(prefix string) {
	var kept []string
	for _, k := range m.keys {
		if k == prefix || hasDottedPrefix(k, prefix) {
			delete(m.values, k)
			continue
		}
		kept = append(kept, k)
	}
	m.keys = kept
}

func hasDottedPrefix(name, prefix string) bool {
	return len(name) > len(prefix) && name[:len(prefix)] == prefix && name[len(prefix)] == '.'
}

// Keys returns the names in insertion order.
func (m *orderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// KeysWithPrefix returns the names starting with prefix, in insertion order.
func (m *orderedMap[V]) KeysWithPrefix(prefix string) []string {
	var out []string
	for _, k := range m.keys {
		if k == prefix || hasDottedPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}
