package value

import "reflect"

// An OrderedMap preserves the encounter order of its keys, since the wire
// format's MAP instruction is an ordered sequence of key/value pairs, not
// a set. The zero value is an empty map ready to use.
//
// Plankton map keys are not restricted to atoms: a key may itself be a
// composite (array, map, seed, struct), and Go's native map type can only
// index by comparable keys. index therefore only ever holds the keys that
// are safe to use as a Go map key; keys of non-comparable type fall back
// to a linear scan over keys, which every lookup tries first via index
// only when the key's own type is comparable.
type OrderedMap struct {
	keys   []any
	values []any
	index  map[any]int
}

// NewOrderedMap returns an empty OrderedMap with room for at least n pairs.
func NewOrderedMap(n int) *OrderedMap {
	return &OrderedMap{
		keys:   make([]any, 0, n),
		values: make([]any, 0, n),
		index:  make(map[any]int, n),
	}
}

func isComparable(key any) bool {
	if key == nil {
		return true
	}
	return reflect.TypeOf(key).Comparable()
}

func (m *OrderedMap) find(key any) (int, bool) {
	if isComparable(key) {
		i, ok := m.index[key]
		return i, ok
	}
	for i, k := range m.keys {
		if isComparable(k) {
			continue
		}
		if reflect.DeepEqual(k, key) {
			return i, true
		}
	}
	return 0, false
}

// Set inserts or updates the value for key, preserving key's original
// position if it was already present.
func (m *OrderedMap) Set(key, value any) {
	if m.index == nil {
		m.index = make(map[any]int)
	}
	if i, ok := m.find(key); ok {
		m.values[i] = value
		return
	}
	i := len(m.keys)
	if isComparable(key) {
		m.index[key] = i
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Get returns the value stored for key, if any.
func (m *OrderedMap) Get(key any) (any, bool) {
	i, ok := m.find(key)
	if !ok {
		return nil, false
	}
	return m.values[i], true
}

// Len returns the number of pairs in the map.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Range calls f for each pair in insertion order, stopping early if f
// returns false.
func (m *OrderedMap) Range(f func(key, value any) bool) {
	for i, k := range m.keys {
		if !f(k, m.values[i]) {
			return
		}
	}
}

// Keys returns the map's keys in insertion order.
func (m *OrderedMap) Keys() []any {
	out := make([]any, len(m.keys))
	copy(out, m.keys)
	return out
}
