package value

import "testing"

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap(0)
	m.Set("b", 2)
	m.Set("a", 1)
	m.Set("c", 3)
	want := []any{"b", "a", "c"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestOrderedMapSetUpdatesInPlace(t *testing.T) {
	m := NewOrderedMap(0)
	m.Set("a", 1)
	m.Set("a", 2)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after updating an existing key", m.Len())
	}
	v, ok := m.Get("a")
	if !ok || v != 2 {
		t.Fatalf("Get(a) = %v, %v, want 2, true", v, ok)
	}
}

func TestOrderedMapGetMissing(t *testing.T) {
	m := NewOrderedMap(0)
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("Get on an absent key reported ok")
	}
}

func TestOrderedMapRangeStopsEarly(t *testing.T) {
	m := NewOrderedMap(0)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	var seen []any
	m.Range(func(k, v any) bool {
		seen = append(seen, k)
		return k != "b"
	})
	want := []any{"a", "b"}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
}

func TestOrderedMapZeroValue(t *testing.T) {
	var m OrderedMap
	m.Set("x", 1)
	v, ok := m.Get("x")
	if !ok || v != 1 {
		t.Fatalf("Get(x) on a zero-value OrderedMap = %v, %v", v, ok)
	}
}

func TestOrderedMapNonComparableKey(t *testing.T) {
	m := NewOrderedMap(0)
	key := []any{"a", int64(1)}
	m.Set(key, "first")
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	v, ok := m.Get([]any{"a", int64(1)})
	if !ok || v != "first" {
		t.Fatalf("Get on a slice key = %v, %v, want \"first\", true", v, ok)
	}
	m.Set([]any{"a", int64(1)}, "second")
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after updating an equal non-comparable key", m.Len())
	}
	v, ok = m.Get(key)
	if !ok || v != "second" {
		t.Fatalf("Get after update = %v, %v, want \"second\", true", v, ok)
	}
}
