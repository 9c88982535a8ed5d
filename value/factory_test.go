package value

import (
	"math/big"
	"testing"
)

func TestDefaultFactoryNewIntNarrowsToInt64(t *testing.T) {
	f := DefaultFactory{}
	got, err := f.NewInt(big.NewInt(42))
	if err != nil {
		t.Fatalf("NewInt: %v", err)
	}
	if got != int64(42) {
		t.Fatalf("got %#v, want int64(42)", got)
	}
}

func TestDefaultFactoryNewIntKeepsBigIntBeyondInt64(t *testing.T) {
	n := new(big.Int)
	n.SetString("123456789012345678901234567890", 10)
	f := DefaultFactory{}
	got, err := f.NewInt(n)
	if err != nil {
		t.Fatalf("NewInt: %v", err)
	}
	gotBig, ok := got.(*big.Int)
	if !ok || gotBig.Cmp(n) != 0 {
		t.Fatalf("got %#v, want %v", got, n)
	}
}

func TestDefaultFactoryArrayBuilding(t *testing.T) {
	f := DefaultFactory{}
	arr, err := f.NewArray(2)
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	if err := f.SetArrayItem(arr, 0, "a"); err != nil {
		t.Fatalf("SetArrayItem: %v", err)
	}
	if err := f.SetArrayItem(arr, 1, "b"); err != nil {
		t.Fatalf("SetArrayItem: %v", err)
	}
	got := arr.([]any)
	if got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func TestDefaultFactorySeedBuilding(t *testing.T) {
	f := DefaultFactory{}
	s, err := f.NewSeed(1) // one (key, value) field pair
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if err := f.SetSeedHeader(s, int64(7)); err != nil {
		t.Fatalf("SetSeedHeader: %v", err)
	}
	if err := f.AddSeedField(s, int64(1)); err != nil { // key
		t.Fatalf("AddSeedField: %v", err)
	}
	if err := f.AddSeedField(s, int64(2)); err != nil { // value
		t.Fatalf("AddSeedField: %v", err)
	}
	seed := s.(*Seed)
	if seed.Header != int64(7) {
		t.Fatalf("Header = %v, want 7", seed.Header)
	}
	if len(seed.Fields) != 2 {
		t.Fatalf("Fields = %v, want 2 entries (one key/value pair)", seed.Fields)
	}
}

func TestDefaultClassifierClassifiesKnownTypes(t *testing.T) {
	c := DefaultClassifier{}
	tests := []struct {
		v    any
		want Kind
	}{
		{nil, KindNull},
		{true, KindBool},
		{int64(1), KindInt},
		{new(big.Int), KindInt},
		{1.5, KindFloat},
		{ID{}, KindID},
		{Blob("x"), KindBlob},
		{"x", KindString},
		{[]any{}, KindArray},
		{NewOrderedMap(0), KindMap},
		{NewSeed(0), KindSeed},
		{NewStruct(nil), KindStruct},
		{struct{}{}, KindInvalid},
	}
	for _, tc := range tests {
		if got := c.Classify(tc.v); got != tc.want {
			t.Fatalf("Classify(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestIDString(t *testing.T) {
	id := IDFromUint64(0xabcd)
	if got, want := id.String(), "abcd"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIDFromUint64RoundTrip(t *testing.T) {
	id := IDFromUint64(42)
	var want ID
	want[15] = 42
	if id != want {
		t.Fatalf("IDFromUint64(42) = %v, want %v", id, want)
	}
}
