package text

import (
	"math/big"
	"testing"
)

func TestEncoderScalarsAndArray(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginArray(3); err != nil {
		t.Fatalf("OnBeginArray: %v", err)
	}
	if err := e.OnInt(big.NewInt(1)); err != nil {
		t.Fatalf("OnInt: %v", err)
	}
	if err := e.OnSingleton(nil); err != nil {
		t.Fatalf("OnSingleton(nil): %v", err)
	}
	if err := e.OnSingleton(true); err != nil {
		t.Fatalf("OnSingleton(true): %v", err)
	}
	want := "[1, %n, %t]"
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncoderFloat(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginArray(2); err != nil {
		t.Fatalf("OnBeginArray: %v", err)
	}
	if err := e.OnFloat(0.5); err != nil {
		t.Fatalf("OnFloat: %v", err)
	}
	if err := e.OnFloat(2.0); err != nil {
		t.Fatalf("OnFloat: %v", err)
	}
	want := "[0.5, 2.0]"
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncoderEmptyComposites(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginArray(0); err != nil {
		t.Fatalf("OnBeginArray(0): %v", err)
	}
	if got, want := e.String(), "[]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	e2 := NewEncoder()
	if err := e2.OnBeginMap(0); err != nil {
		t.Fatalf("OnBeginMap(0): %v", err)
	}
	if got, want := e2.String(), "{}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncoderMap(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginMap(1); err != nil {
		t.Fatalf("OnBeginMap: %v", err)
	}
	if err := e.OnString([]byte("a"), "utf8"); err != nil {
		t.Fatalf("OnString(key): %v", err)
	}
	if err := e.OnInt(big.NewInt(1)); err != nil {
		t.Fatalf("OnInt(value): %v", err)
	}
	want := `{"a": 1}`
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncoderSeed(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginSeed(1); err != nil { // one (key, value) field pair
		t.Fatalf("OnBeginSeed: %v", err)
	}
	if err := e.OnInt(big.NewInt(7)); err != nil { // header
		t.Fatalf("OnInt(header): %v", err)
	}
	if err := e.OnInt(big.NewInt(1)); err != nil { // field key
		t.Fatalf("OnInt(field key): %v", err)
	}
	if err := e.OnInt(big.NewInt(2)); err != nil { // field value
		t.Fatalf("OnInt(field value): %v", err)
	}
	want := "@7(1: 2)"
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncoderStruct(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginStruct([]uint32{0, 0, 0}); err != nil {
		t.Fatalf("OnBeginStruct: %v", err)
	}
	for _, n := range []int64{10, 11, 12} {
		if err := e.OnInt(big.NewInt(n)); err != nil {
			t.Fatalf("OnInt: %v", err)
		}
	}
	want := "%s[0, 0, 0](10, 11, 12)"
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncoderSharedStructure(t *testing.T) {
	e := NewEncoder()
	if err := e.OnBeginArray(2); err != nil {
		t.Fatalf("OnBeginArray: %v", err)
	}
	if err := e.OnAddRef(0); err != nil {
		t.Fatalf("OnAddRef: %v", err)
	}
	if err := e.OnBeginArray(0); err != nil {
		t.Fatalf("OnBeginArray(shared): %v", err)
	}
	if err := e.OnGetRef(0); err != nil {
		t.Fatalf("OnGetRef: %v", err)
	}
	want := "[$ref0:[], $ref0]"
	if got := e.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
