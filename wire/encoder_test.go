package wire

import (
	"math/big"
	"testing"
)

func encodeOne(t *testing.T, drive func(e *Encoder) error) []byte {
	t.Helper()
	var w Writer
	e := NewEncoder(&w)
	if err := drive(e); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return w.Out
}

func TestEncoderIntLiteralShortForms(t *testing.T) {
	tests := []struct {
		n    int64
		want byte
	}{
		{0, IntLit0Tag},
		{1, IntLit1Tag},
		{2, IntLit2Tag},
		{-1, IntLitM1Tag},
		{-2, IntLitM2Tag},
		{-3, IntLitM3Tag},
	}
	for _, tc := range tests {
		got := encodeOne(t, func(e *Encoder) error { return e.OnInt(big.NewInt(tc.n)) })
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("OnInt(%d) = % x, want [0x%02x]", tc.n, got, tc.want)
		}
	}
}

func TestEncoderIntOutsideLiterals(t *testing.T) {
	got := encodeOne(t, func(e *Encoder) error { return e.OnInt(big.NewInt(6)) })
	if len(got) == 0 || got[0] != IntPosTag {
		t.Fatalf("OnInt(6) = % x, want to start with IntPosTag", got)
	}
	got = encodeOne(t, func(e *Encoder) error { return e.OnInt(big.NewInt(-4)) })
	if len(got) == 0 || got[0] != IntNegTag {
		t.Fatalf("OnInt(-4) = % x, want to start with IntNegTag", got)
	}
}

func TestEncoderArrayShortForms(t *testing.T) {
	tests := []struct {
		n    int
		want byte
	}{
		{0, Array0Tag}, {1, Array1Tag}, {2, Array2Tag}, {3, Array3Tag},
	}
	for _, tc := range tests {
		got := encodeOne(t, func(e *Encoder) error { return e.OnBeginArray(tc.n) })
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("OnBeginArray(%d) = % x, want [0x%02x]", tc.n, got, tc.want)
		}
	}
	got := encodeOne(t, func(e *Encoder) error { return e.OnBeginArray(4) })
	if len(got) == 0 || got[0] != ArrayNTag {
		t.Fatalf("OnBeginArray(4) = % x, want to start with ArrayNTag", got)
	}
}

func TestEncoderStringShortForms(t *testing.T) {
	got := encodeOne(t, func(e *Encoder) error { return e.OnString([]byte("abc"), "") })
	if got[0] != DefaultString3Tag {
		t.Fatalf("OnString(len 3) opcode = 0x%02x, want DefaultString3Tag", got[0])
	}
	got = encodeOne(t, func(e *Encoder) error { return e.OnString([]byte("abcdefgh"), "") })
	if got[0] != DefaultStringNTag {
		t.Fatalf("OnString(len 8) opcode = 0x%02x, want DefaultStringNTag", got[0])
	}
}

func TestEncoderStructLinearForm(t *testing.T) {
	got := encodeOne(t, func(e *Encoder) error { return e.OnBeginStruct([]uint32{0, 1, 2}) })
	if len(got) != 1 || got[0] != StructLinear3Tag {
		t.Fatalf("OnBeginStruct([0,1,2]) = % x, want [0x%02x]", got, StructLinear3Tag)
	}
	got = encodeOne(t, func(e *Encoder) error { return e.OnBeginStruct([]uint32{0, 0, 0}) })
	if len(got) == 0 || got[0] != StructNTag {
		t.Fatalf("OnBeginStruct([0,0,0]) = % x, want to start with StructNTag", got)
	}
}

func TestEncoderIDWidthSelection(t *testing.T) {
	var small [16]byte
	small[15] = 0xff // fits in Id16
	got := encodeOne(t, func(e *Encoder) error { return e.OnID(small) })
	if got[0] != ID16Tag {
		t.Fatalf("OnID(small) opcode = 0x%02x, want ID16Tag", got[0])
	}

	var big16 [16]byte
	big16[0] = 1 // forces Id128
	got = encodeOne(t, func(e *Encoder) error { return e.OnID(big16) })
	if got[0] != ID128Tag {
		t.Fatalf("OnID(big) opcode = 0x%02x, want ID128Tag", got[0])
	}
}

func TestEncoderRefOffsetComputation(t *testing.T) {
	var w Writer
	e := NewEncoder(&w)
	if err := e.OnAddRef(0); err != nil {
		t.Fatalf("OnAddRef: %v", err)
	}
	if err := e.OnBeginArray(0); err != nil {
		t.Fatalf("OnBeginArray: %v", err)
	}
	if err := e.OnGetRef(0); err != nil {
		t.Fatalf("OnGetRef: %v", err)
	}
	// AddRef, Array0, GetRef, offset-varint(0)
	want := []byte{AddRefTag, Array0Tag, GetRefTag, 0x00}
	if len(w.Out) != len(want) {
		t.Fatalf("got % x, want % x", w.Out, want)
	}
	for i := range want {
		if w.Out[i] != want[i] {
			t.Fatalf("got % x, want % x", w.Out, want)
		}
	}
}
