package wire

import "math/big"

// An Encoder implements [Visitor] by emitting the binary plankton wire
// format into a [Writer]. It chooses the shortest opcode available for
// every value (literal int forms, fixed-arity array/map/seed forms,
// linear struct-tag forms, default-encoding string length forms) and
// tracks how many ADD_REF slots it has emitted so GET_REF can convert an
// absolute slot back into the wire format's backward offset.
type Encoder struct {
	w               *Writer
	emittedRefCount int
}

// NewEncoder returns an Encoder that appends to w.
func NewEncoder(w *Writer) *Encoder { return &Encoder{w: w} }

var (
	bigNeg1 = big.NewInt(-1)
	bigNeg2 = big.NewInt(-2)
	bigNeg3 = big.NewInt(-3)
)

func (e *Encoder) OnInvalidInstruction(opcode byte) error {
	return InvalidInstructionError{Opcode: opcode}
}

func (e *Encoder) OnInt(v *big.Int) error {
	switch {
	case v.Sign() >= 0 && v.Cmp(big.NewInt(5)) <= 0:
		e.w.WriteByte(IntLit0Tag + byte(v.Int64()))
	case v.Cmp(bigNeg1) == 0:
		e.w.WriteByte(IntLitM1Tag)
	case v.Cmp(bigNeg2) == 0:
		e.w.WriteByte(IntLitM2Tag)
	case v.Cmp(bigNeg3) == 0:
		e.w.WriteByte(IntLitM3Tag)
	case v.Sign() > 0:
		e.w.WriteByte(IntPosTag)
		e.w.WriteUvarint(v)
	default:
		e.w.WriteByte(IntNegTag)
		n := new(big.Int).Neg(v)
		n.Sub(n, bigOne)
		e.w.WriteUvarint(n)
	}
	return nil
}

func (e *Encoder) OnSingleton(v any) error {
	switch v {
	case nil:
		e.w.WriteByte(SingletonNullTag)
	case true:
		e.w.WriteByte(SingletonTrueTag)
	case false:
		e.w.WriteByte(SingletonFalseTag)
	default:
		return InvalidInstructionError{Opcode: 0}
	}
	return nil
}

func (e *Encoder) OnFloat(v float64) error {
	if Float32Representable(v) {
		e.w.WriteByte(Float32Tag)
		e.w.PutFloat32(v)
		return nil
	}
	e.w.WriteByte(Float64Tag)
	e.w.PutFloat64(v)
	return nil
}

func (e *Encoder) OnID(v [16]byte) error {
	width := IDWidth(v)
	switch width {
	case 2:
		e.w.WriteByte(ID16Tag)
	case 4:
		e.w.WriteByte(ID32Tag)
	case 8:
		e.w.WriteByte(ID64Tag)
	default:
		e.w.WriteByte(ID128Tag)
	}
	e.w.WriteBytes(TrimID(v, width))
	return nil
}

func (e *Encoder) OnString(data []byte, encoding string) error {
	if encoding != "" {
		// Non-default string encodings are out of scope for the binary
		// wire format's short forms; fall back to the blob-style N form.
		e.w.WriteByte(DefaultStringNTag)
		e.w.WriteUvarintUint64(uint64(len(data)))
		e.w.WriteBytes(data)
		return nil
	}
	if len(data) <= 7 {
		e.w.WriteByte(DefaultString0Tag + byte(len(data)))
		e.w.WriteBytes(data)
		return nil
	}
	e.w.WriteByte(DefaultStringNTag)
	e.w.WriteUvarintUint64(uint64(len(data)))
	e.w.WriteBytes(data)
	return nil
}

func (e *Encoder) OnBlob(data []byte) error {
	e.w.WriteByte(BlobNTag)
	e.w.WriteUvarintUint64(uint64(len(data)))
	e.w.WriteBytes(data)
	return nil
}

func (e *Encoder) OnBeginArray(length int) error {
	if length <= 3 {
		e.w.WriteByte(Array0Tag + byte(length))
		return nil
	}
	e.w.WriteByte(ArrayNTag)
	e.w.WriteUvarintUint64(uint64(length))
	return nil
}

func (e *Encoder) OnBeginMap(length int) error {
	if length <= 3 {
		e.w.WriteByte(Map0Tag + byte(length))
		return nil
	}
	e.w.WriteByte(MapNTag)
	e.w.WriteUvarintUint64(uint64(length))
	return nil
}

func (e *Encoder) OnBeginSeed(fieldCount int) error {
	if fieldCount <= 3 {
		e.w.WriteByte(Seed0Tag + byte(fieldCount))
		return nil
	}
	e.w.WriteByte(SeedNTag)
	e.w.WriteUvarintUint64(uint64(fieldCount))
	return nil
}

func (e *Encoder) OnBeginStruct(tags []uint32) error {
	if opcode, ok := linearStructTag(tags); ok {
		e.w.WriteByte(opcode)
		return nil
	}
	e.w.WriteByte(StructNTag)
	e.w.WriteUvarintUint64(uint64(len(tags)))
	e.w.WriteStructTags(tags)
	return nil
}

func (e *Encoder) OnAddRef(slot int) error {
	e.w.WriteByte(AddRefTag)
	e.emittedRefCount++
	return nil
}

// OnGetRef writes a GET_REF instruction for the composite whose absolute
// ADD_REF slot is resolved. The wire format encodes the backward distance
// from the most recently assigned slot: (emittedRefCount - 1) - resolved.
func (e *Encoder) OnGetRef(resolved int) error {
	e.w.WriteByte(GetRefTag)
	offset := (e.emittedRefCount - 1) - resolved
	e.w.WriteUvarintUint64(uint64(offset))
	return nil
}
