package wire

import (
	"bufio"
	"io"
	"math/big"
)

// A Decoder reads a plankton instruction stream and dispatches each
// instruction to a [Visitor]. It is stateless beyond a one-byte lookahead
// cursor and a monotonic reference-slot counter: "current" always holds
// the next unconsumed opcode, and every handler consumes its own opcode
// and operands cleanly before returning, leaving current on the following
// opcode (or signalling end of input).
type Decoder struct {
	src      *bufio.Reader
	current  byte
	more     bool
	nextSlot int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	d := &Decoder{src: br}
	d.advance()
	return d
}

// More reports whether there is another instruction to decode.
func (d *Decoder) More() bool { return d.more }

func (d *Decoder) advance() {
	b, err := d.src.ReadByte()
	if err != nil {
		d.current = 0
		d.more = false
		return
	}
	d.current = b
	d.more = true
}

// advanceAndReadBlock reads count bytes immediately following the opcode
// still held in d.current, then advances past them to the next opcode.
func (d *Decoder) advanceAndReadBlock(count int) ([]byte, error) {
	buf := make([]byte, count)
	if _, err := io.ReadFull(d.src, buf); err != nil {
		return nil, UnexpectedEndError{Reason: "fixed-width payload"}
	}
	d.advance()
	return buf, nil
}

// readBlock reads count bytes where d.current is already the first byte of
// the block (the caller has already advanced past the opcode and any
// preceding length varint).
func (d *Decoder) readBlock(count int) ([]byte, error) {
	buf := make([]byte, count)
	if count == 0 {
		return buf, nil
	}
	if !d.more {
		return nil, UnexpectedEndError{Reason: "block payload"}
	}
	buf[0] = d.current
	if count > 1 {
		if _, err := io.ReadFull(d.src, buf[1:]); err != nil {
			return nil, UnexpectedEndError{Reason: "block payload"}
		}
	}
	d.advance()
	return buf, nil
}

// readLength reads an unsigned varint that is expected to fit in a native
// int (lengths, field counts, reference offsets). It is the same bias-1
// encoding as readUvarintBig, just bounded to avoid allocating a big.Int
// for the overwhelmingly common case.
func (d *Decoder) readLength() (int, error) {
	if !d.more {
		return 0, MalformedVarintError{}
	}
	value := uint64(d.current & 0x7f)
	offset := uint(7)
	for d.current >= 0x80 {
		d.advance()
		if !d.more {
			return 0, MalformedVarintError{}
		}
		payload := uint64(d.current&0x7f) + 1
		value += payload << offset
		offset += 7
	}
	d.advance()
	return int(value), nil
}

// readUvarintBig reads an unsigned varint into a big.Int, preserving
// arbitrary precision for Int payloads.
func (d *Decoder) readUvarintBig() (*big.Int, error) {
	if !d.more {
		return nil, MalformedVarintError{}
	}
	value := big.NewInt(int64(d.current & 0x7f))
	offset := uint(7)
	shifted := new(big.Int)
	for d.current >= 0x80 {
		d.advance()
		if !d.more {
			return nil, MalformedVarintError{}
		}
		payload := big.NewInt(int64(d.current&0x7f) + 1)
		shifted.Lsh(payload, offset)
		value.Add(value, shifted)
		offset += 7
	}
	d.advance()
	return value, nil
}

// readStructTags reads the nibble-packed tag vector for a STRUCT_N
// instruction. d.current holds the first nibble-stream byte.
func (d *Decoder) readStructTags(length int) ([]uint32, error) {
	return ReadStructTags(length, func() (byte, error) {
		if !d.more {
			return 0, UnexpectedEndError{Reason: "struct tag nibble stream"}
		}
		b := d.current
		d.advance()
		return b, nil
	})
}

// DecodeNext reads and dispatches exactly one instruction to v.
func (d *Decoder) DecodeNext(v Visitor) error {
	opcode := d.current
	if !d.more {
		return UnexpectedEndError{Reason: "opcode"}
	}
	handler := dispatchTable[opcode]
	if handler == nil {
		return v.OnInvalidInstruction(opcode)
	}
	return handler(d, v)
}

// Decode drives d until v reports a completed result, per [ResultVisitor].
// It dispatches no instruction after the one that completes the root
// value, but the one-byte lookahead has by then read the following byte
// from r, and a bufio.Reader wrapped around an unbuffered r may have read
// further still.
func Decode(r io.Reader, v ResultVisitor) error {
	d := NewDecoder(r)
	for !v.HasResult() {
		if !d.more {
			return UnexpectedEndError{Reason: "value"}
		}
		if err := d.DecodeNext(v); err != nil {
			return err
		}
	}
	return nil
}

type handlerFunc func(d *Decoder, v Visitor) error

var dispatchTable [256]handlerFunc

func init() {
	for i := int64(0); i <= 5; i++ {
		n := i
		dispatchTable[IntLit0Tag+byte(i)] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnInt(big.NewInt(n)) }
	}
	dispatchTable[IntLitM3Tag] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnInt(big.NewInt(-3)) }
	dispatchTable[IntLitM2Tag] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnInt(big.NewInt(-2)) }
	dispatchTable[IntLitM1Tag] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnInt(big.NewInt(-1)) }

	dispatchTable[IntPosTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readUvarintBig()
		if err != nil {
			return err
		}
		return v.OnInt(n)
	}
	dispatchTable[IntNegTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readUvarintBig()
		if err != nil {
			return err
		}
		// value = -(n+1)
		n.Add(n, bigOne)
		n.Neg(n)
		return v.OnInt(n)
	}

	dispatchTable[SingletonNullTag] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnSingleton(nil) }
	dispatchTable[SingletonTrueTag] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnSingleton(true) }
	dispatchTable[SingletonFalseTag] = func(d *Decoder, v Visitor) error { d.advance(); return v.OnSingleton(false) }

	dispatchTable[ID16Tag] = idHandler(2)
	dispatchTable[ID32Tag] = idHandler(4)
	dispatchTable[ID64Tag] = idHandler(8)
	dispatchTable[ID128Tag] = idHandler(16)

	dispatchTable[Float32Tag] = func(d *Decoder, v Visitor) error {
		bs, err := d.advanceAndReadBlock(4)
		if err != nil {
			return err
		}
		return v.OnFloat(float32FromLE(bs))
	}
	dispatchTable[Float64Tag] = func(d *Decoder, v Visitor) error {
		bs, err := d.advanceAndReadBlock(8)
		if err != nil {
			return err
		}
		return v.OnFloat(float64FromLE(bs))
	}

	dispatchTable[Array0Tag] = arrayHandler(0)
	dispatchTable[Array1Tag] = arrayHandler(1)
	dispatchTable[Array2Tag] = arrayHandler(2)
	dispatchTable[Array3Tag] = arrayHandler(3)
	dispatchTable[ArrayNTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readLength()
		if err != nil {
			return err
		}
		return v.OnBeginArray(n)
	}

	dispatchTable[Map0Tag] = mapHandler(0)
	dispatchTable[Map1Tag] = mapHandler(1)
	dispatchTable[Map2Tag] = mapHandler(2)
	dispatchTable[Map3Tag] = mapHandler(3)
	dispatchTable[MapNTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readLength()
		if err != nil {
			return err
		}
		return v.OnBeginMap(n)
	}

	dispatchTable[BlobNTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readLength()
		if err != nil {
			return err
		}
		data, err := d.readBlock(n)
		if err != nil {
			return err
		}
		return v.OnBlob(data)
	}

	for i := 0; i <= 7; i++ {
		dispatchTable[DefaultString0Tag+byte(i)] = stringHandler(i)
	}
	dispatchTable[DefaultStringNTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readLength()
		if err != nil {
			return err
		}
		data, err := d.readBlock(n)
		if err != nil {
			return err
		}
		return v.OnString(data, "")
	}

	dispatchTable[Seed0Tag] = seedHandler(0)
	dispatchTable[Seed1Tag] = seedHandler(1)
	dispatchTable[Seed2Tag] = seedHandler(2)
	dispatchTable[Seed3Tag] = seedHandler(3)
	dispatchTable[SeedNTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readLength()
		if err != nil {
			return err
		}
		return v.OnBeginSeed(n)
	}

	for i := 0; i <= 7; i++ {
		tags := structLinearTags[i]
		dispatchTable[StructLinear0Tag+byte(i)] = func(d *Decoder, v Visitor) error {
			d.advance()
			return v.OnBeginStruct(tags)
		}
	}
	dispatchTable[StructNTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		n, err := d.readLength()
		if err != nil {
			return err
		}
		tags, err := d.readStructTags(n)
		if err != nil {
			return err
		}
		return v.OnBeginStruct(tags)
	}

	dispatchTable[AddRefTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		slot := d.nextSlot
		d.nextSlot++
		return v.OnAddRef(slot)
	}
	dispatchTable[GetRefTag] = func(d *Decoder, v Visitor) error {
		d.advance()
		offset, err := d.readLength()
		if err != nil {
			return err
		}
		resolved := d.nextSlot - offset - 1
		if resolved < 0 {
			return InvalidReferenceError{Slot: resolved}
		}
		return v.OnGetRef(resolved)
	}
}

func idHandler(width int) handlerFunc {
	return func(d *Decoder, v Visitor) error {
		bs, err := d.advanceAndReadBlock(width)
		if err != nil {
			return err
		}
		return v.OnID(PadID(bs))
	}
}

func arrayHandler(length int) handlerFunc {
	return func(d *Decoder, v Visitor) error {
		d.advance()
		return v.OnBeginArray(length)
	}
}

func mapHandler(length int) handlerFunc {
	return func(d *Decoder, v Visitor) error {
		d.advance()
		return v.OnBeginMap(length)
	}
}

func seedHandler(fieldCount int) handlerFunc {
	return func(d *Decoder, v Visitor) error {
		d.advance()
		return v.OnBeginSeed(fieldCount)
	}
}

func stringHandler(length int) handlerFunc {
	return func(d *Decoder, v Visitor) error {
		data, err := d.advanceAndReadBlock(length)
		if err != nil {
			return err
		}
		return v.OnString(data, "")
	}
}
