package wire

import "math/big"

// A Visitor receives one callback per value encountered in a plankton
// instruction stream, whether that stream is being read off the wire by a
// [Decoder] or emitted by an in-memory traverser. The same interface
// therefore serves as both the decoder's sink and the encoder's/traverser's
// source: [Encoder] implements Visitor, and so does object.Builder.
//
// Composite callbacks (OnBeginArray, OnBeginMap, OnBeginSeed,
// OnBeginStruct) only announce that a composite has begun and how many
// children to expect; children follow as their own top-level calls, and
// nothing marks the composite's end. Consumers that need to know when a
// composite is complete (such as object.Builder) track expected-vs-received
// counts themselves.
//
// OnAddRef, when present, is always the call immediately preceding the
// OnBegin* call for the composite it labels.
type Visitor interface {
	// OnInvalidInstruction reports an opcode with no assigned meaning.
	OnInvalidInstruction(opcode byte) error

	OnInt(v *big.Int) error
	// OnSingleton reports the null, true or false singletons as v == nil,
	// v == true or v == false respectively.
	OnSingleton(v any) error
	OnFloat(v float64) error
	OnID(v [16]byte) error
	// OnString reports a string payload. encoding is empty for the default
	// (UTF-8) encoding.
	OnString(data []byte, encoding string) error
	OnBlob(data []byte) error

	OnBeginArray(length int) error
	// OnBeginMap reports the number of key/value pairs to follow, not the
	// number of individual keys and values.
	OnBeginMap(length int) error
	// OnBeginSeed reports the seed's header followed by fieldCount
	// key/value field pairs; fieldCount counts pairs, so 2*fieldCount
	// further values (plus the header) arrive as this composite's children.
	OnBeginSeed(fieldCount int) error
	OnBeginStruct(tags []uint32) error

	OnAddRef(slot int) error
	OnGetRef(resolved int) error
}

// A ResultVisitor is a Visitor that can report when it has finished
// assembling one complete top-level value. [Decode] drives its instruction
// stream decoder until HasResult reports true.
type ResultVisitor interface {
	Visitor
	HasResult() bool
}
