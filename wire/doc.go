// Package wire implements the plankton binary wire format: the tag
// registry, the byte-level primitives (varints, nibble streams, float
// packing), the instruction stream decoder that turns a byte source into
// [Visitor] calls, and the encoder that turns [Visitor] calls back into
// bytes.
//
// Package wire knows nothing about Go-level composite types such as
// arrays or maps; it only knows about lengths, tags and raw payloads. The
// object model lives in package value, and the bridge between the two is
// package object.
package wire
