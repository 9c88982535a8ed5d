// Package value holds the in-memory representations that the plankton
// object codec (package object) builds from and walks over: ids, blobs,
// ordered maps, and the two composite "class instance" shapes, Seed and
// Struct. It has no dependency on package wire or package object, so
// both can depend on it without risk of an import cycle.
package value
