// Package plankton implements the plankton self-describing serialization
// format: a compact tagged binary syntax ("bton", package wire) and a
// human-readable text syntax ("tton", package text), both driving the
// same object codec (package object) to reconstruct or walk Go values.
//
// The typical entry points are EncodeBinary/DecodeBinary and
// EncodeText/DecodeText. Callers who need custom in-memory
// representations supply a value.DataFactory and value.Classifier via
// WithFactory and WithClassifier; everyone else gets value.DefaultFactory
// and value.DefaultClassifier, which build and walk the types in package
// value ([]any, *value.OrderedMap, *value.Seed, *value.Struct).
package plankton
