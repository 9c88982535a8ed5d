// Package text implements tton, the human-readable mirror of the binary
// plankton wire format. Its parser drives the same wire.Visitor contract
// the binary decoder drives, so object.Builder works unmodified for both
// syntaxes; its encoder implements wire.Visitor the same way wire.Encoder
// does, just emitting text instead of bytes.
package text
