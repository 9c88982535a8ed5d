// Package object implements the plankton object codec: a [Builder] that
// reconstructs Go values from a decoded instruction stream, and a pair of
// traversers ([TreeTraverser], [GraphTraverser]) that drive a
// wire.Visitor from an in-memory Go value. Builder has no explicit
// end-of-composite signal to work from; it tracks expected-versus-received
// child counts on a pending-frame stack instead, the same shape
// _object.py's ObjectBuilder uses.
package object
