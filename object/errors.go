package object

import "fmt"

// SharedStructureDetected is returned by TreeTraverser when it discovers
// that the same composite identity would need to be visited more than
// once. Tree traversal has no way to represent that without either
// duplicating the structure (changing its meaning) or introducing
// references (which only GraphTraverser is willing to do); it fails fast
// instead.
type SharedStructureDetected struct {
	Path string
}

func (e SharedStructureDetected) Error() string {
	return fmt.Sprintf("object: shared structure detected at %s; use a graph traversal instead", e.Path)
}

// DanglingReferenceError indicates a GET_REF named a slot with no
// preceding ADD_REF.
type DanglingReferenceError struct {
	Slot int
}

func (e DanglingReferenceError) Error() string {
	return fmt.Sprintf("object: reference to unregistered slot %d", e.Slot)
}

// UnclassifiableValueError indicates a Classifier could not place an
// application value into any wire kind during traversal.
type UnclassifiableValueError struct {
	Value any
}

func (e UnclassifiableValueError) Error() string {
	return fmt.Sprintf("object: value of type %T has no wire representation", e.Value)
}
