package object

import (
	"errors"
	"math/big"
	"testing"

	"github.com/tundralabs/plankton/value"
	"github.com/tundralabs/plankton/wire"
)

func TestTreeTraverserDetectsSharedStructure(t *testing.T) {
	shared := []any{}
	root := []any{shared, shared}

	tr := NewTreeTraverser(nil)
	err := tr.Walk(root, discardVisitor{})
	var sharedErr SharedStructureDetected
	if !errors.As(err, &sharedErr) {
		t.Fatalf("Walk() = %v, want SharedStructureDetected", err)
	}
}

func TestTreeTraverserAllowsPlainTree(t *testing.T) {
	root := []any{[]any{}, []any{}}
	tr := NewTreeTraverser(nil)
	if err := tr.Walk(root, discardVisitor{}); err != nil {
		t.Fatalf("Walk() on a genuine tree: %v", err)
	}
}

func TestGraphTraverserEmitsRefsForSharedStructure(t *testing.T) {
	shared := []any{}
	root := []any{shared, shared}

	var rv countingVisitor
	gr := NewGraphTraverser(nil)
	if err := gr.Walk(root, &rv); err != nil {
		t.Fatalf("Walk(): %v", err)
	}
	if rv.addRefs != 1 || rv.getRefs != 1 {
		t.Fatalf("got %d add-refs, %d get-refs, want 1 and 1", rv.addRefs, rv.getRefs)
	}
}

func TestGraphTraverserOnTreeEmitsNoRefs(t *testing.T) {
	root := []any{[]any{}, []any{}}
	var rv countingVisitor
	gr := NewGraphTraverser(nil)
	if err := gr.Walk(root, &rv); err != nil {
		t.Fatalf("Walk(): %v", err)
	}
	if rv.addRefs != 0 || rv.getRefs != 0 {
		t.Fatalf("got %d add-refs, %d get-refs, want 0 and 0 for a tree-shaped value", rv.addRefs, rv.getRefs)
	}
}

func TestGraphTraverserCycle(t *testing.T) {
	x := make([]any, 1)
	x[0] = x // x contains itself

	var rv countingVisitor
	gr := NewGraphTraverser(nil)
	if err := gr.Walk(x, &rv); err != nil {
		t.Fatalf("Walk() on self-referential array: %v", err)
	}
	if rv.addRefs != 1 || rv.getRefs != 1 {
		t.Fatalf("got %d add-refs, %d get-refs, want 1 and 1 for a cycle", rv.addRefs, rv.getRefs)
	}
}

func TestGraphTraverserTwoMapsReferencingEachOther(t *testing.T) {
	a := value.NewOrderedMap(1)
	b := value.NewOrderedMap(1)
	a.Set("b", b)
	b.Set("a", a)

	var rv countingVisitor
	gr := NewGraphTraverser(nil)
	if err := gr.Walk(a, &rv); err != nil {
		t.Fatalf("Walk() on mutually-referential maps: %v", err)
	}
	if rv.addRefs != 1 || rv.getRefs != 1 {
		t.Fatalf("got %d add-refs, %d get-refs, want 1 and 1", rv.addRefs, rv.getRefs)
	}
}

// discardVisitor implements wire.Visitor, throwing every call away. Used
// where the test only cares whether Walk succeeds or fails, not what it
// emits.
type discardVisitor struct{}

func (discardVisitor) OnInvalidInstruction(opcode byte) error      { return nil }
func (discardVisitor) OnInt(v *big.Int) error                      { return nil }
func (discardVisitor) OnSingleton(v any) error                     { return nil }
func (discardVisitor) OnFloat(v float64) error                     { return nil }
func (discardVisitor) OnID(v [16]byte) error                       { return nil }
func (discardVisitor) OnString(data []byte, encoding string) error { return nil }
func (discardVisitor) OnBlob(data []byte) error                    { return nil }
func (discardVisitor) OnBeginArray(length int) error                { return nil }
func (discardVisitor) OnBeginMap(length int) error                  { return nil }
func (discardVisitor) OnBeginSeed(fieldCount int) error             { return nil }
func (discardVisitor) OnBeginStruct(tags []uint32) error            { return nil }
func (discardVisitor) OnAddRef(slot int) error                      { return nil }
func (discardVisitor) OnGetRef(resolved int) error                  { return nil }

// countingVisitor counts ADD_REF/GET_REF calls, the property the
// shared-structure-detection tests verify.
type countingVisitor struct {
	addRefs int
	getRefs int
}

func (c *countingVisitor) OnInvalidInstruction(opcode byte) error      { return nil }
func (c *countingVisitor) OnInt(v *big.Int) error                      { return nil }
func (c *countingVisitor) OnSingleton(v any) error                     { return nil }
func (c *countingVisitor) OnFloat(v float64) error                     { return nil }
func (c *countingVisitor) OnID(v [16]byte) error                       { return nil }
func (c *countingVisitor) OnString(data []byte, encoding string) error { return nil }
func (c *countingVisitor) OnBlob(data []byte) error                    { return nil }
func (c *countingVisitor) OnBeginArray(length int) error               { return nil }
func (c *countingVisitor) OnBeginMap(length int) error                 { return nil }
func (c *countingVisitor) OnBeginSeed(fieldCount int) error            { return nil }
func (c *countingVisitor) OnBeginStruct(tags []uint32) error           { return nil }
func (c *countingVisitor) OnAddRef(slot int) error                     { c.addRefs++; return nil }
func (c *countingVisitor) OnGetRef(resolved int) error                 { c.getRefs++; return nil }

var (
	_ wire.Visitor = discardVisitor{}
	_ wire.Visitor = (*countingVisitor)(nil)
)
