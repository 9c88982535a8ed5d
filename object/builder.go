package object

import (
	"math/big"

	"github.com/tundralabs/plankton/value"
	"github.com/tundralabs/plankton/wire"
)

type frameKind int

const (
	arrayFrame frameKind = iota
	mapFrame
	seedFrame
	structFrame
)

// pending describes a composite that has begun (its container already
// exists) but has not yet received all of its children. It is the
// builder's analogue of a stack frame in a recursive-descent parser,
// needed because the instruction stream never marks where a composite
// ends: the builder instead tracks expected-versus-received counts.
type pending struct {
	kind      frameKind
	container any
	expected  int
	received  int

	// mapKeyPending/ mapPendingKey: a map's children arrive as a flat
	// sequence of key, value, key, value, ...; expected/received count
	// pairs, not individual children.
	mapKeyPending bool
	mapPendingKey any

	// seedHeaderSeen: a seed's first child is its header, not a field.
	seedHeaderSeen bool
}

// Builder implements wire.Visitor (and wire.ResultVisitor), reconstructing
// a single Go value from the instruction stream it is driven with. It has
// no recursion of its own: every composite is a frame on an explicit
// stack, which is what lets it rebuild arbitrarily deep structures (and,
// via ADD_REF/GET_REF, cyclic ones) without recursing through Go's call
// stack one instruction-stream level at a time.
type Builder struct {
	factory value.DataFactory

	stack []*pending
	refs  []any

	result    any
	hasResult bool

	pendingRefSlot int
	hasPendingRef  bool
}

// NewBuilder returns a Builder that builds values with factory. A nil
// factory uses value.DefaultFactory.
func NewBuilder(factory value.DataFactory) *Builder {
	if factory == nil {
		factory = value.DefaultFactory{}
	}
	return &Builder{factory: factory}
}

// HasResult reports whether the builder has assembled one complete
// top-level value.
func (b *Builder) HasResult() bool { return b.hasResult }

// Result returns the assembled value. It is only meaningful once
// HasResult reports true.
func (b *Builder) Result() any { return b.result }

func (b *Builder) OnInvalidInstruction(opcode byte) error {
	return wire.InvalidInstructionError{Opcode: opcode}
}

func (b *Builder) OnInt(v *big.Int) error {
	out, err := b.factory.NewInt(v)
	if err != nil {
		return err
	}
	return b.deliver(out)
}

func (b *Builder) OnSingleton(v any) error { return b.deliver(v) }

func (b *Builder) OnFloat(v float64) error {
	out, err := b.factory.NewFloat(v)
	if err != nil {
		return err
	}
	return b.deliver(out)
}

func (b *Builder) OnID(v [16]byte) error {
	out, err := b.factory.NewID(value.ID(v))
	if err != nil {
		return err
	}
	return b.deliver(out)
}

func (b *Builder) OnString(data []byte, encoding string) error {
	out, err := b.factory.NewString(data, encoding)
	if err != nil {
		return err
	}
	return b.deliver(out)
}

func (b *Builder) OnBlob(data []byte) error {
	out, err := b.factory.NewBlob(data)
	if err != nil {
		return err
	}
	return b.deliver(out)
}

func (b *Builder) OnBeginArray(length int) error {
	container, err := b.factory.NewArray(length)
	if err != nil {
		return err
	}
	b.registerPendingRef(container)
	if length == 0 {
		return b.deliver(container)
	}
	b.stack = append(b.stack, &pending{kind: arrayFrame, container: container, expected: length})
	return nil
}

func (b *Builder) OnBeginMap(length int) error {
	container, err := b.factory.NewMap(length)
	if err != nil {
		return err
	}
	b.registerPendingRef(container)
	if length == 0 {
		return b.deliver(container)
	}
	b.stack = append(b.stack, &pending{kind: mapFrame, container: container, expected: length})
	return nil
}

func (b *Builder) OnBeginSeed(fieldCount int) error {
	container, err := b.factory.NewSeed(fieldCount)
	if err != nil {
		return err
	}
	b.registerPendingRef(container)
	// A seed always takes at least its header as a child, even when it
	// declares zero fields; each of its fieldCount fields is itself a
	// (key, value) pair on the wire, so the frame waits for 2*fieldCount
	// further children beyond the header.
	b.stack = append(b.stack, &pending{kind: seedFrame, container: container, expected: 1 + 2*fieldCount})
	return nil
}

func (b *Builder) OnBeginStruct(tags []uint32) error {
	container, err := b.factory.NewStruct(tags)
	if err != nil {
		return err
	}
	b.registerPendingRef(container)
	if len(tags) == 0 {
		return b.deliver(container)
	}
	b.stack = append(b.stack, &pending{kind: structFrame, container: container, expected: len(tags)})
	return nil
}

func (b *Builder) OnAddRef(slot int) error {
	b.pendingRefSlot = slot
	b.hasPendingRef = true
	return nil
}

func (b *Builder) OnGetRef(resolved int) error {
	if resolved < 0 || resolved >= len(b.refs) {
		return DanglingReferenceError{Slot: resolved}
	}
	return b.deliver(b.refs[resolved])
}

// registerPendingRef records container under the slot named by the most
// recent OnAddRef call, if any. Per the wire format, OnAddRef always
// immediately precedes the OnBegin* call for the composite it labels, so
// this always applies to the container just created.
func (b *Builder) registerPendingRef(container any) {
	if !b.hasPendingRef {
		return
	}
	slot := b.pendingRefSlot
	for len(b.refs) <= slot {
		b.refs = append(b.refs, nil)
	}
	b.refs[slot] = container
	b.hasPendingRef = false
}

// deliver attaches v as the next child of the innermost open composite,
// cascading upward through any composite that v completes, until either
// an incomplete composite absorbs it or the stack is empty and v becomes
// the final result.
func (b *Builder) deliver(v any) error {
	for {
		if len(b.stack) == 0 {
			b.result = v
			b.hasResult = true
			return nil
		}
		top := b.stack[len(b.stack)-1]
		switch top.kind {
		case arrayFrame:
			if err := b.factory.SetArrayItem(top.container, top.received, v); err != nil {
				return err
			}
			top.received++
		case mapFrame:
			if !top.mapKeyPending {
				top.mapPendingKey = v
				top.mapKeyPending = true
				return nil
			}
			if err := b.factory.SetMapItem(top.container, top.mapPendingKey, v); err != nil {
				return err
			}
			top.mapKeyPending = false
			top.received++
		case seedFrame:
			if !top.seedHeaderSeen {
				if err := b.factory.SetSeedHeader(top.container, v); err != nil {
					return err
				}
				top.seedHeaderSeen = true
				top.received++
				if top.received < top.expected {
					return nil
				}
			} else {
				if err := b.factory.AddSeedField(top.container, v); err != nil {
					return err
				}
				top.received++
			}
		case structFrame:
			if err := b.factory.AddStructField(top.container, v); err != nil {
				return err
			}
			top.received++
		}
		if top.received < top.expected {
			return nil
		}
		b.stack = b.stack[:len(b.stack)-1]
		v = top.container
	}
}
