package text

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

type encKind int

const (
	encArray encKind = iota
	encMap
	encSeed
	encStruct
)

// encFrame mirrors object.Builder's pending frame, but for writing text
// instead of building a Go value: the wire.Visitor contract gives the
// encoder no explicit "composite ended" call, so it has to count
// expected-versus-received children itself to know when to write a
// closing delimiter, exactly as Builder counts them to know when to stop
// accumulating fields.
type encFrame struct {
	kind     encKind
	expected int
	received int

	needComma     bool
	suppressComma bool

	mapKeyPending  bool
	seedHeaderSeen bool
	seedKeyPending bool
}

// An Encoder implements wire.Visitor by rendering tton source. Unlike the
// binary format, tton has no notion of a numbered backward offset for
// references: it hands out a fresh "$refN" name the first time a slot is
// added, and reuses that name on GET_REF.
type Encoder struct {
	sb     strings.Builder
	frames []*encFrame
}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// String returns the tton source accumulated so far.
func (e *Encoder) String() string { return e.sb.String() }

func (e *Encoder) top() *encFrame {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

// beforeValue writes whatever separator belongs before the next child of
// the innermost open frame: nothing for the very first child, ": "
// between a map key and its value, ", " between successive children, or
// nothing at all when the previous call was OnAddRef labeling this same
// child.
func (e *Encoder) beforeValue() {
	top := e.top()
	if top == nil {
		return
	}
	if top.suppressComma {
		top.suppressComma = false
		top.needComma = true
		return
	}
	if top.kind == encMap && top.mapKeyPending {
		e.sb.WriteString(": ")
		return
	}
	if top.kind == encSeed && top.seedKeyPending {
		e.sb.WriteString(": ")
		return
	}
	if top.needComma {
		e.sb.WriteString(", ")
	}
	top.needComma = true
}

// deliverOne registers that one child has just been fully written to the
// innermost frame, cascading upward through any frame that completes as
// a result — the text-rendering analogue of object.Builder.deliver.
func (e *Encoder) deliverOne() error {
	for {
		top := e.top()
		if top == nil {
			return nil
		}
		switch top.kind {
		case encMap:
			if !top.mapKeyPending {
				top.mapKeyPending = true
				return nil
			}
			top.mapKeyPending = false
			top.received++
		case encSeed:
			if !top.seedHeaderSeen {
				top.seedHeaderSeen = true
				e.sb.WriteByte('(')
				top.needComma = false
				top.received++
			} else if !top.seedKeyPending {
				// Just wrote a field's key; wait for its value before
				// counting the pair as received, mirroring encMap.
				top.seedKeyPending = true
				top.received++
				return nil
			} else {
				top.seedKeyPending = false
				top.received++
			}
		default: // array, struct
			top.received++
		}
		if top.received < top.expected {
			return nil
		}
		e.writeClose(top)
		e.frames = e.frames[:len(e.frames)-1]
	}
}

func (e *Encoder) writeClose(f *encFrame) {
	switch f.kind {
	case encArray:
		e.sb.WriteByte(']')
	case encMap:
		e.sb.WriteByte('}')
	case encSeed, encStruct:
		e.sb.WriteByte(')')
	}
}

// afterBegin closes the frame just pushed if it expects no children (an
// empty array, map or struct) and then counts that finished composite as
// one child of the enclosing frame. A seed frame always expects at least
// its header, so OnBeginSeed does not call it.
func (e *Encoder) afterBegin() {
	top := e.top()
	if top == nil || top.received < top.expected {
		return
	}
	e.writeClose(top)
	e.frames = e.frames[:len(e.frames)-1]
	e.deliverOne()
}

func (e *Encoder) OnInvalidInstruction(opcode byte) error {
	return fmt.Errorf("text: cannot encode invalid instruction 0x%02x", opcode)
}

func (e *Encoder) OnInt(v *big.Int) error {
	e.beforeValue()
	e.sb.WriteString(v.String())
	return e.deliverOne()
}

func (e *Encoder) OnSingleton(v any) error {
	e.beforeValue()
	switch v {
	case nil:
		e.sb.WriteString("%n")
	case true:
		e.sb.WriteString("%t")
	case false:
		e.sb.WriteString("%f")
	default:
		return fmt.Errorf("text: %v is not a singleton", v)
	}
	return e.deliverOne()
}

func (e *Encoder) OnFloat(v float64) error {
	e.beforeValue()
	text := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eEnIN") {
		// A whole-number float ("2") would otherwise lex back as an
		// int; force a decimal point so it round-trips as a float.
		text += ".0"
	}
	e.sb.WriteString(text)
	return e.deliverOne()
}

func (e *Encoder) OnID(v [16]byte) error {
	e.beforeValue()
	i := 0
	for i < 15 && v[i] == 0 {
		i++
	}
	e.sb.WriteByte('&')
	e.sb.WriteString(hex.EncodeToString(v[i:]))
	return e.deliverOne()
}

func (e *Encoder) OnString(data []byte, encoding string) error {
	e.beforeValue()
	e.sb.WriteByte('"')
	for _, r := range string(data) {
		switch r {
		case '"':
			e.sb.WriteString(`\"`)
		case '\\':
			e.sb.WriteString(`\\`)
		case '\n':
			e.sb.WriteString(`\n`)
		case '\t':
			e.sb.WriteString(`\t`)
		default:
			e.sb.WriteRune(r)
		}
	}
	e.sb.WriteByte('"')
	return e.deliverOne()
}

func (e *Encoder) OnBlob(data []byte) error {
	e.beforeValue()
	e.sb.WriteString("%x[")
	e.sb.WriteString(hex.EncodeToString(data))
	e.sb.WriteByte(']')
	return e.deliverOne()
}

func (e *Encoder) OnBeginArray(length int) error {
	e.beforeValue()
	e.sb.WriteByte('[')
	e.frames = append(e.frames, &encFrame{kind: encArray, expected: length})
	e.afterBegin()
	return nil
}

func (e *Encoder) OnBeginMap(length int) error {
	e.beforeValue()
	e.sb.WriteByte('{')
	e.frames = append(e.frames, &encFrame{kind: encMap, expected: length})
	e.afterBegin()
	return nil
}

func (e *Encoder) OnBeginSeed(fieldCount int) error {
	e.beforeValue()
	e.sb.WriteByte('@')
	// expected counts the header plus two children (key, value) per
	// field: the header is itself the seed's first child on the wire,
	// and each field arrives as its key followed by its value.
	e.frames = append(e.frames, &encFrame{kind: encSeed, expected: 1 + 2*fieldCount})
	return nil
}

func (e *Encoder) OnBeginStruct(tags []uint32) error {
	e.beforeValue()
	e.sb.WriteString("%s[")
	for i, t := range tags {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.sb.WriteString(strconv.FormatUint(uint64(t), 10))
	}
	e.sb.WriteString("](")
	e.frames = append(e.frames, &encFrame{kind: encStruct, expected: len(tags)})
	e.afterBegin()
	return nil
}

func (e *Encoder) OnAddRef(slot int) error {
	e.beforeValue()
	e.sb.WriteByte('$')
	e.sb.WriteString(refName(slot))
	e.sb.WriteByte(':')
	if top := e.top(); top != nil {
		top.suppressComma = true
	}
	return nil
}

func (e *Encoder) OnGetRef(resolved int) error {
	e.beforeValue()
	e.sb.WriteByte('$')
	e.sb.WriteString(refName(resolved))
	return e.deliverOne()
}

func refName(slot int) string { return "ref" + strconv.Itoa(slot) }
