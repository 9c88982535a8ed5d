package wire

import "fmt"

// InvalidInstructionError is returned when the decoder meets an opcode with
// no assigned meaning.
type InvalidInstructionError struct {
	Opcode byte
}

func (e InvalidInstructionError) Error() string {
	return fmt.Sprintf("wire: invalid instruction 0x%02x", e.Opcode)
}

// UnexpectedEndError is returned when the input is exhausted in the middle
// of a value.
type UnexpectedEndError struct {
	// Reason is a short description of what was being read when the input
	// ran out, e.g. "string payload" or "opcode".
	Reason string
}

func (e UnexpectedEndError) Error() string {
	return fmt.Sprintf("wire: unexpected end of input reading %s", e.Reason)
}

// MalformedVarintError is returned when a variable-length integer does not
// terminate within the input.
type MalformedVarintError struct{}

func (e MalformedVarintError) Error() string {
	return "wire: malformed varint"
}

// InvalidReferenceError is returned when a GET_REF instruction resolves to
// a slot that has not been assigned yet.
type InvalidReferenceError struct {
	Slot int
}

func (e InvalidReferenceError) Error() string {
	return fmt.Sprintf("wire: invalid reference to slot %d", e.Slot)
}
