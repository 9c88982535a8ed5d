package value

import "fmt"

// An ID is a 128-bit identifier, typically used as a struct or seed class
// tag. Its wire width is chosen dynamically (2, 4, 8 or 16 bytes) based on
// magnitude; the in-memory representation is always the full 16 bytes,
// big-endian.
type ID [16]byte

// String renders id as a hex string, trimmed the same way the wire format
// trims it: leading zero bytes are dropped, but at least one hex pair is
// always shown.
func (id ID) String() string {
	i := 0
	for i < 15 && id[i] == 0 {
		i++
	}
	return fmt.Sprintf("%x", id[i:])
}

// IDFromUint64 returns the ID whose low 8 bytes equal v and whose high 8
// bytes are zero. This is the common case: small sequential or hashed
// class tags.
func IDFromUint64(v uint64) ID {
	var id ID
	for i := 0; i < 8; i++ {
		id[15-i] = byte(v >> (8 * i))
	}
	return id
}
