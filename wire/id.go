package wire

// IDWidth returns the number of trailing bytes (2, 4, 8 or 16) the wire
// format uses to represent id, per the id-width selection rule: treat the
// 16 bytes as a 128-bit big-endian unsigned integer v, and emit Id128 if
// v >= 2**64, Id64 if v >= 2**32, Id32 if v >= 2**16, else Id16.
func IDWidth(id [16]byte) int {
	switch {
	case anyNonZero(id[0:8]):
		return 16
	case anyNonZero(id[8:12]):
		return 8
	case anyNonZero(id[12:14]):
		return 4
	default:
		return 2
	}
}

func anyNonZero(bs []byte) bool {
	for _, b := range bs {
		if b != 0 {
			return true
		}
	}
	return false
}

// TrimID returns the least-significant width bytes of id.
func TrimID(id [16]byte, width int) []byte {
	return id[16-width:]
}

// PadID left-pads data with zero bytes to reconstruct a full 16-byte id.
func PadID(data []byte) [16]byte {
	var id [16]byte
	copy(id[16-len(data):], data)
	return id
}
