package wire

// Opcodes. Several opcodes denote the same semantic kind with an implicit
// short length, so the handler table below has more entries than there
// are distinct value kinds.
const (
	IntLit0Tag = 0x00
	IntLit1Tag = 0x01
	IntLit2Tag = 0x02
	// 0x03..0x05 are the literal ints 3..5 (IntLit0Tag + n); 0x06 and
	// 0x07 are invalid.
	IntPosTag  = 0x08
	IntNegTag  = 0x09
	IntLitM3Tag = 0x0d
	IntLitM2Tag = 0x0e
	IntLitM1Tag = 0x0f

	SingletonNullTag  = 0x10
	SingletonTrueTag  = 0x11
	SingletonFalseTag = 0x12

	ID16Tag  = 0x14
	ID32Tag  = 0x15
	ID64Tag  = 0x16
	ID128Tag = 0x17

	Float32Tag = 0x1a
	Float64Tag = 0x1b

	Array0Tag = 0x20
	Array1Tag = 0x21
	Array2Tag = 0x22
	Array3Tag = 0x23
	ArrayNTag = 0x28

	Map0Tag = 0x30
	Map1Tag = 0x31
	Map2Tag = 0x32
	Map3Tag = 0x33
	MapNTag = 0x38

	BlobNTag = 0x48

	DefaultString0Tag = 0x50
	DefaultString1Tag = 0x51
	DefaultString2Tag = 0x52
	DefaultString3Tag = 0x53
	DefaultString4Tag = 0x54
	DefaultString5Tag = 0x55
	DefaultString6Tag = 0x56
	DefaultString7Tag = 0x57
	DefaultStringNTag = 0x58

	Seed0Tag = 0x60
	Seed1Tag = 0x61
	Seed2Tag = 0x62
	Seed3Tag = 0x63
	SeedNTag = 0x68

	StructLinear0Tag = 0x80
	StructLinear1Tag = 0x81
	StructLinear2Tag = 0x82
	StructLinear3Tag = 0x83
	StructLinear4Tag = 0x84
	StructLinear5Tag = 0x85
	StructLinear6Tag = 0x86
	StructLinear7Tag = 0x87
	StructNTag       = 0x88

	AddRefTag = 0xa0
	GetRefTag = 0xa1
)

// structLinearTags holds the tag vectors implied by the STRUCT_LINEAR_k
// short forms, indexed by k (0..7).
var structLinearTags = [8][]uint32{
	{},
	{0},
	{0, 1},
	{0, 1, 2},
	{0, 1, 2, 3},
	{0, 1, 2, 3, 4},
	{0, 1, 2, 3, 4, 5},
	{0, 1, 2, 3, 4, 5, 6},
}

// linearStructTag returns the STRUCT_LINEAR_k opcode for tags, and true, if
// tags is exactly [0, 1, ..., k-1] for some k in 0..7.
func linearStructTag(tags []uint32) (byte, bool) {
	if len(tags) > 7 {
		return 0, false
	}
	for i, t := range tags {
		if t != uint32(i) {
			return 0, false
		}
	}
	return StructLinear0Tag + byte(len(tags)), true
}
