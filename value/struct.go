package value

// A Struct is the wire format's compact class-instance shape: a
// non-decreasing vector of field tags paired one-to-one with a sequence
// of field values. The tag vector is what makes the struct-tag nibble
// encoding (and its STRUCT_LINEAR_k short forms) possible; a Seed has no
// equivalent because its fields are labeled by arbitrary key values.
type Struct struct {
	Tags   []uint32
	Fields []any
}

// NewStruct returns a Struct with the given tag vector and room for
// len(tags) fields.
func NewStruct(tags []uint32) *Struct {
	return &Struct{Tags: tags, Fields: make([]any, 0, len(tags))}
}

// FieldCount returns the number of fields the struct declares.
func (s *Struct) FieldCount() int { return len(s.Tags) }
