package value

// A Seed is the wire format's self-describing class-instance shape: a
// header value (typically identifying the intended type, often an ID or a
// string) followed by an ordered sequence of (key, value) field pairs.
// Unlike Struct, a seed's fields are labeled by arbitrary values rather
// than small integer tags, and the header is itself a full plankton
// value rather than a fixed-width class tag. Fields stores the pairs
// flattened: key, value, key, value, ... in wire order, matching how the
// builder and traverser deliver/emit them one at a time.
type Seed struct {
	Header any
	Fields []any
}

// NewSeed returns a headerless Seed with room for n flattened field
// entries (2 per key/value pair). The header is filled in separately via
// SetHeader once it has been decoded, since on the wire the header is
// itself a full value that follows the SEED opcode rather than an
// argument to it.
func NewSeed(n int) *Seed {
	return &Seed{Fields: make([]any, 0, n)}
}

// SetHeader assigns the seed's header value.
func (s *Seed) SetHeader(header any) { s.Header = header }
