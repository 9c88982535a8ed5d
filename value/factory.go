package value

import "math/big"

// A DataFactory builds Go values for composites as the object decoder
// encounters them. The default factory (DefaultFactory) produces the
// types in this package (*OrderedMap, *Seed, *Struct, []any); callers
// with their own domain types can supply a DataFactory that builds those
// instead, the same role _object.py's DefaultDataFactory plays for the
// Python reference decoder.
type DataFactory interface {
	NewInt(v *big.Int) (any, error)
	NewFloat(v float64) (any, error)
	NewID(v ID) (any, error)
	NewString(data []byte, encoding string) (any, error)
	NewBlob(data []byte) (any, error)

	NewArray(length int) (any, error)
	SetArrayItem(arr any, index int, item any) error

	NewMap(length int) (any, error)
	SetMapItem(m any, key, value any) error

	// NewSeed allocates a seed that will receive fieldCount (key, value)
	// pairs; AddSeedField is called 2*fieldCount times, once per key and
	// once per value, in wire order.
	NewSeed(fieldCount int) (any, error)
	SetSeedHeader(seed any, header any) error
	AddSeedField(seed any, value any) error

	NewStruct(tags []uint32) (any, error)
	AddStructField(s any, value any) error
}

// DefaultFactory builds the plain value package types: []any for arrays,
// *OrderedMap for maps, *Seed and *Struct for the two composite-class
// shapes. Small integers are narrowed to int64 when they fit, matching
// the ergonomics of working with ordinary Go ints; everything else stays
// a *big.Int.
type DefaultFactory struct{}

func (DefaultFactory) NewInt(v *big.Int) (any, error) {
	if v.IsInt64() {
		return v.Int64(), nil
	}
	return new(big.Int).Set(v), nil
}

func (DefaultFactory) NewFloat(v float64) (any, error) { return v, nil }

func (DefaultFactory) NewID(v ID) (any, error) { return v, nil }

func (DefaultFactory) NewString(data []byte, encoding string) (any, error) {
	return string(data), nil
}

func (DefaultFactory) NewBlob(data []byte) (any, error) {
	b := make(Blob, len(data))
	copy(b, data)
	return b, nil
}

func (DefaultFactory) NewArray(length int) (any, error) {
	return make([]any, length), nil
}

func (DefaultFactory) SetArrayItem(arr any, index int, item any) error {
	arr.([]any)[index] = item
	return nil
}

func (DefaultFactory) NewMap(length int) (any, error) {
	return NewOrderedMap(length), nil
}

func (DefaultFactory) SetMapItem(m any, key, value any) error {
	m.(*OrderedMap).Set(key, value)
	return nil
}

func (DefaultFactory) NewSeed(fieldCount int) (any, error) {
	return NewSeed(2 * fieldCount), nil
}

func (DefaultFactory) SetSeedHeader(seed any, header any) error {
	seed.(*Seed).SetHeader(header)
	return nil
}

func (DefaultFactory) AddSeedField(seed any, value any) error {
	s := seed.(*Seed)
	s.Fields = append(s.Fields, value)
	return nil
}

func (DefaultFactory) NewStruct(tags []uint32) (any, error) {
	return NewStruct(tags), nil
}

func (DefaultFactory) AddStructField(s any, value any) error {
	st := s.(*Struct)
	st.Fields = append(st.Fields, value)
	return nil
}
