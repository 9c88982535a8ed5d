package object

import (
	"math/big"
	"reflect"

	"github.com/creachadair/mds/mapset"
	"github.com/tundralabs/plankton/value"
	"github.com/tundralabs/plankton/wire"
)

// identityOf returns a stable key for v's underlying composite, used to
// detect shared structure. Only non-nil pointers and maps and non-empty
// slices have one; everything else is never shared in the sense this
// package cares about. A zero-length []any has no identity, so an empty
// array reachable twice is emitted twice and never as a reference.
func identityOf(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

func asBigInt(v any) *big.Int {
	switch n := v.(type) {
	case *big.Int:
		return n
	case int:
		return big.NewInt(int64(n))
	case int8:
		return big.NewInt(int64(n))
	case int16:
		return big.NewInt(int64(n))
	case int32:
		return big.NewInt(int64(n))
	case int64:
		return big.NewInt(n)
	case uint:
		return new(big.Int).SetUint64(uint64(n))
	case uint8:
		return big.NewInt(int64(n))
	case uint16:
		return big.NewInt(int64(n))
	case uint32:
		return big.NewInt(int64(n))
	case uint64:
		return new(big.Int).SetUint64(n)
	default:
		return big.NewInt(0)
	}
}

func asFloat(v any) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	default:
		return 0
	}
}

// emitLeaf drives visitor with the non-composite kinds; it returns
// (handled, err). Composite kinds (array/map/seed/struct) are handled by
// the caller, since tree and graph traversal disagree on how to emit them.
func emitLeaf(classifier value.Classifier, visitor wire.Visitor, v any) (bool, error) {
	switch classifier.Classify(v) {
	case value.KindNull:
		return true, visitor.OnSingleton(nil)
	case value.KindBool:
		return true, visitor.OnSingleton(v.(bool))
	case value.KindInt:
		return true, visitor.OnInt(asBigInt(v))
	case value.KindFloat:
		return true, visitor.OnFloat(asFloat(v))
	case value.KindID:
		return true, visitor.OnID([16]byte(v.(value.ID)))
	case value.KindString:
		return true, visitor.OnString([]byte(v.(string)), "")
	case value.KindBlob:
		return true, visitor.OnBlob([]byte(v.(value.Blob)))
	default:
		return false, nil
	}
}

// A TreeTraverser emits a wire.Visitor stream for v, treating v as a
// tree: every composite is emitted exactly where it is encountered, with
// no ADD_REF/GET_REF bookkeeping. If the same composite identity is
// reachable more than once, it fails with SharedStructureDetected rather
// than silently duplicating or miscoding the structure.
type TreeTraverser struct {
	Classifier value.Classifier
	seen       mapset.Set[uintptr]
}

// NewTreeTraverser returns a TreeTraverser using classifier. A nil
// classifier uses value.DefaultClassifier.
func NewTreeTraverser(classifier value.Classifier) *TreeTraverser {
	if classifier == nil {
		classifier = value.DefaultClassifier{}
	}
	return &TreeTraverser{Classifier: classifier, seen: mapset.New[uintptr]()}
}

// Walk emits v into visitor.
func (t *TreeTraverser) Walk(v any, visitor wire.Visitor) error {
	if handled, err := emitLeaf(t.Classifier, visitor, v); handled || err != nil {
		return err
	}
	if id, ok := identityOf(v); ok {
		if t.seen.Has(id) {
			return SharedStructureDetected{}
		}
		t.seen.Add(id)
	}
	switch t.Classifier.Classify(v) {
	case value.KindArray:
		arr := v.([]any)
		if err := visitor.OnBeginArray(len(arr)); err != nil {
			return err
		}
		for _, item := range arr {
			if err := t.Walk(item, visitor); err != nil {
				return err
			}
		}
		return nil
	case value.KindMap:
		m := v.(*value.OrderedMap)
		if err := visitor.OnBeginMap(m.Len()); err != nil {
			return err
		}
		var walkErr error
		m.Range(func(k, val any) bool {
			if walkErr = t.Walk(k, visitor); walkErr != nil {
				return false
			}
			if walkErr = t.Walk(val, visitor); walkErr != nil {
				return false
			}
			return true
		})
		return walkErr
	case value.KindSeed:
		s := v.(*value.Seed)
		// s.Fields is a flat (key, value, key, value, ...) sequence; the
		// wire's field count is the number of pairs, not of entries.
		if err := visitor.OnBeginSeed(len(s.Fields) / 2); err != nil {
			return err
		}
		if err := t.Walk(s.Header, visitor); err != nil {
			return err
		}
		for _, f := range s.Fields {
			if err := t.Walk(f, visitor); err != nil {
				return err
			}
		}
		return nil
	case value.KindStruct:
		st := v.(*value.Struct)
		if err := visitor.OnBeginStruct(st.Tags); err != nil {
			return err
		}
		for _, f := range st.Fields {
			if err := t.Walk(f, visitor); err != nil {
				return err
			}
		}
		return nil
	default:
		return UnclassifiableValueError{Value: v}
	}
}

// A GraphTraverser emits a wire.Visitor stream for v, treating v as a
// graph: it runs a discovery pass to find every composite identity
// reachable more than once, then an emit pass that inserts ADD_REF before
// the first occurrence of each such identity and GET_REF at every
// subsequent occurrence, in place of re-emitting the structure.
type GraphTraverser struct {
	Classifier value.Classifier

	seenOnce  mapset.Set[uintptr]
	seenTwice mapset.Set[uintptr]
	slotOf    map[uintptr]int
	nextSlot  int
}

// NewGraphTraverser returns a GraphTraverser using classifier. A nil
// classifier uses value.DefaultClassifier.
func NewGraphTraverser(classifier value.Classifier) *GraphTraverser {
	if classifier == nil {
		classifier = value.DefaultClassifier{}
	}
	return &GraphTraverser{
		Classifier: classifier,
		seenOnce:   mapset.New[uintptr](),
		seenTwice:  mapset.New[uintptr](),
		slotOf:     make(map[uintptr]int),
	}
}

// Walk emits v into visitor.
func (g *GraphTraverser) Walk(v any, visitor wire.Visitor) error {
	g.discover(v)
	return g.emit(v, visitor)
}

func (g *GraphTraverser) discover(v any) {
	if _, handled := classifyComposite(g.Classifier, v); !handled {
		return
	}
	if id, ok := identityOf(v); ok {
		if g.seenOnce.Has(id) {
			g.seenTwice.Add(id)
			return // already expanded once; don't recurse into it again
		}
		g.seenOnce.Add(id)
	}
	switch g.Classifier.Classify(v) {
	case value.KindArray:
		for _, item := range v.([]any) {
			g.discover(item)
		}
	case value.KindMap:
		v.(*value.OrderedMap).Range(func(k, val any) bool {
			g.discover(k)
			g.discover(val)
			return true
		})
	case value.KindSeed:
		s := v.(*value.Seed)
		g.discover(s.Header)
		for _, f := range s.Fields {
			g.discover(f)
		}
	case value.KindStruct:
		for _, f := range v.(*value.Struct).Fields {
			g.discover(f)
		}
	}
}

func classifyComposite(c value.Classifier, v any) (value.Kind, bool) {
	switch k := c.Classify(v); k {
	case value.KindArray, value.KindMap, value.KindSeed, value.KindStruct:
		return k, true
	default:
		return k, false
	}
}

func (g *GraphTraverser) emit(v any, visitor wire.Visitor) error {
	if handled, err := emitLeaf(g.Classifier, visitor, v); handled || err != nil {
		return err
	}
	id, hasIdentity := identityOf(v)
	if hasIdentity && g.seenTwice.Has(id) {
		if slot, ok := g.slotOf[id]; ok {
			return visitor.OnGetRef(slot)
		}
		slot := g.nextSlot
		g.nextSlot++
		g.slotOf[id] = slot
		if err := visitor.OnAddRef(slot); err != nil {
			return err
		}
	}
	switch g.Classifier.Classify(v) {
	case value.KindArray:
		arr := v.([]any)
		if err := visitor.OnBeginArray(len(arr)); err != nil {
			return err
		}
		for _, item := range arr {
			if err := g.emit(item, visitor); err != nil {
				return err
			}
		}
		return nil
	case value.KindMap:
		m := v.(*value.OrderedMap)
		if err := visitor.OnBeginMap(m.Len()); err != nil {
			return err
		}
		var walkErr error
		m.Range(func(k, val any) bool {
			if walkErr = g.emit(k, visitor); walkErr != nil {
				return false
			}
			if walkErr = g.emit(val, visitor); walkErr != nil {
				return false
			}
			return true
		})
		return walkErr
	case value.KindSeed:
		s := v.(*value.Seed)
		if err := visitor.OnBeginSeed(len(s.Fields) / 2); err != nil {
			return err
		}
		if err := g.emit(s.Header, visitor); err != nil {
			return err
		}
		for _, f := range s.Fields {
			if err := g.emit(f, visitor); err != nil {
				return err
			}
		}
		return nil
	case value.KindStruct:
		st := v.(*value.Struct)
		if err := visitor.OnBeginStruct(st.Tags); err != nil {
			return err
		}
		for _, f := range st.Fields {
			if err := g.emit(f, visitor); err != nil {
				return err
			}
		}
		return nil
	default:
		return UnclassifiableValueError{Value: v}
	}
}
