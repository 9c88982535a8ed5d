// Package schema implements a purely diagnostic registry mapping a seed
// header's content hash to a caller-registered template name. It never
// participates in encoding, decoding or validation: a seed with an
// unregistered header decodes exactly as one with a registered header
// would. It exists so tooling (planktonctl dump, logging) can show
// "Point3D" instead of a raw header value when the caller has told it
// what that header means.
package schema

import (
	"hash/fnv"
	"sync"
)

// A Registry maps content hashes of a seed header's tton rendering to a
// human-readable template name.
type Registry struct {
	mu    sync.RWMutex
	names map[uint64]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[uint64]string)}
}

// HashHeader returns the FNV-1a hash of a seed header's canonical tton
// text, the key this registry is indexed by.
func HashHeader(headerText string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(headerText))
	return h.Sum64()
}

// Register associates name with the seed headers whose canonical text is
// headerText, overwriting any previous registration for that header.
func (r *Registry) Register(headerText, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[HashHeader(headerText)] = name
}

// Lookup returns the template name registered for headerText, if any.
func (r *Registry) Lookup(headerText string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[HashHeader(headerText)]
	return name, ok
}
