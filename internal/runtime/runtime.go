// Package runtime is the contract the generated code targets: the
// BuilderStore/InstanceCache pair the Inspector's scope rules are
// checked against, plus the InstanceKey identity both use.
package runtime

import (
	"strings"

	"github.com/rjchrhl/weaver/internal/wtype"
)

// InstanceKey is the sole cache identity: a declared abstract type plus
// an ordered list of parameter types. Two keys are equal iff both lists
// match element-wise.
type InstanceKey struct {
	Abstract   wtype.AbstractType
	Parameters []wtype.CompositeType
}

// NewInstanceKey builds a key, accepting zero or more parameter types in
// call order.
func NewInstanceKey(abstract wtype.CompositeType, parameters ...wtype.CompositeType) InstanceKey {
	return InstanceKey{Abstract: wtype.AbstractType{Type: abstract}, Parameters: parameters}
}

// Equal reports structural identity.
func (k InstanceKey) Equal(other InstanceKey) bool {
	if !wtype.Equal(k.Abstract.Type, other.Abstract.Type) {
		return false
	}
	if len(k.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range k.Parameters {
		if !wtype.Equal(k.Parameters[i], other.Parameters[i]) {
			return false
		}
	}
	return true
}

// Hash is a string digest suitable for map-keying InstanceKey in a
// BuilderStore/InstanceCache backed by a plain Go map: two equal keys
// (by Equal) always produce the same Hash, satisfying the
// hash(k1)==hash(k2) ⟺ k1==k2 property required of the cache key.
func (k InstanceKey) Hash() string {
	var b strings.Builder
	b.WriteString(wtype.Render(k.Abstract.Type))
	for _, p := range k.Parameters {
		b.WriteByte('|')
		b.WriteString(wtype.Render(p))
	}
	return b.String()
}

// Builder constructs one instance. It receives a Resolver handle rather
// than a reference to the owning Container so the closure never retains
// the container that stores it.
type Builder func(r Resolver) any

// entry pairs a scope with the builder that was registered for it.
type entry struct {
	scope   wtype.Scope
	builder Builder
}

// BuilderStore maps InstanceKey to (scope, builder). A store may chain
// to a parent store so a lookup for a key registered on an ancestor
// container still succeeds.
type BuilderStore struct {
	parent  *BuilderStore
	entries map[string]entry
}

// NewBuilderStore creates a store, optionally chained to parent.
func NewBuilderStore(parent *BuilderStore) *BuilderStore {
	return &BuilderStore{parent: parent, entries: map[string]entry{}}
}

// Set registers a builder for key under scope.
func (s *BuilderStore) Set(key InstanceKey, scope wtype.Scope, builder Builder) {
	s.entries[key.Hash()] = entry{scope: scope, builder: builder}
}

// Get looks up key, traversing parent stores on a local miss.
func (s *BuilderStore) Get(key InstanceKey) (wtype.Scope, Builder, bool) {
	if e, ok := s.entries[key.Hash()]; ok {
		return e.scope, e.builder, true
	}
	if s.parent != nil {
		return s.parent.Get(key)
	}
	return 0, nil, false
}
