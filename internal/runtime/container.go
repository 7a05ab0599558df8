package runtime

import "github.com/rjchrhl/weaver/internal/wtype"

// cacheState is the explicit Empty/Building/Built/Released state
// machine a persistently cached instance moves through. It backs the
// container, lazy and weak scopes; transient and graph values never
// enter it.
type cacheState int

const (
	stateEmpty cacheState = iota
	stateBuilding
	stateBuilt
	stateReleased
)

type cacheEntry struct {
	state    cacheState
	value    any
	refCount int // only meaningful for Weak
}

// Resolver is the non-owning handle passed into a Builder so it may
// resolve its own dependencies without the generated closure holding a
// reference back into the Container that stores it.
type Resolver interface {
	Resolve(key InstanceKey) (any, bool)
}

// Container owns a BuilderStore and the InstanceCache entries for its
// container/weak/lazy-scoped instances. Graph-scoped instances live
// only for the duration of the outermost active Resolve call.
type Container struct {
	store      *BuilderStore
	persistent map[string]*cacheEntry
	graphDepth int
	graphCache map[string]any
}

// NewContainer creates a container over store. To chain lookups for
// scope `container` resolved at an ancestor, create store with
// NewBuilderStore(parentStore).
func NewContainer(store *BuilderStore) *Container {
	return &Container{store: store, persistent: map[string]*cacheEntry{}}
}

// Store exposes the backing BuilderStore so generated construction code
// can Register before any Resolve call.
func (c *Container) Store() *BuilderStore { return c.store }

// Register sets a builder for key under scope on this container's store.
func (c *Container) Register(key InstanceKey, scope wtype.Scope, builder Builder) {
	c.store.Set(key, scope, builder)
}

// Resolve computes the value for key, following the scope semantics
// registered for it. The first call on the current call chain opens the
// graph scope; graph-scoped values are released when that outermost
// call returns.
func (c *Container) Resolve(key InstanceKey) (any, bool) {
	scope, builder, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}

	outermost := c.graphDepth == 0
	if outermost {
		c.graphCache = map[string]any{}
	}
	c.graphDepth++
	defer func() {
		c.graphDepth--
		if c.graphDepth == 0 {
			c.graphCache = nil
		}
	}()

	return c.materialize(key, scope, builder), true
}

func (c *Container) materialize(key InstanceKey, scope wtype.Scope, builder Builder) any {
	hash := key.Hash()
	handle := &containerHandle{c}

	switch scope {
	case wtype.Transient:
		return builder(handle)

	case wtype.Graph:
		if v, ok := c.graphCache[hash]; ok {
			return v
		}
		v := builder(handle)
		c.graphCache[hash] = v
		return v

	case wtype.Container, wtype.Lazy:
		e, ok := c.persistent[hash]
		if !ok {
			e = &cacheEntry{state: stateEmpty}
			c.persistent[hash] = e
		}
		if e.state == stateBuilt {
			return e.value
		}
		e.state = stateBuilding
		e.value = builder(handle)
		e.state = stateBuilt
		return e.value

	case wtype.Weak:
		e, ok := c.persistent[hash]
		if !ok || e.state == stateReleased || e.state == stateEmpty {
			if !ok {
				e = &cacheEntry{state: stateEmpty}
				c.persistent[hash] = e
			}
			e.state = stateBuilding
			e.value = builder(handle)
			e.state = stateBuilt
		}
		e.refCount++
		return e.value

	default:
		return builder(handle)
	}
}

// ReleaseWeak drops one strong holder of a weak-scoped instance. When
// the count reaches zero the cached value is dropped and the next
// Resolve for key rebuilds it.
func (c *Container) ReleaseWeak(key InstanceKey) {
	e, ok := c.persistent[key.Hash()]
	if !ok || e.state != stateBuilt {
		return
	}
	e.refCount--
	if e.refCount <= 0 {
		e.state = stateReleased
		e.value = nil
	}
}

// containerHandle is the concrete Resolver Builder closures receive. It
// is a separate type from *Container so a builder's dependency on its
// container is visible at the type level as "resolver only" — it can
// resolve further dependencies but can't reach container internals.
type containerHandle struct {
	c *Container
}

func (h *containerHandle) Resolve(key InstanceKey) (any, bool) {
	return h.c.Resolve(key)
}
