package runtime_test

import (
	"testing"

	"github.com/rjchrhl/weaver/internal/runtime"
	"github.com/rjchrhl/weaver/internal/wtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedKey(name string, params ...string) runtime.InstanceKey {
	paramTypes := make([]wtype.CompositeType, len(params))
	for i, p := range params {
		paramTypes[i] = wtype.NamedType{Name: p}
	}
	return runtime.NewInstanceKey(wtype.NamedType{Name: name}, paramTypes...)
}

func TestInstanceKey_EqualityAndHash(t *testing.T) {
	a := namedKey("Logger")
	b := namedKey("Logger")
	c := namedKey("Logger", "Int")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestContainer_TransientBuildsEveryResolve(t *testing.T) {
	store := runtime.NewBuilderStore(nil)
	c := runtime.NewContainer(store)
	key := namedKey("Logger")

	calls := 0
	c.Register(key, wtype.Transient, func(runtime.Resolver) any {
		calls++
		return calls
	})

	first, ok := c.Resolve(key)
	require.True(t, ok)
	second, ok := c.Resolve(key)
	require.True(t, ok)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 2, calls)
}

func TestContainer_ContainerScopeBuildsOnce(t *testing.T) {
	store := runtime.NewBuilderStore(nil)
	c := runtime.NewContainer(store)
	key := namedKey("Database")

	calls := 0
	c.Register(key, wtype.Container, func(runtime.Resolver) any {
		calls++
		return "db"
	})

	_, _ = c.Resolve(key)
	_, _ = c.Resolve(key)
	_, _ = c.Resolve(key)

	assert.Equal(t, 1, calls)
}

func TestContainer_LazyBehavesAsContainerAfterFirstBuild(t *testing.T) {
	store := runtime.NewBuilderStore(nil)
	c := runtime.NewContainer(store)
	key := namedKey("Cache")

	calls := 0
	c.Register(key, wtype.Lazy, func(runtime.Resolver) any {
		calls++
		return calls
	})

	assert.Equal(t, 0, calls)
	v1, _ := c.Resolve(key)
	v2, _ := c.Resolve(key)
	assert.Equal(t, 1, calls)
	assert.Equal(t, v1, v2)
}

func TestContainer_GraphScopeSharesWithinOneResolveChain(t *testing.T) {
	store := runtime.NewBuilderStore(nil)
	c := runtime.NewContainer(store)
	depKey := namedKey("Connection")
	rootKey := namedKey("Service")

	depCalls := 0
	c.Register(depKey, wtype.Graph, func(runtime.Resolver) any {
		depCalls++
		return depCalls
	})
	c.Register(rootKey, wtype.Transient, func(r runtime.Resolver) any {
		a, _ := r.Resolve(depKey)
		b, _ := r.Resolve(depKey)
		return []any{a, b}
	})

	result, ok := c.Resolve(rootKey)
	require.True(t, ok)
	pair := result.([]any)
	assert.Equal(t, pair[0], pair[1])
	assert.Equal(t, 1, depCalls)

	// A new outer resolve chain rebuilds the graph-scoped dependency.
	_, _ = c.Resolve(rootKey)
	assert.Equal(t, 2, depCalls)
}

func TestContainer_ParameterizedResolveCachesIndependently(t *testing.T) {
	store := runtime.NewBuilderStore(nil)
	c := runtime.NewContainer(store)
	plainKey := namedKey("Dep")
	paramKey := namedKey("Dep", "Int")

	calls := 0
	builder := func(runtime.Resolver) any {
		calls++
		return calls
	}
	c.Register(plainKey, wtype.Graph, builder)
	c.Register(paramKey, wtype.Graph, builder)

	_, _ = c.Resolve(plainKey)
	_, _ = c.Resolve(paramKey)
	assert.Equal(t, 2, calls)
	assert.False(t, plainKey.Equal(paramKey))
}

func TestContainer_WeakScopeRebuildsAfterRelease(t *testing.T) {
	store := runtime.NewBuilderStore(nil)
	c := runtime.NewContainer(store)
	key := namedKey("Session")

	calls := 0
	c.Register(key, wtype.Weak, func(runtime.Resolver) any {
		calls++
		return calls
	})

	_, _ = c.Resolve(key)
	_, _ = c.Resolve(key)
	assert.Equal(t, 1, calls)

	c.ReleaseWeak(key)
	c.ReleaseWeak(key)
	_, _ = c.Resolve(key)
	assert.Equal(t, 2, calls)
}

func TestBuilderStore_FallsBackToParent(t *testing.T) {
	parent := runtime.NewBuilderStore(nil)
	child := runtime.NewBuilderStore(parent)
	key := namedKey("Shared")

	parent.Set(key, wtype.Container, func(runtime.Resolver) any { return "from-parent" })

	scope, builder, ok := child.Get(key)
	require.True(t, ok)
	assert.Equal(t, wtype.Container, scope)
	assert.Equal(t, "from-parent", builder(nil))
}
