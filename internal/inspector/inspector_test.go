package inspector_test

import (
	"testing"

	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/inspector"
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/werrors"
	"github.com/rjchrhl/weaver/internal/wtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func injectable(name string, access wtype.AccessLevel, children ...ast.Expr) *ast.TypeDeclaration {
	return &ast.TypeDeclaration{
		Token:    token.Token{Kind: token.InjectableType, Payload: token.InjectableTypePayload{Name: name, Access: access}},
		Children: children,
	}
}

func named(name string) wtype.CompositeType { return wtype.NamedType{Name: name} }

func TestInspect_CycleBetweenTwoRegistrations(t *testing.T) {
	a := injectable("A", wtype.AccessInternal, &ast.RegisterAnnotation{
		Name: "b", Abstract: named("B"), Concrete: named("B"), Access: wtype.AccessInternal,
	})
	b := injectable("B", wtype.AccessInternal, &ast.RegisterAnnotation{
		Name: "a", Abstract: named("A"), Concrete: named("A"), Access: wtype.AccessInternal,
	})

	files := []*ast.File{
		{Path: "a.swift", Types: []ast.Expr{a}},
		{Path: "b.swift", Types: []ast.Expr{b}},
	}

	report := inspector.Inspect(files, inspector.RejectContainerOnTransient)
	require.Error(t, report.Err)
	gerr, ok := report.Err.(*werrors.InvalidGraphError)
	require.True(t, ok)
	assert.Equal(t, werrors.CyclicDependency, gerr.Cause)
}

func TestInspect_UnresolvableReferenceWithNoRegisteringAncestor(t *testing.T) {
	leaf := injectable("Leaf", wtype.AccessInternal, &ast.ReferenceAnnotation{
		Name: "logger", Abstract: named("Logger"), Access: wtype.AccessInternal,
	})
	files := []*ast.File{{Path: "leaf.swift", Types: []ast.Expr{leaf}}}

	report := inspector.Inspect(files, inspector.RejectContainerOnTransient)
	require.Error(t, report.Err)
	gerr, ok := report.Err.(*werrors.InvalidGraphError)
	require.True(t, ok)
	assert.Equal(t, werrors.UnresolvableDependency, gerr.Cause)
	assert.Equal(t, "logger", gerr.Name)
	assert.Equal(t, "Logger", gerr.Type)
}

func TestInspect_ReferenceForwardedThroughNestedAncestors(t *testing.T) {
	leaf := injectable("Leaf", wtype.AccessInternal, &ast.ReferenceAnnotation{
		Name: "logger", Abstract: named("Logger"), Access: wtype.AccessInternal,
	})
	middle := injectable("Middle", wtype.AccessInternal, leaf, &ast.ReferenceAnnotation{
		Name: "logger", Abstract: named("Logger"), Access: wtype.AccessInternal,
	})
	app := injectable("App", wtype.AccessInternal, middle, &ast.RegisterAnnotation{
		Name: "logger", Abstract: named("Logger"), Concrete: named("ConcreteLogger"), Access: wtype.AccessInternal,
	})

	files := []*ast.File{{Path: "app.swift", Types: []ast.Expr{app}}}
	report := inspector.Inspect(files, inspector.RejectContainerOnTransient)
	assert.NoError(t, report.Err)
}

func TestInspect_AccessLevelExceedingEnclosingIsRejected(t *testing.T) {
	app := injectable("App", wtype.AccessInternal, &ast.RegisterAnnotation{
		Token: token.Token{Line: 4},
		Name:  "logger", Abstract: named("Logger"), Concrete: named("ConcreteLogger"), Access: wtype.AccessPublic,
	})
	files := []*ast.File{{Path: "app.swift", Types: []ast.Expr{app}}}

	report := inspector.Inspect(files, inspector.RejectContainerOnTransient)
	require.Error(t, report.Err)
	gerr, ok := report.Err.(*werrors.InvalidGraphError)
	require.True(t, ok)
	assert.Equal(t, werrors.UnresolvableDependency, gerr.Cause)
	assert.Equal(t, 5, gerr.Line)
}

func TestInspect_ContainerScopeDependingOnTransientSiblingIsRejected(t *testing.T) {
	app := injectable("App", wtype.AccessInternal,
		&ast.RegisterAnnotation{
			Token: token.Token{Line: 6},
			Name:  "cache", Abstract: named("Cache"), Concrete: named("ConcreteCache"), Access: wtype.AccessInternal,
			Config: []wtype.ConfigurationAttribute{{Name: "scope", Kind: wtype.AttributeScope, Scope: wtype.Container}},
		},
		&ast.RegisterAnnotation{
			Name: "request", Abstract: named("Request"), Concrete: named("ConcreteRequest"), Access: wtype.AccessInternal,
			Config: []wtype.ConfigurationAttribute{{Name: "scope", Kind: wtype.AttributeScope, Scope: wtype.Transient}},
		},
	)
	files := []*ast.File{{Path: "app.swift", Types: []ast.Expr{app}}}

	report := inspector.Inspect(files, inspector.RejectContainerOnTransient)
	require.Error(t, report.Err)
	gerr, ok := report.Err.(*werrors.InvalidGraphError)
	require.True(t, ok)
	assert.Equal(t, werrors.UnresolvableDependency, gerr.Cause)
	assert.Equal(t, 7, gerr.Line)
}

func TestInspect_GraphScopeOnTransientSiblingOnlyRejectedUnderStrictPolicy(t *testing.T) {
	app := injectable("App", wtype.AccessInternal,
		&ast.RegisterAnnotation{
			Token: token.Token{Line: 9},
			Name:  "session", Abstract: named("Session"), Concrete: named("ConcreteSession"), Access: wtype.AccessInternal,
			Config: []wtype.ConfigurationAttribute{{Name: "scope", Kind: wtype.AttributeScope, Scope: wtype.Graph}},
		},
		&ast.RegisterAnnotation{
			Name: "request", Abstract: named("Request"), Concrete: named("ConcreteRequest"), Access: wtype.AccessInternal,
			Config: []wtype.ConfigurationAttribute{{Name: "scope", Kind: wtype.AttributeScope, Scope: wtype.Transient}},
		},
	)
	files := []*ast.File{{Path: "app.swift", Types: []ast.Expr{app}}}

	lenient := inspector.Inspect(files, inspector.RejectContainerOnTransient)
	assert.NoError(t, lenient.Err)

	strict := inspector.Inspect(files, inspector.RejectGraphOnTransientToo)
	require.Error(t, strict.Err)
	gerr, ok := strict.Err.(*werrors.InvalidGraphError)
	require.True(t, ok)
	assert.Equal(t, werrors.UnresolvableDependency, gerr.Cause)
	assert.Equal(t, 10, gerr.Line)
}
