// Package ast defines the typed tree the Parser builds from a token
// stream: a File of nested TypeDeclarations, each carrying the
// dependency annotations and configuration attributes declared on it.
package ast

import (
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/wtype"
)

// Expr is any node in the tree. The unexported marker method keeps the
// union closed to this package, the same way wtype.CompositeType does.
type Expr interface {
	isExpr()
}

// File is the root of one source unit: its top-level injectable types
// plus the import paths collected along the way.
type File struct {
	Path    string
	Types   []Expr
	Imports []string
}

func (*File) isExpr() {}

// TypeDeclaration is an injectable class/struct, or a non-injectable
// enum/extension that merely hosts nested injectable types. Children
// holds both nested TypeDeclarations and this type's own dependency
// annotations, in document order; Config holds attributes declared
// directly on the type (no Target).
type TypeDeclaration struct {
	Token    token.Token
	Children []Expr
	Config   []wtype.ConfigurationAttribute
}

func (*TypeDeclaration) isExpr() {}

// Injectable reports whether this declaration can itself be resolved
// (an InjectableType token), as opposed to a bare container like an
// enum or extension (an AnyDeclaration token).
func (t *TypeDeclaration) Injectable() bool {
	return t.Token.Kind == token.InjectableType
}

// Name returns the declared type's identifier regardless of which
// payload kind backs the token.
func (t *TypeDeclaration) Name() string {
	switch p := t.Token.Payload.(type) {
	case token.InjectableTypePayload:
		return p.Name
	case token.AnyDeclarationPayload:
		return p.Name
	default:
		return ""
	}
}

// Access returns the declaration's own access level, already resolved
// against its enclosing type by the Lexer.
func (t *TypeDeclaration) Access() wtype.AccessLevel {
	switch p := t.Token.Payload.(type) {
	case token.InjectableTypePayload:
		return p.Access
	case token.AnyDeclarationPayload:
		return p.Access
	default:
		return wtype.AccessInternal
	}
}

// RegisterAnnotation is a `@Weaver` dependency: the enclosing type
// builds the concrete instance itself.
type RegisterAnnotation struct {
	Token    token.Token
	Name     string
	Abstract wtype.CompositeType
	Concrete wtype.CompositeType
	Access   wtype.AccessLevel
	Config   []wtype.ConfigurationAttribute
}

func (*RegisterAnnotation) isExpr() {}

// ReferenceAnnotation is a `@Weaver(.reference)` dependency: resolved
// from an ancestor's registration, never built locally.
type ReferenceAnnotation struct {
	Token    token.Token
	Name     string
	Abstract wtype.CompositeType
	Access   wtype.AccessLevel
	Config   []wtype.ConfigurationAttribute
}

func (*ReferenceAnnotation) isExpr() {}

// ParameterAnnotation is a `@WeaverP<n>` dependency: supplied by the
// caller of the generated builder rather than resolved from the graph.
type ParameterAnnotation struct {
	Token      token.Token
	Name       string
	Abstract   wtype.CompositeType
	ParamCount int
	Access     wtype.AccessLevel
	Config     []wtype.ConfigurationAttribute
}

func (*ParameterAnnotation) isExpr() {}

// Dependency is the shared view of the three annotation kinds above,
// used by the Inspector and Generator wherever the specific kind does
// not matter.
type Dependency interface {
	Expr
	DependencyName() string
	DependencyAbstract() wtype.CompositeType
	DependencyAccess() wtype.AccessLevel
	DependencyKind() wtype.DependencyKind
	DependencyConfig() []wtype.ConfigurationAttribute
}

func (r *RegisterAnnotation) DependencyName() string                  { return r.Name }
func (r *RegisterAnnotation) DependencyAbstract() wtype.CompositeType { return r.Abstract }
func (r *RegisterAnnotation) DependencyAccess() wtype.AccessLevel     { return r.Access }
func (r *RegisterAnnotation) DependencyKind() wtype.DependencyKind    { return wtype.Registration }
func (r *RegisterAnnotation) DependencyConfig() []wtype.ConfigurationAttribute {
	return r.Config
}

func (r *ReferenceAnnotation) DependencyName() string                  { return r.Name }
func (r *ReferenceAnnotation) DependencyAbstract() wtype.CompositeType { return r.Abstract }
func (r *ReferenceAnnotation) DependencyAccess() wtype.AccessLevel     { return r.Access }
func (r *ReferenceAnnotation) DependencyKind() wtype.DependencyKind    { return wtype.Reference }
func (r *ReferenceAnnotation) DependencyConfig() []wtype.ConfigurationAttribute {
	return r.Config
}

func (p *ParameterAnnotation) DependencyName() string                  { return p.Name }
func (p *ParameterAnnotation) DependencyAbstract() wtype.CompositeType { return p.Abstract }
func (p *ParameterAnnotation) DependencyAccess() wtype.AccessLevel     { return p.Access }
func (p *ParameterAnnotation) DependencyKind() wtype.DependencyKind    { return wtype.Parameter }
func (p *ParameterAnnotation) DependencyConfig() []wtype.ConfigurationAttribute {
	return p.Config
}

// Dependencies returns this declaration's own dependency children, in
// document order, skipping nested TypeDeclarations.
func (t *TypeDeclaration) Dependencies() []Dependency {
	var deps []Dependency
	for _, c := range t.Children {
		if d, ok := c.(Dependency); ok {
			deps = append(deps, d)
		}
	}
	return deps
}

// NestedTypes returns this declaration's nested TypeDeclaration
// children, in document order.
func (t *TypeDeclaration) NestedTypes() []*TypeDeclaration {
	var nested []*TypeDeclaration
	for _, c := range t.Children {
		if d, ok := c.(*TypeDeclaration); ok {
			nested = append(nested, d)
		}
	}
	return nested
}
