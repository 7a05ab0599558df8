// Package graph builds the dependency graph the Inspector checks: one
// node per (enclosing type, dependency name), plus the parent-chain
// index and the build-edge index pairs the acyclicity check walks for
// cycle detection.
package graph

import (
	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/wtype"
)

// Node is one dependency declared inside an injectable type.
type Node struct {
	Owner      *ast.TypeDeclaration
	File       string
	Dependency ast.Dependency
}

type nodeKey struct {
	owner *ast.TypeDeclaration
	name  string
}

// Edge is a build-dependency index pair: From's builder closure depends
// on To.
type Edge struct {
	From int
	To   int
}

// Graph is the derived structure the Inspector walks. It holds no
// independent state beyond what Build computed from the AST.
type Graph struct {
	Nodes   []Node
	Edges   []Edge
	index   map[nodeKey]int
	parents map[*ast.TypeDeclaration][]*ast.TypeDeclaration
	byName  map[string][]*ast.TypeDeclaration
}

// NodeIndex returns the index of the node for (owner, name), or -1.
func (g *Graph) NodeIndex(owner *ast.TypeDeclaration, name string) int {
	i, ok := g.index[nodeKey{owner, name}]
	if !ok {
		return -1
	}
	return i
}

// Ancestors returns owner's enclosing types, nearest first, up to the
// file root.
func (g *Graph) Ancestors(owner *ast.TypeDeclaration) []*ast.TypeDeclaration {
	return g.parents[owner]
}

// Build walks one or more files (a project, per the multi-file
// generalization of the single-file graph definition) and derives the
// node list, parent-chain index and build edges.
func Build(files []*ast.File) *Graph {
	g := &Graph{
		index:   map[nodeKey]int{},
		parents: map[*ast.TypeDeclaration][]*ast.TypeDeclaration{},
		byName:  map[string][]*ast.TypeDeclaration{},
	}

	for _, f := range files {
		for _, t := range f.Types {
			if decl, ok := t.(*ast.TypeDeclaration); ok {
				g.walk(decl, nil, f.Path)
			}
		}
	}
	g.buildEdges()
	return g
}

func (g *Graph) walk(t *ast.TypeDeclaration, ancestors []*ast.TypeDeclaration, file string) {
	g.parents[t] = ancestors
	g.byName[t.Name()] = append(g.byName[t.Name()], t)

	for _, dep := range t.Dependencies() {
		key := nodeKey{t, dep.DependencyName()}
		g.index[key] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Owner: t, File: file, Dependency: dep})
	}

	childAncestors := append([]*ast.TypeDeclaration{t}, ancestors...)
	for _, nested := range t.NestedTypes() {
		g.walk(nested, childAncestors, file)
	}
}

// buildEdges derives build-graph edges for the acyclicity check. Two
// sources contribute: reference-kind siblings declared in the same type
// body, and cross-type edges through a
// registration's concrete type, needed for the build graph to see a
// cycle that only shows up once two registrations' concrete types are
// resolved to each other's declaring types.
func (g *Graph) buildEdges() {
	for fromIdx, n := range g.Nodes {
		reg, ok := n.Dependency.(*ast.RegisterAnnotation)
		if !ok {
			continue
		}

		// A registration's builder closure may forward a sibling reference
		// obligation to its own caller, so it is treated as depending on
		// every reference declared alongside it. Sibling registrations are
		// NOT linked this way: two registrations merely co-declared in the
		// same type body do not depend on each other absent any concrete-
		// type relationship between them (handled below), and treating
		// bare co-declaration as a dependency edge would flag every type
		// with two or more registrations as cyclic.
		for _, sibling := range n.Owner.Dependencies() {
			if sibling.DependencyKind() != wtype.Reference {
				continue
			}
			if toIdx := g.NodeIndex(n.Owner, sibling.DependencyName()); toIdx >= 0 {
				g.Edges = append(g.Edges, Edge{From: fromIdx, To: toIdx})
			}
		}

		named, ok := reg.Concrete.(wtype.NamedType)
		if !ok {
			continue
		}
		for _, target := range g.byName[named.Name] {
			if target == n.Owner {
				continue
			}
			for _, td := range target.Dependencies() {
				if td.DependencyKind() != wtype.Registration {
					continue
				}
				if toIdx := g.NodeIndex(target, td.DependencyName()); toIdx >= 0 {
					g.Edges = append(g.Edges, Edge{From: fromIdx, To: toIdx})
				}
			}
		}
	}
}
