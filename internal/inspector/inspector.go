// Package inspector builds the dependency graph from one or more
// parsed files and proves resolvability, acyclicity, access
// compatibility and scope monotonicity before any code is generated.
package inspector

import (
	"sort"

	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/graph"
	"github.com/rjchrhl/weaver/internal/werrors"
	"github.com/rjchrhl/weaver/internal/wtype"
)

// GraphReport is the Inspector's sole output: either ok, or the first
// error encountered (the pipeline fails fast, per the propagation
// policy shared across all stages).
type GraphReport struct {
	Graph *graph.Graph
	Err   error
}

// ScopeMonotonicityPolicy names the scope-monotonicity rejection rule
// the Inspector enforces. It lives here rather than in wconfig because
// it names a choice between two rule variants, not a driver setting;
// wconfig.Config.ScopeMonotonicity just holds one of these values.
type ScopeMonotonicityPolicy int

const (
	// RejectContainerOnTransient rejects only container/weak/lazy
	// registrations depending on a sibling transient registration.
	RejectContainerOnTransient ScopeMonotonicityPolicy = iota
	// RejectGraphOnTransientToo additionally rejects a graph-scoped
	// registration depending on a transient sibling, on the theory that a
	// graph-scoped instance can outlive the transient build it captured
	// a reference to for the remainder of the outer resolve call.
	RejectGraphOnTransientToo
)

// Inspect builds the graph for files and checks resolvability,
// acyclicity, access compatibility and scope monotonicity in order,
// using policy to decide whether scope monotonicity also rejects a
// graph-scoped registration depending on a transient sibling. The
// Inspector never mutates the AST.
func Inspect(files []*ast.File, policy ScopeMonotonicityPolicy) GraphReport {
	g := graph.Build(files)

	if err := checkResolvability(g); err != nil {
		return GraphReport{Graph: g, Err: err}
	}
	if err := checkAcyclicity(g); err != nil {
		return GraphReport{Graph: g, Err: err}
	}
	if err := checkAccess(g); err != nil {
		return GraphReport{Graph: g, Err: err}
	}
	if err := checkScopeMonotonicity(g, policy); err != nil {
		return GraphReport{Graph: g, Err: err}
	}
	return GraphReport{Graph: g}
}

// checkResolvability proves every reference has a resolving ancestor
// registration, parameter, or forwarded reference, matched by name
// first and then by type.
func checkResolvability(g *graph.Graph) error {
	for _, n := range g.Nodes {
		ref, ok := n.Dependency.(*ast.ReferenceAnnotation)
		if !ok {
			continue
		}
		if !resolves(g, n.Owner, ref.Name, ref.Abstract) {
			t := n.Dependency.(*ast.ReferenceAnnotation)
			return &werrors.InvalidGraphError{
				File: n.File, Line: t.Token.Line + 1, Name: ref.Name,
				Type: wtype.Render(ref.Abstract), Cause: werrors.UnresolvableDependency,
			}
		}
	}
	return nil
}

func resolves(g *graph.Graph, owner *ast.TypeDeclaration, name string, abstract wtype.CompositeType) bool {
	for _, ancestor := range g.Ancestors(owner) {
		for _, dep := range ancestor.Dependencies() {
			if dep.DependencyName() != name {
				continue
			}
			switch d := dep.(type) {
			case *ast.RegisterAnnotation:
				if wtype.Equal(d.Abstract, abstract) {
					return true
				}
			case *ast.ParameterAnnotation:
				if wtype.Equal(d.Abstract, abstract) {
					return true
				}
			case *ast.ReferenceAnnotation:
				if wtype.Equal(d.Abstract, abstract) {
					return true
				}
				// A same-type reference above forwards the obligation
				// (that reference is checked as a node of its own); a
				// same-name reference of another type does not match,
				// so the search continues above this ancestor.
				if resolves(g, ancestor, name, abstract) {
					return true
				}
			}
		}
	}
	return false
}

// checkAcyclicity proves the build graph is acyclic via Tarjan SCC over
// the build-edge index pairs graph.Build already derived.
func checkAcyclicity(g *graph.Graph) error {
	sccs := tarjanSCCs(len(g.Nodes), g.Edges)
	for _, scc := range sccs {
		selfLoop := len(scc) == 1 && hasSelfLoop(g.Edges, scc[0])
		if len(scc) > 1 || selfLoop {
			rep := lexicallyFirst(g, scc)
			n := g.Nodes[rep]
			return &werrors.InvalidGraphError{
				File:  n.File,
				Line:  tokenLine(n.Dependency) + 1,
				Cause: werrors.CyclicDependency,
			}
		}
	}
	return nil
}

func hasSelfLoop(edges []graph.Edge, node int) bool {
	for _, e := range edges {
		if e.From == node && e.To == node {
			return true
		}
	}
	return false
}

// lexicallyFirst picks the deterministic representative node of an SCC:
// the one with the earliest (file, line, name) ordering.
func lexicallyFirst(g *graph.Graph, scc []int) int {
	best := scc[0]
	for _, idx := range scc[1:] {
		if nodeLess(g, idx, best) {
			best = idx
		}
	}
	return best
}

func nodeLess(g *graph.Graph, a, b int) bool {
	na, nb := g.Nodes[a], g.Nodes[b]
	if na.File != nb.File {
		return na.File < nb.File
	}
	la, lb := tokenLine(na.Dependency), tokenLine(nb.Dependency)
	if la != lb {
		return la < lb
	}
	return na.Dependency.DependencyName() < nb.Dependency.DependencyName()
}

func tokenLine(d ast.Dependency) int {
	switch v := d.(type) {
	case *ast.RegisterAnnotation:
		return v.Token.Line
	case *ast.ReferenceAnnotation:
		return v.Token.Line
	case *ast.ParameterAnnotation:
		return v.Token.Line
	default:
		return 0
	}
}

// checkAccess proves a dependency's access level never exceeds its
// enclosing type's.
func checkAccess(g *graph.Graph) error {
	for _, n := range g.Nodes {
		enclosing := n.Owner.Access()
		if n.Dependency.DependencyAccess().Rank() > enclosing.Rank() {
			return &werrors.InvalidGraphError{
				File: n.File, Line: tokenLine(n.Dependency) + 1, Name: n.Dependency.DependencyName(),
				Type: wtype.Render(n.Dependency.DependencyAbstract()), Cause: werrors.UnresolvableDependency,
			}
		}
	}
	return nil
}

// checkScopeMonotonicity proves a container-scoped registration never
// depends on a transient-scoped registration sibling unless the
// dependency is a parameter, or an explicit reference (which is
// resolved at whatever scope its ancestor registered it, always at
// least as wide as the referencing type's own lifetime). Under
// RejectGraphOnTransientToo, a graph-scoped registration is held to the
// same rule.
func checkScopeMonotonicity(g *graph.Graph, policy ScopeMonotonicityPolicy) error {
	for _, n := range g.Nodes {
		reg, ok := n.Dependency.(*ast.RegisterAnnotation)
		if !ok {
			continue
		}
		regScope := wtype.ScopeOf(reg.Config)
		monotone := regScope == wtype.Container || regScope == wtype.Weak || regScope == wtype.Lazy
		if policy == RejectGraphOnTransientToo && regScope == wtype.Graph {
			monotone = true
		}
		if !monotone {
			continue
		}
		for _, sibling := range n.Owner.Dependencies() {
			siblingReg, ok := sibling.(*ast.RegisterAnnotation)
			if !ok || siblingReg.Name == reg.Name {
				continue
			}
			if wtype.ScopeOf(siblingReg.Config) == wtype.Transient {
				return &werrors.InvalidGraphError{
					File: n.File, Line: tokenLine(n.Dependency) + 1, Name: reg.Name,
					Type: wtype.Render(reg.Abstract), Cause: werrors.UnresolvableDependency,
				}
			}
		}
	}
	return nil
}

// tarjanSCCs returns the strongly connected components of the directed
// graph (n nodes, edges), in the order Tarjan's algorithm discovers
// them, each inner slice unordered.
func tarjanSCCs(n int, edges []graph.Edge) [][]int {
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}

	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var stack []int
	var sccs [][]int
	counter := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if index[w] == -1 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongconnect(v)
		}
	}
	return sccs
}
