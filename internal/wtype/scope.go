package wtype

// Scope governs instance reuse across resolve calls. The exact runtime
// meaning of each value is implemented by the runtime package; this is
// only the value used to select that behavior.
type Scope int

const (
	// Transient builds a new instance on every resolve.
	Transient Scope = iota
	// Graph memoizes for the duration of the outermost enclosing resolve.
	Graph
	// Container memoizes for the lifetime of the owning container.
	Container
	// Weak is container-scoped but released once no strong holder remains.
	Weak
	// Lazy is container-scoped, built only on first resolve.
	Lazy
)

func (s Scope) String() string {
	switch s {
	case Graph:
		return "graph"
	case Container:
		return "container"
	case Weak:
		return "weak"
	case Lazy:
		return "lazy"
	default:
		return "transient"
	}
}

// ScopeOf returns the explicit `scope` configuration attribute among
// attrs, defaulting to Transient when none is present (the host
// language's own default: a dependency with no scope attribute is
// rebuilt on every resolve).
func ScopeOf(attrs []ConfigurationAttribute) Scope {
	for _, a := range attrs {
		if a.Kind == AttributeScope {
			return a.Scope
		}
	}
	return Transient
}

// ParseScope maps a scope annotation's raw text (".transient", "graph",
// etc. — the Lexer strips any leading dot before calling this) to a
// Scope. ok is false for unrecognized text.
func ParseScope(s string) (scope Scope, ok bool) {
	switch s {
	case "transient":
		return Transient, true
	case "graph":
		return Graph, true
	case "container":
		return Container, true
	case "weak":
		return Weak, true
	case "lazy":
		return Lazy, true
	default:
		return Transient, false
	}
}
