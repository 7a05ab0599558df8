package wtype

// AbstractType wraps the CompositeType a dependency exposes to its
// resolvers — the interface side of a registration, or the sole type of
// a reference/parameter.
type AbstractType struct {
	Type CompositeType
}

// ConcreteType wraps the CompositeType a registration actually builds.
// Only registrations carry one.
type ConcreteType struct {
	Type CompositeType
}

// DependencyKind distinguishes how a dependency's value is obtained.
type DependencyKind int

const (
	// Registration declares a concrete type with a build closure.
	Registration DependencyKind = iota
	// Reference states that some ancestor type must register this name.
	Reference
	// Parameter is a value supplied by the caller of resolve.
	Parameter
)

func (k DependencyKind) String() string {
	switch k {
	case Registration:
		return "registration"
	case Reference:
		return "reference"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// AttributeKind tags which field of ConfigurationAttribute holds the
// attribute's value.
type AttributeKind int

const (
	AttributeBool AttributeKind = iota
	AttributeString
	AttributeScope
)

// ConfigurationAttribute is a name/value pair attached to a type or a
// dependency. The recognized names are a closed set (scope,
// customBuilder, doesSupportObjc, setter, escaping, projected, plus objc,
// which the Lexer adds when the declaration carries an @objc attribute);
// unknown names are a Lexer-level error, never represented here.
type ConfigurationAttribute struct {
	Name  string
	Kind  AttributeKind
	Bool  bool
	Str   string
	Scope Scope
}
