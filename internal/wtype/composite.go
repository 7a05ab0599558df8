// Package wtype holds the value model shared by every stage of the compiler:
// parsed type expressions, access levels, scopes and configuration
// attributes. Nothing here touches source text layout or file positions;
// that is the Lexer's job.
package wtype

import "strings"

// CompositeType is a parsed type expression. The concrete variants are
// NamedType, TupleType, ClosureType and OptionalType. Equality between
// two CompositeTypes for graph-resolution purposes is semantic (see
// Equal), not Go struct equality: OptionalType remembers which surface
// syntax produced it so Render can reproduce it, and that detail must
// not affect whether two types are considered the same dependency.
type CompositeType interface {
	isCompositeType()
}

// NamedType is "Name" or "Name<G1, G2, ...>".
type NamedType struct {
	Name     string
	Generics []CompositeType
}

// TupleType is "(T1, T2, ...)".
type TupleType struct {
	Components []CompositeType
}

// ClosureType is "(P1, P2, ...) -> R".
type ClosureType struct {
	Params []CompositeType
	Return CompositeType
}

// OptionalType is "T?" or "Optional<T>". Sugared records which spelling
// was parsed so Render can reproduce it; it plays no part in Equal.
type OptionalType struct {
	Inner   CompositeType
	Sugared bool
}

func (NamedType) isCompositeType()    {}
func (TupleType) isCompositeType()    {}
func (ClosureType) isCompositeType()  {}
func (OptionalType) isCompositeType() {}

// Equal reports whether two CompositeTypes denote the same type,
// ignoring surface syntax choices (OptionalType.Sugared).
func Equal(a, b CompositeType) bool {
	switch av := a.(type) {
	case NamedType:
		bv, ok := b.(NamedType)
		if !ok || av.Name != bv.Name || len(av.Generics) != len(bv.Generics) {
			return false
		}
		for i := range av.Generics {
			if !Equal(av.Generics[i], bv.Generics[i]) {
				return false
			}
		}
		return true
	case TupleType:
		bv, ok := b.(TupleType)
		if !ok || len(av.Components) != len(bv.Components) {
			return false
		}
		for i := range av.Components {
			if !Equal(av.Components[i], bv.Components[i]) {
				return false
			}
		}
		return true
	case ClosureType:
		bv, ok := b.(ClosureType)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return Equal(av.Return, bv.Return)
	case OptionalType:
		bv, ok := b.(OptionalType)
		if !ok {
			return false
		}
		return Equal(av.Inner, bv.Inner)
	default:
		return false
	}
}

// ParseComposite parses a type expression in its canonical,
// whitespace-insensitive form: tuples, closures, optionals (both
// spellings) and named types with balanced generic argument lists.
func ParseComposite(s string) (CompositeType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ParseError{Text: s, Reason: "empty type expression"}
	}

	if strings.HasPrefix(s, "(") {
		closeIdx := matchingParen(s, 0)
		if closeIdx < 0 {
			return nil, &ParseError{Text: s, Reason: "unbalanced parentheses"}
		}
		if closeIdx == len(s)-1 {
			return parseTuple(s[1:closeIdx])
		}
		rest := strings.TrimSpace(s[closeIdx+1:])
		if !strings.HasPrefix(rest, "->") {
			return nil, &ParseError{Text: s, Reason: "expected '->' after parenthesized parameter list"}
		}
		return parseClosure(s[1:closeIdx], strings.TrimSpace(rest[2:]))
	}

	if strings.HasSuffix(s, "?") {
		inner, err := ParseComposite(strings.TrimSuffix(s, "?"))
		if err != nil {
			return nil, err
		}
		return OptionalType{Inner: inner, Sugared: true}, nil
	}

	if strings.HasPrefix(s, "Optional<") && strings.HasSuffix(s, ">") {
		inner, err := ParseComposite(s[len("Optional<") : len(s)-1])
		if err != nil {
			return nil, err
		}
		return OptionalType{Inner: inner, Sugared: false}, nil
	}

	return parseNamed(s)
}

func parseTuple(inner string) (CompositeType, error) {
	parts := splitTopLevel(inner, ',')
	components := make([]CompositeType, 0, len(parts))
	for _, p := range parts {
		c, err := ParseComposite(p)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return TupleType{Components: components}, nil
}

func parseClosure(paramsText, returnText string) (CompositeType, error) {
	var params []CompositeType
	for _, p := range splitTopLevel(paramsText, ',') {
		if p == "" {
			continue
		}
		c, err := ParseComposite(p)
		if err != nil {
			return nil, err
		}
		params = append(params, c)
	}
	ret, err := ParseComposite(returnText)
	if err != nil {
		return nil, err
	}
	return ClosureType{Params: params, Return: ret}, nil
}

func parseNamed(s string) (CompositeType, error) {
	idx := strings.IndexByte(s, '<')
	if idx < 0 {
		if s == "" {
			return nil, &ParseError{Text: s, Reason: "empty type name"}
		}
		return NamedType{Name: s}, nil
	}
	if !strings.HasSuffix(s, ">") {
		return nil, &ParseError{Text: s, Reason: "unbalanced generic argument list"}
	}
	name := s[:idx]
	genericsText := s[idx+1 : len(s)-1]
	var generics []CompositeType
	for _, p := range splitTopLevel(genericsText, ',') {
		c, err := ParseComposite(p)
		if err != nil {
			return nil, err
		}
		generics = append(generics, c)
	}
	return NamedType{Name: name, Generics: generics}, nil
}

// Render is the inverse of ParseComposite: it is a fixed point of
// ParseComposite ∘ Render, and Render ∘ ParseComposite reproduces the
// original spelling modulo insignificant whitespace.
func Render(t CompositeType) string {
	switch v := t.(type) {
	case NamedType:
		if len(v.Generics) == 0 {
			return v.Name
		}
		return v.Name + "<" + joinRendered(v.Generics) + ">"
	case TupleType:
		return "(" + joinRendered(v.Components) + ")"
	case ClosureType:
		return "(" + joinRendered(v.Params) + ") -> " + Render(v.Return)
	case OptionalType:
		if v.Sugared {
			return Render(v.Inner) + "?"
		}
		return "Optional<" + Render(v.Inner) + ">"
	default:
		return ""
	}
}

func joinRendered(ts []CompositeType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = Render(t)
	}
	return strings.Join(parts, ", ")
}

// matchingParen returns the index of the ')' matching the '(' at openIdx,
// or -1 if the parentheses are unbalanced.
func matchingParen(s string, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep, but only where the nesting depth of
// '(' / ')' and '<' / '>' is zero, so "(Int, Int) -> String, Bool" splits
// into two generic arguments rather than three. The '>' of a closure's
// "->" arrow is not a closing bracket.
func splitTopLevel(s string, sep byte) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<':
			depth++
		case ')':
			depth--
		case '>':
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
		default:
			if s[i] == sep && depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// ParseError reports why a type expression could not be parsed.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid type expression " + quote(e.Text) + ": " + e.Reason
}

func quote(s string) string {
	return "\"" + s + "\""
}
