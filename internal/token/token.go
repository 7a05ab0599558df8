// Package token defines the flat stream the Lexer produces: each Token
// is a payload plus the byte offset, byte length and line it came from.
package token

import "github.com/rjchrhl/weaver/internal/wtype"

// Kind identifies which payload a Token carries.
type Kind int

const (
	InjectableType Kind = iota
	EndOfInjectableType
	AnyDeclaration
	EndOfAnyDeclaration
	RegisterAnnotation
	ReferenceAnnotation
	ParameterAnnotation
	ConfigurationAnnotation
	ImportDeclaration
)

func (k Kind) String() string {
	switch k {
	case InjectableType:
		return "InjectableType"
	case EndOfInjectableType:
		return "EndOfInjectableType"
	case AnyDeclaration:
		return "AnyDeclaration"
	case EndOfAnyDeclaration:
		return "EndOfAnyDeclaration"
	case RegisterAnnotation:
		return "RegisterAnnotation"
	case ReferenceAnnotation:
		return "ReferenceAnnotation"
	case ParameterAnnotation:
		return "ParameterAnnotation"
	case ConfigurationAnnotation:
		return "ConfigurationAnnotation"
	case ImportDeclaration:
		return "ImportDeclaration"
	default:
		return "Unknown"
	}
}

// Token is one entry in the Lexer's output stream, ordered by Offset.
type Token struct {
	Kind    Kind
	Offset  int // byte offset into the source, 0-based
	Length  int // byte length of the span this token covers
	Line    int // 0-based internally; rendered 1-based in error messages
	Payload any // one of the *Payload types below, matching Kind
}

// InjectableTypePayload backs InjectableType tokens: a class/struct
// declaration that may host nested injectable types and dependencies.
type InjectableTypePayload struct {
	Name     string
	IsStruct bool
	Access   wtype.AccessLevel
}

// AnyDeclarationPayload backs AnyDeclaration tokens: enums and
// extensions, which may nest injectable types but are not themselves
// injectable.
type AnyDeclarationPayload struct {
	Name   string
	Access wtype.AccessLevel
}

// RegisterAnnotationPayload backs RegisterAnnotation tokens.
type RegisterAnnotationPayload struct {
	Name     string
	Abstract wtype.CompositeType
	Concrete wtype.CompositeType
	Access   wtype.AccessLevel
}

// ReferenceAnnotationPayload backs ReferenceAnnotation tokens.
type ReferenceAnnotationPayload struct {
	Name     string
	Abstract wtype.CompositeType
	Access   wtype.AccessLevel
}

// ParameterAnnotationPayload backs ParameterAnnotation tokens. ParamCount
// is the digit suffix on the annotation name (WeaverP2 -> 2); the Lexer
// records a missing suffix, or an explicit P0, as 1.
type ParameterAnnotationPayload struct {
	Name       string
	Abstract   wtype.CompositeType
	ParamCount int
	Access     wtype.AccessLevel
}

// ConfigurationAnnotationPayload backs ConfigurationAnnotation tokens.
// Target is the dependency name the attribute applies to, or "" when
// the attribute is attached to the enclosing type itself.
type ConfigurationAnnotationPayload struct {
	Target    string
	Attribute wtype.ConfigurationAttribute
}

// ImportDeclarationPayload backs ImportDeclaration tokens, lifted
// verbatim from a source line starting with "import".
type ImportDeclarationPayload struct {
	Path string
}
