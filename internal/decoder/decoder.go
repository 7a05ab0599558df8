// Package decoder defines the contract for the external structural
// source-decoder the Lexer depends on. The decoder itself — typically a
// wrapper around a real parsing library for the host language — is an
// opaque collaborator: the core only ever consumes the declaration
// dictionary it produces.
package decoder

// DeclarationKind is one of the record kinds the decoder's schema
// recognizes.
type DeclarationKind string

const (
	Class       DeclarationKind = "class"
	Struct      DeclarationKind = "struct"
	Enum        DeclarationKind = "enum"
	Extension   DeclarationKind = "extension"
	VarInstance DeclarationKind = "varInstance"
)

// Argument is one "argument"-kind substructure entry inside an
// annotation call, e.g. `type: Logger.self` or a lone positional enum
// value like `.reference`.
type Argument struct {
	// Name is the keyword before ':', or "" for a positional argument.
	Name string
	// Value is the raw source text of the argument expression.
	Value string
}

// Attribute is one custom-attribute entry the decoder reports on a
// declaration, e.g. the property-wrapper call text of an `@Weaver(...)`
// annotation, or bare presence markers like `@objc`.
type Attribute struct {
	// Name is the attribute's bare identifier ("Weaver", "WeaverP2",
	// "objc", ...), without the leading '@' or trailing call.
	Name string
	// Arguments is empty for attributes with no call, e.g. `@objc`.
	Arguments []Argument
}

// Declaration is one record of the declaration dictionary: a
// class/struct/enum/extension, or a varInstance carrying annotations.
type Declaration struct {
	Kind DeclarationKind
	Name string
	// TypeName is the declared type text for a varInstance, "" otherwise.
	TypeName string
	// Offset/Length locate the declaration's full text, including its body.
	Offset int
	Length int
	// BodyOffset is the offset of the declaration's opening brace, or -1
	// if the declaration has no body (e.g. a varInstance).
	BodyOffset int
	// Accessibility is the raw access-modifier text the decoder observed
	// on this declaration, or "" if none was present.
	Accessibility string
	Attributes    []Attribute
	Substructure  []Declaration
}

// Expression is the result of re-parsing a standalone "@Name(...)"
// substring: the call's bare name and its arguments.
type Expression struct {
	Name      string
	Arguments []Argument
}

// Decoder is the contract the Lexer depends on. Production callers
// plug in a decoder backed by a real structural parser for the host
// language (see sitter.go for a reference adapter); tests plug in a
// literal Declaration tree.
type Decoder interface {
	// Decode parses raw source text into its top-level declarations.
	Decode(source []byte) ([]Declaration, error)
	// DecodeExpression re-parses the substring from '@' through its
	// closing ')' for one annotation call.
	DecodeExpression(text string) (Expression, error)
}
