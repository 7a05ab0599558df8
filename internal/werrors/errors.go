// Package werrors holds the error taxonomy shared across the pipeline.
// Every kind is a small, comparable struct: golden tests compare them
// with reflect.DeepEqual / require.Equal instead of matching strings.
package werrors

import "fmt"

// TokenErrorKind distinguishes the two failures the annotation grammar
// can report before any file/line context is attached.
type TokenErrorKind string

const (
	InvalidAnnotationText TokenErrorKind = "invalid_annotation"
	InvalidScopeText      TokenErrorKind = "invalid_scope"
)

// TokenError names what was wrong with one annotation (its name, a
// configuration key or a scope value) without file or line; the Lexer
// wraps it in a LexerError.
type TokenError struct {
	Kind TokenErrorKind
	Text string
}

func (e *TokenError) Error() string {
	switch e.Kind {
	case InvalidScopeText:
		return fmt.Sprintf("invalid scope %q", e.Text)
	default:
		return fmt.Sprintf("invalid annotation %q", e.Text)
	}
}

// LexerError wraps a TokenError with the source position the Lexer had
// reached when it surfaced.
type LexerError struct {
	File  string
	Line  int // 1-based, for human-readable rendering
	Cause *TokenError
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Cause.Error())
}

func (e *LexerError) Unwrap() error { return e.Cause }

// ParserErrorKind enumerates the ways the recursive-descent parser can
// reject a token stream.
type ParserErrorKind string

const (
	UnexpectedToken             ParserErrorKind = "unexpected_token"
	UnexpectedEOF               ParserErrorKind = "unexpected_eof"
	UnknownDependency           ParserErrorKind = "unknown_dependency"
	DependencyDoubleDeclaration ParserErrorKind = "dependency_double_declaration"
)

// ParserError is the parser's single error type; Name is populated for
// UnknownDependency and DependencyDoubleDeclaration only.
type ParserError struct {
	Kind ParserErrorKind
	File string
	Line int
	Name string
}

func (e *ParserError) Error() string {
	switch e.Kind {
	case UnexpectedEOF:
		return fmt.Sprintf("%s: unexpected end of file", e.File)
	case UnknownDependency:
		return fmt.Sprintf("%s:%d: configuration targets unknown dependency %q", e.File, e.Line, e.Name)
	case DependencyDoubleDeclaration:
		return fmt.Sprintf("%s:%d: dependency %q already declared in this type", e.File, e.Line, e.Name)
	default:
		return fmt.Sprintf("%s:%d: unexpected token", e.File, e.Line)
	}
}

// GraphErrorCause is the reason an InvalidGraphError was raised.
type GraphErrorCause string

const (
	CyclicDependency       GraphErrorCause = "cyclic_dependency"
	UnresolvableDependency GraphErrorCause = "unresolvable_dependency"
)

// InvalidGraphError reports an Inspector invariant violation:
// unresolvable reference, cyclic build graph, access-level overreach,
// or scope-monotonicity breach. Name and Type are empty for
// CyclicDependency, whose representative node is identified by
// File/Line alone.
type InvalidGraphError struct {
	File  string
	Line  int
	Name  string
	Type  string
	Cause GraphErrorCause
}

func (e *InvalidGraphError) Error() string {
	if e.Cause == CyclicDependency {
		return fmt.Sprintf("%s:%d: cyclic dependency", e.File, e.Line)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s:%d: %q (%s) is unresolvable", e.File, e.Line, e.Name, e.Type)
	}
	return fmt.Sprintf("%s:%d: %q is unresolvable", e.File, e.Line, e.Name)
}

// InvalidASTError reports a structural AST invariant violation that the
// Inspector discovered rather than the Parser — e.g. an AST handed to
// the Inspector directly by a caller that skipped the Parser.
type InvalidASTError struct {
	File string // may be empty: not every Expr carries its own file
	Expr string // human-readable description of the offending node
}

func (e *InvalidASTError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("invalid AST node: %s", e.Expr)
	}
	return fmt.Sprintf("%s: invalid AST node: %s", e.File, e.Expr)
}

// InvalidTemplatePathError is the Generator's only error kind; every
// other failure in that stage is a semantic one already caught by the
// Inspector.
type InvalidTemplatePathError struct {
	Path string
}

func (e *InvalidTemplatePathError) Error() string {
	return fmt.Sprintf("invalid template path %q", e.Path)
}
