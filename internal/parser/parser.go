// Package parser folds a token stream into a typed ast.File via a
// hand-maintained recursive-descent state machine.
package parser

import (
	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/werrors"
)

type state int

const (
	parsingFile state = iota
	parsingType
	done
)

// Parse builds an ast.File from tokens, attributing all errors to file.
func Parse(tokens []token.Token, file string) (*ast.File, error) {
	p := &parser{tokens: tokens, file: file}
	f, err := p.parseFile()
	if err != nil {
		return nil, err
	}
	if p.state != done {
		return nil, &werrors.ParserError{Kind: werrors.UnexpectedEOF, File: file}
	}
	return f, nil
}

type parser struct {
	tokens []token.Token
	pos    int
	file   string
	state  state
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) line(t token.Token) int { return t.Line + 1 }

func (p *parser) parseFile() (*ast.File, error) {
	p.state = parsingFile
	f := &ast.File{Path: p.file}

	for {
		t, ok := p.peek()
		if !ok {
			p.state = done
			return f, nil
		}
		switch t.Kind {
		case token.ImportDeclaration:
			p.advance()
			f.Imports = append(f.Imports, t.Payload.(token.ImportDeclarationPayload).Path)
		case token.InjectableType, token.AnyDeclaration:
			decl, err := p.parseTypeDeclaration()
			if err != nil {
				return nil, err
			}
			f.Types = append(f.Types, decl)
		default:
			return nil, &werrors.ParserError{Kind: werrors.UnexpectedToken, File: p.file, Line: p.line(t)}
		}
	}
}

func (p *parser) parseTypeDeclaration() (*ast.TypeDeclaration, error) {
	outer := p.state
	p.state = parsingType
	defer func() { p.state = outer }()

	startTok := p.advance()
	endKind := token.EndOfInjectableType
	if startTok.Kind == token.AnyDeclaration {
		endKind = token.EndOfAnyDeclaration
	}

	decl := &ast.TypeDeclaration{Token: startTok}
	declaredNames := map[string]bool{}

	for {
		t, ok := p.peek()
		if !ok {
			return nil, &werrors.ParserError{Kind: werrors.UnexpectedEOF, File: p.file}
		}
		if t.Kind == endKind {
			p.advance()
			return decl, nil
		}

		switch t.Kind {
		case token.InjectableType, token.AnyDeclaration:
			child, err := p.parseTypeDeclaration()
			if err != nil {
				return nil, err
			}
			decl.Children = append(decl.Children, child)

		case token.RegisterAnnotation:
			p.advance()
			payload := t.Payload.(token.RegisterAnnotationPayload)
			if declaredNames[payload.Name] {
				return nil, &werrors.ParserError{Kind: werrors.DependencyDoubleDeclaration, File: p.file, Line: p.line(t), Name: payload.Name}
			}
			declaredNames[payload.Name] = true
			decl.Children = append(decl.Children, &ast.RegisterAnnotation{
				Token: t, Name: payload.Name, Abstract: payload.Abstract, Concrete: payload.Concrete, Access: payload.Access,
			})

		case token.ReferenceAnnotation:
			p.advance()
			payload := t.Payload.(token.ReferenceAnnotationPayload)
			if declaredNames[payload.Name] {
				return nil, &werrors.ParserError{Kind: werrors.DependencyDoubleDeclaration, File: p.file, Line: p.line(t), Name: payload.Name}
			}
			declaredNames[payload.Name] = true
			decl.Children = append(decl.Children, &ast.ReferenceAnnotation{
				Token: t, Name: payload.Name, Abstract: payload.Abstract, Access: payload.Access,
			})

		case token.ParameterAnnotation:
			p.advance()
			payload := t.Payload.(token.ParameterAnnotationPayload)
			if declaredNames[payload.Name] {
				return nil, &werrors.ParserError{Kind: werrors.DependencyDoubleDeclaration, File: p.file, Line: p.line(t), Name: payload.Name}
			}
			declaredNames[payload.Name] = true
			decl.Children = append(decl.Children, &ast.ParameterAnnotation{
				Token: t, Name: payload.Name, Abstract: payload.Abstract, ParamCount: payload.ParamCount, Access: payload.Access,
			})

		case token.ConfigurationAnnotation:
			p.advance()
			payload := t.Payload.(token.ConfigurationAnnotationPayload)
			if payload.Target != "" && !declaredNames[payload.Target] {
				return nil, &werrors.ParserError{Kind: werrors.UnknownDependency, File: p.file, Line: p.line(t), Name: payload.Target}
			}
			p.attachConfig(decl, payload)

		default:
			return nil, &werrors.ParserError{Kind: werrors.UnexpectedToken, File: p.file, Line: p.line(t)}
		}
	}
}

// attachConfig routes a configuration attribute either onto the
// enclosing TypeDeclaration (Target == "") or onto the dependency node
// it names, found among decl's already-parsed children.
func (p *parser) attachConfig(decl *ast.TypeDeclaration, payload token.ConfigurationAnnotationPayload) {
	if payload.Target == "" {
		decl.Config = append(decl.Config, payload.Attribute)
		return
	}
	for _, c := range decl.Children {
		switch d := c.(type) {
		case *ast.RegisterAnnotation:
			if d.Name == payload.Target {
				d.Config = append(d.Config, payload.Attribute)
				return
			}
		case *ast.ReferenceAnnotation:
			if d.Name == payload.Target {
				d.Config = append(d.Config, payload.Attribute)
				return
			}
		case *ast.ParameterAnnotation:
			if d.Name == payload.Target {
				d.Config = append(d.Config, payload.Attribute)
				return
			}
		}
	}
}
