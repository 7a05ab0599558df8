package lexer_test

import (
	"testing"

	"github.com/rjchrhl/weaver/internal/decoder"
	"github.com/rjchrhl/weaver/internal/lexer"
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/wtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_InjectableTypeEmitsMatchingEnd(t *testing.T) {
	source := []byte("class Leaf {\n}\n")
	decls := []decoder.Declaration{
		{Kind: decoder.Class, Name: "Leaf", Offset: 0, Length: len(source), BodyOffset: 12},
	}

	tokens, err := lexer.Lex(source, decls, lexer.Options{File: "leaf.swift", Prefix: "Weaver"})
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.InjectableType, tokens[0].Kind)
	assert.Equal(t, token.EndOfInjectableType, tokens[1].Kind)
	assert.Equal(t, len(source)-1, tokens[1].Offset)
}

func TestLex_RegistrationAnnotationExtractsTypes(t *testing.T) {
	source := []byte(`class App {
	@Weaver(.registration, type: ConcreteLogger.self, scope: .container)
	var logger: Logger
}
`)
	decls := []decoder.Declaration{
		{
			Kind: decoder.Class, Name: "App", Offset: 0, Length: len(source), BodyOffset: 10,
			Substructure: []decoder.Declaration{
				{
					Kind: decoder.VarInstance, Name: "logger", TypeName: "Logger", Offset: 14, Length: 90,
					Attributes: []decoder.Attribute{
						{Name: "Weaver", Arguments: []decoder.Argument{
							{Value: ".registration"},
							{Name: "type", Value: "ConcreteLogger.self"},
							{Name: "scope", Value: ".container"},
						}},
					},
				},
			},
		},
	}

	tokens, err := lexer.Lex(source, decls, lexer.Options{File: "app.swift", Prefix: "Weaver"})
	require.NoError(t, err)

	var reg *token.RegisterAnnotationPayload
	var cfg []token.ConfigurationAnnotationPayload
	for _, tk := range tokens {
		switch p := tk.Payload.(type) {
		case token.RegisterAnnotationPayload:
			reg = &p
		case token.ConfigurationAnnotationPayload:
			cfg = append(cfg, p)
		}
	}

	require.NotNil(t, reg)
	assert.Equal(t, "logger", reg.Name)
	assert.True(t, wtype.Equal(reg.Abstract, wtype.NamedType{Name: "Logger"}))
	assert.True(t, wtype.Equal(reg.Concrete, wtype.NamedType{Name: "ConcreteLogger"}))

	require.Len(t, cfg, 1)
	assert.Equal(t, "scope", cfg[0].Attribute.Name)
	assert.Equal(t, wtype.Container, cfg[0].Attribute.Scope)
}

func TestLex_ParameterAnnotationReadsSuffixCount(t *testing.T) {
	source := []byte(`class Dep {
	@WeaverP1(.parameter, type: Int.self)
	var p: Int
}
`)
	decls := []decoder.Declaration{
		{
			Kind: decoder.Class, Name: "Dep", Offset: 0, Length: len(source), BodyOffset: 10,
			Substructure: []decoder.Declaration{
				{
					Kind: decoder.VarInstance, Name: "p", TypeName: "Int", Offset: 14, Length: 50,
					Attributes: []decoder.Attribute{
						{Name: "WeaverP1", Arguments: []decoder.Argument{
							{Value: ".parameter"},
							{Name: "type", Value: "Int.self"},
						}},
					},
				},
			},
		},
	}

	tokens, err := lexer.Lex(source, decls, lexer.Options{File: "dep.swift", Prefix: "Weaver"})
	require.NoError(t, err)

	var found bool
	for _, tk := range tokens {
		if p, ok := tk.Payload.(token.ParameterAnnotationPayload); ok {
			found = true
			assert.Equal(t, 1, p.ParamCount)
		}
	}
	assert.True(t, found)
}

func TestLex_UnrecognizedConfigurationKeyIsInvalidAnnotation(t *testing.T) {
	source := []byte(`class App {
	@Weaver(.reference, bogusKey: true)
	var logger: Logger
}
`)
	decls := []decoder.Declaration{
		{
			Kind: decoder.Class, Name: "App", Offset: 0, Length: len(source), BodyOffset: 10,
			Substructure: []decoder.Declaration{
				{
					Kind: decoder.VarInstance, Name: "logger", TypeName: "Logger", Offset: 14, Length: 60,
					Attributes: []decoder.Attribute{
						{Name: "Weaver", Arguments: []decoder.Argument{
							{Value: ".reference"},
							{Name: "bogusKey", Value: "true"},
						}},
					},
				},
			},
		},
	}

	_, err := lexer.Lex(source, decls, lexer.Options{File: "app.swift", Prefix: "Weaver"})
	require.Error(t, err)
}

func TestLex_ImportLinesAreLiftedVerbatim(t *testing.T) {
	source := []byte("import Foundation\nclass A {}\n")
	tokens, err := lexer.Lex(source, nil, lexer.Options{File: "a.swift", Prefix: "Weaver"})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.ImportDeclaration, tokens[0].Kind)
	assert.Equal(t, "Foundation", tokens[0].Payload.(token.ImportDeclarationPayload).Path)
}
