package gen_test

import (
	"testing"

	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/gen"
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/wtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapBundle map[string]string

func (b mapBundle) Template(name string) (string, error) {
	return b[name], nil
}

func testFiles() []*ast.File {
	app := &ast.TypeDeclaration{
		Token: token.Token{Kind: token.InjectableType, Payload: token.InjectableTypePayload{Name: "App", IsStruct: true}},
		Children: []ast.Expr{
			&ast.RegisterAnnotation{
				Name: "logger", Abstract: wtype.NamedType{Name: "Logger"}, Concrete: wtype.NamedType{Name: "ConcreteLogger"},
				Config: []wtype.ConfigurationAttribute{{Name: "scope", Kind: wtype.AttributeScope, Scope: wtype.Container}},
			},
		},
	}
	return []*ast.File{{Path: "app.swift", Types: []ast.Expr{app}}}
}

func testBundle() mapBundle {
	return mapBundle{
		"container": "container for {{typeName}} ({{#each registrations}}{{name}}:{{scope}};{{/each}})\n",
		"resolver":  "resolver for {{typeName}} ({{#each dependencies}}{{name}}:{{kind}};{{/each}})\n",
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	files := testFiles()
	bundle := testBundle()

	first, err := gen.Generate(files, bundle)
	require.NoError(t, err)
	second, err := gen.Generate(files, bundle)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Text, second[0].Text)
	assert.Equal(t, first[0].Path, second[0].Path)
}

func TestGenerate_RendersRegistrationsAndDependencies(t *testing.T) {
	outputs, err := gen.Generate(testFiles(), testBundle())
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	assert.Contains(t, outputs[0].Text, "logger:container")
	assert.Contains(t, outputs[0].Text, "logger:registration")
	assert.Equal(t, "app.generated.swift", outputs[0].Path)
}

func TestGenerate_SkipsNonInjectableTopLevelDeclarations(t *testing.T) {
	ext := &ast.TypeDeclaration{
		Token: token.Token{Kind: token.AnyDeclaration, Payload: token.AnyDeclarationPayload{Name: "Ext"}},
	}
	files := []*ast.File{{Path: "ext.swift", Types: []ast.Expr{ext}}}

	outputs, err := gen.Generate(files, testBundle())
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Equal(t, "", outputs[0].Text)
}

func TestGenerate_MissingTemplateReturnsError(t *testing.T) {
	_, err := gen.Generate(testFiles(), gen.DirBundle{Dir: "/nonexistent/path/for/weaver/templates"})
	require.Error(t, err)
}
