package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/werrors"
	"github.com/rjchrhl/weaver/internal/wtype"
)

// Bundle addresses the host-language template bundle by name; it is the
// Generator's only collaborator beyond the AST itself.
type Bundle interface {
	Template(name string) (string, error)
}

// DirBundle reads templates from files under Dir, named "<name>.tmpl".
type DirBundle struct {
	Dir string
}

func (b DirBundle) Template(name string) (string, error) {
	path := filepath.Join(b.Dir, name+".tmpl")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &werrors.InvalidTemplatePathError{Path: path}
	}
	return string(data), nil
}

// Output is one generated file.
type Output struct {
	Path string
	Text string
}

// Generate walks files in document order and renders one Output per
// file, covering every injectable type's container-construction
// function and resolver surface. Generate is pure: identical files and
// bundle content always produce identical Output.Text.
func Generate(files []*ast.File, bundle Bundle) ([]Output, error) {
	containerTmpl, err := bundle.Template("container")
	if err != nil {
		return nil, err
	}
	resolverTmpl, err := bundle.Template("resolver")
	if err != nil {
		return nil, err
	}

	var outputs []Output
	for _, f := range files {
		var b strings.Builder
		for _, t := range f.Types {
			decl, ok := t.(*ast.TypeDeclaration)
			if !ok {
				continue
			}
			if err := renderType(decl, containerTmpl, resolverTmpl, &b); err != nil {
				return nil, err
			}
		}
		outputs = append(outputs, Output{
			Path: generatedPath(f.Path),
			Text: b.String(),
		})
	}
	return outputs, nil
}

func renderType(decl *ast.TypeDeclaration, containerTmpl, resolverTmpl string, out *strings.Builder) error {
	if !decl.Injectable() {
		for _, nested := range decl.NestedTypes() {
			if err := renderType(nested, containerTmpl, resolverTmpl, out); err != nil {
				return err
			}
		}
		return nil
	}

	ctx := typeContext(decl)

	containerText, err := Render(containerTmpl, ctx)
	if err != nil {
		return err
	}
	out.WriteString(containerText)

	resolverText, err := Render(resolverTmpl, ctx)
	if err != nil {
		return err
	}
	out.WriteString(resolverText)

	for _, nested := range decl.NestedTypes() {
		if err := renderType(nested, containerTmpl, resolverTmpl, out); err != nil {
			return err
		}
	}
	return nil
}

func typeContext(decl *ast.TypeDeclaration) Context {
	var registrations []Context
	var getters []Context

	for _, dep := range decl.Dependencies() {
		getters = append(getters, Context{
			"typeName": decl.Name(),
			"name":     dep.DependencyName(),
			"abstract": wtype.Render(dep.DependencyAbstract()),
			"kind":     dep.DependencyKind().String(),
		})

		reg, ok := dep.(*ast.RegisterAnnotation)
		if !ok {
			continue
		}
		scope := wtype.ScopeOf(reg.Config)
		registrations = append(registrations, Context{
			"name":     reg.Name,
			"abstract": wtype.Render(reg.Abstract),
			"concrete": wtype.Render(reg.Concrete),
			"scope":    scope.String(),
			"weak":     scope == wtype.Weak,
			"lazy":     scope == wtype.Lazy,
		})
	}

	return Context{
		"typeName":      decl.Name(),
		"isStruct":      isStruct(decl),
		"registrations": registrations,
		"dependencies":  getters,
	}
}

func isStruct(decl *ast.TypeDeclaration) bool {
	p, ok := decl.Token.Payload.(token.InjectableTypePayload)
	return ok && p.IsStruct
}

func generatedPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, ext)
	return base + ".generated" + ext
}
