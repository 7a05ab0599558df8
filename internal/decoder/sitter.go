//go:build weaver_sitter

// This file backs the Decoder contract with a real structural parser,
// github.com/smacker/go-tree-sitter, gated behind the weaver_sitter
// build tag: the decoder is an external collaborator the core pipeline
// never constructs itself, so a project can swap this file out for a
// different grammar binding without touching anything downstream.
package decoder

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodeKindMap tells SitterDecoder which tree-sitter node types are
// class/struct/enum/extension/varInstance declarations for a given
// host-language grammar.
type NodeKindMap struct {
	Class       []string
	Struct      []string
	Enum        []string
	Extension   []string
	VarInstance []string
	// NameField is the field name tree-sitter exposes for a
	// declaration's identifier (usually "name").
	NameField string
	// TypeField is the field name for a varInstance's declared type.
	TypeField string
}

// SitterDecoder implements Decoder over a tree-sitter grammar for the
// host language.
type SitterDecoder struct {
	Lang *sitter.Language
	Map  NodeKindMap
}

func (d *SitterDecoder) Decode(source []byte) ([]Declaration, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(d.Lang)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}

	root := tree.RootNode()
	decls := make([]Declaration, 0, root.ChildCount())
	for i := 0; i < int(root.ChildCount()); i++ {
		if decl, ok := d.declarationAt(root.Child(i), source); ok {
			decls = append(decls, decl)
		}
	}
	return decls, nil
}

func (d *SitterDecoder) declarationAt(n *sitter.Node, source []byte) (Declaration, bool) {
	kind, ok := d.kindOf(n.Type())
	if !ok {
		return Declaration{}, false
	}

	decl := Declaration{
		Kind:       kind,
		Offset:     int(n.StartByte()),
		Length:     int(n.EndByte() - n.StartByte()),
		BodyOffset: -1,
	}
	if name := n.ChildByFieldName(d.Map.NameField); name != nil {
		decl.Name = name.Content(source)
	}
	if kind == VarInstance {
		if typ := n.ChildByFieldName(d.Map.TypeField); typ != nil {
			decl.TypeName = typ.Content(source)
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "{" {
			decl.BodyOffset = int(child.StartByte())
		}
		if nested, ok := d.declarationAt(child, source); ok {
			decl.Substructure = append(decl.Substructure, nested)
		}
	}

	return decl, true
}

func (d *SitterDecoder) kindOf(nodeType string) (DeclarationKind, bool) {
	for _, t := range d.Map.Class {
		if t == nodeType {
			return Class, true
		}
	}
	for _, t := range d.Map.Struct {
		if t == nodeType {
			return Struct, true
		}
	}
	for _, t := range d.Map.Enum {
		if t == nodeType {
			return Enum, true
		}
	}
	for _, t := range d.Map.Extension {
		if t == nodeType {
			return Extension, true
		}
	}
	for _, t := range d.Map.VarInstance {
		if t == nodeType {
			return VarInstance, true
		}
	}
	return "", false
}

// DecodeExpression re-parses a standalone "@Name(...)" call by handing
// the substring (sans the leading '@') to tree-sitter as a free-standing
// expression and reading off the call's name and argument list. Host
// grammars vary in how they expose call arguments, so this is left as
// the integration point a concrete grammar binding must complete.
func (d *SitterDecoder) DecodeExpression(text string) (Expression, error) {
	return Expression{}, fmt.Errorf("sitter-backed DecodeExpression requires a grammar-specific binding")
}
