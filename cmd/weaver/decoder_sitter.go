//go:build weaver_sitter

package main

import (
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/rjchrhl/weaver/internal/decoder"
)

// newDecoder wires the reference tree-sitter adapter. The grammar
// binding here stands in for whatever the project's actual host
// language grammar is; swapping it is a one-line change to Lang plus a
// NodeKindMap tuned to that grammar's node type names.
func newDecoder() (decoder.Decoder, error) {
	return &decoder.SitterDecoder{
		Lang: golang.GetLanguage(),
		Map: decoder.NodeKindMap{
			Class:       []string{"type_declaration"},
			Struct:      []string{"type_declaration"},
			VarInstance: []string{"field_declaration"},
			NameField:   "name",
			TypeField:   "type",
		},
	}, nil
}
