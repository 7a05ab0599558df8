//go:build !weaver_sitter

package main

import (
	"fmt"

	"github.com/rjchrhl/weaver/internal/decoder"
)

// newDecoder returns the structural decoder the Lexer depends on. The
// default build carries no grammar binding — the decoder is an opaque
// external collaborator by design, not something the core pipeline
// constructs for itself. Build with -tags weaver_sitter for the
// reference tree-sitter binding, which reports declarations and their
// nesting but no attributes or access modifiers.
func newDecoder() (decoder.Decoder, error) {
	return nil, fmt.Errorf("no structural decoder configured: rebuild with -tags weaver_sitter, or wire a custom decoder.Decoder")
}
