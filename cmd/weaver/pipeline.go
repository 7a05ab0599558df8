package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rjchrhl/weaver/internal/ast"
	"github.com/rjchrhl/weaver/internal/gen"
	"github.com/rjchrhl/weaver/internal/inspector"
	"github.com/rjchrhl/weaver/internal/lexer"
	"github.com/rjchrhl/weaver/internal/parser"
	"github.com/rjchrhl/weaver/internal/wconfig"
	"github.com/rjchrhl/weaver/internal/werrors"
)

// userError marks an error as user-visible (exit code 1) rather than an
// internal invariant violation (exit code 2).
type userError struct{ err error }

func (u *userError) Error() string { return u.err.Error() }
func (u *userError) Unwrap() error { return u.err }

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if _, ok := err.(*userError); ok {
		return 1
	}
	return 2
}

func expandFileArgs(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			files = append(files, p)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func runPipeline(patterns []string, cfg wconfig.Config, showDiff bool) error {
	dec, err := newDecoder()
	if err != nil {
		return err
	}

	files, err := expandFileArgs(patterns)
	if err != nil {
		return &userError{err}
	}

	astFiles := make([]*ast.File, 0, len(files))
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return &userError{fmt.Errorf("reading %s: %w", path, err)}
		}

		decls, err := dec.Decode(source)
		if err != nil {
			return &userError{fmt.Errorf("decoding %s: %w", path, err)}
		}

		tokens, err := lexer.Lex(source, decls, lexer.Options{File: path, Prefix: cfg.AnnotationPrefix})
		if err != nil {
			return &userError{err}
		}

		f, err := parser.Parse(tokens, path)
		if err != nil {
			return &userError{err}
		}
		astFiles = append(astFiles, f)
	}

	report := inspector.Inspect(astFiles, cfg.ScopeMonotonicity)
	if report.Err != nil {
		return &userError{report.Err}
	}

	outputs, err := gen.Generate(astFiles, gen.DirBundle{Dir: cfg.TemplateDir})
	if err != nil {
		if _, ok := err.(*werrors.InvalidTemplatePathError); ok {
			return &userError{err}
		}
		return err
	}

	results, err := gen.Write(outputs, cfg.DryRun)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Unchanged:
			fmt.Printf("%s %s\n", green("="), r.Path)
		case cfg.DryRun:
			fmt.Printf("%s %s would change (%s)\n", bold("~"), r.Path, r.Hash[:12])
		default:
			fmt.Printf("%s %s\n", green("✓"), r.Path)
		}
		if showDiff && r.Diff != "" {
			fmt.Println(r.Diff)
		}
	}
	return nil
}
