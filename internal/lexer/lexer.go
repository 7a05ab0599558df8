// Package lexer turns a declaration dictionary plus raw source text into
// the flat, offset-ordered token stream the Parser consumes.
package lexer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rjchrhl/weaver/internal/decoder"
	"github.com/rjchrhl/weaver/internal/token"
	"github.com/rjchrhl/weaver/internal/werrors"
	"github.com/rjchrhl/weaver/internal/wtype"
)

// Options configures a Lex call. Prefix is the project's annotation
// family identifier ("Weaver"), matched case-insensitively, optionally
// followed by "P<digits>" denoting an expected parameter count.
type Options struct {
	File   string
	Prefix string
}

// Lex walks the declaration dictionary the external decoder produced
// for source, emitting a token stream ordered by byte offset.
func Lex(source []byte, decls []decoder.Declaration, opts Options) ([]token.Token, error) {
	l := &lexer{source: source, opts: opts, lines: lineStarts(source)}

	for _, d := range decls {
		if err := l.walk(d, wtype.AccessInternal); err != nil {
			return nil, err
		}
	}
	l.scanImports()

	sort.SliceStable(l.tokens, func(i, j int) bool {
		return l.tokens[i].Offset < l.tokens[j].Offset
	})
	return l.tokens, nil
}

type lexer struct {
	source []byte
	opts   Options
	lines  []int
	tokens []token.Token
}

func (l *lexer) lineAt(offset int) int {
	// 0-based internally; rendered 1-based by werrors.
	i := sort.SearchInts(l.lines, offset+1) - 1
	if i < 0 {
		return 0
	}
	return i
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (l *lexer) walk(d decoder.Declaration, enclosingAccess wtype.AccessLevel) error {
	access := wtype.ParseAccessLevel(d.Accessibility).Resolve(enclosingAccess)

	switch d.Kind {
	case decoder.Class, decoder.Struct:
		l.tokens = append(l.tokens, token.Token{
			Kind:   token.InjectableType,
			Offset: d.Offset,
			Length: d.Length,
			Line:   l.lineAt(d.Offset),
			Payload: token.InjectableTypePayload{
				Name:     d.Name,
				IsStruct: d.Kind == decoder.Struct,
				Access:   access,
			},
		})
		l.emitEnd(d, token.EndOfInjectableType)

	case decoder.Enum, decoder.Extension:
		l.tokens = append(l.tokens, token.Token{
			Kind:    token.AnyDeclaration,
			Offset:  d.Offset,
			Length:  d.Length,
			Line:    l.lineAt(d.Offset),
			Payload: token.AnyDeclarationPayload{Name: d.Name, Access: access},
		})
		l.emitEnd(d, token.EndOfAnyDeclaration)

	case decoder.VarInstance:
		if err := l.emitAnnotations(d, access); err != nil {
			return err
		}
		return nil
	}

	for _, child := range d.Substructure {
		if err := l.walk(child, access); err != nil {
			return err
		}
	}
	return nil
}

func (l *lexer) emitEnd(d decoder.Declaration, kind token.Kind) {
	if d.BodyOffset < 0 || d.Length == 0 {
		return
	}
	endOffset := d.Offset + d.Length - 1
	l.tokens = append(l.tokens, token.Token{
		Kind:   kind,
		Offset: endOffset,
		Length: 1,
		Line:   l.lineAt(endOffset),
	})
}

func (l *lexer) emitAnnotations(d decoder.Declaration, access wtype.AccessLevel) error {
	for _, attr := range d.Attributes {
		suffix, matched := matchPrefix(attr.Name, l.opts.Prefix)
		if !matched {
			continue
		}

		kind, ok := dependencyKind(attr.Arguments)
		if !ok {
			return l.lexerErr(d.Offset, werrors.InvalidAnnotationText, attr.Name)
		}

		abstract, err := wtype.ParseComposite(d.TypeName)
		if err != nil {
			return l.lexerErr(d.Offset, werrors.InvalidAnnotationText, attr.Name)
		}

		configs, objcTag, cfgErr := l.dependencyConfig(d, attr.Arguments)
		if cfgErr != nil {
			return cfgErr
		}
		if objcTag {
			configs = append(configs, wtype.ConfigurationAttribute{Name: "objc", Kind: wtype.AttributeBool, Bool: true})
		}

		switch kind {
		case wtype.Registration:
			concrete, err := concreteType(attr.Arguments)
			if err != nil {
				return l.lexerErr(d.Offset, werrors.InvalidAnnotationText, attr.Name)
			}
			l.tokens = append(l.tokens, token.Token{
				Kind:   token.RegisterAnnotation,
				Offset: d.Offset,
				Length: d.Length,
				Line:   l.lineAt(d.Offset),
				Payload: token.RegisterAnnotationPayload{
					Name: d.Name, Abstract: abstract, Concrete: concrete, Access: access,
				},
			})
		case wtype.Reference:
			l.tokens = append(l.tokens, token.Token{
				Kind:   token.ReferenceAnnotation,
				Offset: d.Offset,
				Length: d.Length,
				Line:   l.lineAt(d.Offset),
				Payload: token.ReferenceAnnotationPayload{
					Name: d.Name, Abstract: abstract, Access: access,
				},
			})
		case wtype.Parameter:
			count := suffix
			if count == 0 {
				count = 1
			}
			l.tokens = append(l.tokens, token.Token{
				Kind:   token.ParameterAnnotation,
				Offset: d.Offset,
				Length: d.Length,
				Line:   l.lineAt(d.Offset),
				Payload: token.ParameterAnnotationPayload{
					Name: d.Name, Abstract: abstract, ParamCount: count, Access: access,
				},
			})
		}

		for _, c := range configs {
			l.tokens = append(l.tokens, token.Token{
				Kind:   token.ConfigurationAnnotation,
				Offset: d.Offset,
				Length: d.Length,
				Line:   l.lineAt(d.Offset),
				Payload: token.ConfigurationAnnotationPayload{Target: d.Name, Attribute: c},
			})
		}
	}
	return nil
}

// matchPrefix reports whether name is prefix or prefix+"P"+digits,
// case-insensitively, returning the parsed digit count (0 if absent).
func matchPrefix(name, prefix string) (int, bool) {
	if len(name) < len(prefix) || !strings.EqualFold(name[:len(prefix)], prefix) {
		return 0, false
	}
	rest := name[len(prefix):]
	if rest == "" {
		return 0, true
	}
	if len(rest) < 2 || (rest[0] != 'P' && rest[0] != 'p') {
		return 0, false
	}
	n, err := strconv.Atoi(rest[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

var recognizedConfigKeys = map[string]bool{
	"customBuilder":   true,
	"doesSupportObjc": true,
	"setter":          true,
	"escaping":        true,
	"projected":       true,
}

func dependencyKind(args []decoder.Argument) (wtype.DependencyKind, bool) {
	for _, a := range args {
		if a.Name != "" && a.Name != "kind" {
			continue
		}
		switch strings.TrimPrefix(a.Value, ".") {
		case "registration":
			return wtype.Registration, true
		case "reference":
			return wtype.Reference, true
		case "parameter":
			return wtype.Parameter, true
		}
	}
	return 0, false
}

func concreteType(args []decoder.Argument) (wtype.CompositeType, error) {
	for _, a := range args {
		if a.Name == "type" {
			return wtype.ParseComposite(strings.TrimSuffix(a.Value, ".self"))
		}
	}
	return nil, &wtype.ParseError{Text: "", Reason: "missing type: argument"}
}

func (l *lexer) dependencyConfig(d decoder.Declaration, args []decoder.Argument) ([]wtype.ConfigurationAttribute, bool, error) {
	var configs []wtype.ConfigurationAttribute
	for _, a := range args {
		switch a.Name {
		case "", "kind", "type":
			continue
		case "scope":
			scope, ok := wtype.ParseScope(strings.TrimPrefix(a.Value, "."))
			if !ok {
				return nil, false, l.lexerErrScope(d.Offset, a.Value)
			}
			configs = append(configs, wtype.ConfigurationAttribute{Name: "scope", Kind: wtype.AttributeScope, Scope: scope})
		case "customBuilder":
			configs = append(configs, wtype.ConfigurationAttribute{Name: a.Name, Kind: wtype.AttributeString, Str: a.Value})
		default:
			if !recognizedConfigKeys[a.Name] {
				return nil, false, l.lexerErr(d.Offset, werrors.InvalidAnnotationText, a.Name)
			}
			configs = append(configs, wtype.ConfigurationAttribute{Name: a.Name, Kind: wtype.AttributeBool, Bool: a.Value == "true"})
		}
	}

	objc := false
	for _, attr := range d.Attributes {
		if attr.Name == "objc" {
			objc = true
		}
	}
	return configs, objc, nil
}

func (l *lexer) lexerErr(offset int, kind werrors.TokenErrorKind, text string) error {
	return &werrors.LexerError{
		File: l.opts.File,
		Line: l.lineAt(offset) + 1,
		Cause: &werrors.TokenError{
			Kind: kind,
			Text: text,
		},
	}
}

func (l *lexer) lexerErrScope(offset int, text string) error {
	return l.lexerErr(offset, werrors.InvalidScopeText, text)
}

func (l *lexer) scanImports() {
	offset := 0
	for _, line := range strings.Split(string(l.source), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import") && (len(trimmed) == len("import") || trimmed[len("import")] == ' ') {
			path := strings.TrimSpace(strings.TrimPrefix(trimmed, "import"))
			l.tokens = append(l.tokens, token.Token{
				Kind:    token.ImportDeclaration,
				Offset:  offset,
				Length:  len(line),
				Line:    l.lineAt(offset),
				Payload: token.ImportDeclarationPayload{Path: path},
			})
		}
		offset += len(line) + 1
	}
}
