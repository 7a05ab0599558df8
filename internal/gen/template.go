// Package gen walks a validated AST and renders host-language source
// through a minimal templating layer: flat text with `{{name}}`
// placeholders and a `{{#each xs}}...{{/each}}` loop form. This is
// deliberately not text/template: the loop syntax the host template
// bundle format uses does not map onto Go's {{range}} action, and the
// engine only ever needs variable substitution plus one loop shape.
package gen

import (
	"strconv"
	"strings"

	"github.com/rjchrhl/weaver/internal/werrors"
)

// Value is one entry in a template's data context: either a plain
// string, bool or int (any other type renders as empty text) or a slice
// of nested contexts for an #each block.
type Value any

// Context is the data a template is rendered against: a flat map from
// placeholder name to Value, where a Value for an #each name is a
// []Context.
type Context map[string]Value

// Render expands the template text against ctx. The engine is pure:
// calling Render twice with the same arguments always yields the same
// bytes, in document order.
func Render(text string, ctx Context) (string, error) {
	var b strings.Builder
	_, err := render(text, ctx, &b)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// render returns the number of bytes of text consumed, which is all of
// text on success. An {{#each}} body ends at the first {{/each}} after
// it, so each blocks do not nest, and the body is rendered against the
// item's context only.
func render(text string, ctx Context, out *strings.Builder) (int, error) {
	pos := 0
	for pos < len(text) {
		open := strings.Index(text[pos:], "{{")
		if open < 0 {
			out.WriteString(text[pos:])
			return len(text), nil
		}
		out.WriteString(text[pos : pos+open])
		pos += open

		close := strings.Index(text[pos:], "}}")
		if close < 0 {
			return 0, &werrors.InvalidTemplatePathError{Path: "unterminated {{ in template"}
		}
		tag := strings.TrimSpace(text[pos+2 : pos+close])
		pos += close + 2

		switch {
		case strings.HasPrefix(tag, "#each "):
			name := strings.TrimSpace(strings.TrimPrefix(tag, "#each "))
			endTag := "{{/each}}"
			endIdx := strings.Index(text[pos:], endTag)
			if endIdx < 0 {
				return 0, &werrors.InvalidTemplatePathError{Path: "unterminated {{#each " + name + "}}"}
			}
			body := text[pos : pos+endIdx]
			pos += endIdx + len(endTag)

			items, _ := ctx[name].([]Context)
			for _, item := range items {
				if _, err := render(body, item, out); err != nil {
					return 0, err
				}
			}

		case tag == "/each":
			// A stray close with no matching open above is a template bug,
			// not a user input error; treat it as plain text rather than
			// failing the whole generation run.
			out.WriteString("{{/each}}")

		default:
			out.WriteString(renderValue(ctx[tag]))
		}
	}
	return len(text), nil
}

func renderValue(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
