package gen_test

import (
	"testing"

	"github.com/rjchrhl/weaver/internal/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	out, err := gen.Render("struct {{typeName}} {}", gen.Context{"typeName": "App"})
	require.NoError(t, err)
	assert.Equal(t, "struct App {}", out)
}

func TestRender_EachLoopsOverNestedContexts(t *testing.T) {
	tmpl := "{{#each items}}- {{name}}\n{{/each}}"
	ctx := gen.Context{"items": []gen.Context{
		{"name": "a"},
		{"name": "b"},
	}}

	out, err := gen.Render(tmpl, ctx)
	require.NoError(t, err)
	assert.Equal(t, "- a\n- b\n", out)
}

func TestRender_MissingPlaceholderRendersEmpty(t *testing.T) {
	out, err := gen.Render("[{{missing}}]", gen.Context{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRender_IsDeterministic(t *testing.T) {
	tmpl := "{{#each rows}}{{name}}={{value}};{{/each}}"
	ctx := gen.Context{"rows": []gen.Context{{"name": "a", "value": 1}, {"name": "b", "value": 2}}}

	first, err := gen.Render(tmpl, ctx)
	require.NoError(t, err)
	second, err := gen.Render(tmpl, ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
