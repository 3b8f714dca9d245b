package tspool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser/tspool"
)

func TestGrammar(t *testing.T) {
	t.Parallel()

	for _, lang := range []domain.Language{domain.LanguageJavaScript, domain.LanguageTypeScript, domain.LanguageTSX} {
		grammar, err := tspool.Grammar(lang)
		require.NoError(t, err, lang)
		assert.NotNil(t, grammar, lang)
	}

	_, err := tspool.Grammar("python")
	require.ErrorIs(t, err, tspool.ErrUnsupportedLanguage)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lang   domain.Language
		source string
	}{
		{name: "typescript annotations", lang: domain.LanguageTypeScript, source: "const x: number = 1;"},
		{name: "javascript test file", lang: domain.LanguageJavaScript, source: "describe('s', () => { it('t', () => {}); });"},
		{name: "tsx element", lang: domain.LanguageTSX, source: `const el = <Button label="ok" />;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := tspool.Parse(context.Background(), tt.lang, []byte(tt.source))
			require.NoError(t, err)
			defer tree.Close()

			root := tree.RootNode()
			assert.Equal(t, "program", root.Type())
			assert.False(t, root.HasError())
		})
	}
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	tree, err := tspool.Parse(context.Background(), "", []byte("x"))

	assert.Nil(t, tree)
	require.ErrorIs(t, err, tspool.ErrUnsupportedLanguage)
}

func TestParse_UsableAfterCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if tree, err := tspool.Parse(ctx, domain.LanguageTypeScript, []byte("const x = 1;")); err == nil {
		tree.Close()
	}

	tree, err := tspool.Parse(context.Background(), domain.LanguageTypeScript, []byte("const y = 2;"))
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestParse_Concurrent(t *testing.T) {
	t.Parallel()

	source := []byte("describe('s', () => { it('t', () => {}); });")

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
			if err != nil {
				return err
			}
			tree.Close()
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestQueryWithCache(t *testing.T) {
	t.Parallel()

	source := []byte("import { describe } from 'vitest';\nconst x = require('chai');")
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	require.NoError(t, err)
	defer tree.Close()

	const query = `(import_statement source: (string) @import)`

	for range 2 {
		results, err := tspool.QueryWithCache(tree.RootNode(), source, domain.LanguageJavaScript, query)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "'vitest'", results[0].Captures["import"].Content(source))
		assert.Equal(t, results[0].Captures["import"], results[0].Node)
	}
}

func TestQueryWithCache_Errors(t *testing.T) {
	t.Parallel()

	source := []byte("const x = 1;")
	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, source)
	require.NoError(t, err)
	defer tree.Close()

	_, err = tspool.QueryWithCache(tree.RootNode(), source, domain.LanguageJavaScript, "(not_a_node")
	require.Error(t, err)

	_, err = tspool.QueryWithCache(tree.RootNode(), source, "ruby", "(program)")
	require.ErrorIs(t, err, tspool.ErrUnsupportedLanguage)
}
