// Package tspool holds the tree-sitter grammars for JavaScript, TypeScript and
// TSX, parses source with them and caches compiled queries.
//
// Every Parse call creates and closes its own parser. A parser whose ParseCtx
// was cancelled keeps its cancel flag set and fails every later parse with
// "operation limit was hit", so parsers are never shared between calls.
// Parse and QueryWithCache are safe for concurrent use.
package tspool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/specvital/smellscan/pkg/domain"
)

// MaxTreeDepth is the maximum recursion depth when walking AST trees.
const MaxTreeDepth = 1000

// ErrUnsupportedLanguage is returned for languages without a bundled grammar.
var ErrUnsupportedLanguage = errors.New("tspool: unsupported language")

var grammars = sync.OnceValue(func() map[domain.Language]*sitter.Language {
	return map[domain.Language]*sitter.Language{
		domain.LanguageJavaScript: javascript.GetLanguage(),
		domain.LanguageTSX:        tsx.GetLanguage(),
		domain.LanguageTypeScript: typescript.GetLanguage(),
	}
})

// Grammar returns the tree-sitter grammar for lang.
func Grammar(lang domain.Language) (*sitter.Language, error) {
	grammar, ok := grammars()[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return grammar, nil
}

// Parse parses source with the grammar for lang.
// Caller MUST call tree.Close() to free resources.
func Parse(ctx context.Context, lang domain.Language, source []byte) (*sitter.Tree, error) {
	grammar, err := Grammar(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(grammar)

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lang, err)
	}

	return tree, nil
}
