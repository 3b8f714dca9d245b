package jstest

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser"
	"github.com/specvital/smellscan/pkg/parser/framework"
	"github.com/specvital/smellscan/pkg/parser/tspool"
)

const (
	// ES6 imports: import x from 'y', import { x } from 'y', import 'y'
	importQuery = `
		(import_statement
			source: (string) @import
		)
	`

	// CommonJS: require('x'), require("x")
	requireQuery = `
		(call_expression
			function: (identifier) @func (#eq? @func "require")
			arguments: (arguments (string) @import)
		)
	`
)

// ExtractImports returns the deduplicated module specifiers a file imports,
// ES module imports first and then require calls.
// A query failure drops that import style only.
func ExtractImports(root *sitter.Node, source []byte, lang domain.Language) []string {
	seen := make(map[string]struct{})
	var imports []string

	for _, q := range []string{importQuery, requireQuery} {
		results, err := tspool.QueryWithCache(root, source, lang, q)
		if err != nil {
			continue
		}
		for _, r := range results {
			node, ok := r.Captures["import"]
			if !ok {
				continue
			}
			path := UnquoteString(parser.GetNodeText(node, source))
			if path == "" {
				continue
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			imports = append(imports, path)
		}
	}

	return imports
}

// DetectFramework labels a parsed file with its test framework.
func DetectFramework(root *sitter.Node, source []byte, lang domain.Language, filename string) string {
	return framework.Resolve(filename, ExtractImports(root, source, lang))
}
