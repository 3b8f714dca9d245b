// Package jstest parses JavaScript and TypeScript test files written against
// describe/it style frameworks into a domain.TestFile.
package jstest

import (
	"context"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser"
	"github.com/specvital/smellscan/pkg/parser/tspool"
)

// DetectLanguage determines the grammar to use from the file extension.
// The second result is false for extensions outside SupportedExtensions.
func DetectLanguage(filename string) (domain.Language, bool) {
	ext := filepath.Ext(filename)
	if !SupportedExtensions[ext] {
		return "", false
	}

	switch ext {
	case ".js", ".jsx", ".mjs", ".cjs":
		return domain.LanguageJavaScript, true
	case ".tsx":
		return domain.LanguageTSX, true
	default:
		return domain.LanguageTypeScript, true
	}
}

// Parser turns test source files into structural models.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses one source file.
func (p *Parser) Parse(ctx context.Context, file domain.SourceFile) (*domain.TestFile, error) {
	return Parse(ctx, file.Content, file.Path)
}

// Parse is the main entry point for parsing JavaScript/TypeScript test files.
// Content that does not parse cleanly yields a *parser.ParseError and no model.
func Parse(ctx context.Context, source []byte, filename string) (*domain.TestFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, &parser.ParseError{Path: filename, Err: err}
	}

	lang, ok := DetectLanguage(filename)
	if !ok {
		return nil, &parser.ParseError{Path: filename, Err: parser.ErrUnsupportedFile}
	}

	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &parser.ParseError{Path: filename, Err: err}
	}
	defer tree.Close()
	root := tree.RootNode()

	if errNode := parser.FindErrorNode(root); errNode != nil || root.HasError() {
		line := 0
		if errNode != nil {
			line = int(errNode.StartPoint().Row) + 1
		}
		return nil, &parser.ParseError{Path: filename, Line: line, Err: parser.ErrSyntax}
	}

	testFile := &domain.TestFile{
		Path:      filename,
		Language:  lang,
		Framework: DetectFramework(root, source, lang, filename),
	}

	b := &builder{file: testFile, filename: filename, source: source}
	b.parseNode(root, nil, false)

	return testFile, nil
}

// builder accumulates declarations into one TestFile.
// A nil parent suite means the file root.
type builder struct {
	file     *domain.TestFile
	filename string
	source   []byte
}

func (b *builder) addTest(test domain.Test, parent *domain.TestSuite) {
	if parent != nil {
		parent.Tests = append(parent.Tests, test)
		return
	}
	b.file.Tests = append(b.file.Tests, test)
}

func (b *builder) addSuite(suite domain.TestSuite, parent *domain.TestSuite) {
	if parent != nil {
		parent.Suites = append(parent.Suites, suite)
		return
	}
	b.file.Suites = append(b.file.Suites, suite)
}

// parseNode walks statements looking for declarations.
// dynamic marks declarations generated by loops or array iteration.
func (b *builder) parseNode(node *sitter.Node, parent *domain.TestSuite, dynamic bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)

		switch child.Type() {
		case "expression_statement":
			if expr := parser.FindChildByType(child, "call_expression"); expr != nil {
				b.processCall(expr, parent, dynamic)
			} else if expr := parser.FindChildByType(child, "await_expression"); expr != nil {
				if call := parser.FindChildByType(expr, "call_expression"); call != nil {
					b.processCall(call, parent, dynamic)
				}
			}
		case "variable_declaration", "lexical_declaration":
			b.processDeclaration(child, parent, dynamic)
		case "for_statement", "for_in_statement", "while_statement", "do_statement":
			if body := child.ChildByFieldName("body"); body != nil {
				b.parseNode(body, parent, true)
			}
		default:
			b.parseNode(child, parent, dynamic)
		}
	}
}

func (b *builder) processCall(call *sitter.Node, parent *domain.TestSuite, dynamic bool) {
	funcNode := call.ChildByFieldName("function")
	args := call.ChildByFieldName("arguments")
	if funcNode == nil || args == nil {
		return
	}

	// describe.each(table)(name, fn)
	if funcNode.Type() == "call_expression" {
		b.processEach(call, funcNode, args, parent)
		return
	}

	if callback := arrayIteratorCallback(funcNode, args, b.source); callback != nil {
		if body := callback.ChildByFieldName("body"); body != nil {
			b.parseNode(body, parent, true)
		}
		return
	}

	callee := ParseFunctionName(funcNode, b.source)
	switch {
	case callee.Name == "":
		return
	case isSuiteFunc(callee.Name):
		b.processSuite(call, args, parent, callee, dynamic)
	case isCaseFunc(callee.Name):
		b.processCase(call, args, parent, callee, dynamic)
	default:
		// Wrappers such as describeIf or beforeEach may declare tests in their callback.
		if callback := FindLastCallback(args); callback != nil {
			if body := callback.ChildByFieldName("body"); body != nil {
				b.parseNode(body, parent, dynamic)
			}
		}
	}
}

func (b *builder) caseName(args *sitter.Node, dynamic bool) string {
	name := ExtractTestName(args, b.source)
	if dynamic && name != "" {
		name += DynamicCasesSuffix
	}
	return name
}

func (b *builder) processCase(call, args *sitter.Node, parent *domain.TestSuite, callee Callee, dynamic bool) {
	name := b.caseName(args, dynamic)
	callback := FindCallback(args)
	if name == "" && callback == nil {
		return
	}

	test := domain.Test{
		Name:     name,
		Status:   callee.Status,
		Modifier: callee.Modifier,
		Location: parser.GetLocation(call, b.filename),
	}
	if callback != nil {
		test.Body = ExtractBody(callback, b.source, b.filename)
	}

	b.addTest(test, parent)
}

func (b *builder) processSuite(call, args *sitter.Node, parent *domain.TestSuite, callee Callee, dynamic bool) {
	name := b.caseName(args, dynamic)
	callback := FindCallback(args)
	if name == "" && callback == nil {
		return
	}

	suite := domain.TestSuite{
		Name:     name,
		Status:   callee.Status,
		Modifier: callee.Modifier,
		Location: parser.GetLocation(call, b.filename),
	}
	if callback != nil {
		if body := callback.ChildByFieldName("body"); body != nil {
			b.parseNode(body, &suite, dynamic)
		}
	}

	b.addSuite(suite, parent)
}

// processEach handles table-driven declarations, counted once regardless of row count.
func (b *builder) processEach(outer, inner, outerArgs *sitter.Node, parent *domain.TestSuite) {
	innerFunc := inner.ChildByFieldName("function")
	if innerFunc == nil {
		return
	}

	callee := ParseFunctionName(innerFunc, b.source)
	switch callee.Name {
	case FuncDescribe + "." + ModifierEach, FuncContext + "." + ModifierEach, FuncSuite + "." + ModifierEach:
		callee.Name = FuncDescribe
		b.processSuite(outer, outerArgs, parent, callee, true)
	case FuncIt + "." + ModifierEach, FuncTest + "." + ModifierEach, FuncSpecify + "." + ModifierEach:
		callee.Name = FuncIt
		b.processCase(outer, outerArgs, parent, callee, true)
	}
}

func (b *builder) processDeclaration(node *sitter.Node, parent *domain.TestSuite, dynamic bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		declarator := node.Child(i)
		if declarator == nil || declarator.Type() != "variable_declarator" {
			continue
		}

		value := declarator.ChildByFieldName("value")
		if value == nil {
			continue
		}

		if call := innermostCall(value); call != nil {
			b.processCall(call, parent, dynamic)
		} else {
			b.parseNode(value, parent, dynamic)
		}
	}
}

// innermostCall unwraps chained calls like test('x', fn).timeout(5) to the declaration call.
func innermostCall(node *sitter.Node) *sitter.Node {
	if node == nil || node.Type() != "call_expression" {
		return nil
	}

	funcNode := node.ChildByFieldName("function")
	if funcNode != nil && funcNode.Type() == "member_expression" {
		if inner := innermostCall(funcNode.ChildByFieldName("object")); inner != nil {
			return inner
		}
	}

	return node
}

// arrayIteratorCallback returns the callback of [...].forEach(fn) or .map(fn).
func arrayIteratorCallback(funcNode, args *sitter.Node, source []byte) *sitter.Node {
	if funcNode.Type() != "member_expression" {
		return nil
	}

	switch parser.GetNodeText(funcNode.ChildByFieldName("property"), source) {
	case "forEach", "map":
		return FindCallback(args)
	}
	return nil
}
