package jstest

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser"
)

// ExtractBody collects the structural facts of a test callback.
func ExtractBody(callback *sitter.Node, source []byte, filename string) *domain.TestBody {
	result := &domain.TestBody{}

	body := callback.ChildByFieldName("body")
	if body == nil {
		return result
	}

	if body.Type() == "statement_block" {
		result.Statements = countStatements(body)
	} else {
		// Expression-bodied arrow: () => expect(x).toBe(1)
		result.Statements = 1
		if a, ok := extractAssertion(body, body, source, filename); ok {
			result.Assertions = append(result.Assertions, a)
		}
	}

	parser.WalkTree(body, func(n *sitter.Node) bool {
		kind := n.Type()
		switch {
		case kind == "comment":
			result.Comments++
		case branchKinds[kind]:
			result.Branches = append(result.Branches, domain.Construct{Kind: kind, Location: parser.GetLocation(n, filename)})
		case handlerKinds[kind]:
			result.Handlers = append(result.Handlers, domain.Construct{Kind: kind, Location: parser.GetLocation(n, filename)})
		case kind == "call_expression":
			if fn := n.ChildByFieldName("function"); fn != nil {
				result.Calls = append(result.Calls, domain.Call{
					Callee:   parser.GetNormalizedText(fn, source),
					Location: parser.GetLocation(n, filename),
				})
			}
		case kind == "expression_statement":
			if expr := n.NamedChild(0); expr != nil {
				if a, ok := extractAssertion(n, expr, source, filename); ok {
					result.Assertions = append(result.Assertions, a)
				}
			}
		}
		return true
	})

	return result
}

// countStatements counts the executable statements of a block.
// Comments and lone semicolons do not count.
func countStatements(block *sitter.Node) int {
	n := 0
	for _, child := range parser.NamedChildren(block) {
		if child.Type() != "empty_statement" {
			n++
		}
	}
	return n
}

// extractAssertion recognises expr as an assertion chain.
// stmt supplies the location; expr supplies the text.
func extractAssertion(stmt, expr *sitter.Node, source []byte, filename string) (domain.Assertion, bool) {
	expr = unwrapExpression(expr)
	if expr == nil {
		return domain.Assertion{}, false
	}
	if expr.Type() != "call_expression" && expr.Type() != "member_expression" {
		return domain.Assertion{}, false
	}

	rootCall, rootName := findAssertionRoot(expr, source)
	if rootName == "" {
		return domain.Assertion{}, false
	}

	a := domain.Assertion{
		Location: parser.GetLocation(stmt, filename),
		Numbers:  collectNumbers(expr, source),
		Text:     parser.GetNormalizedText(expr, source),
	}

	switch {
	case rootCall == nil:
		// Property access on the root itself, e.g. expect.hasAssertions without a call.
		a.Matcher = memberProperty(expr, source)
	case sameNode(rootCall, expr):
		// Single call: assert(x), assert.equal(a, b), expect(x).
		args := argumentNodes(rootCall)
		a.Matcher = rootName
		if fn := rootCall.ChildByFieldName("function"); fn != nil && fn.Type() == "member_expression" {
			a.Matcher = memberProperty(fn, source)
		}
		if len(args) > 0 {
			a.Subject = parser.GetNormalizedText(args[0], source)
		}
		if rootName == "assert" && len(args) > 1 {
			a.Expected = parser.GetNormalizedText(args[1], source)
		}
	default:
		// Chain: expect(subject).matcher(expected) or chai's expect(x).to.be.true.
		if args := argumentNodes(rootCall); len(args) > 0 {
			a.Subject = parser.GetNormalizedText(args[0], source)
		}
		if expr.Type() == "call_expression" {
			if fn := expr.ChildByFieldName("function"); fn != nil && fn.Type() == "member_expression" {
				a.Matcher = memberProperty(fn, source)
			}
			if args := argumentNodes(expr); len(args) > 0 {
				a.Expected = parser.GetNormalizedText(args[0], source)
			}
		} else {
			a.Matcher = memberProperty(expr, source)
		}
	}

	return a, true
}

// findAssertionRoot walks down a call/member chain to its base identifier.
// It returns the call whose callee is the root (expect(x), assert.equal(a, b))
// and the root name, or "" when the chain is not an assertion.
func findAssertionRoot(node *sitter.Node, source []byte) (*sitter.Node, string) {
	var lastCall *sitter.Node

	for depth := 0; node != nil && depth < parser.MaxTreeDepth; depth++ {
		switch node.Type() {
		case "call_expression":
			lastCall = node
			node = node.ChildByFieldName("function")
		case "member_expression":
			node = node.ChildByFieldName("object")
		case "identifier":
			name := parser.GetNodeText(node, source)
			if !AssertionRoots[name] {
				return nil, ""
			}
			return lastCall, name
		case "await_expression", "parenthesized_expression", "non_null_expression":
			node = node.NamedChild(0)
		default:
			return nil, ""
		}
	}

	return nil, ""
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func unwrapExpression(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Type() {
		case "await_expression", "parenthesized_expression":
			node = node.NamedChild(0)
		default:
			return node
		}
	}
	return nil
}

func memberProperty(node *sitter.Node, source []byte) string {
	if node == nil || node.Type() != "member_expression" {
		return ""
	}
	return parser.GetNodeText(node.ChildByFieldName("property"), source)
}

// argumentNodes returns the argument expressions of a call, skipping punctuation and comments.
func argumentNodes(call *sitter.Node) []*sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	return parser.NamedChildren(args)
}

func collectNumbers(node *sitter.Node, source []byte) []string {
	var numbers []string
	parser.WalkTree(node, func(n *sitter.Node) bool {
		if n.Type() == "number" {
			numbers = append(numbers, parser.GetNodeText(n, source))
		}
		return true
	})
	return numbers
}
