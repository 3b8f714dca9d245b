package jstest

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser"
)

// Callee is a resolved test declaration function such as it.skip or xdescribe.
type Callee struct {
	// Name is the base function ("describe", "it") with ".each" kept for table forms.
	Name     string
	Modifier string
	Status   domain.TestStatus
}

var noCallee = Callee{Status: domain.TestStatusActive}

func UnquoteString(text string) string {
	if len(text) < 2 {
		return text
	}

	if text[0] == '`' && text[len(text)-1] == '`' {
		return text[1 : len(text)-1]
	}

	// strconv.Unquote only understands double quotes, so single-quoted
	// strings are re-quoted before unescaping.
	if text[0] == '\'' && text[len(text)-1] == '\'' {
		inner := strings.ReplaceAll(text[1:len(text)-1], `\'`, `'`)
		converted := `"` + strings.ReplaceAll(inner, `"`, `\"`) + `"`
		if s, err := strconv.Unquote(converted); err == nil {
			return s
		}
		return text
	}

	if s, err := strconv.Unquote(text); err == nil {
		return s
	}

	return text
}

func isFunctionNode(node *sitter.Node) bool {
	switch node.Type() {
	case "arrow_function", "function_expression", "function":
		return true
	}
	return false
}

// FindCallback returns the first function argument, or nil.
func FindCallback(args *sitter.Node) *sitter.Node {
	for i := 0; i < int(args.ChildCount()); i++ {
		if child := args.Child(i); isFunctionNode(child) {
			return child
		}
	}
	return nil
}

// FindLastCallback returns the last function argument, or nil.
// Custom wrappers such as describeIf(cond, name, fn) take the callback last.
func FindLastCallback(args *sitter.Node) *sitter.Node {
	var last *sitter.Node
	for i := 0; i < int(args.ChildCount()); i++ {
		if child := args.Child(i); isFunctionNode(child) {
			last = child
		}
	}
	return last
}

// ExtractTestName returns the declared name from a call's arguments.
// Non-literal names yield DynamicNamePlaceholder; a missing name yields "".
func ExtractTestName(args *sitter.Node, source []byte) string {
	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Type() {
		case "string", "template_string":
			return UnquoteString(parser.GetNodeText(child, source))
		case "identifier", "binary_expression", "call_expression", "member_expression":
			return DynamicNamePlaceholder
		case "(", ")", ",", "comment":
			continue
		default:
			return ""
		}
	}
	return ""
}

// ParseFunctionName resolves the function part of a call into a Callee.
// Unrecognised shapes yield a Callee with an empty Name.
func ParseFunctionName(node *sitter.Node, source []byte) Callee {
	switch node.Type() {
	case "identifier":
		return parseIdentifier(node, source)
	case "member_expression":
		return parseMember(node, source)
	case "parenthesized_expression":
		return parseParenthesized(node, source)
	default:
		return noCallee
	}
}

func parseIdentifier(node *sitter.Node, source []byte) Callee {
	name := parser.GetNodeText(node, source)

	if base, ok := SkippedFunctionAliases[name]; ok {
		return Callee{Name: base, Modifier: name, Status: domain.TestStatusSkipped}
	}
	if base, ok := FocusedFunctionAliases[name]; ok {
		return Callee{Name: base, Modifier: name, Status: domain.TestStatusFocused}
	}
	return Callee{Name: name, Status: domain.TestStatusActive}
}

// parseMember handles fn.modifier and fn.modifier.modifier forms,
// e.g. it.skip, describe.each, test.concurrent.only, describe.skip.each.
func parseMember(node *sitter.Node, source []byte) Callee {
	obj := node.ChildByFieldName("object")
	prop := node.ChildByFieldName("property")
	if obj == nil || prop == nil {
		return noCallee
	}

	propName := parser.GetNodeText(prop, source)

	var base, middle string
	switch obj.Type() {
	case "identifier":
		base = parser.GetNodeText(obj, source)
	case "member_expression":
		innerObj := obj.ChildByFieldName("object")
		innerProp := obj.ChildByFieldName("property")
		if innerObj == nil || innerProp == nil || innerObj.Type() != "identifier" {
			return noCallee
		}
		base = parser.GetNodeText(innerObj, source)
		middle = parser.GetNodeText(innerProp, source)
	default:
		return noCallee
	}

	// Playwright scopes suites under test: test.describe, test.describe.only.
	if base == FuncTest && (propName == FuncDescribe || middle == FuncDescribe) {
		if middle == "" {
			return Callee{Name: FuncDescribe, Status: domain.TestStatusActive}
		}
		status := ParseModifierStatus(propName)
		if status == domain.TestStatusActive {
			return Callee{Name: FuncDescribe, Status: status}
		}
		return Callee{Name: FuncDescribe, Modifier: propName, Status: status}
	}

	if middle != "" && middle != ModifierConcurrent {
		status := ParseModifierStatus(middle)
		if status == domain.TestStatusActive || propName != ModifierEach {
			return noCallee
		}
		return Callee{Name: base + "." + ModifierEach, Modifier: middle, Status: status}
	}

	switch propName {
	case ModifierConcurrent:
		return Callee{Name: base, Status: domain.TestStatusActive}
	case ModifierEach:
		return Callee{Name: base + "." + ModifierEach, Status: domain.TestStatusActive}
	case ModifierOnly, ModifierSkip, ModifierTodo, ModifierFixme, ModifierFail, ModifierFailing, ModifierSlow:
		return Callee{Name: base, Modifier: propName, Status: ParseModifierStatus(propName)}
	default:
		return noCallee
	}
}

// parseParenthesized handles (cond ? describe : describe.skip)(...) by taking
// the first recognisable branch and treating it as active.
func parseParenthesized(node *sitter.Node, source []byte) Callee {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "ternary_expression":
			for _, field := range []string{"consequence", "alternative"} {
				branch := child.ChildByFieldName(field)
				if branch == nil {
					continue
				}
				if c := ParseFunctionName(branch, source); c.Name != "" {
					return Callee{Name: c.Name, Status: domain.TestStatusActive}
				}
			}
			return noCallee
		case "identifier", "member_expression", "parenthesized_expression":
			return ParseFunctionName(child, source)
		}
	}
	return noCallee
}
