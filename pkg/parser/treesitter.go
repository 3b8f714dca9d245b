package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/smellscan/pkg/domain"
	"github.com/specvital/smellscan/pkg/parser/tspool"
)

const MaxTreeDepth = tspool.MaxTreeDepth

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
func GetNodeText(node *sitter.Node, source []byte) (result string) {
	if node == nil {
		return ""
	}

	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	// Validate bounds before calling tree-sitter C code
	if start > sourceLen || end > sourceLen || start > end {
		return ""
	}

	// Content() can panic on slice bounds when the tree and source disagree.
	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// literalKinds are emitted verbatim by GetNormalizedText.
var literalKinds = map[string]bool{
	"regex":           true,
	"string":          true,
	"template_string": true,
}

// GetNormalizedText rebuilds the node text from its tokens, so two expressions
// that differ only in layout produce the same text. Tokens are joined without
// spaces except between two word tokens, between two operator tokens and after
// commas. Literals and their inner whitespace are kept as written. Comments are dropped.
func GetNormalizedText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	var sb strings.Builder
	var last byte
	appendToken := func(n *sitter.Node) {
		tok := GetNodeText(n, source)
		if tok == "" {
			return
		}
		if sb.Len() > 0 && needsSpace(last, tok[0]) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
		last = tok[len(tok)-1]
	}

	var visit func(n *sitter.Node, depth int)
	visit = func(n *sitter.Node, depth int) {
		kind := n.Type()
		switch {
		case kind == "comment":
			return
		case n.ChildCount() == 0, literalKinds[kind], depth > tspool.MaxTreeDepth:
			appendToken(n)
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i), depth+1)
		}
	}
	visit(node, 0)

	return sb.String()
}

func needsSpace(prev, next byte) bool {
	if prev == ',' {
		return true
	}
	return (isWordByte(prev) && isWordByte(next)) || (isOperatorByte(prev) && isOperatorByte(next))
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isOperatorByte(c byte) bool {
	return strings.IndexByte("+-*/%<>=!&|^~?:", c) >= 0
}

// GetLocation converts a tree-sitter node position to a [domain.Location].
// Line numbers are converted to 1-based indexing.
func GetLocation(node *sitter.Node, filename string) domain.Location {
	start := node.StartPoint()
	end := node.EndPoint()

	return domain.Location{
		File:      filename,
		StartLine: int(start.Row) + 1, // Convert to 1-based
		EndLine:   int(end.Row) + 1,
		StartCol:  int(start.Column),
		EndCol:    int(end.Column),
	}
}

// FindChildByType returns the first direct child with the given node type.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// NamedChildren returns the named direct children of node, skipping comments.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}

	var children []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// FindErrorNode returns the first ERROR or MISSING node in document order, or nil.
func FindErrorNode(root *sitter.Node) *sitter.Node {
	if root == nil || !root.HasError() {
		return nil
	}

	var found *sitter.Node
	WalkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}

func walkTreeWithDepth(node *sitter.Node, visitor func(*sitter.Node) bool, depth int) {
	if depth > tspool.MaxTreeDepth {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTreeWithDepth(node.Child(i), visitor, depth+1)
	}
}

// WalkTree recursively visits all nodes in the AST.
// The visitor function returns false to stop traversing into children.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	walkTreeWithDepth(node, visitor, 0)
}
