package highlighter

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"jjcolor/internal/log"
	"jjcolor/internal/scanner"
)

// leaf carries what classifyLeaf needs to know about a node's surroundings.
type leaf struct {
	node       *sitter.Node
	field      string
	parentType string
	grandType  string
}

// highlightJava colors Java source through a tree-sitter parse, mapping
// leaves onto the grammar categories so both share one palette.
func highlightJava(ctx context.Context, parser *sitter.Parser, src string) ([]Span, bool) {
	parser.SetLanguage(java.GetLanguage())

	source := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil || tree == nil {
		log.Warn(log.CatHighlight, "java parse failed", "error", err)
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, false
	}

	idx := newRuneIndex(source)
	raw := make([]Span, 0, 64)
	collectLeafSpans(leaf{node: root}, source, idx, &raw)
	return normalizeSpans(raw, idx.at(len(source))), true
}

func collectLeafSpans(l leaf, src []byte, idx runeIndex, out *[]Span) {
	node := l.node
	if node == nil {
		return
	}

	start := int(node.StartByte())
	end := int(node.EndByte())
	if end <= start {
		return
	}

	// Comments and literals color as one unit even when the grammar gives
	// them children.
	if node.ChildCount() == 0 || isAtomic(node.Type()) {
		*out = append(*out, Span{
			Start: idx.at(start),
			End:   idx.at(end),
			Cat:   classifyLeaf(l, src[start:end]),
		})
		return
	}

	nodeType := node.Type()
	for i := 0; i < int(node.ChildCount()); i++ {
		collectLeafSpans(leaf{
			node:       node.Child(i),
			field:      node.FieldNameForChild(i),
			parentType: nodeType,
			grandType:  l.parentType,
		}, src, idx, out)
	}
}

func isAtomic(nodeType string) bool {
	switch nodeType {
	case "string_literal", "character_literal", "text_block", "block_comment", "line_comment":
		return true
	}
	return false
}

func classifyLeaf(l leaf, text []byte) scanner.Category {
	nodeType := l.node.Type()
	lexeme := string(text)

	switch {
	case nodeType == "ERROR" || l.node.IsMissing():
		return scanner.CatDefault
	case strings.HasSuffix(nodeType, "comment"):
		switch {
		case strings.HasPrefix(lexeme, "/**") && lexeme != "/**/":
			return scanner.CatJavadocComment
		case strings.HasPrefix(lexeme, "/*"):
			return scanner.CatJavaBlockComment
		}
		return scanner.CatJavaComment
	case isAtomic(nodeType):
		return scanner.CatJavaString
	case strings.HasSuffix(nodeType, "_literal") && nodeType != "null_literal":
		return scanner.CatJavaNumeric
	case javaKeywordNodes[nodeType]:
		return scanner.CatJavaKeyword
	case nodeType == "identifier" || nodeType == "type_identifier":
		return classifyIdentifier(l)
	}

	if !l.node.IsNamed() {
		if isWord(lexeme) {
			return scanner.CatJavaKeyword
		}
		if lexeme == "@" {
			return scanner.CatJJTreeNodePunctuation
		}
		return scanner.CatJavaPunctuation
	}
	return scanner.CatDefault
}

func classifyIdentifier(l leaf) scanner.Category {
	switch l.parentType {
	case "method_declaration", "constructor_declaration":
		if l.field == "name" {
			return scanner.CatBNFProductionName
		}
	case "method_invocation":
		if l.field == "name" {
			return scanner.CatBNFProductionCall
		}
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		if l.field == "name" {
			return scanner.CatParserName
		}
	case "annotation", "marker_annotation":
		return scanner.CatJJTreeNodeName
	}
	if l.grandType == "annotation" || l.grandType == "marker_annotation" {
		return scanner.CatJJTreeNodeName
	}
	return scanner.CatDefault
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '_' {
			return false
		}
	}
	return true
}

// Named leaves that spell a keyword.
var javaKeywordNodes = map[string]bool{
	"true":         true,
	"false":        true,
	"null_literal": true,
	"this":         true,
	"super":        true,
	"void_type":    true,
	"boolean_type": true,
}
