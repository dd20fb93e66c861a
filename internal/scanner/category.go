// Package scanner classifies JavaCC, JJTree and JTB grammar text into
// semantic token categories.
//
// A Classifier is a state machine driven by a stack of Contexts, one per
// nested grammar region. The stack can be snapshotted at any offset and
// restored later, so a caller can re-highlight a damaged range without
// rescanning the document from the start.
package scanner

import "fmt"

// Category is the semantic class of one token. Presentation attributes are
// looked up by Category.String() name.
type Category int

const (
	CatEOF Category = iota
	CatDefault
	CatWhitespace
	CatJavaKeyword
	CatJavaString
	CatJavaNumeric
	CatJavaPunctuation
	CatJavaComment
	CatJavaBlockComment
	CatJavadocComment
	CatJavaBlockBrace
	CatJavaCCKeyword
	CatJavaCCString
	CatJavaCCPunctuation
	CatJavaCCOption
	CatParserName
	CatBNFProductionName
	CatBNFProductionCall
	CatBNFChoicePunctuation
	CatTokenLabel
	CatTokenLabelDefinition
	CatTokenLabelPrivateDefinition
	CatLexicalState
	CatRegexBracket
	CatRegexPunctuation
	CatJJTreeNodeName
	CatJJTreeNodePunctuation

	categoryCount
)

var categoryNames = [categoryCount]string{
	CatEOF:                         "eof",
	CatDefault:                     "default",
	CatWhitespace:                  "whitespace",
	CatJavaKeyword:                 "java-keyword",
	CatJavaString:                  "java-string",
	CatJavaNumeric:                 "java-numeric",
	CatJavaPunctuation:             "java-punctuation",
	CatJavaComment:                 "java-comment",
	CatJavaBlockComment:            "java-block-comment",
	CatJavadocComment:              "javadoc-comment",
	CatJavaBlockBrace:              "java-block-brace",
	CatJavaCCKeyword:               "javacc-keyword",
	CatJavaCCString:                "javacc-string",
	CatJavaCCPunctuation:           "javacc-punctuation",
	CatJavaCCOption:                "javacc-option",
	CatParserName:                  "parser-name",
	CatBNFProductionName:           "bnf-production-name",
	CatBNFProductionCall:           "bnf-production-call",
	CatBNFChoicePunctuation:        "bnf-choice-punctuation",
	CatTokenLabel:                  "token-label",
	CatTokenLabelDefinition:        "token-label-definition",
	CatTokenLabelPrivateDefinition: "token-label-private-definition",
	CatLexicalState:                "lexical-state",
	CatRegexBracket:                "regex-bracket",
	CatRegexPunctuation:            "regex-punctuation",
	CatJJTreeNodeName:              "jjtree-node-name",
	CatJJTreeNodePunctuation:       "jjtree-node-punctuation",
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for i, name := range categoryNames {
		m[name] = Category(i)
	}
	return m
}()

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a category name back to its value.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryByName[name]; ok {
		return c, nil
	}
	return CatDefault, fmt.Errorf("unknown token category %q", name)
}

// Categories lists every category that carries presentation, i.e. all but CatEOF.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CatDefault; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// Token is one classified run of text. A CatEOF token has zero length.
type Token struct {
	Offset int
	Length int
	Cat    Category
}

func (t Token) End() int {
	return t.Offset + t.Length
}

func (t Token) IsEOF() bool {
	return t.Cat == CatEOF
}

func (t Token) String() string {
	return fmt.Sprintf("%d+%d %s", t.Offset, t.Length, t.Cat)
}
