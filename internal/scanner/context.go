package scanner

import "fmt"

// Kind names the grammar region the scanner is in.
type Kind int

const (
	AtFirstLevel Kind = iota
	AtOptionsBlock
	InOptionsBlock
	AtParserBegin
	InParserSectionUnit
	AtParserEnd
	AtJavaBlock
	InJavaCode
	AtJavaCodeProduction
	AtRegularExpressionProduction
	AtRegularExpressionSpecification
	AtRegularExpression
	AtRegularExpressionLabel
	AtBNFProduction
	AtExpansionChoiceBlock
	AtExpansionChoices
	AtBNFLookahead
	AtBNFJavaLeftParen
	AfterBNFJavaRightParen
	AtJJTreeNodeName
	AfterJJTreeNodeName
	InJJTreeExpr
	InJJTreeExprNest
	InBlockComment

	kindCount
)

var kindNames = [kindCount]string{
	AtFirstLevel:                     "AT_FIRST_LEVEL",
	AtOptionsBlock:                   "AT_OPTIONS_BLOCK",
	InOptionsBlock:                   "IN_OPTIONS_BLOCK",
	AtParserBegin:                    "AT_PARSER_BEGIN",
	InParserSectionUnit:              "IN_PARSER_SECTION_UNIT",
	AtParserEnd:                      "AT_PARSER_END",
	AtJavaBlock:                      "AT_JAVA_BLOCK",
	InJavaCode:                       "IN_JAVA_CODE",
	AtJavaCodeProduction:             "AT_JAVACODE_PRODUCTION",
	AtRegularExpressionProduction:    "AT_REGULAR_EXPRESSION_PRODUCTION",
	AtRegularExpressionSpecification: "AT_REGULAR_EXPRESSION_SPECIFICATION",
	AtRegularExpression:              "AT_REGULAR_EXPRESSION",
	AtRegularExpressionLabel:         "AT_REGULAR_EXPRESSION_LABEL",
	AtBNFProduction:                  "AT_BNF_PRODUCTION",
	AtExpansionChoiceBlock:           "AT_EXPANSION_CHOICE_BLOCK",
	AtExpansionChoices:               "AT_EXPANSION_CHOICES",
	AtBNFLookahead:                   "AT_BNF_LOOKAHEAD",
	AtBNFJavaLeftParen:               "AT_BNF_JAVA_LEFT_PAREN",
	AfterBNFJavaRightParen:           "AFTER_BNF_JAVA_RIGHT_PAREN",
	AtJJTreeNodeName:                 "AT_JJTREE_NODE_NAME",
	AfterJJTreeNodeName:              "AFTER_JJTREE_NODE_NAME",
	InJJTreeExpr:                     "IN_JJTREE_EXPR",
	InJJTreeExprNest:                 "IN_JJTREE_EXPR_NEST",
	InBlockComment:                   "IN_BLOCK_COMMENT",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("KIND(%d)", int(k))
	}
	return kindNames[k]
}

// Flags are one-shot markers carried by a stack entry. They describe what
// the previous token announced, e.g. that the next identifier is a private
// label or that the next '(' opens a Java argument list.
type Flags uint8

const (
	FlagPrivateLabel Flags = 1 << iota // '#' seen, next identifier is a private label
	FlagArgList                        // next '(' starts Java arguments
	FlagLookahead                      // next '(' starts a LOOKAHEAD specification
	FlagTry                            // next '{' opens a try expansion block
	FlagGroup                          // entry was opened by '(' or '['
	FlagBraceGroup                     // entry was opened by the '{' of a try block
	FlagJavadoc                        // block comment started with "/**"
	FlagCommentStar                    // comment range ended on '*', a leading '/' closes it

	oneShotFlags = FlagPrivateLabel | FlagArgList | FlagLookahead | FlagTry
)

// Context is one stack entry.
type Context struct {
	Kind  Kind
	Flags Flags
}

func ctx(k Kind) Context {
	return Context{Kind: k}
}

func (c Context) Has(f Flags) bool {
	return c.Flags&f != 0
}

func (c Context) String() string {
	if c.Flags == 0 {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s[%#x]", c.Kind, uint8(c.Flags))
}
