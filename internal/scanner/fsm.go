package scanner

import (
	"strings"

	"jjcolor/internal/log"
	"jjcolor/internal/text"
)

// step produces one token for the top context, or changes the stack without
// consuming anything and reports false so evaluate tries again.
func (c *Classifier) step(src text.Source) (Category, bool) {
	top := c.stack.Top()
	switch top.Kind {
	case AtFirstLevel:
		return c.atFirstLevel(src)
	case AtOptionsBlock:
		return c.atOptionsBlock(src)
	case InOptionsBlock:
		return c.inOptionsBlock(src)
	case AtParserBegin, AtParserEnd:
		return c.atParserName(src, top.Kind == AtParserEnd)
	case InParserSectionUnit:
		return c.inParserSectionUnit(src)
	case AtJavaBlock, InJavaCode:
		return c.inJava(src, top.Kind == AtJavaBlock)
	case AtJavaCodeProduction:
		return c.atJavaCodeProduction(src)
	case AtRegularExpressionProduction:
		return c.atRegexProduction(src)
	case AtRegularExpressionSpecification:
		return c.atRegexSpecification(src)
	case AtRegularExpressionLabel:
		return c.atRegexLabel(src, top)
	case AtRegularExpression:
		return c.atRegex(src)
	case AtBNFProduction:
		return c.atBNFProduction(src)
	case AfterBNFJavaRightParen:
		return c.afterBNFJavaRightParen(src)
	case AtExpansionChoiceBlock:
		return c.atExpansionChoiceBlock(src)
	case AtExpansionChoices:
		return c.atExpansionChoices(src)
	case AtBNFLookahead:
		return c.atBNFLookahead(src)
	case AtBNFJavaLeftParen:
		return c.atBNFJavaLeftParen(src)
	case AtJJTreeNodeName:
		return c.atJJTreeNodeName(src)
	case AfterJJTreeNodeName:
		return c.afterJJTreeNodeName(src)
	case InJJTreeExpr, InJJTreeExprNest:
		return c.inJJTreeExpr(src, top.Kind == InJJTreeExprNest)
	case InBlockComment:
		return c.blockComment(src, top.Has(FlagJavadoc), true), true
	}

	log.Error(log.CatScanner, "unexpected context, resetting stack", "kind", top.Kind)
	c.stack = NewStack(ctx(AtFirstLevel))
	return c.apply(javaccRules, src), true
}

func (c *Classifier) atFirstLevel(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	if r == '<' {
		src.Read()
		c.push(ctx(AtRegularExpressionProduction))
		return CatJavaCCPunctuation, true
	}
	if !isIdentStart(r) {
		return c.applyTable(src), true
	}

	word, _ := identAhead(src)
	switch {
	case word == "options":
		c.push(ctx(AtOptionsBlock))
	case word == "PARSER_BEGIN":
		c.push(ctx(AtParserBegin))
	case word == "JAVACODE" || word == "TOKEN_MGR_DECLS":
		c.push(ctx(AtJavaCodeProduction))
	case regexProductionKeywords[word]:
		c.push(ctx(AtRegularExpressionProduction))
	case javaccKeywords[word]:
	default:
		c.push(ctx(AtBNFProduction))
		return CatDefault, false
	}
	consumeWord(src, word)
	return CatJavaCCKeyword, true
}

func (c *Classifier) atOptionsBlock(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}
	if peek(src) == '{' {
		src.Read()
		c.replace(ctx(InOptionsBlock))
		return CatJavaCCPunctuation, true
	}
	c.pop()
	return CatDefault, false
}

func (c *Classifier) inOptionsBlock(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	if r == '}' {
		src.Read()
		c.pop()
		return CatJavaCCPunctuation, true
	}
	if isIdentStart(r) {
		word, delim := identAhead(src)
		consumeWord(src, word)
		if delim == '=' && optionNames[strings.ToUpper(word)] {
			return CatJavaCCOption, true
		}
		return CatDefault, true
	}
	return c.applyTable(src), true
}

// atParserName handles "(Name)" after PARSER_BEGIN or PARSER_END.
func (c *Classifier) atParserName(src text.Source, end bool) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	leave := func() {
		if end {
			c.pop()
		} else {
			c.replace(ctx(InParserSectionUnit))
		}
	}

	r := peek(src)
	switch {
	case r == '(':
		src.Read()
		return CatParserName, true
	case r == ')':
		src.Read()
		leave()
		return CatParserName, true
	case isIdentStart(r):
		readIdent(src)
		return CatParserName, true
	}
	leave()
	return CatDefault, false
}

func (c *Classifier) inParserSectionUnit(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	if r == '{' {
		src.Read()
		c.push(ctx(InJavaCode))
		return CatJavaPunctuation, true
	}
	if isIdentStart(r) {
		if word, _ := identAhead(src); word == "PARSER_END" {
			consumeWord(src, word)
			c.replace(ctx(AtParserEnd))
			return CatJavaCCKeyword, true
		}
	}
	return c.applyTable(src), true
}

// inJava scans Java code nested in braces. Each '{' pushes InJavaCode, so
// brace depth lives in the stack.
func (c *Classifier) inJava(src text.Source, block bool) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	switch peek(src) {
	case '{':
		src.Read()
		c.push(ctx(InJavaCode))
		return CatJavaPunctuation, true
	case '}':
		src.Read()
		c.pop()
		if block {
			return CatJavaBlockBrace, true
		}
		return CatJavaPunctuation, true
	}
	return c.applyTable(src), true
}

func (c *Classifier) atJavaCodeProduction(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	switch {
	case r == '#':
		src.Read()
		c.push(ctx(AtJJTreeNodeName))
		return CatJJTreeNodePunctuation, true
	case r == '{':
		src.Read()
		c.replace(ctx(AtJavaBlock))
		return CatJavaBlockBrace, true
	case r == ':':
		src.Read()
		return CatJavaCCPunctuation, true
	case isIdentStart(r):
		if word, delim := identAhead(src); delim == '(' && !javaKeywords[word] {
			consumeWord(src, word)
			return CatBNFProductionName, true
		}
	}
	return c.applyTable(src), true
}

func (c *Classifier) atRegexProduction(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}
	if peek(src) == '{' {
		src.Read()
		c.replace(ctx(AtRegularExpressionSpecification))
		return CatJavaCCPunctuation, true
	}
	return c.applyTable(src), true
}

func (c *Classifier) atRegexSpecification(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	switch peek(src) {
	case '}':
		src.Read()
		c.pop()
		return CatJavaCCPunctuation, true
	case '<':
		src.Read()
		c.push(ctx(AtRegularExpressionLabel))
		return CatRegexBracket, true
	case '{':
		src.Read()
		c.push(ctx(AtJavaBlock))
		return CatJavaBlockBrace, true
	}
	return c.applyTable(src), true
}

// atRegexLabel runs right after '<': an optional '#', a label and ':'.
// Anything else means the regular expression itself has started.
func (c *Classifier) atRegexLabel(src text.Source, top Context) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	switch {
	case r == '#':
		src.Read()
		c.mark(FlagPrivateLabel)
		return CatRegexPunctuation, true
	case isIdentStart(r):
		word, delim := identAhead(src)
		consumeWord(src, word)
		if top.Has(FlagPrivateLabel) {
			c.mark(0)
			return CatTokenLabelPrivateDefinition, true
		}
		if delim == ':' {
			return CatTokenLabelDefinition, true
		}
		return CatTokenLabel, true
	case r == ':':
		src.Read()
		c.replace(ctx(AtRegularExpression))
		return CatJavaCCPunctuation, true
	case r == '>':
		src.Read()
		c.pop()
		return CatRegexBracket, true
	}
	c.replace(ctx(AtRegularExpression))
	return CatDefault, false
}

func (c *Classifier) atRegex(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	switch peek(src) {
	case '<':
		src.Read()
		c.push(ctx(AtRegularExpressionLabel))
		return CatRegexBracket, true
	case '>':
		src.Read()
		c.pop()
		return CatRegexBracket, true
	case '}':
		// missing '>': let the enclosing context take the brace
		c.pop()
		return CatDefault, false
	}
	return c.applyTable(src), true
}

// atBNFProduction scans the result type and name of a BNF production up to
// its parameter list.
func (c *Classifier) atBNFProduction(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	switch {
	case isIdentStart(r):
		word, delim := identAhead(src)
		consumeWord(src, word)
		if javaKeywords[word] {
			return CatJavaKeyword, true
		}
		if delim == '(' {
			return CatBNFProductionName, true
		}
		return CatDefault, true
	case r == '(':
		src.Read()
		c.replace(ctx(AfterBNFJavaRightParen))
		c.push(ctx(AtBNFJavaLeftParen))
		return CatJavaPunctuation, true
	case strings.ContainsRune("<>.,[]?&", r):
		src.Read()
		return CatJavaPunctuation, true
	case r == ':' || r == '{' || r == '#':
		c.replace(ctx(AfterBNFJavaRightParen))
		return CatDefault, false
	}
	c.pop()
	return CatDefault, false
}

func (c *Classifier) afterBNFJavaRightParen(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	switch {
	case r == '#':
		src.Read()
		c.push(ctx(AtJJTreeNodeName))
		return CatJJTreeNodePunctuation, true
	case r == ':':
		src.Read()
		return CatJavaCCPunctuation, true
	case r == '{':
		src.Read()
		c.replace(ctx(AtExpansionChoiceBlock))
		c.push(ctx(AtJavaBlock))
		return CatJavaBlockBrace, true
	case isIdentStart(r) || r == ',' || r == '.':
		return c.applyTable(src), true
	}
	c.pop()
	return CatDefault, false
}

func (c *Classifier) atExpansionChoiceBlock(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}
	if peek(src) == '{' {
		src.Read()
		c.replace(ctx(AtExpansionChoices))
		return CatJavaCCPunctuation, true
	}
	c.pop()
	return CatDefault, false
}

// atExpansionChoices scans the body of a BNF production. A '(' opens Java
// arguments after a production call or catch, a lookahead specification
// after LOOKAHEAD, and a nested choice everywhere else.
func (c *Classifier) atExpansionChoices(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	top := c.stack.Top()
	if r != '(' && r != '{' && top.Has(oneShotFlags) {
		c.mark(0)
		top = c.stack.Top()
	}

	switch r {
	case '}':
		if top.Has(FlagGroup) {
			c.pop()
			return CatDefault, false
		}
		src.Read()
		c.pop()
		return CatJavaCCPunctuation, true
	case ')', ']':
		src.Read()
		if top.Has(FlagGroup) {
			c.pop()
		}
		return CatBNFChoicePunctuation, true
	case '(':
		src.Read()
		c.mark(0)
		switch {
		case top.Has(FlagArgList):
			c.push(ctx(AtBNFJavaLeftParen))
			return CatJavaPunctuation, true
		case top.Has(FlagLookahead):
			c.push(ctx(AtBNFLookahead))
			return CatJavaCCPunctuation, true
		}
		c.push(Context{Kind: AtExpansionChoices, Flags: FlagGroup})
		return CatBNFChoicePunctuation, true
	case '[':
		src.Read()
		c.push(Context{Kind: AtExpansionChoices, Flags: FlagGroup})
		return CatBNFChoicePunctuation, true
	case '{':
		src.Read()
		c.mark(0)
		if top.Has(FlagTry) {
			c.push(Context{Kind: AtExpansionChoices, Flags: FlagBraceGroup})
			return CatJavaCCPunctuation, true
		}
		c.push(ctx(AtJavaBlock))
		return CatJavaBlockBrace, true
	case '<':
		src.Read()
		c.push(ctx(AtRegularExpressionLabel))
		return CatRegexBracket, true
	case '#':
		src.Read()
		c.push(ctx(AtJJTreeNodeName))
		return CatJJTreeNodePunctuation, true
	}

	if isIdentStart(r) {
		return c.expansionIdent(src), true
	}
	return c.applyTable(src), true
}

func (c *Classifier) expansionIdent(src text.Source) Category {
	word, delim := identAhead(src)
	consumeWord(src, word)
	switch word {
	case "LOOKAHEAD":
		c.mark(FlagLookahead)
		return CatJavaCCKeyword
	case "try":
		c.mark(FlagTry)
		return CatJavaKeyword
	case "catch":
		c.mark(FlagArgList)
		return CatJavaKeyword
	}
	switch {
	case javaKeywords[word]:
		return CatJavaKeyword
	case javaccKeywords[word]:
		return CatJavaCCKeyword
	case delim == '(':
		c.mark(FlagArgList)
		return CatBNFProductionCall
	}
	return CatDefault
}

func (c *Classifier) atBNFLookahead(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	r := peek(src)
	switch r {
	case '(':
		src.Read()
		c.push(ctx(AtBNFLookahead))
		return CatJavaCCPunctuation, true
	case ')':
		src.Read()
		c.pop()
		return CatJavaCCPunctuation, true
	case '{':
		src.Read()
		c.push(ctx(AtJavaBlock))
		return CatJavaBlockBrace, true
	case '<':
		src.Read()
		c.push(ctx(AtRegularExpressionLabel))
		return CatRegexBracket, true
	case '}':
		c.pop()
		return CatDefault, false
	}
	if isIdentStart(r) {
		word, delim := identAhead(src)
		consumeWord(src, word)
		switch {
		case javaKeywords[word]:
			return CatJavaKeyword, true
		case javaccKeywords[word]:
			return CatJavaCCKeyword, true
		case delim == '(':
			return CatBNFProductionCall, true
		}
		return CatDefault, true
	}
	return c.applyTable(src), true
}

// atBNFJavaLeftParen scans a Java parameter or argument list. Parentheses
// nest through the stack.
func (c *Classifier) atBNFJavaLeftParen(src text.Source) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	switch peek(src) {
	case '(':
		src.Read()
		c.push(ctx(AtBNFJavaLeftParen))
		return CatJavaPunctuation, true
	case ')':
		src.Read()
		c.pop()
		return CatJavaPunctuation, true
	case '{':
		src.Read()
		c.push(ctx(InJavaCode))
		return CatJavaPunctuation, true
	case '}':
		c.pop()
		return CatDefault, false
	}
	return c.applyTable(src), true
}

func (c *Classifier) atJJTreeNodeName(src text.Source) (Category, bool) {
	if isIdentStart(peek(src)) {
		readIdent(src)
		c.replace(ctx(AfterJJTreeNodeName))
		return CatJJTreeNodeName, true
	}
	c.pop()
	return CatDefault, false
}

func (c *Classifier) afterJJTreeNodeName(src text.Source) (Category, bool) {
	if peek(src) == '(' {
		src.Read()
		c.replace(ctx(InJJTreeExpr))
		return CatJJTreeNodePunctuation, true
	}
	c.pop()
	return CatDefault, false
}

// inJJTreeExpr scans the Java expression of a node descriptor such as
// #Add(>1). Its parentheses are tracked apart from Java braces.
func (c *Classifier) inJJTreeExpr(src text.Source, nested bool) (Category, bool) {
	if cat, ok := c.layout(src); ok {
		return cat, true
	}

	switch peek(src) {
	case '(':
		src.Read()
		c.push(ctx(InJJTreeExprNest))
		return CatJavaPunctuation, true
	case ')':
		src.Read()
		c.pop()
		if nested {
			return CatJavaPunctuation, true
		}
		return CatJJTreeNodePunctuation, true
	case '}':
		c.pop()
		return CatDefault, false
	}
	return c.applyTable(src), true
}
