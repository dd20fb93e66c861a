package scanner

import (
	"strings"

	"jjcolor/internal/text"
)

// rule tries to produce one token. A rule that reports false has consumed
// nothing.
type rule func(c *Classifier, src text.Source) (Category, bool)

func whitespaceRule(_ *Classifier, src text.Source) (Category, bool) {
	n := 0
	for isSpace(src.Read()) {
		n++
	}
	src.Unread()
	return CatWhitespace, n > 0
}

func commentRule(c *Classifier, src text.Source) (Category, bool) {
	if isAt(src, "//") {
		for {
			r := src.Read()
			if r == text.EOF || r == '\n' {
				src.Unread()
				return CatJavaComment, true
			}
		}
	}
	if isAt(src, "/*") {
		consume(src, 2)
		javadoc := isAt(src, "*") && !isAt(src, "*/")
		return c.blockComment(src, javadoc, false), true
	}
	return CatDefault, false
}

// blockComment consumes up to and including "*/". A comment cut off by the
// end of the range leaves InBlockComment on the stack so the next range
// carries on inside it, remembering whether the cut fell inside "*/".
func (c *Classifier) blockComment(src text.Source, javadoc bool, continuing bool) Category {
	cat := CatJavaBlockComment
	if javadoc {
		cat = CatJavadocComment
	}
	star := continuing && c.stack.Top().Has(FlagCommentStar)
	for {
		r := src.Read()
		if r == text.EOF {
			src.Unread()
			state := ctx(InBlockComment)
			if javadoc {
				state.Flags |= FlagJavadoc
			}
			if star {
				state.Flags |= FlagCommentStar
			}
			if continuing {
				c.replace(state)
			} else {
				c.push(state)
			}
			return cat
		}
		if r == '/' && star {
			if continuing {
				c.pop()
			}
			return cat
		}
		star = r == '*'
	}
}

func quotedRule(quote rune, cat Category) rule {
	return func(_ *Classifier, src text.Source) (Category, bool) {
		if src.Read() != quote {
			src.Unread()
			return cat, false
		}
		for {
			switch src.Read() {
			case text.EOF, '\n', '\r':
				src.Unread()
				return cat, true
			case '\\':
				if r := src.Read(); r == text.EOF || r == '\n' || r == '\r' {
					src.Unread()
				}
			case quote:
				return cat, true
			}
		}
	}
}

func numberRule(cat Category) rule {
	return func(_ *Classifier, src text.Source) (Category, bool) {
		r := peek(src)
		if !isDigit(r) && r != '.' {
			return cat, false
		}
		return cat, matchNumber(src)
	}
}

func keywordRule(words map[string]bool, cat Category) rule {
	return func(_ *Classifier, src text.Source) (Category, bool) {
		word := readIdent(src)
		if word == "" {
			return cat, false
		}
		if !words[word] {
			consumeBack(src, word)
			return cat, false
		}
		return cat, true
	}
}

func identRule(cat Category) rule {
	return func(_ *Classifier, src text.Source) (Category, bool) {
		return cat, readIdent(src) != ""
	}
}

func punctRule(chars string, cat Category) rule {
	return func(_ *Classifier, src text.Source) (Category, bool) {
		r := src.Read()
		if r == text.EOF || !strings.ContainsRune(chars, r) {
			src.Unread()
			return cat, false
		}
		return cat, true
	}
}

func catchAllRule(_ *Classifier, src text.Source) (Category, bool) {
	if src.Read() == text.EOF {
		src.Unread()
		return CatDefault, false
	}
	return CatDefault, true
}

func consumeBack(src text.Source, word string) {
	unreadN(src, len([]rune(word)))
}

var (
	javaRules = []rule{
		whitespaceRule,
		commentRule,
		quotedRule('"', CatJavaString),
		quotedRule('\'', CatJavaString),
		numberRule(CatJavaNumeric),
		keywordRule(javaKeywords, CatJavaKeyword),
		identRule(CatDefault),
		punctRule(javaPunctuation, CatJavaPunctuation),
		catchAllRule,
	}

	javaccRules = []rule{
		whitespaceRule,
		commentRule,
		quotedRule('"', CatJavaCCString),
		numberRule(CatJavaNumeric),
		keywordRule(javaccKeywords, CatJavaCCKeyword),
		identRule(CatDefault),
		punctRule(javaPunctuation, CatJavaCCPunctuation),
		catchAllRule,
	}

	optionRules = []rule{
		whitespaceRule,
		commentRule,
		quotedRule('"', CatJavaString),
		numberRule(CatJavaNumeric),
		identRule(CatDefault),
		punctRule(javaPunctuation, CatJavaCCPunctuation),
		catchAllRule,
	}

	lexicalStateRules = []rule{
		whitespaceRule,
		commentRule,
		quotedRule('"', CatJavaCCString),
		keywordRule(javaccKeywords, CatJavaCCKeyword),
		identRule(CatLexicalState),
		punctRule(javaPunctuation, CatJavaCCPunctuation),
		catchAllRule,
	}

	regexRules = []rule{
		whitespaceRule,
		commentRule,
		quotedRule('"', CatJavaCCString),
		numberRule(CatJavaNumeric),
		punctRule("[]", CatRegexBracket),
		punctRule(regexOperators, CatRegexPunctuation),
		identRule(CatDefault),
		punctRule(javaPunctuation, CatJavaCCPunctuation),
		catchAllRule,
	}

	expansionRules = []rule{
		whitespaceRule,
		commentRule,
		quotedRule('"', CatJavaCCString),
		numberRule(CatJavaNumeric),
		keywordRule(javaccKeywords, CatJavaCCKeyword),
		keywordRule(javaKeywords, CatJavaKeyword),
		identRule(CatDefault),
		punctRule(choicePunctuation, CatBNFChoicePunctuation),
		punctRule(javaPunctuation, CatJavaPunctuation),
		catchAllRule,
	}

	layoutRules = []rule{whitespaceRule, commentRule}
)

// ruleTables maps each context to the rules tried when no region
// transition fires.
var ruleTables = map[Kind][]rule{
	AtFirstLevel:                     javaccRules,
	AtOptionsBlock:                   javaccRules,
	InOptionsBlock:                   optionRules,
	AtParserBegin:                    javaccRules,
	InParserSectionUnit:              javaRules,
	AtParserEnd:                      javaccRules,
	AtJavaBlock:                      javaRules,
	InJavaCode:                       javaRules,
	AtJavaCodeProduction:             javaRules,
	AtRegularExpressionProduction:    lexicalStateRules,
	AtRegularExpressionSpecification: lexicalStateRules,
	AtRegularExpression:              regexRules,
	AtRegularExpressionLabel:         regexRules,
	AtBNFProduction:                  javaRules,
	AtExpansionChoiceBlock:           javaccRules,
	AtExpansionChoices:               expansionRules,
	AtBNFLookahead:                   expansionRules,
	AtBNFJavaLeftParen:               javaRules,
	AfterBNFJavaRightParen:           javaRules,
	AtJJTreeNodeName:                 javaRules,
	AfterJJTreeNodeName:              javaRules,
	InJJTreeExpr:                     javaRules,
	InJJTreeExprNest:                 javaRules,
	InBlockComment:                   javaRules,
}

func (c *Classifier) apply(rules []rule, src text.Source) Category {
	for _, r := range rules {
		if cat, ok := r(c, src); ok {
			return cat
		}
	}
	// catchAllRule only fails at EOF, which evaluate rules out.
	src.Read()
	return CatDefault
}

func (c *Classifier) applyTable(src text.Source) Category {
	rules, ok := ruleTables[c.stack.Top().Kind]
	if !ok {
		rules = javaccRules
	}
	return c.apply(rules, src)
}

func (c *Classifier) layout(src text.Source) (Category, bool) {
	for _, r := range layoutRules {
		if cat, ok := r(c, src); ok {
			return cat, true
		}
	}
	return CatDefault, false
}
