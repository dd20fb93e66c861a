package theme

import (
	chroma "github.com/alecthomas/chroma/v2"

	"jjcolor/internal/scanner"
)

// source says where a category takes its presentation from in a chroma
// style: the first token type with a colour wins, and extra is OR-ed into
// whatever font style the style sets.
type source struct {
	types []chroma.TokenType
	extra FontStyle
}

var categorySources = map[scanner.Category]source{
	scanner.CatDefault:                     {types: []chroma.TokenType{chroma.Text}},
	scanner.CatWhitespace:                  {types: []chroma.TokenType{chroma.Text}},
	scanner.CatJavaKeyword:                 {types: []chroma.TokenType{chroma.Keyword}},
	scanner.CatJavaString:                  {types: []chroma.TokenType{chroma.LiteralString}},
	scanner.CatJavaNumeric:                 {types: []chroma.TokenType{chroma.LiteralNumber}},
	scanner.CatJavaPunctuation:             {types: []chroma.TokenType{chroma.Punctuation, chroma.Operator}},
	scanner.CatJavaComment:                 {types: []chroma.TokenType{chroma.CommentSingle, chroma.Comment}},
	scanner.CatJavaBlockComment:            {types: []chroma.TokenType{chroma.CommentMultiline, chroma.Comment}},
	scanner.CatJavadocComment:              {types: []chroma.TokenType{chroma.LiteralStringDoc, chroma.CommentSpecial, chroma.Comment}},
	scanner.CatJavaBlockBrace:              {types: []chroma.TokenType{chroma.Punctuation, chroma.Operator}, extra: Bold},
	scanner.CatJavaCCKeyword:               {types: []chroma.TokenType{chroma.KeywordReserved, chroma.Keyword}, extra: Bold},
	scanner.CatJavaCCString:                {types: []chroma.TokenType{chroma.LiteralStringDouble, chroma.LiteralString}},
	scanner.CatJavaCCPunctuation:           {types: []chroma.TokenType{chroma.Operator, chroma.Punctuation}},
	scanner.CatJavaCCOption:                {types: []chroma.TokenType{chroma.NameAttribute, chroma.NameVariable, chroma.Name}},
	scanner.CatParserName:                  {types: []chroma.TokenType{chroma.NameClass, chroma.Name}, extra: Bold},
	scanner.CatBNFProductionName:           {types: []chroma.TokenType{chroma.NameFunction, chroma.Name}, extra: Bold},
	scanner.CatBNFProductionCall:           {types: []chroma.TokenType{chroma.NameFunction, chroma.Name}},
	scanner.CatBNFChoicePunctuation:        {types: []chroma.TokenType{chroma.Operator, chroma.Punctuation}, extra: Bold},
	scanner.CatTokenLabel:                  {types: []chroma.TokenType{chroma.NameConstant, chroma.NameVariable}},
	scanner.CatTokenLabelDefinition:        {types: []chroma.TokenType{chroma.NameConstant, chroma.NameVariable}, extra: Bold},
	scanner.CatTokenLabelPrivateDefinition: {types: []chroma.TokenType{chroma.NameConstant, chroma.NameVariable}, extra: Bold | Italic},
	scanner.CatLexicalState:                {types: []chroma.TokenType{chroma.NameLabel, chroma.NameTag}, extra: Italic},
	scanner.CatRegexBracket:                {types: []chroma.TokenType{chroma.LiteralStringRegex, chroma.LiteralString}, extra: Bold},
	scanner.CatRegexPunctuation:            {types: []chroma.TokenType{chroma.LiteralStringRegex, chroma.Operator}},
	scanner.CatJJTreeNodeName:              {types: []chroma.TokenType{chroma.NameDecorator, chroma.NameTag}},
	scanner.CatJJTreeNodePunctuation:       {types: []chroma.TokenType{chroma.NameDecorator, chroma.Punctuation}},
}

// attributeFrom resolves one category. Backgrounds equal to the style's own
// background are dropped so tokens render on the terminal's background.
func attributeFrom(style *chroma.Style, src source, text string, base string) Attribute {
	attr := Attribute{Foreground: pickForeground(style, text, src.types...)}
	for _, tt := range src.types {
		entry := style.Get(tt)
		if bg := entry.Background; bg.IsSet() && bg.String() != base && attr.Background == "" {
			attr.Background = bg.String()
		}
		if entry.Bold == chroma.Yes {
			attr.Style |= Bold
		}
		if entry.Italic == chroma.Yes {
			attr.Style |= Italic
		}
		if entry.Underline == chroma.Yes {
			attr.Style |= Underline
		}
		if entry.Colour.IsSet() {
			break
		}
	}
	attr.Style |= src.extra
	return attr
}
