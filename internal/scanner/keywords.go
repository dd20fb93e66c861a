package scanner

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var javaKeywords = wordSet(
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "final", "finally", "float", "for", "goto", "if", "implements",
	"import", "instanceof", "int", "interface", "long", "native", "new",
	"package", "private", "protected", "public", "return", "short", "static",
	"strictfp", "super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "try", "void", "volatile", "while",
	"true", "false", "null",
)

var javaccKeywords = wordSet(
	"options", "LOOKAHEAD", "IGNORE_CASE", "PARSER_BEGIN", "PARSER_END",
	"JAVACODE", "TOKEN", "SPECIAL_TOKEN", "MORE", "SKIP", "TOKEN_MGR_DECLS",
	"EOF",
)

var regexProductionKeywords = wordSet("TOKEN", "SPECIAL_TOKEN", "MORE", "SKIP")

// Option names are matched upper-cased; JavaCC treats them case-insensitively.
var optionNames = wordSet(
	// JavaCC
	"LOOKAHEAD", "CHOICE_AMBIGUITY_CHECK", "OTHER_AMBIGUITY_CHECK", "STATIC",
	"SUPPORT_CLASS_VISIBILITY_PUBLIC", "DEBUG_PARSER", "DEBUG_LOOKAHEAD",
	"DEBUG_TOKEN_MANAGER", "ERROR_REPORTING", "JAVA_UNICODE_ESCAPE",
	"UNICODE_INPUT", "IGNORE_CASE", "USER_TOKEN_MANAGER", "USER_CHAR_STREAM",
	"BUILD_PARSER", "BUILD_TOKEN_MANAGER", "TOKEN_EXTENDS", "TOKEN_FACTORY",
	"TOKEN_MANAGER_USES_PARSER", "SANITY_CHECK", "FORCE_LA_CHECK",
	"COMMON_TOKEN_ACTION", "CACHE_TOKENS", "OUTPUT_DIRECTORY", "JDK_VERSION",
	"GRAMMAR_ENCODING", "KEEP_LINE_COLUMN", "JAVA_TEMPLATE_TYPE",
	"GENERATE_ANNOTATIONS", "GENERATE_GENERICS", "GENERATE_STRING_BUILDER",
	"GENERATE_CHAINED_EXCEPTION",
	// JJTree
	"MULTI", "NODE_DEFAULT_VOID", "NODE_SCOPE_HOOK", "NODE_USES_PARSER",
	"BUILD_NODE_FILES", "VISITOR", "VISITOR_EXCEPTION", "VISITOR_DATA_TYPE",
	"VISITOR_RETURN_TYPE", "NODE_PREFIX", "NODE_PACKAGE", "NODE_EXTENDS",
	"NODE_CLASS", "NODE_FACTORY", "TRACK_TOKENS", "JJTREE_OUTPUT_DIRECTORY",
	// JTB
	"JTB_O", "JTB_P", "JTB_W", "JTB_E", "JTB_JD", "JTB_F", "JTB_NS", "JTB_PP",
	"JTB_TK", "JTB_TKJJ", "JTB_VA", "JTB_VIS", "JTB_NPFX", "JTB_NSFX", "JTB_D",
	"JTB_HK", "JTB_IA", "JTB_CL", "JTB_DL", "JTB_PRINTER", "JTB_SCHEME",
)

const (
	javaPunctuation   = "(){}[];,.@=<>!~?:+-*/&|^%"
	regexOperators    = "|()*+?~-,"
	choicePunctuation = "|()[]*+?"
)
